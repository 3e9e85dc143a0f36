package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive/internal/shared"
)

const uniqueViolation = "23505"

const userColumns = `id, username, email, status, hashed_password, created_at, updated_at`

// PGDirectory implements Directory using PostgreSQL.
type PGDirectory struct {
	pool *pgxpool.Pool
}

// NewDirectory constructs a PostgreSQL directory.
func NewDirectory(pool *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Status, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, errors.Join(shared.ErrStorage, err)
	}
	return &user, nil
}

// FindByID fetches a user by id.
func (d *PGDirectory) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindByUsername fetches a user by its unique username.
func (d *PGDirectory) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// FindByEmail fetches a user by email.
func (d *PGDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Insert persists a new user. A unique constraint violation maps to
// shared.ErrConflict naming the offending column.
func (d *PGDirectory) Insert(ctx context.Context, user *User) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, status, hashed_password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.Email, user.Status, user.HashedPassword, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Update applies a partial update and returns the updated user, or
// shared.ErrNotFound when the id does not exist. Nil patch fields keep their
// current value.
func (d *PGDirectory) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*User, error) {
	row := d.pool.QueryRow(ctx,
		`UPDATE users
		 SET email = COALESCE($2, email),
		     status = COALESCE($3, status),
		     updated_at = $4
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, patch.Email, patch.Status, time.Now().UTC(),
	)
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Status, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, mapWriteError(err)
	}
	return &user, nil
}

// List returns all users ordered by creation time.
func (d *PGDirectory) List(ctx context.Context) ([]User, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, errors.Join(shared.ErrStorage, err)
	}
	defer rows.Close()
	var list []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Status, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, errors.Join(shared.ErrStorage, err)
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(shared.ErrStorage, err)
	}
	return list, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return fmt.Errorf("email already registered: %w", shared.ErrConflict)
		default:
			return fmt.Errorf("username already registered: %w", shared.ErrConflict)
		}
	}
	return errors.Join(shared.ErrStorage, err)
}

var _ Directory = (*PGDirectory)(nil)
