package todos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive/internal/platform/db"
	"github.com/taskhive/taskhive/internal/shared"
)

const todoColumns = `id, title, description, status, priority, due_date, created_at, updated_at`

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a new todo.
func (r *Repository) Insert(ctx context.Context, todo *Todo) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO todos (id, title, description, status, priority, due_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		todo.ID, todo.Title, todo.Description, todo.Status, todo.Priority, todo.DueDate, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return errors.Join(shared.ErrStorage, err)
	}
	return nil
}

// List returns all todos as summaries ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, status, priority, due_date, created_at, updated_at FROM todos ORDER BY created_at`)
	if err != nil {
		return nil, errors.Join(shared.ErrStorage, err)
	}
	defer rows.Close()
	var list []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.Status, &s.Priority, &s.DueDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, errors.Join(shared.ErrStorage, err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(shared.ErrStorage, err)
	}
	return list, nil
}

// FindByID fetches a todo by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*Todo, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	return scanTodo(row)
}

// Update applies a partial update inside a transaction: the current row is
// locked, patched and written back with a fresh updated_at.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Todo, error) {
	var updated *Todo
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1 FOR UPDATE`, id)
		todo, err := scanTodo(row)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			todo.Title = *patch.Title
		}
		if patch.Description != nil {
			todo.Description = *patch.Description
		}
		if patch.Status != nil {
			todo.Status = *patch.Status
		}
		if patch.Priority != nil {
			todo.Priority = patch.Priority
		}
		if patch.DueDate != nil {
			todo.DueDate = patch.DueDate
		}
		todo.UpdatedAt = time.Now().UTC()

		if _, err := tx.Exec(ctx,
			`UPDATE todos SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = $7 WHERE id = $1`,
			todo.ID, todo.Title, todo.Description, todo.Status, todo.Priority, todo.DueDate, todo.UpdatedAt,
		); err != nil {
			return errors.Join(shared.ErrStorage, err)
		}
		updated = todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a todo, reporting shared.ErrNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return errors.Join(shared.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Stats counts todos per status.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM todos GROUP BY status`)
	if err != nil {
		return Stats{}, errors.Join(shared.ErrStorage, err)
	}
	defer rows.Close()
	var stats Stats
	for rows.Next() {
		var status Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, errors.Join(shared.ErrStorage, err)
		}
		switch status {
		case StatusNotStarted:
			stats.NotStarted = count
		case StatusInProgress:
			stats.InProgress = count
		case StatusCompleted:
			stats.Completed = count
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, errors.Join(shared.ErrStorage, err)
	}
	return stats, nil
}

func scanTodo(row pgx.Row) (*Todo, error) {
	var todo Todo
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Status, &todo.Priority, &todo.DueDate, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, errors.Join(shared.ErrStorage, err)
	}
	return &todo, nil
}
