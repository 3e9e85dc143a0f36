package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status enumerates account lifecycle states. Only ACTIVE accounts may
// authenticate or act as a request principal.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// statusLabels maps each status to its human-readable form. Messages derive
// from this table rather than transforming the raw value at runtime.
var statusLabels = map[Status]string{
	StatusActive:    "Active",
	StatusInactive:  "Inactive",
	StatusSuspended: "Suspended",
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable form of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// User represents a registered account. HashedPassword is an opaque hash and
// is never serialized; see View.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          *string
	Status         Status
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserView is the serializable projection of a User without credentials.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View returns the user without its password hash.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch carries an explicit optional-field update. Nil fields are left
// untouched.
type UserPatch struct {
	Email  *string
	Status *Status
}

// AuthToken is the login response payload.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Directory abstracts persistence for user records. Implementations return
// shared.ErrNotFound for missing rows, shared.ErrConflict for uniqueness
// violations and wrap any other driver failure in shared.ErrStorage.
type Directory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, user *User) error
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*User, error)
}
