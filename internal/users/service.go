// Package users exposes management endpoints over the accounts held by the
// auth directory.
package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/auth"
)

// RepositoryPort defines data access methods for users. *auth.PGDirectory
// satisfies it; user records stay owned by the directory.
type RepositoryPort interface {
	List(ctx context.Context) ([]auth.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error)
	Update(ctx context.Context, id uuid.UUID, patch auth.UserPatch) (*auth.User, error)
}

// Service handles user business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]auth.User, error) {
	return s.repo.List(ctx)
}

// GetUser returns a single user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser applies a partial update to a user.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, patch auth.UserPatch) (*auth.User, error) {
	return s.repo.Update(ctx, id, patch)
}
