package todos

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for todos.
type RepositoryPort interface {
	Insert(ctx context.Context, todo *Todo) error
	List(ctx context.Context) ([]Summary, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Todo, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Todo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (Stats, error)
}

// Service handles todo business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create persists a new todo in the NOT_STARTED state.
func (s *Service) Create(ctx context.Context, title, description string, priority *Priority, dueDate *time.Time) (*Todo, error) {
	now := time.Now().UTC()
	todo := &Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      StatusNotStarted,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// List returns summaries of all todos.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// Get returns a single todo by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Todo, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update to a todo.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Todo, error) {
	return s.repo.Update(ctx, id, patch)
}

// Complete marks a todo COMPLETED.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Todo, error) {
	status := StatusCompleted
	return s.repo.Update(ctx, id, Patch{Status: &status})
}

// Delete removes a todo.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// GetStats aggregates todo counts per status.
func (s *Service) GetStats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
