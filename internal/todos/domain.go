// Package todos implements the todo-item resource.
package todos

import (
	"time"

	"github.com/google/uuid"
)

// Priority enumerates todo priorities.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Status enumerates todo progress states.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Todo represents a todo item. There is no owner column; every
// authenticated user shares the same list.
type Todo struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    *Priority  `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Summary is the list projection of a todo. Descriptions are only visible on
// the single-item endpoint.
type Summary struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Status    Status     `json:"status"`
	Priority  *Priority  `json:"priority"`
	DueDate   *time.Time `json:"due_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Summary projects the todo without its description.
func (t *Todo) Summary() Summary {
	return Summary{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status,
		Priority:  t.Priority,
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// Patch carries an explicit optional-field update. Nil fields are left
// untouched.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
}

// Stats aggregates todo counts per status.
type Stats struct {
	Total      int64 `json:"total"`
	NotStarted int64 `json:"not_started"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}
