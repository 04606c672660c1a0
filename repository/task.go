package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// TaskFilter narrows a listing to one owner, optionally by completion
// state, with optional pagination. Limit <= 0 and Skip <= 0 mean "unset".
type TaskFilter struct {
	OwnerID   string
	Completed *bool
	Limit     int
	Skip      int
}

// TaskRepository persists tasks. Every lookup that takes an owner id is
// scoped to it: a task belonging to someone else behaves exactly like a
// task that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByOwner(ctx context.Context, id, ownerID string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	DeleteByOwner(ctx context.Context, id, ownerID string) (*domain.Task, error)
}
