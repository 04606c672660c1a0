package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// Create persists a new task for the owner. The owner always comes from the
// authenticated session; anything the client put in the payload is ignored
// by the transport layer before it reaches here.
func (uc *UseCase) Create(ctx context.Context, ownerID, name, description string, completed bool) (*domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task name is required")
	}

	task := &domain.Task{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Completed:   completed,
	}
	return uc.tasks.Create(ctx, task)
}

// List returns the owner's tasks, optionally filtered by completion state
// and paginated.
func (uc *UseCase) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

// Get returns the task only when it exists and belongs to ownerID. A task
// owned by someone else is reported as not found.
func (uc *UseCase) Get(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return uc.tasks.GetByOwner(ctx, id, ownerID)
}

// Update applies a validated patch to an owned task with a single save.
func (uc *UseCase) Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := uc.tasks.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)
	if task.Name == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task name is required")
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes an owned task and returns the deleted record.
func (uc *UseCase) Delete(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return uc.tasks.DeleteByOwner(ctx, id, ownerID)
}
