package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, owner_id, name, description, completed)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerID,
		task.Name,
		task.Description,
		task.Completed,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) GetByOwner(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	SELECT id, owner_id, name, description, completed, created_at, updated_at
	FROM tasks
	WHERE id = $1 AND owner_id = $2
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	// NULLIF turns an unset limit into LIMIT NULL, i.e. no limit, matching
	// the "malformed pagination means unset" policy upstream.
	const query = `
	SELECT id, owner_id, name, description, completed, created_at, updated_at
	FROM tasks
	WHERE owner_id = $1
	  AND ($2::boolean IS NULL OR completed = $2)
	ORDER BY created_at ASC
	LIMIT NULLIF($3::int, 0) OFFSET $4
	`

	limit := filter.Limit
	if limit < 0 {
		limit = 0
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	rows, err := r.pool.Query(ctx, query, filter.OwnerID, filter.Completed, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	// The owner predicate keeps a concurrent ownership probe from ever
	// touching another user's row.
	const query = `
	UPDATE tasks
	SET name = $3,
		description = $4,
		completed = $5,
		updated_at = NOW()
	WHERE id = $1 AND owner_id = $2
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerID,
		task.Name,
		task.Description,
		task.Completed,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) DeleteByOwner(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	DELETE FROM tasks
	WHERE id = $1 AND owner_id = $2
	RETURNING id, owner_id, name, description, completed, created_at, updated_at
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Name,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}
