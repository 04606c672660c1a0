package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user row. Owned tasks go with it through the
	// ON DELETE CASCADE foreign key.
	Delete(ctx context.Context, id string) (*domain.User, error)
}
