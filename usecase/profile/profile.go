package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// Patch carries the updatable profile fields. Nil means "leave unchanged".
type Patch struct {
	Name     *string
	Email    *string
	Password *string
}

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// Update applies a profile patch. Field validation happens before the
// lookup so an invalid payload never costs a store round-trip.
func (uc *UseCase) Update(ctx context.Context, userID string, patch Patch) (*domain.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name is required")
	}
	if patch.Email != nil {
		email, err := domain.ValidateEmail(*patch.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}

	var hash string
	if patch.Password != nil {
		if err := domain.ValidatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(hashed)
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if hash != "" {
		user.PasswordHash = hash
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
