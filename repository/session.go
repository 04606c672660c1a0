package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// SessionRepository tracks the active tokens of each user.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, userID, tokenID string) (*domain.Session, error)
	Delete(ctx context.Context, userID, tokenID string) error
	DeleteAll(ctx context.Context, userID string) error
}
