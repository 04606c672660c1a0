package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/pkg/token"
	"github.com/taskhive/backend/repository"
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	issuer   *token.Issuer
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, issuer *token.Issuer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		issuer:   issuer,
		logger:   logger,
	}
}

// Register creates an account and logs it in, returning the fresh token.
func (uc *UseCase) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "name is required")
	}

	email, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, "", err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := uc.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, signed, nil
}

// Login verifies credentials and issues a new token. Both an unknown email
// and a wrong password produce the same generic error.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, "", domain.ErrBadCredentials
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, "", domain.ErrBadCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrBadCredentials
	}

	signed, err := uc.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Logout revokes the presented token only.
func (uc *UseCase) Logout(ctx context.Context, userID, tokenID string) error {
	return uc.sessions.Delete(ctx, userID, tokenID)
}

// LogoutAll revokes every active token of the user.
func (uc *UseCase) LogoutAll(ctx context.Context, userID string) error {
	return uc.sessions.DeleteAll(ctx, userID)
}

// DeleteAccount removes the user, all owned tasks (cascaded by the store)
// and every active session, returning the deleted record.
func (uc *UseCase) DeleteAccount(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.users.Delete(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.DeleteAll(ctx, userID); err != nil {
		// The account is already gone; surviving session keys expire on
		// their own TTL and no longer resolve to a user.
		uc.logger.Warn("failed to revoke sessions for deleted account",
			zap.String("user_id", userID), zap.Error(err))
	}
	uc.logger.Info("account deleted", zap.String("user_id", userID))
	return user, nil
}

func (uc *UseCase) issueSession(ctx context.Context, userID string) (string, error) {
	signed, session, err := uc.issuer.Issue(userID)
	if err != nil {
		return "", err
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return signed, nil
}
