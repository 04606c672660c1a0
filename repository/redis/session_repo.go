package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type sessionRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewSessionRepository creates a Redis-backed active-token store. Each
// session lives under token:<user_id>:<token_id>, so revoking one token is
// a single DEL and revoking all of a user's tokens is a prefix scan.
func NewSessionRepository(client *redislib.Client, ttl time.Duration) repository.SessionRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionRepository{
		client: client,
		prefix: "token:",
		ttl:    ttl,
	}
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.UserID == "" || session.TokenID == "" {
		return domain.ErrInvalidPayload
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = r.ttl
	}

	return r.client.Set(ctx, r.key(session.UserID, session.TokenID), payload, ttl).Err()
}

func (r *sessionRepository) Get(ctx context.Context, userID, tokenID string) (*domain.Session, error) {
	result, err := r.client.Get(ctx, r.key(userID, tokenID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, userID, tokenID string) error {
	return r.client.Del(ctx, r.key(userID, tokenID)).Err()
}

func (r *sessionRepository) DeleteAll(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("%s%s:*", r.prefix, userID)

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (r *sessionRepository) key(userID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", r.prefix, userID, tokenID)
}
