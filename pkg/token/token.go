package token

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/taskhive/backend/domain"
)

// Issuer signs and verifies the bearer tokens handed out at signup and
// login. Each token carries a jti so a single session can be revoked
// without touching the user's other devices.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// New builds an Issuer. The ttl bounds every issued token; the matching
// session record in Redis expires on the same schedule.
func New(secret, issuer string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue creates a signed token for the user and the session record that
// must be persisted alongside it.
func (i *Issuer) Issue(userID string) (string, *domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(i.ttl),
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     session.TokenID,
		"iss":     i.issuer,
		"iat":     now.Unix(),
		"exp":     session.ExpiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, session, nil
}

// Parse verifies signature and expiry and returns the embedded user and
// token ids. Any failure maps to ErrUnauthorized.
func (i *Issuer) Parse(tokenString string) (userID, tokenID string, err error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", "", domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", domain.ErrUnauthorized
	}
	if i.issuer != "" {
		if iss, _ := claims["iss"].(string); iss != i.issuer {
			return "", "", domain.ErrUnauthorized
		}
	}

	userID, _ = claims["user_id"].(string)
	tokenID, _ = claims["jti"].(string)
	if userID == "" || tokenID == "" {
		return "", "", domain.ErrUnauthorized
	}
	return userID, tokenID, nil
}

// TTL exposes the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
