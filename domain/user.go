package domain

import (
	"net/mail"
	"strings"
	"time"
)

// User represents a registered account. The bcrypt hash never leaves the
// process: the json tag excludes it from every response body.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MinPasswordLength is the shortest password accepted at signup or profile update.
const MinPasswordLength = 7

// ValidateEmail normalizes and checks an email address.
func ValidateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", NewError(ErrCodeInvalid, "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", NewError(ErrCodeInvalid, "invalid email address")
	}
	return email, nil
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return NewError(ErrCodeInvalid, "password must be at least 7 characters")
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return NewError(ErrCodeInvalid, `password must not contain the word "password"`)
	}
	return nil
}
