// Package user contains the user domain model.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailInvalid     = errors.New("a valid email is required")
	ErrPasswordRequired = errors.New("password hash is required")
)

// User is a registered account. The password is stored only as a bcrypt hash.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// New creates a user from already-hashed credentials.
func New(username, email, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if !strings.Contains(email, "@") {
		return nil, ErrEmailInvalid
	}
	if passwordHash == "" {
		return nil, ErrPasswordRequired
	}
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}
