package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate carries the fields needed to persist an API user.
// Password is already hashed by the auth service.
type UserCreate struct {
	ID       uuid.UUID
	Username string
	Email    string
	Password string
}

// UserRead is a flat projection of a stored API user. HashedPassword is kept
// for credential verification and never serialized.
type UserRead struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Active         bool      `json:"active"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
