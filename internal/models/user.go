package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account record. PasswordHash holds the bcrypt hash
// of the password, never the plaintext. Username and Email are each unique
// across all users.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        string    `json:"email" db:"email"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

// NewUser creates a new user record with a fresh identifier.
func NewUser(username, passwordHash, email string) *User {
	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		CreatedAt:    time.Now(),
	}
}
