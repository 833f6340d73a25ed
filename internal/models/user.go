package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique). Used for login and
	// for addressing friend requests.
	Email string `json:"email"`

	// DisplayName is shown to friends and group members.
	DisplayName string `json:"display_name"`

	// DefaultCurrency is the ISO 4217 code new records default to.
	DefaultCurrency string `json:"default_currency"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewUser constructs a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:              uuid.New().String(),
		Email:           email,
		DisplayName:     displayName,
		DefaultCurrency: "USD",
		PasswordHash:    passwordHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
