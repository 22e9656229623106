package types

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the users table. Password carries the bcrypt hash and is
// never serialized.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// UserResult is the sanitized public projection of a user. It has no
// password field at all, so a hash can never leak through serialization.
type UserResult struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Sanitize projects a user entity onto its public result shape.
func (u *User) Sanitize() *UserResult {
	return &UserResult{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// UpdateUserParams holds the mutable profile fields. Nil means "leave as is".
type UpdateUserParams struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
