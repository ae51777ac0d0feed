package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// PasswordHash is a bcrypt hash set exactly once at creation; it never leaves
// the service boundary.
type User struct {
	ID            string
	Email         string
	Username      string
	PasswordHash  string
	FirstName     *string
	LastName      *string
	IsActive      bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
