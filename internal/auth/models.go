package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level assigned to a user account
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents a stored user account with its login throttling state
type User struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	PasswordHash        string     `json:"-"`
	Role                Role       `json:"role"`
	FailedLoginAttempts int        `json:"-"`
	LockoutUntil        *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Profile is the sanitized view of a user returned to clients.
// It never carries the password hash or throttling counters.
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}

// Profile returns the client-visible projection of the user
func (u *User) Profile() *Profile {
	return &Profile{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// LoginRequest is the request payload for logging in.
// RememberMe only drives client-side email prefill and is ignored by the server.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// SignupRequest is the request payload for creating an account
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Response is the uniform JSON envelope for all auth endpoints.
// Outcomes are carried in Success/Message rather than HTTP status codes
// so clients handle every case the same way.
type Response struct {
	Success bool     `json:"success"`
	Payload *Profile `json:"payload"`
	Message string   `json:"message"`
}
