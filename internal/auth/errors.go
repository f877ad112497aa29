package auth

import "errors"

var (
	// ErrUserNotFound is returned when no account exists for an email.
	// Handlers must surface it with the same message as ErrInvalidCredentials
	// so account existence cannot be probed.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked is returned while the lockout window is active
	ErrAccountLocked = errors.New("account locked")
	// ErrEmailExists is returned when signing up with an email already in use
	ErrEmailExists = errors.New("email already registered")
)
