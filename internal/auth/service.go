// Package auth implements credential validation, password hashing and
// login-attempt throttling for the application.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// CredentialStore is the contract the login flow needs from persistent
// user records. *Repository satisfies it; tests use in-memory doubles.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	IncrementFailure(ctx context.Context, id uuid.UUID, attempts int, lockoutUntil *time.Time) error
	ResetFailure(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, email, name, passwordHash string, role Role) (*User, error)
}

// Service defines the authentication service interface
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*Profile, error)
	Signup(ctx context.Context, req SignupRequest) (*Profile, error)
	ProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error)
}

type service struct {
	store  CredentialStore
	hasher *Hasher
	logger *slog.Logger
}

// NewService creates a new authentication service
func NewService(store CredentialStore, hasher *Hasher, logger *slog.Logger) Service {
	return &service{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// Login runs the full login protocol for one request:
// lookup, lockout gate, password verification, counter update.
//
// A locked account short-circuits before the password is checked and
// leaves the failure counter untouched. A failed verification persists
// the incremented counter before the error is returned. A successful
// verification unconditionally resets the counter and lockout.
//
// Counter updates are plain read-modify-write: two concurrent failures
// for the same account can lose an increment. Accepted for this demo;
// a conditional UPDATE expression would close the race.
func (s *service) Login(ctx context.Context, req LoginRequest) (*Profile, error) {
	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	now := time.Now()
	if Locked(user.LockoutUntil, now) {
		s.logger.Info("login rejected, account locked",
			"user_id", user.ID,
			"lockout_until", user.LockoutUntil)
		return nil, ErrAccountLocked
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		attempts, lockoutUntil := NextFailure(user.FailedLoginAttempts, user.LockoutUntil, now)
		if err := s.store.IncrementFailure(ctx, user.ID, attempts, lockoutUntil); err != nil {
			return nil, fmt.Errorf("login failure update failed: %w", err)
		}

		s.logger.Info("login failed, bad password",
			"user_id", user.ID,
			"failed_attempts", attempts,
			"locked", lockoutUntil != nil && lockoutUntil.After(now))
		return nil, ErrInvalidCredentials
	}

	if err := s.store.ResetFailure(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("login counter reset failed: %w", err)
	}

	return user.Profile(), nil
}

// Signup creates a new USER-role account with a freshly hashed password
func (s *service) Signup(ctx context.Context, req SignupRequest) (*Profile, error) {
	if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("signup lookup failed: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("signup hashing failed: %w", err)
	}

	user, err := s.store.Create(ctx, req.Email, req.Name, hash, RoleUser)
	if err != nil {
		return nil, fmt.Errorf("signup create failed: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return user.Profile(), nil
}

// ProfileByID returns the sanitized profile for an authenticated user
func (s *service) ProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}
