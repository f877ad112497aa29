package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shopfront/internal/database"
)

// Repository handles all database operations for user credentials.
// Every write is a single-row update; no cross-user transaction is needed.
type Repository struct {
	db database.Service
}

// NewRepository creates a new credential repository
func NewRepository(db database.Service) *Repository {
	return &Repository{db: db}
}

// FindByEmail loads the fields the login flow needs for the given email.
// Email matching is exact, as stored.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, name, password_hash, role, failed_login_attempts, lockout_until
		FROM users
		WHERE email = $1
	`

	user := &User{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&user.FailedLoginAttempts,
		&user.LockoutUntil,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	return user, nil
}

// FindByID loads the client-visible fields for the given user ID
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, email, name, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by id: %w", err)
	}

	return user, nil
}

// IncrementFailure persists the post-failure counter state for one account
func (r *Repository) IncrementFailure(ctx context.Context, id uuid.UUID, attempts int, lockoutUntil *time.Time) error {
	query := `
		UPDATE users
		SET failed_login_attempts = $1, lockout_until = $2, updated_at = NOW()
		WHERE id = $3
	`

	if _, err := r.db.Exec(ctx, query, attempts, lockoutUntil, id); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	return nil
}

// ResetFailure clears the failure counter and lockout for one account
func (r *Repository) ResetFailure(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET failed_login_attempts = 0, lockout_until = NULL, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

// Create inserts a new user account
func (r *Repository) Create(ctx context.Context, email, name, passwordHash string, role Role) (*User, error) {
	query := `
		INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, email, name, role, created_at, updated_at
	`

	user := &User{}
	err := r.db.QueryRow(ctx, query, uuid.New(), email, name, passwordHash, role).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
