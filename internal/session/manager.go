// Package session issues and validates cookie-bound login sessions.
// Session rows live in Postgres; Redis fronts them as a cache keyed by
// token so per-request validation avoids a database roundtrip.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTTL is the session lifetime when SESSION_MAX_AGE is unset (3 hours)
	DefaultTTL = 3 * time.Hour
	// DefaultCookieName deliberately avoids the generic "session_id"
	DefaultCookieName = "shopfront_session"
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session has passed its expiry
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidSession is returned when cached session data cannot be decoded
	ErrInvalidSession = errors.New("invalid session")
)

// Records is the persistence contract the manager needs.
// *Repository satisfies it; tests use in-memory doubles.
type Records interface {
	Insert(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager defines the interface for session lifecycle operations
type Manager interface {
	Issue(ctx context.Context, userID uuid.UUID) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error

	CookieName() string
	MaxAgeSeconds() int
	CookieSecure() bool
}

// Config holds session manager configuration
type Config struct {
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// LoadConfigFromEnv reads session configuration from the environment.
// SESSION_MAX_AGE is in seconds; SESSION_COOKIE_SECURE should be "true"
// on any deployment terminating TLS.
func LoadConfigFromEnv() Config {
	cfg := Config{
		TTL:          DefaultTTL,
		CookieName:   DefaultCookieName,
		CookieSecure: os.Getenv("SESSION_COOKIE_SECURE") == "true",
	}

	if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.TTL = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("SESSION_COOKIE_NAME"); v != "" {
		cfg.CookieName = v
	}

	return cfg
}

type manager struct {
	records Records
	cache   Store
	cfg     Config
}

// NewManager creates a new session manager. cache may be nil, in which
// case every lookup goes to Postgres.
func NewManager(records Records, cache Store, cfg Config) Manager {
	return &manager{
		records: records,
		cache:   cache,
		cfg:     cfg,
	}
}

// Issue creates and persists a new session for the user. The expiry is
// exactly CreatedAt + TTL. Existing sessions for the user are left alone;
// one session per device is the intended behavior.
func (m *manager) Issue(ctx context.Context, userID uuid.UUID) (*Session, error) {
	now := time.Now()
	s := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL),
	}

	if err := m.records.Insert(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	m.cachePut(ctx, s)

	return s, nil
}

// Get retrieves a session by token, rejecting expired ones.
// Expired rows are deleted lazily here rather than by a background sweep.
func (m *manager) Get(ctx context.Context, token string) (*Session, error) {
	if s := m.cacheGet(ctx, token); s != nil {
		if s.Expired(time.Now()) {
			_ = m.Delete(ctx, token)
			return nil, ErrSessionExpired
		}
		return s, nil
	}

	s, err := m.records.GetByID(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if s.Expired(time.Now()) {
		_ = m.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	m.cachePut(ctx, s)

	return s, nil
}

// Delete removes a session from Postgres and the cache
func (m *manager) Delete(ctx context.Context, token string) error {
	if m.cache != nil {
		if err := m.cache.Delete(ctx, cacheKey(token)); err != nil {
			log.Printf("Warning: failed to evict session %s from cache: %v", token, err)
		}
	}
	return m.records.Delete(ctx, token)
}

func (m *manager) CookieName() string  { return m.cfg.CookieName }
func (m *manager) CookieSecure() bool  { return m.cfg.CookieSecure }
func (m *manager) MaxAgeSeconds() int  { return int(m.cfg.TTL.Seconds()) }

func (m *manager) cachePut(ctx context.Context, s *Session) {
	if m.cache == nil {
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		return
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return
	}

	if err := m.cache.Set(ctx, cacheKey(s.ID.String()), string(data), ttl); err != nil {
		log.Printf("Warning: failed to cache session %s: %v", s.ID, err)
	}
}

func (m *manager) cacheGet(ctx context.Context, token string) *Session {
	if m.cache == nil {
		return nil
	}

	data, err := m.cache.Get(ctx, cacheKey(token))
	if err != nil {
		return nil
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil
	}
	return &s
}

func cacheKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
