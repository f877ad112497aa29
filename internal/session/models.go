package session

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one issued login session. The token doubles as the
// primary key; expiry is fixed at creation and never extended.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is logically invalid at now,
// regardless of whether the row still exists.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
