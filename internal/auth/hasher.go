package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for all password hashes.
// Raising it is a deployment tuning decision, not a per-call parameter.
const HashCost = 10

// Hasher produces and verifies salted one-way password digests
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the standard work factor
func NewHasher() *Hasher {
	return &Hasher{cost: HashCost}
}

// Hash derives a salted bcrypt digest from the plaintext password
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
// bcrypt's comparison is constant-time with respect to where a mismatch occurs.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
