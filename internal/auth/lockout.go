package auth

import "time"

const (
	// LockoutThreshold is the failed-attempt count at which an account locks
	LockoutThreshold = 3
	// LockoutDuration is how long a locked account rejects login attempts
	LockoutDuration = 15 * time.Minute
)

// Locked reports whether an account is locked out at the given instant.
// The boundary is exclusive: at now == lockoutUntil the account is open again.
func Locked(lockoutUntil *time.Time, now time.Time) bool {
	return lockoutUntil != nil && lockoutUntil.After(now)
}

// NextFailure computes the counter state to persist after a failed password
// verification. The counter always increments; once it reaches the threshold
// the lockout window starts at now, otherwise the previous lockoutUntil is
// carried through unchanged.
func NextFailure(attempts int, lockoutUntil *time.Time, now time.Time) (int, *time.Time) {
	updated := attempts + 1
	if updated >= LockoutThreshold {
		until := now.Add(LockoutDuration)
		return updated, &until
	}
	return updated, lockoutUntil
}
