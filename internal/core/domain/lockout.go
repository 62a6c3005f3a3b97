package domain

import "time"

const (
	defaultMaxFailures     = 5
	defaultLockoutDuration = 5 * time.Minute
)

// LockoutPolicy decides how consecutive credential failures turn into a timed
// account lock. The policy only manipulates the counter and expiry on the
// user; callers persist the result.
type LockoutPolicy struct {
	MaxFailures int
	Duration    time.Duration
}

// DefaultLockoutPolicy locks an account for five minutes after the fifth
// consecutive failure.
func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{MaxFailures: defaultMaxFailures, Duration: defaultLockoutDuration}
}

// Remaining reports whether the user is locked at the given instant and, if
// so, how long until the lock lifts. An expired lockout is treated as no
// lockout; the transition out of the locked state is lazy.
func (p LockoutPolicy) Remaining(u *User, now time.Time) (time.Duration, bool) {
	if u.LockoutEnd == nil || !u.LockoutEnd.After(now) {
		return 0, false
	}
	return u.LockoutEnd.Sub(now), true
}

// RecordFailure registers one failed verification. When the failure count
// reaches MaxFailures the account is locked, the counter resets to zero, and
// true is returned.
func (p LockoutPolicy) RecordFailure(u *User, now time.Time) bool {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts < p.MaxFailures {
		return false
	}

	end := now.Add(p.Duration)
	u.LockoutEnd = &end
	u.FailedLoginAttempts = 0
	return true
}

// RecordSuccess clears the counter and any lockout after a successful
// verification.
func (p LockoutPolicy) RecordSuccess(u *User) {
	u.FailedLoginAttempts = 0
	u.LockoutEnd = nil
}

// RetryAfterMinutes converts a remaining lockout duration into whole minutes,
// rounding up so a live lock never reports zero.
func RetryAfterMinutes(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Minute - 1) / time.Minute)
}
