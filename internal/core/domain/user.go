package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of privilege levels a user can hold.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrAccountLocked      = errors.New("account locked")
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrVersionNotFound    = errors.New("version not found")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("access forbidden")
)

// AccountLockedError reports a rejected login on a locked account together
// with how long the caller has to wait before the lock lifts.
type AccountLockedError struct {
	RetryAfterMinutes int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked, retry in %d minutes", e.RetryAfterMinutes)
}

// Is lets errors.Is(err, ErrAccountLocked) match regardless of remaining time.
func (e *AccountLockedError) Is(target error) bool {
	return target == ErrAccountLocked
}

// User is the identity record. The credential and lockout state are owned
// exclusively by the user; everything in the mutable field set below is
// snapshotted into a UserVersion before each mutation.
type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Credential Credential `json:"-"`

	Role     Role `json:"role"`
	IsActive bool `json:"is_active"`

	FailedLoginAttempts int        `json:"-"`
	LockoutEnd          *time.Time `json:"-"`

	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Address     string     `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot captures the user's mutable fields at this instant, stamped with
// the actor and time of the change that is about to happen.
func (u *User) Snapshot(actor string, at time.Time) UserVersion {
	return UserVersion{
		UserID:      u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Address:     u.Address,
		DateOfBirth: u.DateOfBirth,
		Role:        u.Role,
		IsActive:    u.IsActive,
		ChangedBy:   actor,
		ChangedAt:   at,
	}
}

// Restore overwrites the user's mutable fields with the values recorded in v.
// Credential and lockout state are untouched.
func (u *User) Restore(v UserVersion) {
	u.Email = v.Email
	u.FirstName = v.FirstName
	u.LastName = v.LastName
	u.Address = v.Address
	u.DateOfBirth = v.DateOfBirth
	u.Role = v.Role
	u.IsActive = v.IsActive
}
