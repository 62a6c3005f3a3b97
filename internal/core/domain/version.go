package domain

import "time"

// UserVersion is an immutable snapshot of a user's mutable fields, taken
// immediately before a mutation. Versions are append-only and ordered by
// ChangedAt within a user's history.
type UserVersion struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Address     string     `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"is_active"`
	ChangedBy   string     `json:"changed_by"`
	ChangedAt   time.Time  `json:"changed_at"`
}
