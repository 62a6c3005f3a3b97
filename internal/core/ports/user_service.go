package ports

import (
	"context"
	"time"

	"github.com/adminhub/identity-system/internal/core/domain"
)

// UserInput carries the admin-editable fields of a user. Password is optional
// on update; when present the credential is re-derived.
type UserInput struct {
	Email    string
	Password string
	Role     domain.Role
	IsActive bool
}

// ProfileInput carries the fields a user may edit on their own record.
type ProfileInput struct {
	Email       string
	FirstName   string
	LastName    string
	Address     string
	DateOfBirth *time.Time
}

// UserStatistics summarizes the user base by active flag.
type UserStatistics struct {
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`
}

// UserService implements the administrative and self-service user operations.
// Every mutation records a pre-mutation snapshot and audit entry before any
// field changes; reverts restore a named snapshot as a fresh change.
type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, input UserInput, actor string) (*domain.User, error)
	// Update applies admin edits. The bool reports whether anything changed;
	// an identical payload is a no-op with no history written.
	Update(ctx context.Context, id int64, input UserInput, actor string) (bool, error)
	Delete(ctx context.Context, id int64, actor string) error
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, input ProfileInput) (bool, error)
	Revert(ctx context.Context, userID, versionID int64, actor string) error
	Statistics(ctx context.Context) (*UserStatistics, error)
}
