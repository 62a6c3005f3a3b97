package ports

import (
	"context"

	"github.com/adminhub/identity-system/internal/core/domain"
)

// AuthService covers registration, credential verification with lockout
// accounting, and password changes.
type AuthService interface {
	// Register creates an account. The first user ever registered is granted
	// the Admin role; everyone after gets the standard role.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials, applies the lockout policy, and returns a
	// signed token on success. Unknown email and wrong password are reported
	// identically as domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID int64, current, newPassword string) error
}
