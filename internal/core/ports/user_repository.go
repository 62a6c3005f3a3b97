package ports

import (
	"context"

	"github.com/adminhub/identity-system/internal/core/domain"
)

// UserRepository defines the persistence interface for user records.
// Exclusivity under concurrent writers is the storage engine's concern; the
// services perform plain read-modify-write sequences (last writer wins).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// ExistsAny reports whether any user has ever been created. Evaluated at
	// registration time to decide the bootstrap Admin role.
	ExistsAny(ctx context.Context) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.User, error)
	CountByActive(ctx context.Context) (active, inactive int64, err error)
}
