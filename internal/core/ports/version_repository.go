package ports

import (
	"context"

	"github.com/adminhub/identity-system/internal/core/domain"
)

// VersionRepository stores the append-only snapshot history of users.
type VersionRepository interface {
	Append(ctx context.Context, version *domain.UserVersion) (int64, error)
	// FindByID resolves a version scoped to its owning user; a version id
	// belonging to another user must not resolve.
	FindByID(ctx context.Context, userID, versionID int64) (*domain.UserVersion, error)
	// ListByUser returns one reverse-chronological page of a user's history
	// together with the total number of versions recorded for that user.
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.UserVersion, int64, error)
}
