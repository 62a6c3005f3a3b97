package ports

import (
	"context"

	"github.com/adminhub/identity-system/internal/core/domain"
)

// AuditRepository stores the append-only, globally ordered audit trail.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) (int64, error)
	// ListRecent returns one reverse-chronological page of entries together
	// with the total entry count.
	ListRecent(ctx context.Context, page, pageSize int) ([]domain.AuditLogEntry, int64, error)
}
