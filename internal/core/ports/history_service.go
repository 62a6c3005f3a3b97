package ports

import (
	"context"

	"github.com/adminhub/identity-system/internal/core/domain"
)

// UserHistoryPage is one reverse-chronological page of a user's snapshots.
type UserHistoryPage struct {
	TotalCount  int64                `json:"total_count"`
	CurrentPage int                  `json:"current_page"`
	PageSize    int                  `json:"page_size"`
	TotalPages  int                  `json:"total_pages"`
	History     []domain.UserVersion `json:"history"`
}

// AuditLogPage is one reverse-chronological page of the global audit trail.
type AuditLogPage struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	Logs       []domain.AuditLogEntry `json:"logs"`
}

// HistoryService exposes the version history and audit trail for inspection.
type HistoryService interface {
	UserHistory(ctx context.Context, userID int64, page int) (*UserHistoryPage, error)
	AuditLogs(ctx context.Context, page int) (*AuditLogPage, error)
}
