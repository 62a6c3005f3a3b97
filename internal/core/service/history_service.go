package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adminhub/identity-system/internal/core/ports"
)

const (
	historyPageSize = 5
	auditPageSize   = 7
)

// HistoryService serves paginated views over the version history and the
// global audit trail.
type HistoryService struct {
	versions ports.VersionRepository
	audits   ports.AuditRepository
	log      zerolog.Logger
}

func NewHistoryService(versions ports.VersionRepository, audits ports.AuditRepository, log zerolog.Logger) *HistoryService {
	return &HistoryService{versions: versions, audits: audits, log: log}
}

// UserHistory returns one reverse-chronological page of the user's snapshots.
func (s *HistoryService) UserHistory(ctx context.Context, userID int64, page int) (*ports.UserHistoryPage, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := s.versions.ListByUser(ctx, userID, page, historyPageSize)
	if err != nil {
		return nil, fmt.Errorf("list user history: %w", err)
	}

	return &ports.UserHistoryPage{
		TotalCount:  total,
		CurrentPage: page,
		PageSize:    historyPageSize,
		TotalPages:  totalPages(total, historyPageSize),
		History:     items,
	}, nil
}

// AuditLogs returns one reverse-chronological page of the audit trail.
func (s *HistoryService) AuditLogs(ctx context.Context, page int) (*ports.AuditLogPage, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := s.audits.ListRecent(ctx, page, auditPageSize)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}

	return &ports.AuditLogPage{
		TotalCount: total,
		Page:       page,
		PageSize:   auditPageSize,
		Logs:       items,
	}, nil
}

func totalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
