package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adminhub/identity-system/internal/core/domain"
	"github.com/adminhub/identity-system/internal/core/ports"
)

// ChangeRecorder writes the tamper-evident history around user mutations: a
// snapshot of the record as it stands plus an audit entry describing the
// action. Callers must invoke it before touching any field, so the snapshot
// and the audit payload describe the same pre-mutation state.
type ChangeRecorder struct {
	versions ports.VersionRepository
	audits   ports.AuditRepository
	clock    ports.Clock
	log      zerolog.Logger
}

func NewChangeRecorder(versions ports.VersionRepository, audits ports.AuditRepository, clock ports.Clock, log zerolog.Logger) *ChangeRecorder {
	return &ChangeRecorder{versions: versions, audits: audits, clock: clock, log: log}
}

// RecordBeforeMutation persists one UserVersion and one AuditLogEntry for the
// user's current state. Calling it twice records two independent transitions;
// it never deduplicates.
func (r *ChangeRecorder) RecordBeforeMutation(ctx context.Context, user *domain.User, actor string, action domain.AuditAction) (*domain.UserVersion, *domain.AuditLogEntry, error) {
	now := r.clock.Now()

	snapshot := user.Snapshot(actor, now)
	id, err := r.versions.Append(ctx, &snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("record version: %w", err)
	}
	snapshot.ID = id

	entry, err := r.Audit(ctx, user, actor, action)
	if err != nil {
		return nil, nil, err
	}

	r.log.Debug().
		Int64("user_id", user.ID).
		Str("action", string(action)).
		Str("actor", actor).
		Msg("change recorded")

	return &snapshot, entry, nil
}

// Audit appends a single audit entry whose payload is the JSON serialization
// of subject at this moment. Used directly for actions that have no prior
// snapshot to preserve (register, insert, delete) and for reverts.
func (r *ChangeRecorder) Audit(ctx context.Context, subject any, actor string, action domain.AuditAction) (*domain.AuditLogEntry, error) {
	payload, err := json.Marshal(subject)
	if err != nil {
		return nil, fmt.Errorf("serialize audit payload: %w", err)
	}

	entry := &domain.AuditLogEntry{
		TableName: domain.UsersTable,
		Action:    action,
		ChangedBy: actor,
		ChangedAt: r.clock.Now(),
		Data:      string(payload),
	}

	id, err := r.audits.Append(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("record audit entry: %w", err)
	}
	entry.ID = id

	return entry, nil
}
