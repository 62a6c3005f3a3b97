package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adminhub/identity-system/internal/core/domain"
	"github.com/adminhub/identity-system/internal/core/ports"
)

// StatsCache abstracts the short-lived statistics cache (Redis).
type StatsCache interface {
	// Get returns the cached statistics, or nil on a miss.
	Get(ctx context.Context) (*ports.UserStatistics, error)
	Put(ctx context.Context, stats ports.UserStatistics) error
}

// UserService implements the admin-scoped and self-service user operations.
// Every mutation of an existing record goes through the ChangeRecorder before
// any field is altered.
type UserService struct {
	users    ports.UserRepository
	versions ports.VersionRepository
	recorder *ChangeRecorder
	stats    StatsCache
	clock    ports.Clock
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	versions ports.VersionRepository,
	recorder *ChangeRecorder,
	stats StatsCache,
	clock ports.Clock,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		versions: versions,
		recorder: recorder,
		stats:    stats,
		clock:    clock,
		log:      log,
	}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Create adds a user on behalf of an administrator. The new record itself is
// the audit payload; there is no prior state to snapshot.
func (s *UserService) Create(ctx context.Context, input ports.UserInput, actor string) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if len(input.Password) < minPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	cred, err := domain.NewCredential(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	now := s.clock.Now()
	user := &domain.User{
		Email:      input.Email,
		Credential: cred,
		Role:       input.Role,
		IsActive:   input.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if _, err := s.recorder.Audit(ctx, created, actor, domain.ActionInsert); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("actor", actor).Msg("user created")
	return created, nil
}

// Update applies admin edits to email, role, active flag, and optionally the
// password. An identical payload short-circuits without writing history.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UserInput, actor string) (bool, error) {
	if !input.Role.Valid() {
		return false, domain.ErrInvalidRole
	}
	if input.Password != "" && len(input.Password) < minPasswordLen {
		return false, domain.ErrPasswordTooShort
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	hasChanges := user.Email != input.Email ||
		user.Role != input.Role ||
		user.IsActive != input.IsActive ||
		input.Password != ""
	if !hasChanges {
		return false, nil
	}

	if user.Email != input.Email {
		if err := s.ensureEmailFree(ctx, input.Email); err != nil {
			return false, err
		}
	}

	if _, _, err := s.recorder.RecordBeforeMutation(ctx, user, actor, domain.ActionUpdate); err != nil {
		return false, err
	}

	user.Email = input.Email
	user.Role = input.Role
	user.IsActive = input.IsActive
	if input.Password != "" {
		cred, err := domain.NewCredential(input.Password)
		if err != nil {
			return false, fmt.Errorf("update user: %w", err)
		}
		user.Credential = cred
	}
	user.UpdatedAt = s.clock.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return false, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("actor", actor).Msg("user updated")
	return true, nil
}

// Delete removes a user after recording a DELETE audit entry with the final
// state. The user's version history is retained.
func (s *UserService) Delete(ctx context.Context, id int64, actor string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.recorder.Audit(ctx, user, actor, domain.ActionDelete); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", id).Str("actor", actor).Msg("user deleted")
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies self-service edits. Role and active flag are not
// editable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, input ports.ProfileInput) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}

	hasChanges := user.Email != input.Email ||
		user.FirstName != input.FirstName ||
		user.LastName != input.LastName ||
		user.Address != input.Address ||
		!equalDate(user.DateOfBirth, input.DateOfBirth)
	if !hasChanges {
		return false, nil
	}

	if user.Email != input.Email {
		if err := s.ensureEmailFree(ctx, input.Email); err != nil {
			return false, err
		}
	}

	// The actor is the user's own identity as recorded before the change.
	if _, _, err := s.recorder.RecordBeforeMutation(ctx, user, user.Email, domain.ActionUpdate); err != nil {
		return false, err
	}

	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Address = input.Address
	user.DateOfBirth = input.DateOfBirth
	user.UpdatedAt = s.clock.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return false, err
	}

	return true, nil
}

// Revert restores the mutable fields captured in the named version. The
// restoration is itself a new change: a fresh snapshot of the target values
// is appended with current provenance, and a REVERT audit entry references
// the restored state. History is never rewound.
func (s *UserService) Revert(ctx context.Context, userID, versionID int64, actor string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	version, err := s.versions.FindByID(ctx, userID, versionID)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	restored := *version
	restored.ID = 0
	restored.ChangedBy = actor
	restored.ChangedAt = now
	if _, err := s.versions.Append(ctx, &restored); err != nil {
		return fmt.Errorf("revert: %w", err)
	}

	if _, err := s.recorder.Audit(ctx, version, actor, domain.ActionRevert); err != nil {
		return err
	}

	user.Restore(*version)
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("version_id", versionID).
		Str("actor", actor).
		Msg("user reverted to prior version")
	return nil
}

// Statistics returns active/inactive counts, served from the cache when warm.
// Cache failures degrade to a direct count.
func (s *UserService) Statistics(ctx context.Context) (*ports.UserStatistics, error) {
	if cached, err := s.stats.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("statistics cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	active, inactive, err := s.users.CountByActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	stats := ports.UserStatistics{ActiveUsers: active, InactiveUsers: inactive}
	if err := s.stats.Put(ctx, stats); err != nil {
		s.log.Warn().Err(err).Msg("statistics cache write failed")
	}

	return &stats, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

func equalDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
