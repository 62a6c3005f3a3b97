package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adminhub/identity-system/internal/core/domain"
	"github.com/adminhub/identity-system/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration, login with lockout accounting, and
// password changes.
type AuthService struct {
	users    ports.UserRepository
	recorder *ChangeRecorder
	tokens   *TokenIssuer
	lockout  domain.LockoutPolicy
	clock    ports.Clock
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, recorder *ChangeRecorder, tokens *TokenIssuer, clock ports.Clock, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		recorder: recorder,
		tokens:   tokens,
		lockout:  domain.DefaultLockoutPolicy(),
		clock:    clock,
		log:      log,
	}
}

// Register creates an account with a fresh credential. The very first user in
// the system is granted the Admin role.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if len(password) < minPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	cred, err := domain.NewCredential(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	exists, err := s.users.ExistsAny(ctx)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	role := domain.RoleUser
	if !exists {
		role = domain.RoleAdmin
	}

	now := s.clock.Now()
	user := &domain.User{
		Email:      email,
		Credential: cred,
		Role:       role,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if _, err := s.recorder.Audit(ctx, created, created.Email, domain.ActionRegister); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// are reported identically so account existence never leaks. Lockout
// transitions are persisted before the outcome is returned.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !user.IsActive {
		return "", nil, domain.ErrAccountDisabled
	}

	now := s.clock.Now()
	if remaining, locked := s.lockout.Remaining(user, now); locked {
		return "", nil, &domain.AccountLockedError{RetryAfterMinutes: domain.RetryAfterMinutes(remaining)}
	}

	if !user.Credential.Verify(password) {
		lockedNow := s.lockout.RecordFailure(user, now)
		if err := s.users.Update(ctx, user); err != nil {
			return "", nil, fmt.Errorf("persist lockout state: %w", err)
		}
		if lockedNow {
			s.log.Warn().Int64("user_id", user.ID).Msg("account locked after repeated login failures")
			return "", nil, &domain.AccountLockedError{RetryAfterMinutes: domain.RetryAfterMinutes(s.lockout.Duration)}
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	s.lockout.RecordSuccess(user)
	if err := s.users.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("persist login state: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// ChangePassword installs a fresh salt and hash after verifying the current
// credential. No version snapshot is taken; credentials are outside the
// snapshot field set.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return domain.ErrPasswordTooShort
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.Credential.Verify(current) {
		return domain.ErrInvalidCredentials
	}

	cred, err := domain.NewCredential(newPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	user.Credential = cred
	user.UpdatedAt = s.clock.Now()
	return s.users.Update(ctx, user)
}
