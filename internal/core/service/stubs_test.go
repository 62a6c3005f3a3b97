package service

import (
	"context"
	"sort"
	"time"

	"github.com/adminhub/identity-system/internal/core/domain"
	"github.com/adminhub/identity-system/internal/core/ports"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// stubUserRepo is an in-memory UserRepository with last-writer-wins updates.
type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ExistsAny(_ context.Context) (bool, error) {
	return len(r.users) > 0, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return domain.ErrEmailExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *cloneUser(r.users[id]))
	}
	return users, nil
}

func (r *stubUserRepo) CountByActive(_ context.Context) (int64, int64, error) {
	var active, inactive int64
	for _, u := range r.users {
		if u.IsActive {
			active++
		} else {
			inactive++
		}
	}
	return active, inactive, nil
}

// stubVersionRepo is an in-memory append-only VersionRepository.
type stubVersionRepo struct {
	versions []domain.UserVersion
	nextID   int64
}

func newStubVersionRepo() *stubVersionRepo {
	return &stubVersionRepo{}
}

func (r *stubVersionRepo) Append(_ context.Context, version *domain.UserVersion) (int64, error) {
	r.nextID++
	version.ID = r.nextID
	r.versions = append(r.versions, *version)
	return version.ID, nil
}

func (r *stubVersionRepo) FindByID(_ context.Context, userID, versionID int64) (*domain.UserVersion, error) {
	for _, v := range r.versions {
		if v.ID == versionID && v.UserID == userID {
			clone := v
			return &clone, nil
		}
	}
	return nil, domain.ErrVersionNotFound
}

func (r *stubVersionRepo) ListByUser(_ context.Context, userID int64, page, pageSize int) ([]domain.UserVersion, int64, error) {
	var all []domain.UserVersion
	for _, v := range r.versions {
		if v.UserID == userID {
			all = append(all, v)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].ChangedAt.After(all[j].ChangedAt) })

	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *stubVersionRepo) byUser(userID int64) []domain.UserVersion {
	var out []domain.UserVersion
	for _, v := range r.versions {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out
}

// stubAuditRepo is an in-memory append-only AuditRepository.
type stubAuditRepo struct {
	entries []domain.AuditLogEntry
	nextID  int64
}

func newStubAuditRepo() *stubAuditRepo {
	return &stubAuditRepo{}
}

func (r *stubAuditRepo) Append(_ context.Context, entry *domain.AuditLogEntry) (int64, error) {
	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, page, pageSize int) ([]domain.AuditLogEntry, int64, error) {
	all := make([]domain.AuditLogEntry, len(r.entries))
	copy(all, r.entries)
	sort.SliceStable(all, func(i, j int) bool { return all[i].ChangedAt.After(all[j].ChangedAt) })

	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

// stubStatsCache is an in-memory StatsCache.
type stubStatsCache struct {
	stats *ports.UserStatistics
	puts  int
}

func (c *stubStatsCache) Get(_ context.Context) (*ports.UserStatistics, error) {
	return c.stats, nil
}

func (c *stubStatsCache) Put(_ context.Context, stats ports.UserStatistics) error {
	c.stats = &stats
	c.puts++
	return nil
}
