package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

// In-memory doubles for the store ports, shared by the service tests.

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	saved := cloneUser(user)
	if saved.ID == "" {
		r.seq++
		saved.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[saved.ID] = cloneUser(saved)
	return saved, nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int64) ([]domain.User, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.User, 0, len(ids))
	for i, id := range ids {
		if int64(i) < offset {
			continue
		}
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		out = append(out, *cloneUser(r.users[id]))
	}
	return out, nil
}

// delete removes a user, simulating an account purged after token issuance.
func (r *stubUserRepo) delete(id string) {
	delete(r.users, id)
}

type stubRoleRepo struct {
	roles map[string]domain.Role // keyed by name
}

func newStubRoleRepo(roles ...domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]domain.Role)}
	for i, role := range roles {
		if role.ID == "" {
			role.ID = fmt.Sprintf("role-%d", i+1)
		}
		r.roles[role.Name] = role
	}
	return r
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	if role, ok := r.roles[name]; ok {
		return &role, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByNames(_ context.Context, names []string) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(names))
	for _, name := range names {
		if role, ok := r.roles[name]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

type stubAuditRepo struct {
	entries []domain.AuditLogEntry
}

func (r *stubAuditRepo) Append(_ context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	entry.ID = fmt.Sprintf("audit-%d", len(r.entries)+1)
	r.entries = append(r.entries, entry)
	return &entry, nil
}

func (r *stubAuditRepo) List(_ context.Context, offset, limit int64) ([]domain.AuditLogEntry, error) {
	out := make([]domain.AuditLogEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	if offset > int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubAuditRepo) last() *domain.AuditLogEntry {
	if len(r.entries) == 0 {
		return nil
	}
	return &r.entries[len(r.entries)-1]
}

func (r *stubAuditRepo) countAction(action string) int {
	n := 0
	for _, e := range r.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

// stubUOW runs the function directly; atomicity is the store's concern and
// is covered by the mongo implementation.
type stubUOW struct{}

func (stubUOW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubNotifier struct {
	entries []domain.AuditLogEntry
}

func (n *stubNotifier) Enqueue(entry domain.AuditLogEntry) {
	n.entries = append(n.entries, entry)
}

// fixture wires a full service graph over the in-memory stores.
type fixture struct {
	users    *stubUserRepo
	roles    *stubRoleRepo
	audit    *stubAuditRepo
	notifier *stubNotifier
	hasher   *PasswordHasher
	recorder *AuditRecorder
	tokens   *TokenService
	auth     *AuthService
	access   *AccessService
	svc      *UserService
}

func newFixture(t interface{ Fatalf(string, ...interface{}) }) *fixture {
	f := &fixture{
		users: newStubUserRepo(),
		roles: newStubRoleRepo(
			domain.Role{Name: domain.RoleGuest, Level: 0},
			domain.Role{Name: domain.RoleUser, Level: 1},
			domain.Role{Name: domain.RoleManager, Level: 2},
			domain.Role{Name: domain.RoleAdmin, Level: 3},
		),
		audit:    &stubAuditRepo{},
		notifier: &stubNotifier{},
		hasher:   NewPasswordHasher(),
	}

	tokens, err := NewTokenService("test-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	f.tokens = tokens
	f.recorder = NewAuditRecorder(f.audit, f.notifier)
	f.auth = NewAuthService(f.users, f.hasher, f.tokens, f.recorder)
	f.access = NewAccessService(f.tokens, f.users)
	f.svc = NewUserService(stubUOW{}, f.users, f.roles, f.hasher, f.recorder, domain.RoleUser)
	return f
}
