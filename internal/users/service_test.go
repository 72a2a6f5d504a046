package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/shared"
)

type memoryUserRepo struct {
	users  map[int64]User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[int64]User)}
}

func (r *memoryUserRepo) GetUser(ctx context.Context, id int64) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) ListUsers(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUserRepo) CreateUser(ctx context.Context, user User) (User, error) {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) UpdateUser(ctx context.Context, user User) (User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return User{}, shared.ErrNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func seedUser(t *testing.T, repo *memoryUserRepo, name string, role identity.Role) User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), User{Name: name, Email: name + "@test.local", Role: role})
	require.NoError(t, err)
	return u
}

func TestRegisterForcesMemberRole(t *testing.T) {
	svc := NewService(newMemoryUserRepo())

	u, err := svc.Register(context.Background(), CreateUserInput{
		Name:  "eve",
		Email: "eve@test.local",
		Role:  identity.RoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, identity.RoleMember, u.Role)
}

func TestCreateRequiresAdmin(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Name: "a", Email: "a@test.local"}, nil)
	require.EqualError(t, err, "Authentication required")

	manager := &identity.Identity{ID: 1, Role: identity.RoleManager}
	_, err = svc.Create(ctx, CreateUserInput{Name: "a", Email: "a@test.local"}, manager)
	require.EqualError(t, err, "Admin access required")

	admin := &identity.Identity{ID: 2, Role: identity.RoleAdmin}
	u, err := svc.Create(ctx, CreateUserInput{Name: "a", Email: "a@test.local"}, admin)
	require.NoError(t, err)
	require.Equal(t, identity.RoleMember, u.Role)

	u, err = svc.Create(ctx, CreateUserInput{Name: "b", Email: "b@test.local", Role: identity.RoleManager}, admin)
	require.NoError(t, err)
	require.Equal(t, identity.RoleManager, u.Role)
}

func TestListRequiresAdmin(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, "a", identity.RoleMember)
	seedUser(t, repo, "b", identity.RoleMember)
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.List(ctx, &identity.Identity{ID: 1, Role: identity.RoleMember})
	require.ErrorIs(t, err, shared.ErrForbidden)

	list, err := svc.List(ctx, &identity.Identity{ID: 9, Role: identity.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestGetByIDRoleCheckPrecedesExistence(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, "a", identity.RoleMember)
	svc := NewService(repo)
	ctx := context.Background()

	// A non-admin probing an id that is not their own is denied even though
	// the id does not exist in the store.
	caller := &identity.Identity{ID: 1, Role: identity.RoleMember}
	_, err := svc.GetByID(ctx, 9999, caller)
	require.ErrorIs(t, err, shared.ErrForbidden)
	require.EqualError(t, err, "You can only view your own user")

	// An admin probing the same id reaches the store and gets not-found.
	admin := &identity.Identity{ID: 2, Role: identity.RoleAdmin}
	_, err = svc.GetByID(ctx, 9999, admin)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.EqualError(t, err, "User not found")

	// Self lookup succeeds.
	u, err := svc.GetByID(ctx, 1, caller)
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
}

func TestUpdatePartialAndRoleGate(t *testing.T) {
	repo := newMemoryUserRepo()
	u := seedUser(t, repo, "a", identity.RoleMember)
	svc := NewService(repo)
	ctx := context.Background()
	self := &identity.Identity{ID: u.ID, Role: identity.RoleMember}

	name := "renamed"
	updated, err := svc.Update(ctx, u.ID, UpdateUserInput{Name: &name}, self)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Name)
	require.Equal(t, u.Email, updated.Email)

	// Role changes are admin-only even on self.
	role := identity.RoleAdmin
	_, err = svc.Update(ctx, u.ID, UpdateUserInput{Role: &role}, self)
	require.EqualError(t, err, "Only admin can change roles")

	admin := &identity.Identity{ID: 99, Role: identity.RoleAdmin}
	updated, err = svc.Update(ctx, u.ID, UpdateUserInput{Role: &role}, admin)
	require.NoError(t, err)
	require.Equal(t, identity.RoleAdmin, updated.Role)

	// The self-or-admin gate runs before the existence lookup.
	other := &identity.Identity{ID: 50, Role: identity.RoleMember}
	_, err = svc.Update(ctx, 9999, UpdateUserInput{Name: &name}, other)
	require.EqualError(t, err, "You can only update your own user")
}

func TestDelete(t *testing.T) {
	repo := newMemoryUserRepo()
	u := seedUser(t, repo, "a", identity.RoleMember)
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.Delete(ctx, u.ID, &identity.Identity{ID: u.ID, Role: identity.RoleMember})
	require.ErrorIs(t, err, shared.ErrForbidden)

	admin := &identity.Identity{ID: 99, Role: identity.RoleAdmin}
	require.NoError(t, svc.Delete(ctx, u.ID, admin))

	err = svc.Delete(ctx, u.ID, admin)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestExists(t *testing.T) {
	repo := newMemoryUserRepo()
	u := seedUser(t, repo, "a", identity.RoleMember)
	svc := NewService(repo)
	ctx := context.Background()

	ok, err := svc.Exists(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Exists(ctx, 9999)
	require.NoError(t, err)
	require.False(t, ok)
}
