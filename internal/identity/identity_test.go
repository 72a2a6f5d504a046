package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trellis-pm/trellis/internal/shared"
)

func TestParseRole(t *testing.T) {
	for _, token := range []string{"admin", "manager", "member"} {
		role, ok := ParseRole(token)
		require.True(t, ok)
		require.Equal(t, Role(token), role)
	}

	for _, token := range []string{"", "root", "Admin", "superuser"} {
		_, ok := ParseRole(token)
		require.False(t, ok, "token %q", token)
	}
}

func TestPredicatesOnNilCaller(t *testing.T) {
	var caller *Identity
	require.False(t, caller.IsAdmin())
	require.False(t, caller.IsManager())
	require.False(t, caller.IsMember())
	require.False(t, caller.Is(1))
}

func TestUnknownRoleIsLowestPrivilege(t *testing.T) {
	caller := &Identity{ID: 7}
	require.False(t, caller.IsAdmin())
	require.False(t, caller.IsManager())
	require.False(t, caller.IsMember())
	require.True(t, caller.Is(7))
}

func TestGuardMessages(t *testing.T) {
	err := Check(Authenticated(nil))
	require.ErrorIs(t, err, shared.ErrForbidden)
	require.EqualError(t, err, "Authentication required")

	member := &Identity{ID: 1, Role: RoleMember}
	err = Check(Authenticated(member), AdminOnly(member))
	require.EqualError(t, err, "Admin access required")

	err = Check(Authenticated(member), ManagerOrAdmin(member))
	require.EqualError(t, err, "Manager or admin access required")

	manager := &Identity{ID: 2, Role: RoleManager}
	require.NoError(t, Check(Authenticated(manager), ManagerOrAdmin(manager)))

	admin := &Identity{ID: 3, Role: RoleAdmin}
	require.NoError(t, Check(Authenticated(admin), AdminOnly(admin), ManagerOrAdmin(admin)))
}

func TestCheckShortCircuits(t *testing.T) {
	ran := false
	err := Check(
		Authenticated(nil),
		func() error {
			ran = true
			return nil
		},
	)
	require.Error(t, err)
	require.False(t, ran)
}

func TestFromRequest(t *testing.T) {
	t.Run("no id header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		require.Nil(t, FromRequest(r))
	})

	t.Run("non numeric id", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set(HeaderID, "abc")
		require.Nil(t, FromRequest(r))
	})

	t.Run("id without role", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set(HeaderID, "42")
		caller := FromRequest(r)
		require.NotNil(t, caller)
		require.Equal(t, int64(42), caller.ID)
		require.Equal(t, Role(""), caller.Role)
	})

	t.Run("unrecognized role keeps identity", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set(HeaderID, "42")
		r.Header.Set(HeaderRole, "overlord")
		caller := FromRequest(r)
		require.NotNil(t, caller)
		require.Equal(t, Role(""), caller.Role)
	})

	t.Run("role token is case insensitive", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set(HeaderID, "42")
		r.Header.Set(HeaderRole, "MANAGER")
		caller := FromRequest(r)
		require.NotNil(t, caller)
		require.Equal(t, RoleManager, caller.Role)
	})
}
