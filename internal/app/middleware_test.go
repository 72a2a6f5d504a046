package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trellis-pm/trellis/internal/identity"
)

func TestCallerMiddlewareResolvesHeaders(t *testing.T) {
	var caller *identity.Identity
	handler := callerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller = identity.CallerFromContext(r.Context())
	}))

	t.Run("no headers yields anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		require.Nil(t, caller)
	})

	t.Run("id and role resolved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(identity.HeaderID, "42")
		req.Header.Set(identity.HeaderRole, "Admin")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		require.NotNil(t, caller)
		require.Equal(t, int64(42), caller.ID)
		require.Equal(t, identity.RoleAdmin, caller.Role)
	})

	t.Run("unknown role leaves role unknown", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(identity.HeaderID, "42")
		req.Header.Set(identity.HeaderRole, "superuser")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		require.NotNil(t, caller)
		require.False(t, caller.IsAdmin())
		require.False(t, caller.IsManager())
		require.False(t, caller.IsMember())
	})

	t.Run("malformed id yields anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(identity.HeaderID, "abc")
		req.Header.Set(identity.HeaderRole, "admin")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		require.Nil(t, caller)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	handler.ServeHTTP(rr, req)
	require.Equal(t, "upstream-id", rr.Header().Get(RequestIDHeader))
}
