package identity

import (
	"net/http"
	"strconv"
	"strings"
)

// Headers carrying the already-authenticated caller. They are trusted values
// injected by the upstream gateway; this service performs no token or
// session validation of its own.
const (
	HeaderID   = "x-user-id"
	HeaderRole = "x-user-role"
)

// FromRequest resolves the caller identity from gateway headers. A missing
// or non-numeric id header means no caller at all; a missing or unrecognized
// role token leaves the role unknown.
func FromRequest(r *http.Request) *Identity {
	raw := r.Header.Get(HeaderID)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}

	caller := &Identity{ID: id}
	if role, ok := ParseRole(strings.ToLower(r.Header.Get(HeaderRole))); ok {
		caller.Role = role
	}
	return caller
}
