// Package identity models the caller on whose behalf an operation runs and
// the guards the access policies share.
package identity

// Role is a caller's global role.
type Role string

// Global roles, strongest first.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// ParseRole maps a lowercase role token to a Role. Unrecognized tokens
// report ok=false and the caller keeps an unknown role.
func ParseRole(token string) (Role, bool) {
	switch Role(token) {
	case RoleAdmin, RoleManager, RoleMember:
		return Role(token), true
	}
	return "", false
}

// Identity describes an authenticated caller. A nil *Identity means the
// request carries no caller at all. A zero Role means the identity is known
// but its privileges are not; every predicate treats that as the lowest
// level, never as elevated.
type Identity struct {
	ID   int64
	Role Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c *Identity) IsAdmin() bool { return c != nil && c.Role == RoleAdmin }

// IsManager reports whether the caller holds the manager role.
func (c *Identity) IsManager() bool { return c != nil && c.Role == RoleManager }

// IsMember reports whether the caller holds the member role.
func (c *Identity) IsMember() bool { return c != nil && c.Role == RoleMember }

// Is reports whether the caller is the user with the given id.
func (c *Identity) Is(userID int64) bool { return c != nil && c.ID == userID }
