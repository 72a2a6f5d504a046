package identity

import "github.com/trellis-pm/trellis/internal/shared"

// Guard is a single authorization check.
type Guard func() error

// Check runs guards in order and stops at the first failure. Spelling each
// operation's sequence out as a slice keeps the ordering between checks a
// visible artifact rather than implicit code order.
func Check(guards ...Guard) error {
	for _, guard := range guards {
		if err := guard(); err != nil {
			return err
		}
	}
	return nil
}

// Authenticated fails when no caller identity is present. It is the first
// gate of every mutating operation; the role guards below assume it already
// passed.
func Authenticated(caller *Identity) Guard {
	return func() error {
		if caller == nil {
			return shared.Forbidden("Authentication required")
		}
		return nil
	}
}

// AdminOnly fails unless the caller holds the admin role.
func AdminOnly(caller *Identity) Guard {
	return func() error {
		if !caller.IsAdmin() {
			return shared.Forbidden("Admin access required")
		}
		return nil
	}
}

// ManagerOrAdmin fails unless the caller holds the manager or admin role.
func ManagerOrAdmin(caller *Identity) Guard {
	return func() error {
		if !caller.IsAdmin() && !caller.IsManager() {
			return shared.Forbidden("Manager or admin access required")
		}
		return nil
	}
}
