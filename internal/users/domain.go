package users

import "github.com/trellis-pm/trellis/internal/identity"

// User represents an account record. The role field is itself
// access-controlled: only an admin may change it, on self or others.
type User struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  identity.Role `json:"role"`
}
