package projects

import (
	"time"

	"github.com/trellis-pm/trellis/internal/identity"
)

// Project is a unit of work owned by exactly one user. Visibility is
// binary: a public project is readable by anyone, a private one only by its
// owner or an admin. Mutation always requires owner-or-admin regardless of
// visibility.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	OwnerID     int64     `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ViewableBy reports whether the caller may read the project.
func (p Project) ViewableBy(caller *identity.Identity) bool {
	return p.IsPublic || p.ManageableBy(caller)
}

// ManageableBy reports whether the caller may mutate the project: the owner
// or an admin.
func (p Project) ManageableBy(caller *identity.Identity) bool {
	return caller.IsAdmin() || caller.Is(p.OwnerID)
}

// OwnedBy reports whether the caller is the project owner specifically,
// with no admin override.
func (p Project) OwnedBy(caller *identity.Identity) bool {
	return caller.Is(p.OwnerID)
}
