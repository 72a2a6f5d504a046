package members

// ProjectRole is a membership-scoped role, distinct from the caller's
// global role. It grants no rights over the membership roster itself.
type ProjectRole string

// Membership roles.
const (
	ProjectRoleMember ProjectRole = "member"
	ProjectRoleLead   ProjectRole = "lead"
)

// ParseProjectRole maps a role token to a ProjectRole.
func ParseProjectRole(token string) (ProjectRole, bool) {
	switch ProjectRole(token) {
	case ProjectRoleMember, ProjectRoleLead:
		return ProjectRole(token), true
	}
	return "", false
}

// Membership ties a user to a project. Identity is the (project, user)
// pair, unique per project.
type Membership struct {
	ProjectID int64       `json:"projectId"`
	UserID    int64       `json:"userId"`
	Role      ProjectRole `json:"role"`
}

// Member is a membership joined with the member's user record for listing.
type Member struct {
	Membership
	Name  string `json:"name"`
	Email string `json:"email"`
}
