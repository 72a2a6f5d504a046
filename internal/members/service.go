package members

import (
	"context"
	"errors"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/projects"
	"github.com/trellis-pm/trellis/internal/shared"
)

// RepositoryPort defines data access methods for project memberships.
type RepositoryPort interface {
	GetMembership(ctx context.Context, projectID, userID int64) (Membership, error)
	ListByProject(ctx context.Context, projectID int64) ([]Member, error)
	CreateMembership(ctx context.Context, m Membership) (Membership, error)
	UpdateMembership(ctx context.Context, m Membership) (Membership, error)
	DeleteMembership(ctx context.Context, projectID, userID int64) error
}

// ProjectPolicy is the slice of the project service memberships delegate
// to. Membership mutation is owner-only: unlike sprints, an admin who is
// not the owner gets no override.
type ProjectPolicy interface {
	AuthorizeOwner(ctx context.Context, projectID int64, caller *identity.Identity, denied string) (projects.Project, error)
}

// UserDirectory resolves user references when members are added.
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// AddMemberInput carries fields for adding a member. A zero Role defaults
// to the base membership role.
type AddMemberInput struct {
	UserID int64
	Role   ProjectRole
}

// UpdateMemberInput carries the new membership role.
type UpdateMemberInput struct {
	Role ProjectRole
}

// Service decides who may see and mutate a project's membership roster.
type Service struct {
	repo     RepositoryPort
	projects ProjectPolicy
	users    UserDirectory
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, projects ProjectPolicy, users UserDirectory) *Service {
	return &Service{repo: repo, projects: projects, users: users}
}

// ListByProject returns a project's memberships with user details joined.
// Listing is unguarded at this layer; any gating is the caller's concern.
func (s *Service) ListByProject(ctx context.Context, projectID int64) ([]Member, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Add creates a membership. The project must exist, the caller must be its
// owner, and the target user must exist.
func (s *Service) Add(ctx context.Context, projectID int64, in AddMemberInput, caller *identity.Identity) (Membership, error) {
	if err := identity.Check(identity.Authenticated(caller)); err != nil {
		return Membership{}, err
	}
	if _, err := s.projects.AuthorizeOwner(ctx, projectID, caller, "Only project owner can add members"); err != nil {
		return Membership{}, err
	}

	exists, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return Membership{}, err
	}
	if !exists {
		return Membership{}, shared.NotFound("User not found")
	}

	role := in.Role
	if role == "" {
		role = ProjectRoleMember
	}
	return s.repo.CreateMembership(ctx, Membership{
		ProjectID: projectID,
		UserID:    in.UserID,
		Role:      role,
	})
}

// Update changes a membership's scoped role. The membership's existence is
// checked before the project is re-verified and the owner gate runs.
func (s *Service) Update(ctx context.Context, projectID, userID int64, in UpdateMemberInput, caller *identity.Identity) (Membership, error) {
	if err := identity.Check(identity.Authenticated(caller)); err != nil {
		return Membership{}, err
	}

	membership, err := s.fetch(ctx, projectID, userID)
	if err != nil {
		return Membership{}, err
	}
	if _, err := s.projects.AuthorizeOwner(ctx, projectID, caller, "Only project owner can update member role"); err != nil {
		return Membership{}, err
	}

	membership.Role = in.Role
	return s.repo.UpdateMembership(ctx, membership)
}

// Delete removes a membership with the same check ordering as Update.
func (s *Service) Delete(ctx context.Context, projectID, userID int64, caller *identity.Identity) error {
	if err := identity.Check(identity.Authenticated(caller)); err != nil {
		return err
	}

	if _, err := s.fetch(ctx, projectID, userID); err != nil {
		return err
	}
	if _, err := s.projects.AuthorizeOwner(ctx, projectID, caller, "Only project owner can remove member"); err != nil {
		return err
	}
	return s.repo.DeleteMembership(ctx, projectID, userID)
}

func (s *Service) fetch(ctx context.Context, projectID, userID int64) (Membership, error) {
	membership, err := s.repo.GetMembership(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Membership{}, shared.NotFound("Membership not found")
		}
		return Membership{}, err
	}
	return membership, nil
}
