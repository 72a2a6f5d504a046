package projects

import (
	"context"
	"errors"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/shared"
)

// RepositoryPort defines data access methods for projects.
type RepositoryPort interface {
	GetProject(ctx context.Context, id int64) (Project, error)
	ListPublic(ctx context.Context) ([]Project, error)
	ListAll(ctx context.Context) ([]Project, error)
	ListVisibleTo(ctx context.Context, userID int64) ([]Project, error)
	CreateProject(ctx context.Context, project Project) (Project, error)
	UpdateProject(ctx context.Context, project Project) (Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// UserDirectory resolves user references when ownership is assigned.
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CreateProjectInput carries fields for project creation. OwnerID may only
// be set by an admin; it defaults to the caller.
type CreateProjectInput struct {
	Name        string
	Description shared.Optional[string]
	IsPublic    *bool
	OwnerID     *int64
}

// UpdateProjectInput carries a partial update. Description distinguishes an
// absent field from an explicit null.
type UpdateProjectInput struct {
	Name        *string
	Description shared.Optional[string]
	IsPublic    *bool
	OwnerID     *int64
}

// Service decides visibility, listing scope and mutation rights over
// projects. Sprint and membership policies compose with it through the
// Authorize primitives instead of duplicating the rules.
type Service struct {
	repo  RepositoryPort
	users UserDirectory
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// ListPublic returns all public projects. No authentication required.
func (s *Service) ListPublic(ctx context.Context) ([]Project, error) {
	return s.repo.ListPublic(ctx)
}

// ListAccessible returns the projects the caller may read: all of them for
// an admin, public plus owned for anyone else, public only for an anonymous
// caller.
func (s *Service) ListAccessible(ctx context.Context, caller *identity.Identity) ([]Project, error) {
	if caller == nil {
		return s.repo.ListPublic(ctx)
	}
	if caller.IsAdmin() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListVisibleTo(ctx, caller.ID)
}

// GetByID returns a project. Existence is checked first, so a missing id is
// reported as not-found even to an anonymous caller; only then does the
// visibility rule apply.
func (s *Service) GetByID(ctx context.Context, id int64, caller *identity.Identity) (Project, error) {
	return s.AuthorizeView(ctx, id, caller)
}

// Create creates a project. Manager-or-admin; the owner defaults to the
// caller and may be redirected to another existing user by an admin only.
func (s *Service) Create(ctx context.Context, in CreateProjectInput, caller *identity.Identity) (Project, error) {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.ManagerOrAdmin(caller),
	); err != nil {
		return Project{}, err
	}

	ownerID := caller.ID
	if in.OwnerID != nil {
		if !caller.IsAdmin() {
			return Project{}, shared.Forbidden("Only admin can set project owner")
		}
		ownerID = *in.OwnerID
	}
	if err := s.requireOwnerExists(ctx, ownerID); err != nil {
		return Project{}, err
	}

	project := Project{
		Name:        in.Name,
		Description: in.Description.Ptr(),
		OwnerID:     ownerID,
	}
	if in.IsPublic != nil {
		project.IsPublic = *in.IsPublic
	}
	return s.repo.CreateProject(ctx, project)
}

// Update applies a partial update. Manager-or-admin globally, then
// owner-or-admin on the loaded project. Reassigning the owner is stricter:
// admin only, and the new owner must exist.
func (s *Service) Update(ctx context.Context, id int64, in UpdateProjectInput, caller *identity.Identity) (Project, error) {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.ManagerOrAdmin(caller),
	); err != nil {
		return Project{}, err
	}

	project, err := s.fetch(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if !project.ManageableBy(caller) {
		return Project{}, shared.Forbidden("Only project owner can update this project")
	}

	if in.OwnerID != nil {
		if !caller.IsAdmin() {
			return Project{}, shared.Forbidden("Only admin can change project owner")
		}
		if err := s.requireOwnerExists(ctx, *in.OwnerID); err != nil {
			return Project{}, err
		}
		project.OwnerID = *in.OwnerID
	}

	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description.Set {
		project.Description = in.Description.Ptr()
	}
	if in.IsPublic != nil {
		project.IsPublic = *in.IsPublic
	}
	return s.repo.UpdateProject(ctx, project)
}

// Delete removes a project with the same gating as Update.
func (s *Service) Delete(ctx context.Context, id int64, caller *identity.Identity) error {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.ManagerOrAdmin(caller),
	); err != nil {
		return err
	}

	project, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !project.ManageableBy(caller) {
		return shared.Forbidden("Only project owner can delete this project")
	}
	return s.repo.DeleteProject(ctx, id)
}

// AuthorizeView resolves a project id and applies the visibility rule: a
// public project is returned to anyone; a private one requires an
// authenticated owner or admin.
func (s *Service) AuthorizeView(ctx context.Context, projectID int64, caller *identity.Identity) (Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return Project{}, err
	}
	if project.IsPublic {
		return project, nil
	}
	if caller == nil {
		return Project{}, shared.Forbidden("Authentication required")
	}
	if !project.ManageableBy(caller) {
		return Project{}, shared.Forbidden("You do not have access to this project")
	}
	return project, nil
}

// AuthorizeManage resolves a project id and applies the owner-or-admin
// rule, failing with the given denial message.
func (s *Service) AuthorizeManage(ctx context.Context, projectID int64, caller *identity.Identity, denied string) (Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return Project{}, err
	}
	if !project.ManageableBy(caller) {
		return Project{}, shared.Forbidden(denied)
	}
	return project, nil
}

// AuthorizeOwner resolves a project id and requires the caller to be the
// owner specifically; admins get no override through this primitive.
func (s *Service) AuthorizeOwner(ctx context.Context, projectID int64, caller *identity.Identity, denied string) (Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return Project{}, err
	}
	if !project.OwnedBy(caller) {
		return Project{}, shared.Forbidden(denied)
	}
	return project, nil
}

func (s *Service) requireOwnerExists(ctx context.Context, ownerID int64) error {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NotFound("Owner user not found")
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, id int64) (Project, error) {
	project, err := s.repo.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Project{}, shared.NotFound("Project not found")
		}
		return Project{}, err
	}
	return project, nil
}
