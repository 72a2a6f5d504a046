package sprints

import (
	"context"
	"errors"
	"time"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/projects"
	"github.com/trellis-pm/trellis/internal/shared"
)

const deniedManageSprints = "Only project owner can manage sprints"

// RepositoryPort defines data access methods for sprints.
type RepositoryPort interface {
	GetSprint(ctx context.Context, id int64) (Sprint, error)
	ListByProject(ctx context.Context, projectID int64) ([]Sprint, error)
	CreateSprint(ctx context.Context, sprint Sprint) (Sprint, error)
	UpdateSprint(ctx context.Context, sprint Sprint) (Sprint, error)
	DeleteSprint(ctx context.Context, id int64) error
}

// ProjectPolicy is the slice of the project service sprints delegate to.
type ProjectPolicy interface {
	AuthorizeView(ctx context.Context, projectID int64, caller *identity.Identity) (projects.Project, error)
	AuthorizeManage(ctx context.Context, projectID int64, caller *identity.Identity, denied string) (projects.Project, error)
}

// CreateSprintInput carries fields for sprint creation. Dates are nullable.
type CreateSprintInput struct {
	Name      string
	StartDate shared.Optional[time.Time]
	EndDate   shared.Optional[time.Time]
	ProjectID int64
}

// UpdateSprintInput carries a partial update; dates distinguish an absent
// field from an explicit null.
type UpdateSprintInput struct {
	Name      *string
	StartDate shared.Optional[time.Time]
	EndDate   shared.Optional[time.Time]
}

// Service forwards every sprint decision to the owning project's policy,
// evaluated against the same caller.
type Service struct {
	repo     RepositoryPort
	projects ProjectPolicy
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, projects ProjectPolicy) *Service {
	return &Service{repo: repo, projects: projects}
}

// ListByProject returns a project's sprints after the project view check.
func (s *Service) ListByProject(ctx context.Context, projectID int64, caller *identity.Identity) ([]Sprint, error) {
	if _, err := s.projects.AuthorizeView(ctx, projectID, caller); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// GetByID returns a sprint. The sprint's own existence is checked before
// delegating, so a missing sprint reports not-found ahead of any project
// visibility failure.
func (s *Service) GetByID(ctx context.Context, id int64, caller *identity.Identity) (Sprint, error) {
	sprint, err := s.fetch(ctx, id)
	if err != nil {
		return Sprint{}, err
	}
	if _, err := s.projects.AuthorizeView(ctx, sprint.ProjectID, caller); err != nil {
		return Sprint{}, err
	}
	return sprint, nil
}

// Create creates a sprint. Manager-or-admin globally, then the project
// manage check.
func (s *Service) Create(ctx context.Context, in CreateSprintInput, caller *identity.Identity) (Sprint, error) {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.ManagerOrAdmin(caller),
	); err != nil {
		return Sprint{}, err
	}

	project, err := s.projects.AuthorizeManage(ctx, in.ProjectID, caller, deniedManageSprints)
	if err != nil {
		return Sprint{}, err
	}

	return s.repo.CreateSprint(ctx, Sprint{
		Name:      in.Name,
		StartDate: in.StartDate.Ptr(),
		EndDate:   in.EndDate.Ptr(),
		ProjectID: project.ID,
	})
}

// Update applies a partial update. The sprint must exist before the project
// manage check runs.
func (s *Service) Update(ctx context.Context, id int64, in UpdateSprintInput, caller *identity.Identity) (Sprint, error) {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.ManagerOrAdmin(caller),
	); err != nil {
		return Sprint{}, err
	}

	sprint, err := s.fetch(ctx, id)
	if err != nil {
		return Sprint{}, err
	}
	if _, err := s.projects.AuthorizeManage(ctx, sprint.ProjectID, caller, deniedManageSprints); err != nil {
		return Sprint{}, err
	}

	if in.Name != nil {
		sprint.Name = *in.Name
	}
	if in.StartDate.Set {
		sprint.StartDate = in.StartDate.Ptr()
	}
	if in.EndDate.Set {
		sprint.EndDate = in.EndDate.Ptr()
	}
	return s.repo.UpdateSprint(ctx, sprint)
}

// Delete removes a sprint with the same gating as Update.
func (s *Service) Delete(ctx context.Context, id int64, caller *identity.Identity) error {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.ManagerOrAdmin(caller),
	); err != nil {
		return err
	}

	sprint, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.projects.AuthorizeManage(ctx, sprint.ProjectID, caller, deniedManageSprints); err != nil {
		return err
	}
	return s.repo.DeleteSprint(ctx, id)
}

func (s *Service) fetch(ctx context.Context, id int64) (Sprint, error) {
	sprint, err := s.repo.GetSprint(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Sprint{}, shared.NotFound("Sprint not found")
		}
		return Sprint{}, err
	}
	return sprint, nil
}
