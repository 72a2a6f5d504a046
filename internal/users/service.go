package users

import (
	"context"
	"errors"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/shared"
)

// RepositoryPort defines data access methods for users. Lookups report a
// bare shared.ErrNotFound; the service attaches the caller-facing message.
type RepositoryPort interface {
	GetUser(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// CreateUserInput carries fields for registration and admin creation. A zero
// Role means unspecified and defaults to member.
type CreateUserInput struct {
	Name  string
	Email string
	Role  identity.Role
}

// UpdateUserInput carries a partial update; nil fields keep their stored
// value.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *identity.Role
}

// Service decides who may see and mutate user records.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Register creates an account through the public signup path. The stored
// role is always member, regardless of what the input asks for.
func (s *Service) Register(ctx context.Context, in CreateUserInput) (User, error) {
	return s.repo.CreateUser(ctx, User{
		Name:  in.Name,
		Email: in.Email,
		Role:  identity.RoleMember,
	})
}

// Create creates an account with the requested role. Admin only.
func (s *Service) Create(ctx context.Context, in CreateUserInput, caller *identity.Identity) (User, error) {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.AdminOnly(caller),
	); err != nil {
		return User{}, err
	}

	role := in.Role
	if role == "" {
		role = identity.RoleMember
	}
	return s.repo.CreateUser(ctx, User{
		Name:  in.Name,
		Email: in.Email,
		Role:  role,
	})
}

// List returns every user. Admin only.
func (s *Service) List(ctx context.Context, caller *identity.Identity) ([]User, error) {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.AdminOnly(caller),
	); err != nil {
		return nil, err
	}
	return s.repo.ListUsers(ctx)
}

// GetByID returns a user record, self-or-admin. The role check runs before
// the existence lookup: a non-admin probing an arbitrary id gets access
// denied even when no such user exists, so the store is never consulted on
// their behalf.
func (s *Service) GetByID(ctx context.Context, id int64, caller *identity.Identity) (User, error) {
	if err := identity.Check(
		identity.Authenticated(caller),
		s.selfOrAdmin(caller, id, "You can only view your own user"),
	); err != nil {
		return User{}, err
	}
	return s.fetch(ctx, id)
}

// Update applies a partial update, self-or-admin with the same check
// ordering as GetByID. Changing the role field is admin-only even on self.
func (s *Service) Update(ctx context.Context, id int64, in UpdateUserInput, caller *identity.Identity) (User, error) {
	if err := identity.Check(
		identity.Authenticated(caller),
		s.selfOrAdmin(caller, id, "You can only update your own user"),
		func() error {
			if in.Role != nil && !caller.IsAdmin() {
				return shared.Forbidden("Only admin can change roles")
			}
			return nil
		},
	); err != nil {
		return User{}, err
	}

	user, err := s.fetch(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	return s.repo.UpdateUser(ctx, user)
}

// Delete removes a user record. Admin only, then not-found when missing.
func (s *Service) Delete(ctx context.Context, id int64, caller *identity.Identity) error {
	if err := identity.Check(
		identity.Authenticated(caller),
		identity.AdminOnly(caller),
	); err != nil {
		return err
	}

	if _, err := s.fetch(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}

// Exists reports whether a user record exists, used by policies that
// validate user references.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetUser(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) selfOrAdmin(caller *identity.Identity, id int64, denied string) identity.Guard {
	return func() error {
		if !caller.IsAdmin() && !caller.Is(id) {
			return shared.Forbidden(denied)
		}
		return nil
	}
}

func (s *Service) fetch(ctx context.Context, id int64) (User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return User{}, shared.NotFound("User not found")
		}
		return User{}, err
	}
	return user, nil
}
