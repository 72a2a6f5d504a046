// Seeds a development database with an admin, a few users and demo projects.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/trellis-pm/trellis/internal/app"
	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/members"
	"github.com/trellis-pm/trellis/internal/platform/db"
	"github.com/trellis-pm/trellis/internal/projects"
	"github.com/trellis-pm/trellis/internal/sprints"
	"github.com/trellis-pm/trellis/internal/users"
)

func main() {
	ctx := context.Background()
	logger := slog.Default()

	cfg, err := app.LoadConfig()
	if err != nil {
		logger.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	usersRepo := users.NewRepository(pool)
	projectsRepo := projects.NewRepository(pool)
	sprintsRepo := sprints.NewRepository(pool)
	membersRepo := members.NewRepository(pool)

	admin, err := usersRepo.CreateUser(ctx, users.User{Name: "Ada Admin", Email: "ada@trellis.local", Role: identity.RoleAdmin})
	if err != nil {
		logger.Error("seed admin", slog.Any("error", err))
		os.Exit(1)
	}
	manager, err := usersRepo.CreateUser(ctx, users.User{Name: "Miko Manager", Email: "miko@trellis.local", Role: identity.RoleManager})
	if err != nil {
		logger.Error("seed manager", slog.Any("error", err))
		os.Exit(1)
	}
	member, err := usersRepo.CreateUser(ctx, users.User{Name: "Mel Member", Email: "mel@trellis.local", Role: identity.RoleMember})
	if err != nil {
		logger.Error("seed member", slog.Any("error", err))
		os.Exit(1)
	}

	roadmap := "Public roadmap for the platform"
	public, err := projectsRepo.CreateProject(ctx, projects.Project{
		Name:        "Roadmap",
		Description: &roadmap,
		IsPublic:    true,
		OwnerID:     manager.ID,
	})
	if err != nil {
		logger.Error("seed public project", slog.Any("error", err))
		os.Exit(1)
	}
	private, err := projectsRepo.CreateProject(ctx, projects.Project{
		Name:    "Skunkworks",
		OwnerID: admin.ID,
	})
	if err != nil {
		logger.Error("seed private project", slog.Any("error", err))
		os.Exit(1)
	}

	if _, err := sprintsRepo.CreateSprint(ctx, sprints.Sprint{Name: "Sprint 1", ProjectID: public.ID}); err != nil {
		logger.Error("seed sprint", slog.Any("error", err))
		os.Exit(1)
	}

	if _, err := membersRepo.CreateMembership(ctx, members.Membership{
		ProjectID: private.ID,
		UserID:    member.ID,
		Role:      members.ProjectRoleMember,
	}); err != nil {
		logger.Error("seed membership", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("seed complete",
		slog.Int64("admin", admin.ID),
		slog.Int64("public_project", public.ID),
		slog.Int64("private_project", private.ID),
	)
}
