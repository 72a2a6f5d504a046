package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trellis-pm/trellis/internal/app"
	"github.com/trellis-pm/trellis/internal/members"
	"github.com/trellis-pm/trellis/internal/observability"
	"github.com/trellis-pm/trellis/internal/platform/db"
	"github.com/trellis-pm/trellis/internal/projects"
	"github.com/trellis-pm/trellis/internal/sprints"
	"github.com/trellis-pm/trellis/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService)

	projectsRepo := projects.NewRepository(pool)
	projectsService := projects.NewService(projectsRepo, usersService)
	projectsHandler := projects.NewHandler(logger, projectsService)

	sprintsRepo := sprints.NewRepository(pool)
	sprintsService := sprints.NewService(sprintsRepo, projectsService)
	sprintsHandler := sprints.NewHandler(logger, sprintsService)

	membersRepo := members.NewRepository(pool)
	membersService := members.NewService(membersRepo, projectsService, usersService)
	membersHandler := members.NewHandler(logger, membersService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Metrics:         metrics,
		UsersHandler:    usersHandler,
		ProjectsHandler: projectsHandler,
		SprintsHandler:  sprintsHandler,
		MembersHandler:  membersHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
