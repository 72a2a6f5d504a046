package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/trellis-pm/trellis/internal/members"
	"github.com/trellis-pm/trellis/internal/observability"
	"github.com/trellis-pm/trellis/internal/projects"
	"github.com/trellis-pm/trellis/internal/sprints"
	"github.com/trellis-pm/trellis/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Metrics         *observability.Metrics
	UsersHandler    *users.Handler
	ProjectsHandler *projects.Handler
	SprintsHandler  *sprints.Handler
	MembersHandler  *members.Handler
}

// NewRouter constructs the chi.Router with Trellis defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/users", params.UsersHandler.MountRoutes)
	r.Route("/projects", func(r chi.Router) {
		params.ProjectsHandler.MountRoutes(r)
		params.SprintsHandler.MountProjectRoutes(r)
		params.MembersHandler.MountRoutes(r)
	})
	r.Route("/sprints", params.SprintsHandler.MountRoutes)
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	return r
}
