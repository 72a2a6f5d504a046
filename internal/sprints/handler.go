package sprints

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/platform/httpx"
	"github.com/trellis-pm/trellis/internal/shared"
)

const dateLayout = "2006-01-02"

// Handler manages sprint endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes registers sprint routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{id}", h.getByID)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// MountProjectRoutes registers the project-scoped sprint listing.
func (h *Handler) MountProjectRoutes(r chi.Router) {
	r.Get("/{projectID}/sprints", h.listByProject)
}

type createSprintRequest struct {
	Name      string                  `json:"name" validate:"required"`
	StartDate shared.Optional[string] `json:"startDate"`
	EndDate   shared.Optional[string] `json:"endDate"`
	ProjectID int64                   `json:"projectId" validate:"required"`
}

type updateSprintRequest struct {
	Name      *string                 `json:"name" validate:"omitempty,min=1"`
	StartDate shared.Optional[string] `json:"startDate"`
	EndDate   shared.Optional[string] `json:"endDate"`
}

func (h *Handler) listByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httpx.PathID(w, r, "projectID")
	if !ok {
		return
	}

	list, err := h.service.ListByProject(r.Context(), projectID, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "list sprints", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	sprint, err := h.service.GetByID(r.Context(), id, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "get sprint", err)
		return
	}
	httpx.JSON(w, http.StatusOK, sprint)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSprintRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	start, ok := parseDate(w, req.StartDate, "startDate")
	if !ok {
		return
	}
	end, ok := parseDate(w, req.EndDate, "endDate")
	if !ok {
		return
	}

	sprint, err := h.service.Create(r.Context(), CreateSprintInput{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		ProjectID: req.ProjectID,
	}, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "create sprint", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sprint)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	var req updateSprintRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	start, ok := parseDate(w, req.StartDate, "startDate")
	if !ok {
		return
	}
	end, ok := parseDate(w, req.EndDate, "endDate")
	if !ok {
		return
	}

	sprint, err := h.service.Update(r.Context(), id, UpdateSprintInput{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	}, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "update sprint", err)
		return
	}
	httpx.JSON(w, http.StatusOK, sprint)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, identity.CallerFromContext(r.Context())); err != nil {
		h.respondError(w, r, "delete sprint", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) error {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return err
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.RespondError(w, err)
		return err
	}
	return nil
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Debug(op, slog.String("path", r.URL.Path), slog.Any("error", err))
	httpx.RespondError(w, err)
}

// parseDate converts a nullable date string field into a nullable time
// field, rejecting malformed dates with a 400 problem response.
func parseDate(w http.ResponseWriter, field shared.Optional[string], name string) (shared.Optional[time.Time], bool) {
	if !field.Valid {
		return shared.Optional[time.Time]{Set: field.Set}, true
	}
	t, err := time.Parse(dateLayout, field.Value)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Date", name+" must be formatted as "+dateLayout)
		return shared.Optional[time.Time]{}, false
	}
	return shared.Some(t), true
}
