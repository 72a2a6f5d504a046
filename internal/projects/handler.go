package projects

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/platform/httpx"
	"github.com/trellis-pm/trellis/internal/shared"
)

// Handler manages project endpoints.
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

// MountRoutes registers project routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/public", h.listPublic)
	r.Get("/", h.listAccessible)
	r.Post("/", h.create)
	r.Get("/{projectID}", h.getByID)
	r.Patch("/{projectID}", h.update)
	r.Delete("/{projectID}", h.delete)
}

type createProjectRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Description shared.Optional[string] `json:"description"`
	IsPublic    *bool                   `json:"isPublic"`
	OwnerID     *int64                  `json:"ownerId"`
}

type updateProjectRequest struct {
	Name        *string                 `json:"name" validate:"omitempty,min=1"`
	Description shared.Optional[string] `json:"description"`
	IsPublic    *bool                   `json:"isPublic"`
	OwnerID     *int64                  `json:"ownerId"`
}

func (h *Handler) listPublic(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPublic(r.Context())
	if err != nil {
		h.respondError(w, r, "list public projects", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) listAccessible(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAccessible(r.Context(), identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "list accessible projects", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "projectID")
	if !ok {
		return
	}

	project, err := h.service.GetByID(r.Context(), id, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "get project", err)
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	project, err := h.service.Create(r.Context(), CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		OwnerID:     req.OwnerID,
	}, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "create project", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, project)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "projectID")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	project, err := h.service.Update(r.Context(), id, UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		OwnerID:     req.OwnerID,
	}, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "update project", err)
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "projectID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, identity.CallerFromContext(r.Context())); err != nil {
		h.respondError(w, r, "delete project", err)
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
