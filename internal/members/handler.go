package members

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/platform/httpx"
)

// Handler manages project membership endpoints.
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

// MountRoutes registers membership routes under a project scope.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{projectID}/members", h.listByProject)
	r.Post("/{projectID}/members", h.add)
	r.Patch("/{projectID}/members/{userID}", h.update)
	r.Delete("/{projectID}/members/{userID}", h.delete)
}

type addMemberRequest struct {
	UserID int64  `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"omitempty,oneof=member lead"`
}

type updateMemberRequest struct {
	Role string `json:"role" validate:"required,oneof=member lead"`
}

func (h *Handler) listByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httpx.PathID(w, r, "projectID")
	if !ok {
		return
	}

	list, err := h.service.ListByProject(r.Context(), projectID)
	if err != nil {
		h.respondError(w, r, "list members", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httpx.PathID(w, r, "projectID")
	if !ok {
		return
	}

	var req addMemberRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	membership, err := h.service.Add(r.Context(), projectID, AddMemberInput{
		UserID: req.UserID,
		Role:   ProjectRole(req.Role),
	}, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "add member", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, membership)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httpx.PathID(w, r, "projectID")
	if !ok {
		return
	}
	userID, ok := httpx.PathID(w, r, "userID")
	if !ok {
		return
	}

	var req updateMemberRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	membership, err := h.service.Update(r.Context(), projectID, userID, UpdateMemberInput{
		Role: ProjectRole(req.Role),
	}, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "update member", err)
		return
	}
	httpx.JSON(w, http.StatusOK, membership)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httpx.PathID(w, r, "projectID")
	if !ok {
		return
	}
	userID, ok := httpx.PathID(w, r, "userID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), projectID, userID, identity.CallerFromContext(r.Context())); err != nil {
		h.respondError(w, r, "remove member", err)
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
