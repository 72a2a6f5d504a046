package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/trellis-pm/trellis/internal/identity"
	"github.com/trellis-pm/trellis/internal/platform/httpx"
)

// Handler manages user endpoints.
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

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.getByID)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin manager member"`
}

type updateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=admin manager member"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	user, err := h.service.Register(r.Context(), CreateUserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		h.respondError(w, r, "register user", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	user, err := h.service.Create(r.Context(), CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  identity.Role(req.Role),
	}, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "create user", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "list users", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.service.GetByID(r.Context(), id, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "get user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	in := UpdateUserInput{Name: req.Name, Email: req.Email}
	if req.Role != nil {
		role := identity.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.service.Update(r.Context(), id, in, identity.CallerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, "update user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, identity.CallerFromContext(r.Context())); err != nil {
		h.respondError(w, r, "delete user", err)
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
