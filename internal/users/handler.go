package users

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/platform/httpx"
	"github.com/taskhive/taskhive/internal/shared"
)

// Handler manages user management endpoints. All routes sit behind the
// access gate; the principal is read from the request context.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Get("/me", h.getMe)
	r.Get("/{id}", h.getUser)
	r.Patch("/{id}", h.updateUser)
}

type updateUserRequest struct {
	Email  *string `json:"email" validate:"omitempty,email,max=255"`
	Status *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	views := make([]auth.UserView, len(users))
	for i := range users {
		views[i] = users[i].View()
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	principal := auth.UserFromContext(r.Context())
	if principal == nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	httpx.JSON(w, http.StatusOK, principal.View())
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user.View())
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	var req updateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		var parts []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			parts = append(parts, strings.ToLower(fieldErr.Field())+": "+fieldErr.Tag())
		}
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", strings.Join(parts, "; "))
		return
	}

	patch := auth.UserPatch{Email: req.Email}
	if req.Status != nil {
		status := auth.Status(*req.Status)
		patch.Status = &status
	}
	user, err := h.service.UpdateUser(r.Context(), id, patch)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user.View())
}
