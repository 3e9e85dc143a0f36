package todos

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/platform/httpx"
)

// Handler manages todo endpoints. All routes sit behind the access gate.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers todo routes. The stats route is declared before the
// id route so chi does not swallow it as an {id} match.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.createTodo)
	r.Get("/", h.listTodos)
	r.Get("/stats", h.getStats)
	r.Get("/{id}", h.getTodo)
	r.Patch("/{id}", h.updateTodo)
	r.Patch("/{id}/complete", h.completeTodo)
	r.Delete("/{id}", h.deleteTodo)
}

type createTodoRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"required"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTodoRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Status      *string    `json:"status" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date"`
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if detail, ok := h.validate(req); !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", detail)
		return
	}

	var priority *Priority
	if req.Priority != nil {
		p := Priority(*req.Priority)
		priority = &p
	}
	todo, err := h.service.Create(r.Context(), req.Title, req.Description, priority, req.DueDate)
	if err != nil {
		h.logger.Error("create todo failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, todo)
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list todos failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Summary{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.logger.Error("todo stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}
	todo, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, todo)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}
	var req updateTodoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if detail, ok := h.validate(req); !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", detail)
		return
	}

	patch := Patch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := Status(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := Priority(*req.Priority)
		patch.Priority = &priority
	}
	todo, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, todo)
}

func (h *Handler) completeTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}
	todo, err := h.service.Complete(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, todo)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) todoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid todo id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) validate(req any) (string, bool) {
	err := h.validator.Struct(req)
	if err == nil {
		return "", true
	}
	var parts []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		parts = append(parts, strings.ToLower(fieldErr.Field())+": "+fieldErr.Tag())
	}
	return strings.Join(parts, "; "), false
}
