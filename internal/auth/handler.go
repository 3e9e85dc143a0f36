package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskhive/taskhive/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger        *slog.Logger
	authenticator *Authenticator
	validator     *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, authenticator *Authenticator) *Handler {
	return &Handler{
		logger:        logger,
		authenticator: authenticator,
		validator:     validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/oauth2", h.handleOAuth2)
}

type registerRequest struct {
	Username string  `json:"username" validate:"required,max=64"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if detail, ok := h.validate(req); !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", detail)
		return
	}

	user, err := h.authenticator.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user.View())
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if detail, ok := h.validate(req); !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", detail)
		return
	}
	h.login(w, r, req)
}

// handleOAuth2 accepts the form-encoded password grant used by OAuth2
// tooling and behaves exactly like login.
func (h *Handler) handleOAuth2(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid form body")
		return
	}
	req := loginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if detail, ok := h.validate(req); !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", detail)
		return
	}
	h.login(w, r, req)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, req loginRequest) {
	token, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, token)
}

// validate runs struct validation and flattens field errors into a single
// problem detail string.
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
