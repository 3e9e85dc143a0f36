package users_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/shared"
	"github.com/taskhive/taskhive/internal/users"
	_ "github.com/taskhive/taskhive/testing"
)

type stubRepo struct {
	byID map[uuid.UUID]*auth.User
}

func newStubRepo(list ...*auth.User) *stubRepo {
	repo := &stubRepo{byID: make(map[uuid.UUID]*auth.User)}
	for _, user := range list {
		repo.byID[user.ID] = user
	}
	return repo
}

func (s *stubRepo) List(ctx context.Context) ([]auth.User, error) {
	result := make([]auth.User, 0, len(s.byID))
	for _, user := range s.byID {
		result = append(result, *user)
	}
	return result, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if user, ok := s.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, patch auth.UserPatch) (*auth.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if patch.Email != nil {
		user.Email = patch.Email
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}
	copied := *user
	return &copied, nil
}

func testUser(username string) *auth.User {
	now := time.Now().UTC()
	return &auth.User{
		ID:             uuid.New(),
		Username:       username,
		Status:         auth.StatusActive,
		HashedPassword: "$argon2id$opaque",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// newUsersRouter mounts the handler behind a middleware injecting principal,
// standing in for the access gate.
func newUsersRouter(repo *stubRepo, principal *auth.User) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := users.NewHandler(logger, users.NewService(repo))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.ContextWithUser(req.Context(), principal)))
		})
	})
	r.Route("/users", handler.MountRoutes)
	return r
}

func TestListUsers(t *testing.T) {
	alice := testUser("alice")
	bob := testUser("bob")
	router := newUsersRouter(newStubRepo(alice, bob), alice)

	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var views []auth.UserView
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &views))
	require.Len(t, views, 2)
	require.NotContains(t, res.Body.String(), "argon2id")
}

func TestGetMe(t *testing.T) {
	alice := testUser("alice")
	router := newUsersRouter(newStubRepo(alice), alice)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var view auth.UserView
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &view))
	require.Equal(t, alice.ID, view.ID)
	require.Equal(t, "alice", view.Username)
}

func TestGetUser(t *testing.T) {
	alice := testUser("alice")
	bob := testUser("bob")
	router := newUsersRouter(newStubRepo(alice, bob), alice)

	req := httptest.NewRequest(http.MethodGet, "/users/"+bob.ID.String(), nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var view auth.UserView
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &view))
	require.Equal(t, bob.ID, view.ID)
}

func TestGetUserNotFound(t *testing.T) {
	alice := testUser("alice")
	router := newUsersRouter(newStubRepo(alice), alice)

	req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestGetUserBadID(t *testing.T) {
	alice := testUser("alice")
	router := newUsersRouter(newStubRepo(alice), alice)

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUpdateUser(t *testing.T) {
	alice := testUser("alice")
	router := newUsersRouter(newStubRepo(alice), alice)

	body := `{"status":"SUSPENDED","email":"alice@x.com"}`
	req := httptest.NewRequest(http.MethodPatch, "/users/"+alice.ID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var view auth.UserView
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &view))
	require.Equal(t, auth.StatusSuspended, view.Status)
	require.NotNil(t, view.Email)
	require.Equal(t, "alice@x.com", *view.Email)
}

func TestUpdateUserValidation(t *testing.T) {
	alice := testUser("alice")
	router := newUsersRouter(newStubRepo(alice), alice)

	body := `{"status":"DORMANT"}`
	req := httptest.NewRequest(http.MethodPatch, "/users/"+alice.ID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Contains(t, res.Body.String(), "status")
}
