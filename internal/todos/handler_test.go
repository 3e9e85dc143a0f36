package todos_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/todos"
)

func newTodosRouter() (chi.Router, *memoryRepo) {
	repo := newMemoryRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := todos.NewHandler(logger, todos.NewService(repo))
	r := chi.NewRouter()
	r.Route("/todos", handler.MountRoutes)
	return r, repo
}

func doJSON(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func createTodo(t *testing.T, router chi.Router, body string) todos.Todo {
	t.Helper()
	res := doJSON(t, router, http.MethodPost, "/todos/", body)
	require.Equal(t, http.StatusCreated, res.Code)
	var todo todos.Todo
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &todo))
	return todo
}

func TestCreateTodoEndpoint(t *testing.T) {
	router, _ := newTodosRouter()

	todo := createTodo(t, router, `{"title":"buy milk","description":"two liters","priority":"HIGH"}`)
	require.Equal(t, "buy milk", todo.Title)
	require.Equal(t, "two liters", todo.Description)
	require.Equal(t, todos.StatusNotStarted, todo.Status)
	require.NotNil(t, todo.Priority)
	require.Equal(t, todos.PriorityHigh, *todo.Priority)
}

func TestCreateTodoValidation(t *testing.T) {
	router, _ := newTodosRouter()

	cases := map[string]string{
		"missing title":       `{"description":"x"}`,
		"missing description": `{"title":"x"}`,
		"bad priority":        `{"title":"x","description":"y","priority":"URGENT"}`,
		"title too long":      `{"title":"` + strings.Repeat("a", 201) + `","description":"y"}`,
		"not json":            `title=x`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			res := doJSON(t, router, http.MethodPost, "/todos/", body)
			require.Equal(t, http.StatusBadRequest, res.Code)
		})
	}
}

func TestListTodosOmitsDescription(t *testing.T) {
	router, _ := newTodosRouter()
	createTodo(t, router, `{"title":"buy milk","description":"secret detail"}`)

	res := doJSON(t, router, http.MethodGet, "/todos/", "")
	require.Equal(t, http.StatusOK, res.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.NotContains(t, list[0], "description")
	require.Equal(t, "buy milk", list[0]["title"])
}

func TestListTodosEmpty(t *testing.T) {
	router, _ := newTodosRouter()

	res := doJSON(t, router, http.MethodGet, "/todos/", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "[]", strings.TrimSpace(res.Body.String()))
}

func TestGetTodoEndpoint(t *testing.T) {
	router, _ := newTodosRouter()
	created := createTodo(t, router, `{"title":"buy milk","description":"two liters"}`)

	res := doJSON(t, router, http.MethodGet, "/todos/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, res.Code)

	var todo todos.Todo
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &todo))
	require.Equal(t, created.ID, todo.ID)
	require.Equal(t, "two liters", todo.Description)
}

func TestGetTodoUnknownID(t *testing.T) {
	router, _ := newTodosRouter()

	res := doJSON(t, router, http.MethodGet, "/todos/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestGetTodoInvalidID(t *testing.T) {
	router, _ := newTodosRouter()

	res := doJSON(t, router, http.MethodGet, "/todos/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Contains(t, res.Body.String(), "invalid todo id")
}

func TestUpdateTodoEndpoint(t *testing.T) {
	router, _ := newTodosRouter()
	created := createTodo(t, router, `{"title":"buy milk","description":"two liters"}`)

	res := doJSON(t, router, http.MethodPatch, "/todos/"+created.ID.String(),
		`{"status":"IN_PROGRESS","priority":"LOW"}`)
	require.Equal(t, http.StatusOK, res.Code)

	var todo todos.Todo
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &todo))
	require.Equal(t, todos.StatusInProgress, todo.Status)
	require.NotNil(t, todo.Priority)
	require.Equal(t, todos.PriorityLow, *todo.Priority)
	require.Equal(t, "buy milk", todo.Title)
}

func TestUpdateTodoBadStatus(t *testing.T) {
	router, _ := newTodosRouter()
	created := createTodo(t, router, `{"title":"buy milk","description":"two liters"}`)

	res := doJSON(t, router, http.MethodPatch, "/todos/"+created.ID.String(), `{"status":"DONE"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Contains(t, res.Body.String(), "status")
}

func TestCompleteTodoEndpoint(t *testing.T) {
	router, _ := newTodosRouter()
	created := createTodo(t, router, `{"title":"buy milk","description":"two liters"}`)

	res := doJSON(t, router, http.MethodPatch, "/todos/"+created.ID.String()+"/complete", "")
	require.Equal(t, http.StatusOK, res.Code)

	var todo todos.Todo
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &todo))
	require.Equal(t, todos.StatusCompleted, todo.Status)
}

func TestDeleteTodoEndpoint(t *testing.T) {
	router, _ := newTodosRouter()
	created := createTodo(t, router, `{"title":"buy milk","description":"two liters"}`)

	res := doJSON(t, router, http.MethodDelete, "/todos/"+created.ID.String(), "")
	require.Equal(t, http.StatusNoContent, res.Code)

	res = doJSON(t, router, http.MethodGet, "/todos/"+created.ID.String(), "")
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := newTodosRouter()
	createTodo(t, router, `{"title":"a","description":"x"}`)
	second := createTodo(t, router, `{"title":"b","description":"y"}`)

	res := doJSON(t, router, http.MethodPatch, "/todos/"+second.ID.String()+"/complete", "")
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodGet, "/todos/stats", "")
	require.Equal(t, http.StatusOK, res.Code)

	var stats todos.Stats
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &stats))
	require.Equal(t, int64(2), stats.Total)
	require.Equal(t, int64(1), stats.NotStarted)
	require.Equal(t, int64(1), stats.Completed)
}
