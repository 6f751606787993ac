package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/projectdesk/projectdesk/internal/auth"
	"github.com/projectdesk/projectdesk/internal/middleware"
	"github.com/projectdesk/projectdesk/internal/model"
	"github.com/projectdesk/projectdesk/internal/repository"
	"github.com/projectdesk/projectdesk/internal/service"
)

// memStore is an in-memory store backing both services in handler tests.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*model.User
	projects map[string]*model.Project
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*model.User),
		projects: make(map[string]*model.Project),
	}
}

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) CreateProject(_ context.Context, project *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *project
	m.projects[project.ID] = &copied
	return nil
}

func (m *memStore) GetProjectByID(_ context.Context, id string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	copied := *project
	return &copied, nil
}

func (m *memStore) ListProjects(_ context.Context) ([]*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*model.Project, 0, len(m.projects))
	for _, project := range m.projects {
		copied := *project
		result = append(result, &copied)
	}
	return result, nil
}

func (m *memStore) UpdateProject(_ context.Context, project *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[project.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	copied := *project
	m.projects[project.ID] = &copied
	return nil
}

func (m *memStore) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

// promote flips a stored user to the admin role.
func (m *memStore) promote(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		user.Role = model.RoleAdmin
	}
}

// testAPI bundles a router over in-memory stores for handler tests.
type testAPI struct {
	router *chi.Mux
	store  *memStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMemStore()
	tokens := auth.NewTokens("handler-test-secret", time.Hour)
	hasher := auth.NewHasher(1)

	authSvc := service.NewAuthService(store, hasher, tokens, nil)
	projectSvc := service.NewProjectService(store, nil)

	h := New()
	authHandler := NewAuthHandler(authSvc, logger)
	projectHandler := NewProjectHandler(projectSvc, logger)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger: logger,
		Tokens: tokens,
		Users:  store,
	})

	r := chi.NewRouter()
	r.Get("/", h.Hello)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Get("/{id}", projectHandler.Get)
			r.With(requireAuth).Post("/", projectHandler.Create)
			r.With(requireAuth).Put("/{id}", projectHandler.Update)
			r.With(requireAuth).Delete("/{id}", projectHandler.Delete)
		})
	})
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return &testAPI{router: r, store: store}
}

// do performs a request against the test router.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its ID.
func (a *testAPI) register(t *testing.T, name, email, password string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.ID
}

// login returns a bearer token for the given credentials.
func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

// newRawRequest builds a request with a literal body, for malformed input tests.
func newRawRequest(method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	return req, httptest.NewRecorder()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}
