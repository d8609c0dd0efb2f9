package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/watchnow/watchnow/internal/config"
	"github.com/watchnow/watchnow/internal/handler"
	"github.com/watchnow/watchnow/internal/model"
	"github.com/watchnow/watchnow/internal/repository"
	"github.com/watchnow/watchnow/internal/utils"
)

// Minimal in-memory stores so the registered routes can be exercised
// end to end: request -> middleware chain -> handler -> store.

type memMovies struct{ items map[int64]model.Movie }

func (s *memMovies) ListAll(ctx context.Context) ([]model.Movie, error) {
	out := []model.Movie{}
	for _, m := range s.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (s *memMovies) Create(ctx context.Context, m *model.Movie) error {
	s.items[m.ID] = *m
	return nil
}
func (s *memMovies) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.Movie, error) {
	m, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v, ok := fields["title"].(string); ok {
		m.Title = v
	}
	s.items[id] = m
	return &m, nil
}
func (s *memMovies) DeleteByID(ctx context.Context, id int64) (bool, error) {
	_, ok := s.items[id]
	delete(s.items, id)
	return ok, nil
}

type memSeries struct{ items map[int64]model.Series }

func (s *memSeries) ListAll(ctx context.Context) ([]model.Series, error) { return nil, nil }
func (s *memSeries) Create(ctx context.Context, sr *model.Series) error {
	s.items[sr.ID] = *sr
	return nil
}
func (s *memSeries) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.Series, error) {
	return nil, repository.ErrNotFound
}
func (s *memSeries) DeleteByID(ctx context.Context, id int64) (bool, error) { return false, nil }

type memUsers struct{ items map[int64]model.User }

func (s *memUsers) ListAll(ctx context.Context) ([]model.User, error) { return nil, nil }
func (s *memUsers) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
func (s *memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.items {
		if u.Email == repository.NormalizeEmail(email) {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (s *memUsers) Create(ctx context.Context, u *model.User) error {
	s.items[u.ID] = *u
	return nil
}
func (s *memUsers) NextID(ctx context.Context) (int64, error) { return int64(len(s.items)) + 1, nil }
func (s *memUsers) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (s *memUsers) UpdatePasswordByEmail(ctx context.Context, email, hash string) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (s *memUsers) DeleteByID(ctx context.Context, id int64) (bool, error) { return false, nil }

func newTestServer(t *testing.T) (*echo.Echo, *memMovies, *memUsers, config.Config) {
	t.Helper()
	cfg := config.Config{JWTSecret: "test-secret", SessionTTLMin: 5, BcryptCost: bcrypt.MinCost}
	movies := &memMovies{items: map[int64]model.Movie{}}
	series := &memSeries{items: map[int64]model.Series{}}
	users := &memUsers{items: map[int64]model.User{
		1: {ID: 1, Name: "Admin", Email: "admin@test.com", Role: model.RoleAdmin},
		2: {ID: 2, Name: "Regular", Email: "user@test.com", Role: model.RoleUser},
	}}

	e := echo.New()
	h := Handlers{
		Movies: handler.NewMovieHandler(movies, nil),
		Series: handler.NewSeriesHandler(series, nil),
		Users:  handler.NewUserHandler(cfg, users, nil),
		Auth:   handler.NewAuthHandler(cfg, users),
	}
	RegisterRoutes(e, cfg, h, users, nil) // nil redis: limiter is a pass-through
	return e, movies, users, cfg
}

func do(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func tokenFor(t *testing.T, cfg config.Config, userID int64, role string) string {
	t.Helper()
	tok, err := utils.NewSessionToken(cfg.JWTSecret, userID, role, cfg.SessionTTLMin)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	return tok.Token
}

func TestRoutes_PublicReadsNeedNoAuth(t *testing.T) {
	e, _, _, _ := newTestServer(t)
	for _, target := range []string{"/movies", "/series", "/usuarios", "/healthz"} {
		rec := do(e, http.MethodGet, target, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", target, rec.Code)
		}
	}
}

func TestRoutes_WriteWithoutTokenIsUnauthorized(t *testing.T) {
	e, movies, _, _ := newTestServer(t)
	rec := do(e, http.MethodPost, "/movies", "", `{"id":1,"title":"X"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(movies.items) != 0 {
		t.Fatal("record was created despite the rejected request")
	}
}

func TestRoutes_WriteWithNonAdminTokenIsForbidden(t *testing.T) {
	e, movies, _, cfg := newTestServer(t)
	rec := do(e, http.MethodPost, "/movies", tokenFor(t, cfg, 2, model.RoleUser), `{"id":1,"title":"X"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if len(movies.items) != 0 {
		t.Fatal("record was created despite the rejected request")
	}
}

func TestRoutes_AdminTokenCanWrite(t *testing.T) {
	e, movies, _, cfg := newTestServer(t)
	admin := tokenFor(t, cfg, 1, model.RoleAdmin)

	rec := do(e, http.MethodPost, "/movies", admin, `{"id":1,"title":"Inception"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := movies.items[1]; !ok {
		t.Fatal("movie not stored")
	}

	rec = do(e, http.MethodPut, "/movies/1", admin, `{"title":"Inception (2010)"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rec.Code)
	}
	if movies.items[1].Title != "Inception (2010)" {
		t.Fatalf("update not applied: %+v", movies.items[1])
	}

	rec = do(e, http.MethodDelete, "/movies/1", admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if len(movies.items) != 0 {
		t.Fatal("movie not deleted")
	}
}

func TestRoutes_RegistrationIsPublicButUserUpdateIsGated(t *testing.T) {
	e, _, users, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/usuarios", "", `{"name":"C","email":"c@x.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("registration: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(users.items) != 3 {
		t.Fatalf("expected 3 users after registration, got %d", len(users.items))
	}

	rec = do(e, http.MethodPut, "/usuarios/3", "", `{"name":"Hacked"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("user update without token: expected 401, got %d", rec.Code)
	}
}

func TestRoutes_LoginIssuesUsableToken(t *testing.T) {
	e, movies, users, _ := newTestServer(t)

	// Give the admin a real password hash and log in through the API.
	hash, err := utils.HashPassword("123456", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u := users.items[1]
	u.Password = hash
	users.items[1] = u

	rec := do(e, http.MethodPost, "/login", "", `{"email":"admin@test.com","password":"123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	start := strings.Index(body, `"token":"`)
	if start < 0 {
		t.Fatalf("no token in login response: %s", body)
	}
	start += len(`"token":"`)
	token := body[start : start+strings.Index(body[start:], `"`)]

	rec = do(e, http.MethodPost, "/movies", token, `{"id":9,"title":"Tenet"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("write with login token: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := movies.items[9]; !ok {
		t.Fatal("movie not stored after token write")
	}
}
