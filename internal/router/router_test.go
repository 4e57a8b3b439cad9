package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/oscar-explorer/internal/handler"
	"github.com/iliyamo/oscar-explorer/internal/utils"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

const secret = "router-test-secret"

func newTestEcho(dbErr error) *echo.Echo {
	h := Handlers{
		Auth:      handler.NewAuthHandler(secret, time.Hour, 4, nil, nil),
		Films:     handler.NewFilmHandler(nil),
		Actors:    handler.NewActorHandler(nil),
		Directors: handler.NewDirectorHandler(nil),
		Genres:    handler.NewGenreHandler(nil, nil),
		Awards:    handler.NewAwardHandler(nil),
		Dashboard: handler.NewDashboardHandler(nil),
		Users:     handler.NewUserHandler(nil, nil, nil),
		Health:    handler.NewHealthHandler(pinger{dbErr}),
	}
	return New(h, Options{JWTSecret: secret})
}

func do(e *echo.Echo, method, target, token string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealthRoute(t *testing.T) {
	rec, body := do(newTestEcho(nil), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up", body["database"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, body = do(newTestEcho(errors.New("down")), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "down", body["database"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestEcho(nil)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/auth/me"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPut, "/api/users/profile"},
		{http.MethodGet, "/api/users/favorites"},
		{http.MethodPost, "/api/users/favorites/films"},
		{http.MethodGet, "/api/users/favorites/check/films/tt1"},
		{http.MethodDelete, "/api/users/favorites/1"},
	} {
		rec, body := do(e, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
		assert.Equal(t, "Access denied. No token provided.", body["error"], tc.path)
	}
}

func TestMeWithToken(t *testing.T) {
	token, _, err := utils.IssueToken(secret, 5, "bob", time.Hour)
	require.NoError(t, err)

	rec, body := do(newTestEcho(nil), http.MethodGet, "/auth/me", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, body["userId"])
	assert.Equal(t, "bob", body["username"])
}

func TestLogoutIsPublic(t *testing.T) {
	rec, body := do(newTestEcho(nil), http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", body["message"])
}

func TestUnknownRoute(t *testing.T) {
	rec, body := do(newTestEcho(nil), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", body["error"])
}

func TestMetricsRoute(t *testing.T) {
	e := newTestEcho(nil)
	do(e, http.MethodGet, "/api/health", "")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "oscar_api_requests_total")
}

func TestHTTPErrorHandler(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	HTTPErrorHandler(errors.New("db exploded"), e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Something went wrong!"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	HTTPErrorHandler(echo.NewHTTPError(http.StatusBadRequest, "bad input"), e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad input"}`, rec.Body.String())
}

func TestRecoverUsesErrorHandler(t *testing.T) {
	e := newTestEcho(nil)
	e.GET("/panic", func(echo.Context) error { panic("boom") })

	rec, body := do(e, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong!", body["error"])
}

func TestDeserializeSyntaxError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":`))
	c := e.NewContext(req, httptest.NewRecorder())

	var v map[string]any
	err := JSONSerializer{}.Deserialize(c, &v)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
