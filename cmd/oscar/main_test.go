package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer serves canned bodies keyed by "METHOD path".
func fakeServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		body, ok := routes[r.Method+" "+r.URL.Path]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"Not Found"}`)
			return
		}
		if r.URL.Path == "/auth/me" && r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Invalid token"}`)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", srv.URL, "--session-dir", dir, "--log-level", "disabled"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFilmsTop(t *testing.T) {
	srv := fakeServer(t, map[string]string{
		"GET /api/films/top-rated": `{"films":[{"id":"tt0111161","title":"The Shawshank Redemption","year":1994,"genres":["Drama"],"rating":9.3,"votes":2900000}],"limit":10,"sortBy":"rating","order":"desc"}`,
	})
	out, err := run(t, srv, t.TempDir(), "films", "top")
	require.NoError(t, err)
	assert.Contains(t, out, "The Shawshank Redemption")
	assert.Contains(t, out, "9.3")
	assert.Contains(t, out, "Drama")
}

func TestLoginWhoamiLogout(t *testing.T) {
	srv := fakeServer(t, map[string]string{
		"POST /auth/login":  `{"token":"tok","userId":4,"username":"ann","name":"Ann"}`,
		"GET /auth/me":      `{"userId":4,"username":"ann"}`,
		"POST /auth/logout": `{"message":"Logged out successfully"}`,
	})
	dir := t.TempDir()

	out, err := run(t, srv, dir, "login", "ann", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ann")

	out, err = run(t, srv, dir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ann (id 4)")

	_, err = run(t, srv, dir, "logout")
	require.NoError(t, err)

	out, err = run(t, srv, dir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestFavoritesRequireLogin(t *testing.T) {
	srv := fakeServer(t, nil)
	_, err := run(t, srv, t.TempDir(), "favorites", "list")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestDashboardDemoFallback(t *testing.T) {
	srv := fakeServer(t, nil) // every route 404s
	out, err := run(t, srv, t.TempDir(), "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing demo data")
	assert.Contains(t, out, "Oppenheimer")
	assert.Contains(t, out, "$2,923,706,026")
}

func TestByActorNotFound(t *testing.T) {
	srv := fakeServer(t, map[string]string{
		"GET /api/films/by-actor/Nobody Here": `{"actor":"Nobody Here","actorFound":false,"message":"No actor found with the name \"Nobody Here\"","films":[]}`,
	})
	out, err := run(t, srv, t.TempDir(), "films", "by-actor", "Nobody", "Here")
	require.NoError(t, err)
	assert.Contains(t, out, `No actor found with the name "Nobody Here"`)
}

func TestAPIErrorSurfaces(t *testing.T) {
	srv := fakeServer(t, nil)
	_, err := run(t, srv, t.TempDir(), "films", "show", "tt0")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"))
}

func TestMoneyAndCell(t *testing.T) {
	assert.Equal(t, "$1,000,000", money(1000000))
	assert.Equal(t, "$999", money(999))
	assert.Equal(t, "-", cell((*int)(nil)))
	assert.Equal(t, "yes", cell(true))
}
