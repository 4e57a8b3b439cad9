package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/oscar-explorer/internal/config"
	"github.com/iliyamo/oscar-explorer/internal/logging"
	"github.com/iliyamo/oscar-explorer/internal/utils"
)

const testSecret = "middleware-test-secret"

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	s, _ := body["error"].(string)
	return s
}

func protectedEcho() *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"userId":   c.Get(ContextUserID),
			"username": c.Get(ContextUsername),
		})
	}, JWTAuth(testSecret))
	return e
}

func TestJWTAuth(t *testing.T) {
	valid, _, err := utils.IssueToken(testSecret, 7, "alice", time.Hour)
	require.NoError(t, err)
	expired, _, err := utils.IssueToken(testSecret, 7, "alice", -time.Minute)
	require.NoError(t, err)
	foreign, _, err := utils.IssueToken("other-secret", 7, "alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "Access denied. No token provided."},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Access denied. No token provided."},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "Access denied. No token provided."},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Invalid token"},
		{"other secret", "Bearer " + foreign, http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer " + valid, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(protectedEcho(), req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, errorOf(t, rec))
				return
			}
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.EqualValues(t, 7, body["userId"])
			assert.Equal(t, "alice", body["username"])
		})
	}
}

func TestCurrentUserID(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "anon", currentUserID(c))
	c.Set(ContextUserID, int64(42))
	assert.Equal(t, "42", currentUserID(c))
}

func TestPassThroughWithoutRedis(t *testing.T) {
	e := echo.New()
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "ok")
	}
	e.GET("/c", h,
		NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil),
		NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil),
	)

	for i := 0; i < 3; i++ {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/c", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, 3, calls)
}

func cacheContext(target string) echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
}

func TestCacheKeyFrom(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "oscar:cache", KeyStrategy: "path_query"}

	a := cacheKeyFrom(cfg, cacheContext("/api/films/tt1?x=1&y=2"))
	b := cacheKeyFrom(cfg, cacheContext("/api/films/tt1?y=2&x=1"))
	other := cacheKeyFrom(cfg, cacheContext("/api/films/tt2?x=1&y=2"))

	assert.Equal(t, a, b, "query order must not matter")
	assert.NotEqual(t, a, other, "distinct ids must not share an entry")
	assert.Contains(t, a, "oscar:cache:")

	pathOnly := config.CacheConfig{Prefix: "p", KeyStrategy: "path"}
	assert.Equal(t,
		cacheKeyFrom(pathOnly, cacheContext("/api/genres?limit=1")),
		cacheKeyFrom(pathOnly, cacheContext("/api/genres?limit=2")))
}

func TestRestoreHeadersKeepsLiveRequestID(t *testing.T) {
	live := http.Header{}
	live.Set(HeaderRequestID, "fresh-id")
	live.Set("X-Cache", "HIT")
	cached := http.Header{
		HeaderRequestID:          {"stale-id"},
		"X-Cache":                {"MISS"},
		echo.HeaderContentLength: {"42"},
		echo.HeaderContentType:   {"application/json"},
	}

	restoreHeaders(live, cached)
	assert.Equal(t, []string{"fresh-id"}, live.Values(HeaderRequestID))
	assert.Equal(t, []string{"HIT"}, live.Values("X-Cache"))
	assert.Empty(t, live.Get(echo.HeaderContentLength))
	assert.Equal(t, "application/json", live.Get(echo.HeaderContentType))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("defg"))

	assert.Equal(t, "abcdefg", rec.Body.String())
	assert.Equal(t, "abcd", cw.buf.String())
	assert.EqualValues(t, 7, cw.size)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/auth/login")

	cfg := config.RateLimitConfig{Prefix: "oscar:rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "oscar:rl:ip:10.0.0.1:route:POST /auth/login", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "oscar:rl:user:anon", buildRateKey(cfg, c))
}

func TestAsInt64(t *testing.T) {
	assert.EqualValues(t, 3, asInt64(int64(3)))
	assert.EqualValues(t, 4, asInt64(4))
	assert.EqualValues(t, 5, asInt64("5"))
	assert.EqualValues(t, 0, asInt64(nil))
}

func TestRequestIDAndLog(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	e := echo.New()
	e.Use(RequestID(), RequestLog(), Metrics())
	var seen string
	e.GET("/api/films/:id", func(c echo.Context) error {
		seen = logging.RequestIDFromContext(c.Request().Context())
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Film not found"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/films/tt0", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := serve(e, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, "req-123", seen)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, "/api/films/tt0", line["path"])
	assert.EqualValues(t, 404, line["status"])
	assert.Equal(t, "anon", line["user"])
}

func TestRequestIDGenerated(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(HeaderRequestID), 36)
}

func TestMetricsRecordsHandlerErrors(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
