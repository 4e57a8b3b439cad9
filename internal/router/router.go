package router // package router wires handlers and middleware into an Echo instance

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/oscar-explorer/internal/config"
	"github.com/iliyamo/oscar-explorer/internal/handler"
	"github.com/iliyamo/oscar-explorer/internal/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Films     *handler.FilmHandler
	Actors    *handler.PersonHandler
	Directors *handler.PersonHandler
	Genres    *handler.GenreHandler
	Awards    *handler.AwardHandler
	Dashboard *handler.DashboardHandler
	Users     *handler.UserHandler
	Health    *handler.HealthHandler
}

// Options carries the cross-cutting settings.  A nil Redis client turns the
// response cache and the rate limiter into pass-throughs.
type Options struct {
	JWTSecret   string
	CORSOrigins []string
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
	Redis       *redis.Client
}

// New builds the Echo instance with the global middleware chain and every
// route group registered.
func New(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = HTTPErrorHandler

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(
		middleware.RequestID(),
		middleware.RequestLog(),
		middleware.Metrics(),
		echomw.Recover(),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: origins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		}),
	)

	RegisterRoutes(e, h.Health)
	RegisterAuth(e, h.Auth, opts)
	RegisterBrowse(e, h, middleware.NewRedisCache(opts.Cache, opts.Redis))
	RegisterUsers(e, h.Users, opts.JWTSecret)
	return e
}

// RegisterRoutes registers the operational endpoints.
func RegisterRoutes(e *echo.Echo, health *handler.HealthHandler) {
	e.GET("/api/health", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
