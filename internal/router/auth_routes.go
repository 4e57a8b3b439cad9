package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/handler"
	"github.com/iliyamo/oscar-explorer/internal/middleware"
)

// RegisterAuth mounts /auth.  The whole group sits behind the token bucket
// so credential guessing is throttled per client.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, opts Options) {
	g := e.Group("/auth", middleware.NewTokenBucket(opts.RateLimit, opts.Redis))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Tokens are stateless; logout only acknowledges so clients can drop theirs.
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(opts.JWTSecret))
}
