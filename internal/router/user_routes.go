package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/handler"
	"github.com/iliyamo/oscar-explorer/internal/middleware"
)

// RegisterUsers mounts the per-user endpoints.  Every route requires a
// valid access token and is never cached.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/api/users", middleware.JWTAuth(jwtSecret))
	g.GET("/profile", u.Profile)
	g.PUT("/profile", u.UpdateProfile)
	g.GET("/favorites", u.ListFavorites)
	g.POST("/favorites/:type", u.AddFavorite)
	g.GET("/favorites/check/:type/:itemId", u.CheckFavorite)
	g.DELETE("/favorites/:id", u.DeleteFavorite)
}
