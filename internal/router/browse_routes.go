package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/handler"
)

// RegisterBrowse mounts the read-only dataset endpoints under /api.  Static
// segments such as /top-rated are matched before the /:id parameters.
func RegisterBrowse(e *echo.Echo, h Handlers, cache echo.MiddlewareFunc) {
	api := e.Group("/api", cache)

	films := api.Group("/films")
	films.GET("/top-rated", h.Films.TopRated)
	films.GET("/highest-roi", h.Films.HighestROI)
	films.GET("/by-actor/:name", h.Films.ByActor)
	films.GET("/search", h.Films.Search)
	films.GET("/:id", h.Films.Detail)

	registerPeople(api.Group("/actors"), h.Actors)
	registerPeople(api.Group("/directors"), h.Directors)

	genres := api.Group("/genres")
	genres.GET("", h.Genres.List)
	genres.GET("/by-decade", h.Genres.ByDecade)
	genres.GET("/:name/films", h.Genres.Films)

	awards := api.Group("/awards")
	awards.GET("", h.Awards.List)
	awards.GET("/categories", h.Awards.Categories)
	awards.GET("/film/:id", h.Awards.ByFilm)

	api.GET("/dashboard", h.Dashboard.Get)
}

// Actors and directors share one handler type; only the role differs.
func registerPeople(g *echo.Group, p *handler.PersonHandler) {
	g.GET("/top", p.Top)
	g.GET("/by-decade", p.ByDecade)
	g.GET("/search", p.Search)
	g.GET("/:id", p.Detail)
}
