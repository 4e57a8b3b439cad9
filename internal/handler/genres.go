package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// GenreHandler serves /api/genres.  Genre films are read through the film
// store.
type GenreHandler struct {
	Genres    GenreStore
	FilmStore FilmStore
}

func NewGenreHandler(genres GenreStore, films FilmStore) *GenreHandler {
	return &GenreHandler{Genres: genres, FilmStore: films}
}

// List returns every genre with its aggregates.
func (h *GenreHandler) List(c echo.Context) error {
	q := repository.GenreListQuery{
		SortBy: knownSort(c.QueryParam("sortBy"), "count", repository.GenreSortColumn),
		Order:  parseOrder(c),
		Limit:  parseLimit(c.QueryParam("limit"), DefaultLimit),
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	genres, err := h.Genres.List(ctx, q)
	if err != nil {
		return serverError(c, "Error fetching genres", err)
	}
	if len(genres) == 0 {
		return jsonError(c, http.StatusNotFound, "No genres found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"genres": genres,
		"limit":  q.Limit,
		"sortBy": q.SortBy,
		"order":  q.Order.String(),
	})
}

type decadeGenres struct {
	Decade int                 `json:"decade"`
	Genres []model.DecadeGenre `json:"genres"`
}

// ByDecade returns the most nominated genres of every decade.
func (h *GenreHandler) ByDecade(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"), DecadeLimit)
	ctx, cancel := dbContext(c)
	defer cancel()

	rows, err := h.Genres.ByDecade(ctx, limit)
	if err != nil {
		return serverError(c, "Error fetching genres by decade", err)
	}
	if len(rows) == 0 {
		return jsonError(c, http.StatusNotFound, "No genres found")
	}
	decades := []decadeGenres{}
	for _, r := range rows {
		if n := len(decades); n == 0 || decades[n-1].Decade != r.Decade {
			decades = append(decades, decadeGenres{Decade: r.Decade})
		}
		last := &decades[len(decades)-1]
		last.Genres = append(last.Genres, r)
	}
	return c.JSON(http.StatusOK, echo.Map{"decades": decades, "limit": limit})
}

// Films lists the films of one genre.
func (h *GenreHandler) Films(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	q := repository.FilmListQuery{
		Genre:    name,
		MinVotes: parseNonNegative(c.QueryParam("minVotes"), 0),
		SortBy:   knownSort(c.QueryParam("sortBy"), "rating", repository.FilmSortColumn),
		Order:    parseOrder(c),
		Limit:    parseLimit(c.QueryParam("limit"), DefaultLimit),
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	films, err := h.FilmStore.ByGenre(ctx, q)
	if err != nil {
		return serverError(c, "Error fetching films for genre", err)
	}
	if len(films) == 0 {
		return jsonError(c, http.StatusNotFound, "No films found for this genre")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"genre":  name,
		"films":  films,
		"limit":  q.Limit,
		"sortBy": q.SortBy,
		"order":  q.Order.String(),
	})
}
