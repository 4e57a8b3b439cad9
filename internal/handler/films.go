package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// Film listing defaults.
const (
	DefaultMinVotes  = 10000
	DefaultMinBudget = 1000000
)

// FilmHandler serves /api/films.
type FilmHandler struct {
	Films FilmStore
}

func NewFilmHandler(films FilmStore) *FilmHandler {
	return &FilmHandler{Films: films}
}

// TopRated lists well-voted films, optionally restricted to one genre.
func (h *FilmHandler) TopRated(c echo.Context) error {
	q := repository.FilmListQuery{
		Genre:    strings.TrimSpace(c.QueryParam("genre")),
		MinVotes: parseNonNegative(c.QueryParam("minVotes"), DefaultMinVotes),
		SortBy:   pickSort(c.QueryParam("sortBy"), "rating", "rating", "votes", "year"),
		Order:    parseOrder(c),
		Limit:    parseLimit(c.QueryParam("limit"), DefaultLimit),
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	films, err := h.Films.TopRated(ctx, q)
	if err != nil {
		return serverError(c, "Error fetching top rated films", err)
	}
	if len(films) == 0 {
		return jsonError(c, http.StatusNotFound, "No films found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"films":  films,
		"limit":  q.Limit,
		"sortBy": q.SortBy,
		"order":  q.Order.String(),
	})
}

// HighestROI ranks films by return on investment.
func (h *FilmHandler) HighestROI(c echo.Context) error {
	q := repository.ROIQuery{
		YearStart: parseNonNegative(c.QueryParam("yearStart"), 0),
		YearEnd:   parseNonNegative(c.QueryParam("yearEnd"), 0),
		MinBudget: int64(parseNonNegative(c.QueryParam("minBudget"), DefaultMinBudget)),
		Limit:     parseLimit(c.QueryParam("limit"), DefaultLimit),
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	films, err := h.Films.HighestROI(ctx, q)
	if err != nil {
		return serverError(c, "Error fetching highest ROI films", err)
	}
	if len(films) == 0 {
		return jsonError(c, http.StatusNotFound, "No films found for the given criteria")
	}
	for i := range films {
		b, r := films[i].Budget, films[i].Revenue
		if roi := model.ComputeROI(&b, &r); roi != nil {
			films[i].ReturnOnInvestment = *roi
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"films": films})
}

// ByActor lists the films of the actor whose name matches :name.  An
// unknown actor is a normal 200 answer with actorFound=false.
func (h *FilmHandler) ByActor(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	sortBy := pickSort(c.QueryParam("sortBy"), "year", "year", "title")
	order := parseOrder(c)
	limit := parseLimitOrUnlimited(c.QueryParam("limit"), DefaultLimit)

	ctx, cancel := dbContext(c)
	defer cancel()

	actor, err := h.Films.FindActorByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusOK, echo.Map{
			"actor":      name,
			"actorFound": false,
			"message":    "No actor found with the name " + strconv.Quote(name),
			"films":      []model.FilmSummary{},
		})
	}
	if err != nil {
		return serverError(c, "Error fetching films by actor", err)
	}

	films, err := h.Films.FilmsByActor(ctx, actor.ID, sortBy, order, limit)
	if err != nil {
		return serverError(c, "Error fetching films by actor", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"actor":      actor.Name,
		"actorFound": true,
		"sortBy":     sortBy,
		"order":      order.String(),
		"count":      len(films),
		"films":      films,
	})
}

// Search matches film titles.
func (h *FilmHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("q"))
	if term == "" {
		return jsonError(c, http.StatusBadRequest, "Search query is required")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	films, err := h.Films.Search(ctx, term, parseLimit(c.QueryParam("limit"), DefaultLimit))
	if err != nil {
		return serverError(c, "Error searching films", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"films": films})
}

// Detail returns one film with directors, cast, awards and ROI.
func (h *FilmHandler) Detail(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	row, err := h.Films.Detail(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return jsonError(c, http.StatusNotFound, "Film not found")
	}
	if err != nil {
		return serverError(c, "Error fetching film details", err)
	}
	film, err := buildFilmDetail(row)
	if err != nil {
		return serverError(c, "Error fetching film details", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"film": film})
}
