package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// AwardHandler serves /api/awards.
type AwardHandler struct {
	Awards AwardStore
}

func NewAwardHandler(awards AwardStore) *AwardHandler {
	return &AwardHandler{Awards: awards}
}

// List returns nominations filtered by year, category and winner flag.
func (h *AwardHandler) List(c echo.Context) error {
	winnersOnly, _ := strconv.ParseBool(c.QueryParam("winnersOnly"))
	q := repository.AwardQuery{
		Year:        parseNonNegative(c.QueryParam("year"), 0),
		Category:    strings.TrimSpace(c.QueryParam("category")),
		WinnersOnly: winnersOnly,
		SortBy:      pickSort(c.QueryParam("sortBy"), "year", "year", "category"),
		Order:       parseOrder(c),
		Limit:       parseLimit(c.QueryParam("limit"), DefaultLimit),
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	awards, err := h.Awards.List(ctx, q)
	if err != nil {
		return serverError(c, "Error fetching awards", err)
	}
	if len(awards) == 0 {
		return jsonError(c, http.StatusNotFound, "No awards found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"awards": awards,
		"limit":  q.Limit,
		"sortBy": q.SortBy,
		"order":  q.Order.String(),
	})
}

// Categories summarises every award category.
func (h *AwardHandler) Categories(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	cats, err := h.Awards.Categories(ctx)
	if err != nil {
		return serverError(c, "Error fetching award categories", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// ByFilm lists the nominations of one film.
func (h *AwardHandler) ByFilm(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	awards, err := h.Awards.ByFilm(ctx, c.Param("id"))
	if err != nil {
		return serverError(c, "Error fetching awards for film", err)
	}
	if len(awards) == 0 {
		return jsonError(c, http.StatusNotFound, "No awards found for this film")
	}
	return c.JSON(http.StatusOK, echo.Map{"awards": awards})
}
