package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// PersonHandler serves /api/actors or /api/directors.  The JSON keys follow
// the role: "actors"/"actor" or "directors"/"director".
type PersonHandler struct {
	People   PersonStore
	plural   string
	singular string
	title    string
}

func NewActorHandler(people PersonStore) *PersonHandler {
	return &PersonHandler{People: people, plural: "actors", singular: "actor", title: "Actor"}
}

func NewDirectorHandler(people PersonStore) *PersonHandler {
	return &PersonHandler{People: people, plural: "directors", singular: "director", title: "Director"}
}

// Ranking variants.  Each sort mode exposes only the fields it ranks by.
type (
	ratingsRank struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		FilmCount *int64   `json:"film_count"`
		AvgRating *float64 `json:"avg_rating"`
	}
	nominationsRank struct {
		ID               string `json:"id"`
		Name             string `json:"name"`
		TotalNominations *int64 `json:"total_nominations"`
		TotalWins        *int64 `json:"total_wins"`
	}
	boxOfficeRank struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		TotalBoxOffice *int64 `json:"total_box_office"`
		FilmCount      *int64 `json:"film_count"`
	}
)

func rankVariant(mode string, rows []model.PersonStats) any {
	switch mode {
	case repository.RankByNominations:
		out := make([]nominationsRank, 0, len(rows))
		for _, r := range rows {
			out = append(out, nominationsRank{r.ID, r.Name, r.TotalNominations, r.TotalWins})
		}
		return out
	case repository.RankByBoxOffice:
		out := make([]boxOfficeRank, 0, len(rows))
		for _, r := range rows {
			out = append(out, boxOfficeRank{r.ID, r.Name, r.TotalBoxOffice, r.FilmCount})
		}
		return out
	default:
		out := make([]ratingsRank, 0, len(rows))
		for _, r := range rows {
			out = append(out, ratingsRank{r.ID, r.Name, r.FilmCount, r.AvgRating})
		}
		return out
	}
}

// Top ranks people.  Unlike the other listings an unknown sortBy is an
// error rather than a silent fallback.
func (h *PersonHandler) Top(c echo.Context) error {
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = repository.RankByRatings
	}
	if !repository.ValidRankMode(sortBy) {
		return jsonError(c, http.StatusBadRequest, "Invalid sortBy parameter")
	}
	q := repository.PersonRankQuery{
		SortBy: sortBy,
		Order:  parseOrder(c),
		Limit:  parseLimit(c.QueryParam("limit"), DefaultLimit),
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	rows, err := h.People.Top(ctx, q)
	if err != nil {
		return serverError(c, "Error fetching top "+h.plural, err)
	}
	if len(rows) == 0 {
		return jsonError(c, http.StatusNotFound, "No "+h.plural+" found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		h.plural: rankVariant(sortBy, rows),
		"limit":  q.Limit,
		"sortBy": q.SortBy,
		"order":  q.Order.String(),
	})
}

// ByDecade groups the most nominated people of each decade.
func (h *PersonHandler) ByDecade(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"), DecadeLimit)
	ctx, cancel := dbContext(c)
	defer cancel()

	rows, err := h.People.ByDecade(ctx, limit)
	if err != nil {
		return serverError(c, "Error fetching "+h.plural+" by decade", err)
	}
	if len(rows) == 0 {
		return jsonError(c, http.StatusNotFound, "No "+h.plural+" found")
	}

	decades := []echo.Map{}
	var current []model.DecadePerson
	for i, r := range rows {
		current = append(current, r)
		if i == len(rows)-1 || rows[i+1].Decade != r.Decade {
			decades = append(decades, echo.Map{"decade": r.Decade, h.plural: current})
			current = nil
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"decades": decades, "limit": limit})
}

// Search matches names.
func (h *PersonHandler) Search(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return jsonError(c, http.StatusBadRequest, "Name query is required")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	rows, err := h.People.Search(ctx, name, parseLimit(c.QueryParam("limit"), DefaultLimit))
	if err != nil {
		return serverError(c, "Error searching "+h.plural, err)
	}
	return c.JSON(http.StatusOK, echo.Map{h.plural: rows})
}

// Detail returns a person with their credited movies.
func (h *PersonHandler) Detail(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	row, err := h.People.Detail(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return jsonError(c, http.StatusNotFound, h.title+" not found")
	}
	if err != nil {
		return serverError(c, "Error fetching "+h.singular+" details", err)
	}
	person, err := buildPersonDetail(row)
	if err != nil {
		return serverError(c, "Error fetching "+h.singular+" details", err)
	}
	return c.JSON(http.StatusOK, echo.Map{h.singular: person})
}
