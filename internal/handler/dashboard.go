package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// DashboardHandler serves /api/dashboard.
type DashboardHandler struct {
	Store DashboardStore
}

func NewDashboardHandler(store DashboardStore) *DashboardHandler {
	return &DashboardHandler{Store: store}
}

// Get runs the four independent dashboard queries concurrently, then loads
// the films of each top category one after another.
func (h *DashboardHandler) Get(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	var d model.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.RecentWinners, err = h.Store.RecentWinners(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.TopCategories, err = h.Store.TopCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Stats, err = h.Store.Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.HighestGrossing, err = h.Store.HighestGrossing(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return serverError(c, "Error fetching dashboard data", err)
	}

	for i := range d.TopCategories {
		films, err := h.Store.CategoryFilms(ctx, d.TopCategories[i].Category)
		if err != nil {
			return serverError(c, "Error fetching dashboard data", err)
		}
		d.TopCategories[i].Films = films
	}
	return c.JSON(http.StatusOK, d)
}
