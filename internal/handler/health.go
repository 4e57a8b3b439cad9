package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports process and database liveness for load balancers
// and monitoring.
type HealthHandler struct {
	DB Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Health answers 200 when the database answers a ping and 503 otherwise.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	status, db := http.StatusOK, "up"
	if err := h.DB.Ping(ctx); err != nil {
		status, db = http.StatusServiceUnavailable, "down"
	}
	return c.JSON(status, echo.Map{
		"status":    "ok",
		"database":  db,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
