package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/logging"
	"github.com/iliyamo/oscar-explorer/internal/queue"
)

// publish emits ev if a publisher is configured.  Failures are logged and
// never change the response.
func publish(c echo.Context, p ActivityPublisher, ev queue.ActivityEvent) {
	if p == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(c.Request().Context(), ev); err != nil {
		logging.Ctx(c.Request().Context()).Warn().Err(err).
			Str("event", ev.Type).
			Msg("activity publish failed")
	}
}
