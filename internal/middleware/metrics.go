package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/metrics"
)

// Metrics records request count, latency and in-flight requests.  Routes are
// labelled by their registered pattern so /api/films/:id stays one series;
// unmatched requests share the "unmatched" label.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			metrics.APIActiveRequests.Inc()
			defer metrics.APIActiveRequests.Dec()

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler pick the status before it is recorded.
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			metrics.APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			metrics.APIRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
