package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/logging"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

// RequestID reuses an upstream X-Request-ID or generates one, and stores it
// in the request context so logging.Ctx tags every line with it.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(HeaderRequestID)
			if id == "" {
				id = logging.GenerateRequestID()
			}
			c.Response().Header().Set(HeaderRequestID, id)
			c.SetRequest(req.WithContext(logging.ContextWithRequestID(req.Context(), id)))
			return next(c)
		}
	}
}

// RequestLog writes one line per request once the response is committed.
func RequestLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			status := res.Status
			ev := logging.Ctx(c.Request().Context()).Info()
			switch {
			case status >= 500:
				ev = logging.Ctx(c.Request().Context()).Error().Err(err)
			case status >= 400:
				ev = logging.Ctx(c.Request().Context()).Warn()
			}
			ev.Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Int64("bytes", res.Size).
				Dur("latency", time.Since(start)).
				Str("ip", c.RealIP()).
				Str("user", currentUserID(c)).
				Msg("request")
			return nil
		}
	}
}
