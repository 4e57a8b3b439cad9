package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/logging"
	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// Limits applied when the client sends no usable limit.
const (
	DefaultLimit   = 10
	DecadeLimit    = 3
	UnlimitedLimit = 10000
)

// dbTimeout bounds every database round trip a handler makes.
const dbTimeout = 5 * time.Second

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseLimit turns a positive integer string into a limit; anything else
// yields def.
func parseLimit(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseLimitOrUnlimited also accepts the literal "unlimited".
func parseLimitOrUnlimited(raw string, def int) int {
	if strings.EqualFold(strings.TrimSpace(raw), "unlimited") {
		return UnlimitedLimit
	}
	return parseLimit(raw, def)
}

// pickSort returns raw when it is one of allowed, def otherwise.
func pickSort(raw, def string, allowed ...string) string {
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	return def
}

// knownSort returns raw when the repository recognises it, else def.
func knownSort(raw, def string, known func(string) bool) string {
	if known(raw) {
		return raw
	}
	return def
}

func parseNonNegative(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func parseOrder(c echo.Context) repository.Order {
	return repository.ParseOrder(c.QueryParam("order"), repository.Desc)
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

// serverError logs err with the request id and answers 500 with msg.
func serverError(c echo.Context, msg string, err error) error {
	logging.Ctx(c.Request().Context()).Error().Err(err).
		Str("path", c.Request().URL.Path).
		Msg(msg)
	return jsonError(c, http.StatusInternalServerError, msg)
}

// currentUser returns the authenticated user set by JWTAuth.
func currentUser(c echo.Context) (int64, string) {
	id, _ := c.Get("userId").(int64)
	name, _ := c.Get("username").(string)
	return id, name
}
