package middleware

// identity.go holds the caller lookup shared by the rate limiter and the
// request log.  It reads the user id JWTAuth stored in the Echo context;
// requests that passed no auth middleware are "anon".

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

func currentUserID(c echo.Context) string {
	if id, ok := c.Get(ContextUserID).(int64); ok && id != 0 {
		return strconv.FormatInt(id, 10)
	}
	return "anon"
}
