package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/oscar-explorer/internal/utils" // token verification
)

// Context keys set by JWTAuth.
const (
	ContextUserID   = "userId"
	ContextUsername = "username"
	ContextClaims   = "claims"
)

// JWTAuth returns an Echo middleware that validates a Bearer token and
// injects its claims into the request context.  Handlers read the caller
// via c.Get("userId") (int64) and c.Get("username") (string).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if !strings.HasPrefix(auth, "Bearer ") || raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access denied. No token provided."})
			}

			// Signature, algorithm and expiry failures all read the same.
			claims, err := utils.ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUsername, claims.Username)
			c.Set(ContextClaims, claims)
			return next(c)
		}
	}
}
