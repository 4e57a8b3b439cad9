// Package repository holds the parameterized SQL behind every API route.
// Repositories share one *sqlx.DB and return model types; the sentinel
// errors below let handlers pick the HTTP status without inspecting driver
// errors.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup or a scoped delete matched no row.
var ErrNotFound = errors.New("not found")

// ErrUserExists is returned when a username or email is already taken.
var ErrUserExists = errors.New("user already exists")

// ErrAlreadyFavorite is returned when the (user, type, item) favorite
// already exists.
var ErrAlreadyFavorite = errors.New("already in favorites")

// isUniqueViolation reports whether err is PostgreSQL error 23505.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
