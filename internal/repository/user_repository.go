package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// UserRepo persists accounts in the users table.
type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, username, email, password, name, created_at, updated_at, last_login"

// ExistsByUsernameOrEmail reports whether either identifier is taken.
func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)",
		strings.TrimSpace(username), normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// Create inserts u (PasswordHash already set) and fills in the generated
// columns.  A unique violation maps to ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = normalizeEmail(u.Email)
	row := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (username, email, password, name)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.PasswordHash, u.Name)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE "+where+" LIMIT 1", arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "username = $1", strings.TrimSpace(username))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "email = $1", normalizeEmail(email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// TouchLastLogin stamps a successful login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET last_login = NOW() WHERE id = $1", id); err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// UpdateProfile changes name and email and returns the updated row.  It
// returns ErrNotFound when the user is gone and ErrUserExists when the email
// belongs to someone else.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, name, email string) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u,
		`UPDATE users SET name = $1, email = $2, updated_at = NOW()
WHERE id = $3
RETURNING `+userColumns,
		strings.TrimSpace(name), normalizeEmail(email), id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case isUniqueViolation(err):
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
