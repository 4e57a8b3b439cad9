package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/queue"
	"github.com/iliyamo/oscar-explorer/internal/repository"
	"github.com/iliyamo/oscar-explorer/internal/utils"
	"github.com/iliyamo/oscar-explorer/internal/validation"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Secret     string
	Expiry     time.Duration
	BcryptCost int
	Users      UserStore
	Activity   ActivityPublisher
}

func NewAuthHandler(secret string, expiry time.Duration, cost int, users UserStore, activity ActivityPublisher) *AuthHandler {
	return &AuthHandler{Secret: secret, Expiry: expiry, BcryptCost: cost, Users: users, Activity: activity}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"notblank"`
}

// loginReq.Username holds either a username or an email address.
type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// bindValid binds and validates req.  It writes the 400 response itself and
// reports whether the handler should continue.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation failed", "errors": fields})
		}
		return false, jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	return true, nil
}

func (h *AuthHandler) issue(c echo.Context, status int, u *model.User) error {
	token, _, err := utils.IssueToken(h.Secret, u.ID, u.Username, h.Expiry)
	if err != nil {
		return serverError(c, "Error issuing token", err)
	}
	return c.JSON(status, model.AuthResult{Token: token, UserID: u.ID, Username: u.Username, Name: u.Name})
}

// Register creates an account and signs the user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	req.Username = strings.TrimSpace(req.Username)

	ctx, cancel := dbContext(c)
	defer cancel()

	exists, err := h.Users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return serverError(c, "Error registering user", err)
	}
	if exists {
		return jsonError(c, http.StatusBadRequest, "User already exists")
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return serverError(c, "Error registering user", err)
	}
	u := &model.User{Username: req.Username, Email: req.Email, PasswordHash: hash, Name: strings.TrimSpace(req.Name)}
	if err := h.Users.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrUserExists) {
			return jsonError(c, http.StatusBadRequest, "User already exists")
		}
		return serverError(c, "Error registering user", err)
	}

	publish(c, h.Activity, queue.ActivityEvent{Type: queue.EventUserRegistered, UserID: u.ID, Username: u.Username})
	return h.issue(c, http.StatusCreated, u)
}

// Login accepts a username or, when the value contains '@', an email.
// Every failure reads "Invalid credentials".
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	var (
		u   *model.User
		err error
	)
	if strings.Contains(req.Username, "@") {
		u, err = h.Users.GetByEmail(ctx, req.Username)
	} else {
		u, err = h.Users.GetByUsername(ctx, req.Username)
	}
	if errors.Is(err, repository.ErrNotFound) {
		utils.BurnPasswordCheck(req.Password)
		return jsonError(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return serverError(c, "Error logging in", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return jsonError(c, http.StatusUnauthorized, "Invalid credentials")
	}

	if err := h.Users.TouchLastLogin(ctx, u.ID); err != nil {
		return serverError(c, "Error logging in", err)
	}
	return h.issue(c, http.StatusOK, u)
}

// Logout is stateless: the client discards its token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// Me echoes the identity carried by the token.
func (h *AuthHandler) Me(c echo.Context) error {
	id, username := currentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"userId": id, "username": username})
}
