package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/queue"
	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// UserHandler serves the authenticated /api/users routes.
type UserHandler struct {
	Users     UserStore
	Favorites FavoriteStore
	Activity  ActivityPublisher
}

func NewUserHandler(users UserStore, favorites FavoriteStore, activity ActivityPublisher) *UserHandler {
	return &UserHandler{Users: users, Favorites: favorites, Activity: activity}
}

// profileUser is the public part of a user row.
type profileUser struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

func toProfile(u *model.User) profileUser {
	return profileUser{ID: u.ID, Username: u.Username, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt, LastLogin: u.LastLogin}
}

type updateProfileReq struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
}

type addFavoriteReq struct {
	ItemID string `json:"itemId" validate:"notblank"`
}

// Profile returns the current user and their favorite counts.
func (h *UserHandler) Profile(c echo.Context) error {
	uid, _ := currentUser(c)
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return jsonError(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return serverError(c, "Error fetching user profile", err)
	}
	counts, err := h.Favorites.Counts(ctx, uid)
	if err != nil {
		return serverError(c, "Error fetching user profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toProfile(u), "favoritesCount": counts})
}

// UpdateProfile changes the name and email of the current user.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	uid, _ := currentUser(c)
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, uid, strings.TrimSpace(req.Name), req.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return jsonError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, repository.ErrUserExists):
		return jsonError(c, http.StatusBadRequest, "Email is already in use")
	case err != nil:
		return serverError(c, "Error updating user profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toProfile(u)})
}

// AddFavorite bookmarks an actor, director or film.  :type is plural.
func (h *UserHandler) AddFavorite(c echo.Context) error {
	itemType, ok := model.FavoriteTypeFromPlural(c.Param("type"))
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid favorite type")
	}
	var req addFavoriteReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	itemID := strings.TrimSpace(req.ItemID)
	uid, username := currentUser(c)

	ctx, cancel := dbContext(c)
	defer cancel()

	id, err := h.Favorites.Add(ctx, uid, itemType, itemID)
	if errors.Is(err, repository.ErrAlreadyFavorite) {
		return jsonError(c, http.StatusBadRequest, itemType+" is already in favorites")
	}
	if err != nil {
		return serverError(c, "Error adding favorite", err)
	}

	publish(c, h.Activity, queue.ActivityEvent{
		Type: queue.EventFavoriteAdded, UserID: uid, Username: username,
		ItemType: itemType, ItemID: itemID, FavoriteID: id,
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "Added to favorites", "favoriteId": id})
}

// ListFavorites returns all favorites grouped by type, or only the group
// named by ?type (plural or singular).
func (h *UserHandler) ListFavorites(c echo.Context) error {
	uid, _ := currentUser(c)
	filter := strings.TrimSpace(c.QueryParam("type"))
	itemType := ""
	if filter != "" {
		t, ok := model.FavoriteTypeFromPlural(filter)
		if !ok {
			t, ok = model.FavoriteTypeFromPlural(filter + "s")
		}
		if !ok {
			return jsonError(c, http.StatusBadRequest, "Invalid favorite type")
		}
		itemType = t
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	rows, err := h.Favorites.List(ctx, uid, itemType)
	if err != nil {
		return serverError(c, "Error fetching favorites", err)
	}
	if itemType != "" {
		return c.JSON(http.StatusOK, echo.Map{itemType + "s": rows})
	}
	return c.JSON(http.StatusOK, model.GroupFavorites(rows))
}

// CheckFavorite reports whether an item is bookmarked.
func (h *UserHandler) CheckFavorite(c echo.Context) error {
	itemType, ok := model.FavoriteTypeFromPlural(c.Param("type"))
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid favorite type")
	}
	uid, _ := currentUser(c)
	ctx, cancel := dbContext(c)
	defer cancel()

	id, err := h.Favorites.Find(ctx, uid, itemType, c.Param("itemId"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusOK, echo.Map{"isFavorite": false})
	}
	if err != nil {
		return serverError(c, "Error checking favorite", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"isFavorite": true, "favoriteId": id})
}

// DeleteFavorite removes one of the current user's favorites.
func (h *UserHandler) DeleteFavorite(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return jsonError(c, http.StatusBadRequest, "Invalid favorite id")
	}
	uid, username := currentUser(c)
	ctx, cancel := dbContext(c)
	defer cancel()

	err = h.Favorites.Delete(ctx, uid, id)
	if errors.Is(err, repository.ErrNotFound) {
		return jsonError(c, http.StatusNotFound, "Favorite not found")
	}
	if err != nil {
		return serverError(c, "Error removing favorite", err)
	}

	publish(c, h.Activity, queue.ActivityEvent{
		Type: queue.EventFavoriteRemoved, UserID: uid, Username: username, FavoriteID: id,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Removed from favorites"})
}
