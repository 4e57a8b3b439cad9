package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// FavoriteRepo stores per-user bookmarks.  Uniqueness of
// (user_id, item_type, item_id) is enforced by the table constraint.
type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts a favorite and returns its id.  ErrAlreadyFavorite means the
// row already existed; nothing was written.
func (r *FavoriteRepo) Add(ctx context.Context, userID int64, itemType, itemID string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		`INSERT INTO favorites (user_id, item_type, item_id)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, item_type, item_id) DO NOTHING
RETURNING id`,
		userID, itemType, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAlreadyFavorite
		}
		return 0, fmt.Errorf("add favorite: %w", err)
	}
	return id, nil
}

const favoriteListSelect = `
SELECT f.id, f.item_type, f.item_id, f.created_at,
       CASE f.item_type
           WHEN 'film' THEN (SELECT t.primarytitle FROM title_basics t WHERE t.tconst = f.item_id)
           ELSE (SELECT n.primaryname FROM name_basics n WHERE n.nconst = f.item_id)
       END AS item_name
FROM favorites f`

// List returns the user's favorites, newest first.  An empty itemType
// returns every type.
func (r *FavoriteRepo) List(ctx context.Context, userID int64, itemType string) ([]model.Favorite, error) {
	query, args := newSelect(favoriteListSelect).
		Where("f.user_id = ?", userID).
		WhereIf(itemType != "", "f.item_type = ?", itemType).
		OrderBy("f.created_at DESC", "f.id DESC").
		Build()

	out := []model.Favorite{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return out, nil
}

// Counts returns how many favorites of each type the user has.
func (r *FavoriteRepo) Counts(ctx context.Context, userID int64) (model.FavoriteCounts, error) {
	var c model.FavoriteCounts
	err := r.db.GetContext(ctx, &c, `
SELECT COUNT(*) FILTER (WHERE item_type = 'actor') AS actors,
       COUNT(*) FILTER (WHERE item_type = 'director') AS directors,
       COUNT(*) FILTER (WHERE item_type = 'film') AS films
FROM favorites
WHERE user_id = $1`, userID)
	if err != nil {
		return c, fmt.Errorf("count favorites: %w", err)
	}
	return c, nil
}

// Find returns the favorite id for (user, type, item), or ErrNotFound.
func (r *FavoriteRepo) Find(ctx context.Context, userID int64, itemType, itemID string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		"SELECT id FROM favorites WHERE user_id = $1 AND item_type = $2 AND item_id = $3",
		userID, itemType, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("find favorite: %w", err)
	}
	return id, nil
}

// Delete removes one of the user's favorites.  Another user's id behaves
// like a missing one.
func (r *FavoriteRepo) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM favorites WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
