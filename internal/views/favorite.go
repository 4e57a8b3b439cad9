package views

import (
	"context"
	"strings"
	"sync"
)

// FavoriteToggle is the bookmark button of a detail page.  Local state only
// flips after the server accepted the change.
type FavoriteToggle struct {
	api      API
	plural   string
	itemID   string
	signedIn bool
	notice   *Notifier

	mu         sync.Mutex
	isFavorite bool
	favoriteID int64
}

func newFavoriteToggle(api API, plural, itemID string, signedIn bool, n *Notifier) *FavoriteToggle {
	return &FavoriteToggle{api: api, plural: plural, itemID: itemID, signedIn: signedIn, notice: n}
}

// IsFavorite returns the current state and favorite id.
func (t *FavoriteToggle) IsFavorite() (bool, int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isFavorite, t.favoriteID
}

// Refresh asks the server whether the item is bookmarked.  Signed-out users
// skip the request.
func (t *FavoriteToggle) Refresh(ctx context.Context) {
	if !t.signedIn {
		return
	}
	res, err := t.api.CheckFavorite(ctx, t.plural, t.itemID)
	if err != nil {
		return
	}
	t.mu.Lock()
	t.isFavorite, t.favoriteID = res.IsFavorite, res.FavoriteID
	t.mu.Unlock()
}

// Toggle adds or removes the bookmark and reports the outcome through the
// page notifier.
func (t *FavoriteToggle) Toggle(ctx context.Context) error {
	if !t.signedIn {
		t.notice.Error("Please log in to manage favorites")
		return nil
	}
	fav, id := t.IsFavorite()
	label := strings.TrimSuffix(t.plural, "s")

	if fav {
		if err := t.api.RemoveFavorite(ctx, id); err != nil {
			t.notice.Error("Failed to remove from favorites: " + errorMessage(err))
			return err
		}
		t.mu.Lock()
		t.isFavorite, t.favoriteID = false, 0
		t.mu.Unlock()
		t.notice.Success("Removed " + label + " from favorites")
		return nil
	}

	newID, err := t.api.AddFavorite(ctx, t.plural, t.itemID)
	if err != nil {
		t.notice.Error("Failed to add to favorites: " + errorMessage(err))
		return err
	}
	t.mu.Lock()
	t.isFavorite, t.favoriteID = true, newID
	t.mu.Unlock()
	t.notice.Success("Added " + label + " to favorites")
	return nil
}
