package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/oscar-explorer/internal/client"
	"github.com/iliyamo/oscar-explorer/internal/model"
)

// ProfileData is the profile plus every favorite.
type ProfileData struct {
	Profile   *client.Profile
	Favorites *model.FavoriteGroups
}

type ProfilePage struct {
	api    API
	Data   Loadable[ProfileData]
	Notice *Notifier
}

func NewProfilePage(api API) *ProfilePage {
	return &ProfilePage{api: api, Notice: NewNotifier(0)}
}

// Load fetches the profile and the favorites concurrently.
func (p *ProfilePage) Load(ctx context.Context) State[ProfileData] {
	return p.Data.Load(ctx, func(ctx context.Context) (ProfileData, error) {
		var out ProfileData
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			out.Profile, err = p.api.Profile(gctx)
			return err
		})
		g.Go(func() (err error) {
			out.Favorites, err = p.api.Favorites(gctx)
			return err
		})
		return out, g.Wait()
	})
}

// RemoveFavorite deletes one favorite and reloads the page.
func (p *ProfilePage) RemoveFavorite(ctx context.Context, id int64) error {
	if err := p.api.RemoveFavorite(ctx, id); err != nil {
		p.Notice.Error("Failed to remove favorite: " + errorMessage(err))
		return err
	}
	p.Notice.Success("Removed from favorites")
	p.Load(ctx)
	return nil
}
