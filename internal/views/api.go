package views

import (
	"context"
	"errors"

	"github.com/iliyamo/oscar-explorer/internal/client"
	"github.com/iliyamo/oscar-explorer/internal/model"
)

// API is the part of the HTTP client the pages use.
type API interface {
	Dashboard(ctx context.Context) (*model.Dashboard, error)
	TopRatedFilms(ctx context.Context, q client.FilmQuery) (*client.FilmList, error)
	HighestROI(ctx context.Context, q client.ROIQuery) ([]model.ROIFilm, error)
	FilmsByActor(ctx context.Context, name string, q client.ActorFilmsQuery) (*client.ActorFilms, error)
	Film(ctx context.Context, id string) (*model.FilmDetail, error)
	TopPeople(ctx context.Context, role client.Role, q client.ListQuery) (*client.PersonList, error)
	Person(ctx context.Context, role client.Role, id string) (*model.PersonDetail, error)
	Genres(ctx context.Context, q client.ListQuery) (*client.GenreList, error)
	GenreFilms(ctx context.Context, genre string, q client.ListQuery) (*client.GenreFilms, error)
	Profile(ctx context.Context) (*client.Profile, error)
	Favorites(ctx context.Context) (*model.FavoriteGroups, error)
	AddFavorite(ctx context.Context, plural, itemID string) (int64, error)
	CheckFavorite(ctx context.Context, plural, itemID string) (*client.FavoriteCheck, error)
	RemoveFavorite(ctx context.Context, id int64) error
}

var _ API = (*client.Client)(nil)

// errorMessage is the text shown for a failed request.
func errorMessage(err error) string {
	var ae *client.APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
