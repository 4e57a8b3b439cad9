package handler

import (
	"context"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/queue"
	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// The store interfaces below are satisfied by the repository types.  Handlers
// depend on them so tests can substitute in-memory fakes.

type FilmStore interface {
	TopRated(ctx context.Context, q repository.FilmListQuery) ([]model.FilmSummary, error)
	ByGenre(ctx context.Context, q repository.FilmListQuery) ([]model.FilmSummary, error)
	Search(ctx context.Context, term string, limit int) ([]model.FilmSummary, error)
	HighestROI(ctx context.Context, q repository.ROIQuery) ([]model.ROIFilm, error)
	FindActorByName(ctx context.Context, name string) (*model.PersonRef, error)
	FilmsByActor(ctx context.Context, actorID, sortBy string, order repository.Order, limit int) ([]model.FilmSummary, error)
	Detail(ctx context.Context, id string) (*repository.FilmDetailRow, error)
}

type PersonStore interface {
	Top(ctx context.Context, q repository.PersonRankQuery) ([]model.PersonStats, error)
	Search(ctx context.Context, name string, limit int) ([]model.PersonStats, error)
	ByDecade(ctx context.Context, limit int) ([]model.DecadePerson, error)
	Detail(ctx context.Context, id string) (*repository.PersonDetailRow, error)
}

type GenreStore interface {
	List(ctx context.Context, q repository.GenreListQuery) ([]model.GenreStats, error)
	ByDecade(ctx context.Context, limit int) ([]model.DecadeGenre, error)
}

type AwardStore interface {
	List(ctx context.Context, q repository.AwardQuery) ([]model.Award, error)
	ByFilm(ctx context.Context, filmID string) ([]model.Award, error)
	Categories(ctx context.Context) ([]model.CategorySummary, error)
}

type DashboardStore interface {
	RecentWinners(ctx context.Context) ([]model.RecentWinner, error)
	TopCategories(ctx context.Context) ([]model.TopCategory, error)
	Stats(ctx context.Context) (model.DashboardStats, error)
	HighestGrossing(ctx context.Context) ([]model.GrossingFilm, error)
	CategoryFilms(ctx context.Context, category string) ([]model.CategoryFilm, error)
}

type UserStore interface {
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, u *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	UpdateProfile(ctx context.Context, id int64, name, email string) (*model.User, error)
}

type FavoriteStore interface {
	Add(ctx context.Context, userID int64, itemType, itemID string) (int64, error)
	List(ctx context.Context, userID int64, itemType string) ([]model.Favorite, error)
	Counts(ctx context.Context, userID int64) (model.FavoriteCounts, error)
	Find(ctx context.Context, userID int64, itemType, itemID string) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
}

// ActivityPublisher emits user activity events.  A nil publisher is valid
// and drops events.
type ActivityPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ FilmStore      = (*repository.FilmRepo)(nil)
	_ PersonStore    = (*repository.PersonRepo)(nil)
	_ GenreStore     = (*repository.GenreRepo)(nil)
	_ AwardStore     = (*repository.AwardRepo)(nil)
	_ DashboardStore = (*repository.DashboardRepo)(nil)
	_ UserStore      = (*repository.UserRepo)(nil)
	_ FavoriteStore  = (*repository.FavoriteRepo)(nil)
)
