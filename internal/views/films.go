package views

import (
	"context"
	"sync"

	"github.com/iliyamo/oscar-explorer/internal/client"
	"github.com/iliyamo/oscar-explorer/internal/model"
)

// FilmMode selects which listing FilmListPage shows.
type FilmMode string

const (
	ModeTopRated FilmMode = "top-rated"
	ModeROI      FilmMode = "roi"
	ModeByActor  FilmMode = "by-actor"
)

// FilmListing is the result of one FilmListPage fetch.  Only the field of
// its Mode is set.
type FilmListing struct {
	Mode    FilmMode
	Films   []model.FilmSummary
	ROI     []model.ROIFilm
	ByActor *client.ActorFilms
}

// FilmFilters are the inputs of FilmListPage.
type FilmFilters struct {
	Mode      FilmMode
	Genre     string
	MinVotes  int
	Actor     string
	YearStart int
	YearEnd   int
	SortBy    string
	Order     string
	Limit     int
	Unlimited bool
}

type FilmListPage struct {
	api  API
	Data Loadable[FilmListing]

	mu      sync.Mutex
	filters FilmFilters
}

func NewFilmListPage(api API, f FilmFilters) *FilmListPage {
	if f.Mode == "" {
		f.Mode = ModeTopRated
	}
	return &FilmListPage{api: api, filters: f}
}

func (p *FilmListPage) Filters() FilmFilters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// Update applies fn to the filters and re-fetches.
func (p *FilmListPage) Update(ctx context.Context, fn func(*FilmFilters)) State[FilmListing] {
	p.mu.Lock()
	fn(&p.filters)
	p.mu.Unlock()
	return p.Load(ctx)
}

func (p *FilmListPage) SetMode(ctx context.Context, m FilmMode) State[FilmListing] {
	return p.Update(ctx, func(f *FilmFilters) { f.Mode = m })
}

func (p *FilmListPage) SetSort(ctx context.Context, sortBy, order string) State[FilmListing] {
	return p.Update(ctx, func(f *FilmFilters) { f.SortBy, f.Order = sortBy, order })
}

func (p *FilmListPage) SetLimit(ctx context.Context, limit int) State[FilmListing] {
	return p.Update(ctx, func(f *FilmFilters) { f.Limit = limit })
}

func (p *FilmListPage) Load(ctx context.Context) State[FilmListing] {
	f := p.Filters()
	return p.Data.Load(ctx, func(ctx context.Context) (FilmListing, error) {
		out := FilmListing{Mode: f.Mode}
		switch f.Mode {
		case ModeROI:
			films, err := p.api.HighestROI(ctx, client.ROIQuery{YearStart: f.YearStart, YearEnd: f.YearEnd, Limit: f.Limit})
			out.ROI = films
			return out, err
		case ModeByActor:
			res, err := p.api.FilmsByActor(ctx, f.Actor, client.ActorFilmsQuery{
				SortBy: f.SortBy, Order: f.Order, Limit: f.Limit, Unlimited: f.Unlimited,
			})
			out.ByActor = res
			return out, err
		default:
			res, err := p.api.TopRatedFilms(ctx, client.FilmQuery{
				Genre: f.Genre, MinVotes: f.MinVotes, SortBy: f.SortBy, Order: f.Order, Limit: f.Limit,
			})
			if res != nil {
				out.Films = res.Films
			}
			return out, err
		}
	})
}

// FilmDetailPage shows one film and lets a signed-in user bookmark it.
type FilmDetailPage struct {
	api      API
	ID       string
	Data     Loadable[model.FilmDetail]
	Favorite *FavoriteToggle
	Notice   *Notifier
}

func NewFilmDetailPage(api API, id string, signedIn bool) *FilmDetailPage {
	n := NewNotifier(0)
	return &FilmDetailPage{
		api: api, ID: id, Notice: n,
		Favorite: newFavoriteToggle(api, "films", id, signedIn, n),
	}
}

func (p *FilmDetailPage) Load(ctx context.Context) State[model.FilmDetail] {
	st := p.Data.Load(ctx, func(ctx context.Context) (model.FilmDetail, error) {
		f, err := p.api.Film(ctx, p.ID)
		if err != nil {
			return model.FilmDetail{}, err
		}
		return *f, nil
	})
	if st.Status == Success {
		p.Favorite.Refresh(ctx)
	}
	return st
}
