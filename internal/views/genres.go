package views

import (
	"context"
	"sync"

	"github.com/iliyamo/oscar-explorer/internal/client"
)

type GenreListPage struct {
	api  API
	Data Loadable[*client.GenreList]

	mu    sync.Mutex
	query client.ListQuery
}

func NewGenreListPage(api API, q client.ListQuery) *GenreListPage {
	return &GenreListPage{api: api, query: q}
}

func (p *GenreListPage) SetSort(ctx context.Context, sortBy, order string) State[*client.GenreList] {
	p.mu.Lock()
	p.query.SortBy, p.query.Order = sortBy, order
	p.mu.Unlock()
	return p.Load(ctx)
}

func (p *GenreListPage) Load(ctx context.Context) State[*client.GenreList] {
	p.mu.Lock()
	q := p.query
	p.mu.Unlock()
	return p.Data.Load(ctx, func(ctx context.Context) (*client.GenreList, error) {
		return p.api.Genres(ctx, q)
	})
}

// GenreDetailPage lists the films of one genre.
type GenreDetailPage struct {
	api   API
	Genre string
	Data  Loadable[*client.GenreFilms]

	mu    sync.Mutex
	query client.ListQuery
}

func NewGenreDetailPage(api API, genre string, q client.ListQuery) *GenreDetailPage {
	return &GenreDetailPage{api: api, Genre: genre, query: q}
}

func (p *GenreDetailPage) SetSort(ctx context.Context, sortBy, order string) State[*client.GenreFilms] {
	p.mu.Lock()
	p.query.SortBy, p.query.Order = sortBy, order
	p.mu.Unlock()
	return p.Load(ctx)
}

func (p *GenreDetailPage) Load(ctx context.Context) State[*client.GenreFilms] {
	p.mu.Lock()
	q := p.query
	p.mu.Unlock()
	return p.Data.Load(ctx, func(ctx context.Context) (*client.GenreFilms, error) {
		return p.api.GenreFilms(ctx, p.Genre, q)
	})
}
