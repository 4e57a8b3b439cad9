package views

import (
	"context"
	"sync"

	"github.com/iliyamo/oscar-explorer/internal/client"
	"github.com/iliyamo/oscar-explorer/internal/model"
)

// PersonListPage ranks actors or directors.
type PersonListPage struct {
	api  API
	Role client.Role
	Data Loadable[*client.PersonList]

	mu    sync.Mutex
	query client.ListQuery
}

func NewPersonListPage(api API, role client.Role, q client.ListQuery) *PersonListPage {
	if q.SortBy == "" {
		q.SortBy = "ratings"
	}
	return &PersonListPage{api: api, Role: role, query: q}
}

func (p *PersonListPage) Query() client.ListQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

func (p *PersonListPage) SetSort(ctx context.Context, sortBy, order string) State[*client.PersonList] {
	p.mu.Lock()
	p.query.SortBy, p.query.Order = sortBy, order
	p.mu.Unlock()
	return p.Load(ctx)
}

func (p *PersonListPage) SetLimit(ctx context.Context, limit int) State[*client.PersonList] {
	p.mu.Lock()
	p.query.Limit = limit
	p.mu.Unlock()
	return p.Load(ctx)
}

func (p *PersonListPage) Load(ctx context.Context) State[*client.PersonList] {
	q := p.Query()
	return p.Data.Load(ctx, func(ctx context.Context) (*client.PersonList, error) {
		return p.api.TopPeople(ctx, p.Role, q)
	})
}

// PersonDetailPage shows one actor or director.
type PersonDetailPage struct {
	api      API
	Role     client.Role
	ID       string
	Data     Loadable[*model.PersonDetail]
	Favorite *FavoriteToggle
	Notice   *Notifier
}

func NewPersonDetailPage(api API, role client.Role, id string, signedIn bool) *PersonDetailPage {
	n := NewNotifier(0)
	return &PersonDetailPage{
		api: api, Role: role, ID: id, Notice: n,
		Favorite: newFavoriteToggle(api, string(role), id, signedIn, n),
	}
}

func (p *PersonDetailPage) Load(ctx context.Context) State[*model.PersonDetail] {
	st := p.Data.Load(ctx, func(ctx context.Context) (*model.PersonDetail, error) {
		return p.api.Person(ctx, p.Role, p.ID)
	})
	if st.Status == Success {
		p.Favorite.Refresh(ctx)
	}
	return st
}
