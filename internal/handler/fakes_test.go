package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/queue"
	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// newContext builds an echo context for target.  params alternates names and
// values.
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func asUser(c echo.Context, id int64, username string) echo.Context {
	c.Set("userId", id)
	c.Set("username", username)
	return c
}

func decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var m map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &m)
	return m
}

type fakeFilms struct {
	top      []model.FilmSummary
	roi      []model.ROIFilm
	actor    *model.PersonRef
	byActor  []model.FilmSummary
	detail   *repository.FilmDetailRow
	err      error
	lastList repository.FilmListQuery
	lastROI  repository.ROIQuery
	lastLim  int
}

func (f *fakeFilms) TopRated(_ context.Context, q repository.FilmListQuery) ([]model.FilmSummary, error) {
	f.lastList = q
	return f.top, f.err
}

func (f *fakeFilms) ByGenre(_ context.Context, q repository.FilmListQuery) ([]model.FilmSummary, error) {
	f.lastList = q
	return f.top, f.err
}

func (f *fakeFilms) Search(_ context.Context, _ string, limit int) ([]model.FilmSummary, error) {
	f.lastLim = limit
	return f.top, f.err
}

func (f *fakeFilms) HighestROI(_ context.Context, q repository.ROIQuery) ([]model.ROIFilm, error) {
	f.lastROI = q
	return f.roi, f.err
}

func (f *fakeFilms) FindActorByName(context.Context, string) (*model.PersonRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.actor == nil {
		return nil, repository.ErrNotFound
	}
	return f.actor, nil
}

func (f *fakeFilms) FilmsByActor(_ context.Context, _ string, _ string, _ repository.Order, limit int) ([]model.FilmSummary, error) {
	f.lastLim = limit
	return f.byActor, f.err
}

func (f *fakeFilms) Detail(context.Context, string) (*repository.FilmDetailRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.detail == nil {
		return nil, repository.ErrNotFound
	}
	return f.detail, nil
}

type fakePeople struct {
	top    []model.PersonStats
	decade []model.DecadePerson
	detail *repository.PersonDetailRow
	err    error
	calls  int
}

func (f *fakePeople) Top(context.Context, repository.PersonRankQuery) ([]model.PersonStats, error) {
	f.calls++
	return f.top, f.err
}

func (f *fakePeople) Search(context.Context, string, int) ([]model.PersonStats, error) {
	return f.top, f.err
}

func (f *fakePeople) ByDecade(context.Context, int) ([]model.DecadePerson, error) {
	return f.decade, f.err
}

func (f *fakePeople) Detail(context.Context, string) (*repository.PersonDetailRow, error) {
	if f.detail == nil {
		return nil, repository.ErrNotFound
	}
	return f.detail, f.err
}

type fakeDashboard struct {
	mu            sync.Mutex
	categories    []model.TopCategory
	statsErr      error
	categoryCalls []string
}

func (f *fakeDashboard) RecentWinners(context.Context) ([]model.RecentWinner, error) {
	return []model.RecentWinner{{Year: 2023, Category: "BEST_PICTURE"}}, nil
}

func (f *fakeDashboard) TopCategories(context.Context) ([]model.TopCategory, error) {
	return f.categories, nil
}

func (f *fakeDashboard) Stats(context.Context) (model.DashboardStats, error) {
	return model.DashboardStats{TotalNominations: 11000, TotalWins: 2500}, f.statsErr
}

func (f *fakeDashboard) HighestGrossing(context.Context) ([]model.GrossingFilm, error) {
	return []model.GrossingFilm{{ID: "tt0499549", Title: "Avatar", Revenue: 2923706026}}, nil
}

func (f *fakeDashboard) CategoryFilms(_ context.Context, category string) ([]model.CategoryFilm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryCalls = append(f.categoryCalls, category)
	return []model.CategoryFilm{{Year: 2020, IsWinner: true}}, nil
}

type fakeUsers struct {
	byName  map[string]*model.User
	created []*model.User
	touched []int64
	nextID  int64
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byName: map[string]*model.User{}, nextID: 100}
	for _, u := range users {
		f.byName[u.Username] = u
	}
	return f
}

func (f *fakeUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range f.byName {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.nextID++
	u.ID = f.nextID
	f.created = append(f.created, u)
	f.byName[u.Username] = u
	return nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byName {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id int64) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id int64, name, email string) (*model.User, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, other := range f.byName {
		if other.ID != id && strings.EqualFold(other.Email, email) {
			return nil, repository.ErrUserExists
		}
	}
	u.Name, u.Email = name, email
	return u, nil
}

type favKey struct {
	user     int64
	itemType string
	itemID   string
}

// fakeFavorites enforces (user, type, item) uniqueness like the table
// constraint does.
type fakeFavorites struct {
	rows   map[int64]favKey
	nextID int64
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{rows: map[int64]favKey{}}
}

func (f *fakeFavorites) Add(_ context.Context, userID int64, itemType, itemID string) (int64, error) {
	k := favKey{userID, itemType, itemID}
	for _, existing := range f.rows {
		if existing == k {
			return 0, repository.ErrAlreadyFavorite
		}
	}
	f.nextID++
	f.rows[f.nextID] = k
	return f.nextID, nil
}

func (f *fakeFavorites) List(_ context.Context, userID int64, itemType string) ([]model.Favorite, error) {
	out := []model.Favorite{}
	for id := int64(1); id <= f.nextID; id++ {
		k, ok := f.rows[id]
		if !ok || k.user != userID || (itemType != "" && k.itemType != itemType) {
			continue
		}
		out = append(out, model.Favorite{ID: id, ItemType: k.itemType, ItemID: k.itemID})
	}
	return out, nil
}

func (f *fakeFavorites) Counts(_ context.Context, userID int64) (model.FavoriteCounts, error) {
	var c model.FavoriteCounts
	for _, k := range f.rows {
		if k.user != userID {
			continue
		}
		switch k.itemType {
		case model.FavoriteActor:
			c.Actors++
		case model.FavoriteDirector:
			c.Directors++
		case model.FavoriteFilm:
			c.Films++
		}
	}
	return c, nil
}

func (f *fakeFavorites) Find(_ context.Context, userID int64, itemType, itemID string) (int64, error) {
	for id, k := range f.rows {
		if k == (favKey{userID, itemType, itemID}) {
			return id, nil
		}
	}
	return 0, repository.ErrNotFound
}

func (f *fakeFavorites) Delete(_ context.Context, userID, id int64) error {
	k, ok := f.rows[id]
	if !ok || k.user != userID {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type recordingPublisher struct {
	events []queue.ActivityEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ActivityEvent) error {
	p.events = append(p.events, ev)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeGenres struct {
	list     []model.GenreStats
	decade   []model.DecadeGenre
	err      error
	lastList repository.GenreListQuery
}

func (f *fakeGenres) List(_ context.Context, q repository.GenreListQuery) ([]model.GenreStats, error) {
	f.lastList = q
	return f.list, f.err
}

func (f *fakeGenres) ByDecade(context.Context, int) ([]model.DecadeGenre, error) {
	return f.decade, f.err
}

type fakeAwards struct {
	list   []model.Award
	byFilm map[string][]model.Award
	cats   []model.CategorySummary
	err    error
	last   repository.AwardQuery
}

func (f *fakeAwards) List(_ context.Context, q repository.AwardQuery) ([]model.Award, error) {
	f.last = q
	return f.list, f.err
}

func (f *fakeAwards) ByFilm(_ context.Context, filmID string) ([]model.Award, error) {
	return f.byFilm[filmID], f.err
}

func (f *fakeAwards) Categories(context.Context) ([]model.CategorySummary, error) {
	return f.cats, f.err
}
