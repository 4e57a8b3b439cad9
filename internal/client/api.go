package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// ListMeta echoes the effective paging and sort of a listing.
type ListMeta struct {
	Limit  int    `json:"limit"`
	SortBy string `json:"sortBy"`
	Order  string `json:"order"`
}

type FilmList struct {
	Films []model.FilmSummary `json:"films"`
	ListMeta
}

type ActorFilms struct {
	Actor      string              `json:"actor"`
	ActorFound bool                `json:"actorFound"`
	Message    string              `json:"message"`
	SortBy     string              `json:"sortBy"`
	Order      string              `json:"order"`
	Count      int                 `json:"count"`
	Films      []model.FilmSummary `json:"films"`
}

// PersonList is a ranking.  Only the fields of the requested sort mode are
// set on each entry.
type PersonList struct {
	People []model.PersonStats
	ListMeta
}

type DecadePeople struct {
	Decade int
	People []model.DecadePerson
}

type GenreList struct {
	Genres []model.GenreStats `json:"genres"`
	ListMeta
}

type DecadeGenres struct {
	Decade int                 `json:"decade"`
	Genres []model.DecadeGenre `json:"genres"`
}

type GenreFilms struct {
	Genre string              `json:"genre"`
	Films []model.FilmSummary `json:"films"`
	ListMeta
}

type AwardList struct {
	Awards []model.Award `json:"awards"`
	ListMeta
}

type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type Profile struct {
	User           model.User           `json:"user"`
	FavoritesCount model.FavoriteCounts `json:"favoritesCount"`
}

type FavoriteCheck struct {
	IsFavorite bool  `json:"isFavorite"`
	FavoriteID int64 `json:"favoriteId"`
}

// Query parameters.  Zero values are left out so server defaults apply.
type (
	FilmQuery struct {
		Genre    string
		MinVotes int
		SortBy   string
		Order    string
		Limit    int
	}
	ROIQuery struct {
		YearStart int
		YearEnd   int
		MinBudget int
		Limit     int
	}
	ActorFilmsQuery struct {
		SortBy    string
		Order     string
		Limit     int
		Unlimited bool
	}
	ListQuery struct {
		SortBy string
		Order  string
		Limit  int
	}
	AwardQuery struct {
		Year        int
		Category    string
		WinnersOnly bool
		SortBy      string
		Order       string
		Limit       int
	}
)

func (q ListQuery) values() url.Values {
	return params{}.str("sortBy", q.SortBy).str("order", q.Order).num("limit", q.Limit).values()
}

// Role selects the actors or directors endpoints.
type Role string

const (
	Actors    Role = "actors"
	Directors Role = "directors"
)

// Auth

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.AuthResult, error) {
	var out model.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login accepts a username or an email address as identifier.
func (c *Client) Login(ctx context.Context, identifier, password string) (*model.AuthResult, error) {
	var out model.AuthResult
	in := map[string]string{"username": identifier, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var out Identity
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Films

func (c *Client) TopRatedFilms(ctx context.Context, q FilmQuery) (*FilmList, error) {
	var out FilmList
	v := params{}.str("genre", q.Genre).num("minVotes", q.MinVotes).
		str("sortBy", q.SortBy).str("order", q.Order).num("limit", q.Limit)
	if err := c.get(ctx, "/api/films/top-rated", v.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) HighestROI(ctx context.Context, q ROIQuery) ([]model.ROIFilm, error) {
	var out struct {
		Films []model.ROIFilm `json:"films"`
	}
	v := params{}.num("yearStart", q.YearStart).num("yearEnd", q.YearEnd).
		num("minBudget", q.MinBudget).num("limit", q.Limit)
	if err := c.get(ctx, "/api/films/highest-roi", v.values(), &out); err != nil {
		return nil, err
	}
	return out.Films, nil
}

func (c *Client) FilmsByActor(ctx context.Context, name string, q ActorFilmsQuery) (*ActorFilms, error) {
	var out ActorFilms
	v := params{}.str("sortBy", q.SortBy).str("order", q.Order).num("limit", q.Limit)
	if q.Unlimited {
		v = v.str("limit", "unlimited")
	}
	if err := c.get(ctx, "/api/films/by-actor/"+url.PathEscape(name), v.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchFilms(ctx context.Context, term string, limit int) ([]model.FilmSummary, error) {
	var out struct {
		Films []model.FilmSummary `json:"films"`
	}
	if err := c.get(ctx, "/api/films/search", params{}.str("q", term).num("limit", limit).values(), &out); err != nil {
		return nil, err
	}
	return out.Films, nil
}

func (c *Client) Film(ctx context.Context, id string) (*model.FilmDetail, error) {
	var out struct {
		Film model.FilmDetail `json:"film"`
	}
	if err := c.get(ctx, "/api/films/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Film, nil
}

// People

// personEnvelope decodes payloads keyed by either role.
type personEnvelope struct {
	Actors    []model.PersonStats `json:"actors"`
	Directors []model.PersonStats `json:"directors"`
	Actor     *model.PersonDetail `json:"actor"`
	Director  *model.PersonDetail `json:"director"`
	ListMeta
}

func (e personEnvelope) list(role Role) []model.PersonStats {
	if role == Directors {
		return e.Directors
	}
	return e.Actors
}

func (c *Client) TopPeople(ctx context.Context, role Role, q ListQuery) (*PersonList, error) {
	var env personEnvelope
	if err := c.get(ctx, "/api/"+string(role)+"/top", q.values(), &env); err != nil {
		return nil, err
	}
	return &PersonList{People: env.list(role), ListMeta: env.ListMeta}, nil
}

func (c *Client) SearchPeople(ctx context.Context, role Role, name string, limit int) ([]model.PersonStats, error) {
	var env personEnvelope
	if err := c.get(ctx, "/api/"+string(role)+"/search", params{}.str("name", name).num("limit", limit).values(), &env); err != nil {
		return nil, err
	}
	return env.list(role), nil
}

func (c *Client) PeopleByDecade(ctx context.Context, role Role, limit int) ([]DecadePeople, error) {
	var env struct {
		Decades []struct {
			Decade    int                  `json:"decade"`
			Actors    []model.DecadePerson `json:"actors"`
			Directors []model.DecadePerson `json:"directors"`
		} `json:"decades"`
	}
	if err := c.get(ctx, "/api/"+string(role)+"/by-decade", params{}.num("limit", limit).values(), &env); err != nil {
		return nil, err
	}
	out := make([]DecadePeople, 0, len(env.Decades))
	for _, d := range env.Decades {
		people := d.Actors
		if role == Directors {
			people = d.Directors
		}
		out = append(out, DecadePeople{Decade: d.Decade, People: people})
	}
	return out, nil
}

func (c *Client) Person(ctx context.Context, role Role, id string) (*model.PersonDetail, error) {
	var env personEnvelope
	if err := c.get(ctx, "/api/"+string(role)+"/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	p := env.Actor
	if role == Directors {
		p = env.Director
	}
	if p == nil {
		return nil, &APIError{Status: http.StatusNotFound, Message: "empty person payload"}
	}
	return p, nil
}

// Genres

func (c *Client) Genres(ctx context.Context, q ListQuery) (*GenreList, error) {
	var out GenreList
	if err := c.get(ctx, "/api/genres", q.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenresByDecade(ctx context.Context, limit int) ([]DecadeGenres, error) {
	var out struct {
		Decades []DecadeGenres `json:"decades"`
	}
	if err := c.get(ctx, "/api/genres/by-decade", params{}.num("limit", limit).values(), &out); err != nil {
		return nil, err
	}
	return out.Decades, nil
}

func (c *Client) GenreFilms(ctx context.Context, genre string, q ListQuery) (*GenreFilms, error) {
	var out GenreFilms
	if err := c.get(ctx, "/api/genres/"+url.PathEscape(genre)+"/films", q.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Awards

func (c *Client) Awards(ctx context.Context, q AwardQuery) (*AwardList, error) {
	var out AwardList
	v := params{}.num("year", q.Year).str("category", q.Category).
		str("sortBy", q.SortBy).str("order", q.Order).num("limit", q.Limit)
	if q.WinnersOnly {
		v = v.str("winnersOnly", "true")
	}
	if err := c.get(ctx, "/api/awards", v.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AwardCategories(ctx context.Context) ([]model.CategorySummary, error) {
	var out struct {
		Categories []model.CategorySummary `json:"categories"`
	}
	if err := c.get(ctx, "/api/awards/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) FilmAwards(ctx context.Context, filmID string) ([]model.Award, error) {
	var out struct {
		Awards []model.Award `json:"awards"`
	}
	if err := c.get(ctx, "/api/awards/film/"+url.PathEscape(filmID), nil, &out); err != nil {
		return nil, err
	}
	return out.Awards, nil
}

// Dashboard and health

func (c *Client) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	var out model.Dashboard
	if err := c.get(ctx, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Health struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.get(ctx, "/api/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, email string) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	in := map[string]string{"name": name, "email": email}
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", nil, in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Favorites returns every favorite grouped by type.
func (c *Client) Favorites(ctx context.Context) (*model.FavoriteGroups, error) {
	var out model.FavoriteGroups
	if err := c.get(ctx, "/api/users/favorites", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FavoritesOf returns the favorites of one plural type (actors, directors,
// films).
func (c *Client) FavoritesOf(ctx context.Context, plural string) ([]model.Favorite, error) {
	var out map[string][]model.Favorite
	if err := c.get(ctx, "/api/users/favorites", params{}.str("type", plural).values(), &out); err != nil {
		return nil, err
	}
	return out[plural], nil
}

// AddFavorite bookmarks itemID under plural and returns the favorite id.
func (c *Client) AddFavorite(ctx context.Context, plural, itemID string) (int64, error) {
	var out struct {
		FavoriteID int64 `json:"favoriteId"`
	}
	in := map[string]string{"itemId": itemID}
	if err := c.do(ctx, http.MethodPost, "/api/users/favorites/"+url.PathEscape(plural), nil, in, &out); err != nil {
		return 0, err
	}
	return out.FavoriteID, nil
}

func (c *Client) CheckFavorite(ctx context.Context, plural, itemID string) (*FavoriteCheck, error) {
	var out FavoriteCheck
	path := "/api/users/favorites/check/" + url.PathEscape(plural) + "/" + url.PathEscape(itemID)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/users/favorites/"+strconv.FormatInt(id, 10), nil, nil, nil)
}
