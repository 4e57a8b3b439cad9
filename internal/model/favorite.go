package model

import "time"

// Favorite item types as stored in favorites.item_type.
const (
	FavoriteActor    = "actor"
	FavoriteDirector = "director"
	FavoriteFilm     = "film"
)

// favoriteTypes maps the plural path segment to the stored singular type.
var favoriteTypes = map[string]string{
	"actors":    FavoriteActor,
	"directors": FavoriteDirector,
	"films":     FavoriteFilm,
}

// FavoriteTypeFromPlural singularises a path segment.  ok is false for
// anything other than actors, directors or films.
func FavoriteTypeFromPlural(plural string) (string, bool) {
	t, ok := favoriteTypes[plural]
	return t, ok
}

// Favorite is a user-owned bookmark.  ItemName is resolved from the film
// or person tables when the row is listed.
type Favorite struct {
	ID        int64     `db:"id" json:"id"`
	ItemType  string    `db:"item_type" json:"item_type"`
	ItemID    string    `db:"item_id" json:"item_id"`
	ItemName  *string   `db:"item_name" json:"item_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FavoriteCounts is the per-type summary shown on the profile.
type FavoriteCounts struct {
	Actors    int64 `db:"actors" json:"actors"`
	Directors int64 `db:"directors" json:"directors"`
	Films     int64 `db:"films" json:"films"`
}

// FavoriteGroups is the unfiltered favorites listing.
type FavoriteGroups struct {
	Actors    []Favorite `json:"actors"`
	Directors []Favorite `json:"directors"`
	Films     []Favorite `json:"films"`
}

// GroupFavorites partitions rows by item type, keeping their order.  Every
// group is non-nil so clients always receive arrays.
func GroupFavorites(rows []Favorite) FavoriteGroups {
	g := FavoriteGroups{Actors: []Favorite{}, Directors: []Favorite{}, Films: []Favorite{}}
	for _, f := range rows {
		switch f.ItemType {
		case FavoriteActor:
			g.Actors = append(g.Actors, f)
		case FavoriteDirector:
			g.Directors = append(g.Directors, f)
		case FavoriteFilm:
			g.Films = append(g.Films, f)
		}
	}
	return g
}
