package model

import "github.com/lib/pq"

// Role distinguishes the two views of name_basics the API exposes.  The
// same person can appear under both.
type Role string

const (
	RoleActor    Role = "actor"
	RoleDirector Role = "director"
)

// PersonRef is the minimal reference to a person used inside other payloads.
type PersonRef struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// PersonStats mirrors a row of the actor_stats / director_stats
// materialized views.  Ranking handlers pick the subset of fields that
// belongs to the requested sort mode.
type PersonStats struct {
	ID               string   `db:"id" json:"id"`
	Name             string   `db:"name" json:"name"`
	FilmCount        *int64   `db:"film_count" json:"film_count"`
	AvgRating        *float64 `db:"avg_rating" json:"avg_rating"`
	TotalNominations *int64   `db:"total_nominations" json:"total_nominations"`
	TotalWins        *int64   `db:"total_wins" json:"total_wins"`
	TotalBoxOffice   *int64   `db:"total_box_office" json:"total_box_office"`
}

// DecadePerson is one ranked person inside a decade bucket.
type DecadePerson struct {
	Decade      int    `db:"decade" json:"-"`
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Nominations int64  `db:"nominations" json:"nominations"`
	Wins        int64  `db:"wins" json:"wins"`
}

// CreditedMovie is a movie inside a person detail payload.  Awards only
// holds the nominations that name this person.
type CreditedMovie struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Year   *int          `json:"year"`
	Rating *float64      `json:"rating"`
	Awards []*AwardEntry `json:"awards"`
}

// PersonSummaryStats is the stats block of a person detail payload.
type PersonSummaryStats struct {
	FilmCount        *int64   `json:"film_count"`
	AvgRating        *float64 `json:"avg_rating"`
	TotalNominations *int64   `json:"total_nominations"`
	TotalWins        *int64   `json:"total_wins"`
	TotalBoxOffice   *int64   `json:"total_box_office"`
}

// PersonDetail is the body of GET /api/actors/:id and /api/directors/:id.
type PersonDetail struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Professions pq.StringArray     `json:"professions"`
	Stats       PersonSummaryStats `json:"stats"`
	Movies      []*CreditedMovie   `json:"movies"`
}
