package model

import (
	"math"

	"github.com/lib/pq"
)

// FilmSummary is the row shape shared by every film listing (top rated,
// by genre, by actor, search).
type FilmSummary struct {
	ID     string         `db:"id" json:"id"`         // title_basics.tconst
	Title  string         `db:"title" json:"title"`   // title_basics.primarytitle
	Year   *int           `db:"year" json:"year"`     // title_basics.startyear, null when unknown
	Genres pq.StringArray `db:"genres" json:"genres"` // title_basics.genres
	Rating *float64       `db:"rating" json:"rating"` // title_ratings.averagerating
	Votes  *int64         `db:"votes" json:"votes"`   // title_ratings.numvotes
}

// ROIFilm is one row of the highest-ROI ranking.  ReturnOnInvestment is
// filled by the handler from Budget and Revenue, not read from SQL.
type ROIFilm struct {
	ID                 string   `db:"id" json:"id"`
	Year               int      `db:"year" json:"year"`
	Title              string   `db:"film_title" json:"film_title"`
	Rating             *float64 `db:"imdb_rating" json:"imdb_rating"`
	Budget             int64    `db:"budget" json:"budget"`
	Revenue            int64    `db:"revenue" json:"revenue"`
	ReturnOnInvestment float64  `db:"-" json:"return_on_investment"`
	WonOscar           bool     `db:"won_oscar" json:"won_oscar"`
	Director           *string  `db:"director" json:"director"`
}

// CastMember is a credited actor or actress on a film detail page.
type CastMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// FilmDetail is the body of GET /api/films/:id.  Budget, Revenue and ROI
// are omitted entirely when the metadata table has nothing usable.
type FilmDetail struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Year      *int          `json:"year"`
	Genres    []string      `json:"genres"`
	Rating    *float64      `json:"rating"`
	Votes     *int64        `json:"votes"`
	Budget    *int64        `json:"budget"`
	Revenue   *int64        `json:"revenue"`
	ROI       *float64      `json:"roi,omitempty"`
	Directors []*PersonRef  `json:"directors"`
	Cast      []*CastMember `json:"cast"`
	Awards    []*AwardEntry `json:"awards"`
}

// ComputeROI returns ((revenue/budget)-1)*100 rounded to two decimals.  It
// returns nil unless both values are present and budget is positive.
func ComputeROI(budget, revenue *int64) *float64 {
	if budget == nil || revenue == nil || *budget <= 0 {
		return nil
	}
	roi := math.Round((float64(*revenue)/float64(*budget)-1)*100*100) / 100
	return &roi
}
