package model

import (
	"strconv"

	"github.com/lib/pq"
)

// Award is one nomination row: a category in a year for a film, naming
// one or more nominees.  IsWinner marks the winning nomination.
type Award struct {
	ID        int64          `db:"id" json:"id"`
	Category  string         `db:"category" json:"category"`
	Year      int            `db:"year" json:"year"`
	FilmID    *string        `db:"film_id" json:"film_id"`
	FilmTitle *string        `db:"film_title" json:"film_title"`
	Nominees  pq.StringArray `db:"nominees" json:"nominees"`
	IsWinner  bool           `db:"is_winner" json:"is_winner"`
}

// AwardEntry is the compact nomination shape nested in film and person
// detail payloads.
type AwardEntry struct {
	Category string `json:"category"`
	Year     int    `json:"year"`
	IsWinner bool   `json:"is_winner"`
}

// Key identifies a nomination inside a nested list.  Two entries with the
// same category and year describe the same nomination.
func (a AwardEntry) Key() string {
	return a.Category + "|" + strconv.Itoa(a.Year)
}

// CategorySummary aggregates all nominations of one award category.
type CategorySummary struct {
	Category    string `db:"category" json:"category"`
	Nominations int64  `db:"nominations" json:"nominations"`
	Wins        int64  `db:"wins" json:"wins"`
	FirstYear   int    `db:"first_year" json:"first_year"`
	LastYear    int    `db:"last_year" json:"last_year"`
}
