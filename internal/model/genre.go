package model

// GenreStats is one row of GET /api/genres.
type GenreStats struct {
	Genre       string   `db:"genre" json:"genre"`
	FilmCount   int64    `db:"film_count" json:"film_count"`
	AvgRating   *float64 `db:"avg_rating" json:"avg_rating"`
	Nominations int64    `db:"nominations" json:"nominations"`
	Wins        int64    `db:"wins" json:"wins"`
}

// DecadeGenre is one ranked genre inside a decade bucket.
type DecadeGenre struct {
	Decade      int    `db:"decade" json:"-"`
	Genre       string `db:"genre" json:"genre"`
	Nominations int64  `db:"nominations" json:"nominations"`
	Wins        int64  `db:"wins" json:"wins"`
}
