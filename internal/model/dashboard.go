package model

// RecentWinner is a winning nomination from the latest years.
type RecentWinner struct {
	Year      int     `db:"year" json:"year"`
	Category  string  `db:"category" json:"category"`
	FilmID    *string `db:"film_id" json:"film_id"`
	FilmTitle *string `db:"film_title" json:"film_title"`
}

// CategoryFilm is a film nominated in a dashboard top category.
type CategoryFilm struct {
	FilmID    *string `db:"film_id" json:"film_id"`
	FilmTitle *string `db:"film_title" json:"film_title"`
	Year      int     `db:"year" json:"year"`
	IsWinner  bool    `db:"is_winner" json:"is_winner"`
}

// TopCategory is one of the five busiest award categories.  Films is
// attached by a follow-up query.
type TopCategory struct {
	Category    string         `db:"category" json:"category"`
	Nominations int64          `db:"nominations" json:"nominations"`
	Wins        int64          `db:"wins" json:"wins"`
	Films       []CategoryFilm `db:"-" json:"films"`
}

// DashboardStats holds the headline counters.
type DashboardStats struct {
	TotalFilms       int64 `db:"total_films" json:"total_films"`
	TotalNominations int64 `db:"total_nominations" json:"total_nominations"`
	TotalWins        int64 `db:"total_wins" json:"total_wins"`
	TotalCategories  int64 `db:"total_categories" json:"total_categories"`
	FirstYear        *int  `db:"first_year" json:"first_year"`
	LastYear         *int  `db:"last_year" json:"last_year"`
}

// GrossingFilm is a row of the highest-grossing list.  Director is a
// comma-separated list computed in SQL.
type GrossingFilm struct {
	ID       string  `db:"id" json:"id"`
	Title    string  `db:"title" json:"title"`
	Year     *int    `db:"year" json:"year"`
	Revenue  int64   `db:"revenue" json:"revenue"`
	Budget   *int64  `db:"budget" json:"budget"`
	Director *string `db:"director" json:"director"`
}

// Dashboard is the body of GET /api/dashboard.
type Dashboard struct {
	RecentWinners   []RecentWinner `json:"recentWinners"`
	TopCategories   []TopCategory  `json:"topCategories"`
	Stats           DashboardStats `json:"stats"`
	HighestGrossing []GrossingFilm `json:"highestGrossing"`
}
