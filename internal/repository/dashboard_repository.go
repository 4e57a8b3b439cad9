package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// Dashboard sizing.  The recent-winners window is measured back from the
// latest ceremony year present in the data.
const (
	RecentWinnersYears  = 5
	RecentWinnersLimit  = 20
	TopCategoriesLimit  = 5
	CategoryFilmsLimit  = 20
	HighestGrossingSize = 10
)

// DashboardRepo runs the dashboard queries.  Each method is independent so
// the handler can run them concurrently on the shared pool.
type DashboardRepo struct {
	db *sqlx.DB
}

func NewDashboardRepo(db *sqlx.DB) *DashboardRepo {
	return &DashboardRepo{db: db}
}

// RecentWinners lists winners of the latest RecentWinnersYears years.
func (r *DashboardRepo) RecentWinners(ctx context.Context) ([]model.RecentWinner, error) {
	const q = `
SELECT a.year, a.category, a.film_id, t.primarytitle AS film_title
FROM oscar_awards a
LEFT JOIN title_basics t ON t.tconst = a.film_id
WHERE a.iswinner
  AND a.year > (SELECT MAX(year) FROM oscar_awards) - $1
ORDER BY a.year DESC, a.category ASC, a.id ASC
LIMIT $2`
	out := []model.RecentWinner{}
	if err := r.db.SelectContext(ctx, &out, q, RecentWinnersYears, RecentWinnersLimit); err != nil {
		return nil, fmt.Errorf("recent winners: %w", err)
	}
	return out, nil
}

// TopCategories returns the categories with the most nominations.
func (r *DashboardRepo) TopCategories(ctx context.Context) ([]model.TopCategory, error) {
	const q = `
SELECT category, COUNT(*) AS nominations, COUNT(*) FILTER (WHERE iswinner) AS wins
FROM oscar_awards
GROUP BY category
ORDER BY nominations DESC, category ASC
LIMIT $1`
	out := []model.TopCategory{}
	if err := r.db.SelectContext(ctx, &out, q, TopCategoriesLimit); err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	return out, nil
}

// Stats computes the headline counters in one pass.
func (r *DashboardRepo) Stats(ctx context.Context) (model.DashboardStats, error) {
	const q = `
SELECT COUNT(DISTINCT film_id) AS total_films,
       COUNT(*) AS total_nominations,
       COUNT(*) FILTER (WHERE iswinner) AS total_wins,
       COUNT(DISTINCT category) AS total_categories,
       MIN(year) AS first_year,
       MAX(year) AS last_year
FROM oscar_awards`
	var s model.DashboardStats
	if err := r.db.GetContext(ctx, &s, q); err != nil {
		return s, fmt.Errorf("dashboard stats: %w", err)
	}
	return s, nil
}

// HighestGrossing lists the top earners.  The director column is a
// correlated subquery so films with several directors stay one row.
func (r *DashboardRepo) HighestGrossing(ctx context.Context) ([]model.GrossingFilm, error) {
	const q = `
SELECT t.tconst AS id, t.primarytitle AS title, t.startyear AS year, m.revenue, m.budget,
       (SELECT string_agg(n.primaryname, ', ' ORDER BY n.primaryname, n.nconst)
          FROM title_principals p
          JOIN name_basics n ON n.nconst = p.nconst
         WHERE p.tconst = t.tconst AND p.category = 'director') AS director
FROM title_basics t
JOIN movie_metadata m ON m.imdb_id = t.tconst
WHERE m.revenue > 0
ORDER BY m.revenue DESC, t.tconst ASC
LIMIT $1`
	out := []model.GrossingFilm{}
	if err := r.db.SelectContext(ctx, &out, q, HighestGrossingSize); err != nil {
		return nil, fmt.Errorf("highest grossing: %w", err)
	}
	return out, nil
}

// CategoryFilms lists the latest nominated films of one category.
func (r *DashboardRepo) CategoryFilms(ctx context.Context, category string) ([]model.CategoryFilm, error) {
	const q = `
SELECT a.film_id, t.primarytitle AS film_title, a.year, a.iswinner AS is_winner
FROM oscar_awards a
LEFT JOIN title_basics t ON t.tconst = a.film_id
WHERE a.category = $1
ORDER BY a.year DESC, a.iswinner DESC, a.id ASC
LIMIT $2`
	out := []model.CategoryFilm{}
	if err := r.db.SelectContext(ctx, &out, q, category, CategoryFilmsLimit); err != nil {
		return nil, fmt.Errorf("films for category %q: %w", category, err)
	}
	return out, nil
}
