package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// GenreRepo aggregates films and nominations per genre.
type GenreRepo struct {
	db *sqlx.DB
}

func NewGenreRepo(db *sqlx.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// genreSortColumns whitelists the sortBy values of GET /api/genres.
var genreSortColumns = map[string]string{
	"count":       "film_count",
	"rating":      "avg_rating",
	"name":        "fg.genre",
	"nominations": "nominations",
}

// GenreSortColumn reports whether sortBy is a known genre sort key.
func GenreSortColumn(sortBy string) bool {
	_, ok := genreSortColumns[sortBy]
	return ok
}

// GenreListQuery sorts the genre list.
type GenreListQuery struct {
	SortBy string
	Order  Order
	Limit  int
}

const genreListSelect = `
WITH film_genres AS (
    SELECT t.tconst, unnest(t.genres) AS genre
    FROM title_basics t
), noms AS (
    SELECT fg.genre, COUNT(*) AS nominations, COUNT(*) FILTER (WHERE a.iswinner) AS wins
    FROM oscar_awards a
    JOIN film_genres fg ON fg.tconst = a.film_id
    GROUP BY fg.genre
)
SELECT fg.genre, COUNT(*) AS film_count,
       ROUND(AVG(r.averagerating)::numeric, 2)::float8 AS avg_rating,
       COALESCE(n.nominations, 0) AS nominations,
       COALESCE(n.wins, 0) AS wins
FROM film_genres fg
LEFT JOIN title_ratings r ON r.tconst = fg.tconst
LEFT JOIN noms n ON n.genre = fg.genre`

// List returns every genre with its film count, average rating and
// nomination totals.
func (r *GenreRepo) List(ctx context.Context, q GenreListQuery) ([]model.GenreStats, error) {
	col, ok := genreSortColumns[q.SortBy]
	if !ok {
		col = genreSortColumns["count"]
	}
	query, args := newSelect(genreListSelect).
		Where("fg.genre IS NOT NULL").
		GroupBy("fg.genre, n.nominations, n.wins").
		OrderBy(sortTerm(col, q.Order), "fg.genre ASC").
		Limit(q.Limit).
		Build()

	out := []model.GenreStats{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return out, nil
}

// ByDecade returns the limit most nominated genres of every decade.
func (r *GenreRepo) ByDecade(ctx context.Context, limit int) ([]model.DecadeGenre, error) {
	const q = `
WITH ranked AS (
    SELECT (a.year / 10) * 10 AS decade,
           g.genre,
           COUNT(*) AS nominations,
           COUNT(*) FILTER (WHERE a.iswinner) AS wins,
           ROW_NUMBER() OVER (PARTITION BY (a.year / 10) * 10 ORDER BY COUNT(*) DESC, g.genre) AS rn
    FROM oscar_awards a
    JOIN title_basics t ON t.tconst = a.film_id
    CROSS JOIN LATERAL unnest(t.genres) AS g(genre)
    GROUP BY (a.year / 10) * 10, g.genre
)
SELECT decade, genre, nominations, wins
FROM ranked
WHERE rn <= $1
ORDER BY decade ASC, rn ASC`

	out := []model.DecadeGenre{}
	if err := r.db.SelectContext(ctx, &out, q, limit); err != nil {
		return nil, fmt.Errorf("genres by decade: %w", err)
	}
	return out, nil
}
