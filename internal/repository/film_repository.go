package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// FilmRepo runs the film listing and detail queries.
type FilmRepo struct {
	db *sqlx.DB
}

func NewFilmRepo(db *sqlx.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

// actorCategories are the title_principals.category values that count as
// acting credits.
var actorCategories = pq.StringArray{"actor", "actress"}

// filmSortColumns whitelists the sortBy values of film listings.
var filmSortColumns = map[string]string{
	"rating": "r.averagerating",
	"votes":  "r.numvotes",
	"year":   "t.startyear",
	"title":  "t.primarytitle",
}

// FilmSortColumn reports whether sortBy is a known film sort key.
func FilmSortColumn(sortBy string) bool {
	_, ok := filmSortColumns[sortBy]
	return ok
}

const filmSummarySelect = `
SELECT t.tconst AS id, t.primarytitle AS title, t.startyear AS year, t.genres,
       r.averagerating AS rating, r.numvotes AS votes
FROM title_basics t
LEFT JOIN title_ratings r ON r.tconst = t.tconst`

// FilmListQuery filters and sorts a film listing.  Genre and MinVotes are
// optional predicates.
type FilmListQuery struct {
	Genre    string
	MinVotes int
	SortBy   string
	Order    Order
	Limit    int
}

func (q FilmListQuery) orderTerms() []string {
	col, ok := filmSortColumns[q.SortBy]
	if !ok {
		col = filmSortColumns["rating"]
	}
	return []string{sortTerm(col, q.Order), "t.tconst ASC"}
}

// TopRated lists rated films with at least MinVotes votes.
func (r *FilmRepo) TopRated(ctx context.Context, q FilmListQuery) ([]model.FilmSummary, error) {
	query, args := newSelect(filmSummarySelect).
		Where("r.numvotes >= ?", q.MinVotes).
		WhereIf(q.Genre != "", "? = ANY(t.genres)", q.Genre).
		OrderBy(q.orderTerms()...).
		Limit(q.Limit).
		Build()

	out := []model.FilmSummary{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("top rated films: %w", err)
	}
	return out, nil
}

// ByGenre lists films tagged with genre.
func (r *FilmRepo) ByGenre(ctx context.Context, q FilmListQuery) ([]model.FilmSummary, error) {
	query, args := newSelect(filmSummarySelect).
		Where("? = ANY(t.genres)", q.Genre).
		WhereIf(q.MinVotes > 0, "r.numvotes >= ?", q.MinVotes).
		OrderBy(q.orderTerms()...).
		Limit(q.Limit).
		Build()

	out := []model.FilmSummary{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("films by genre: %w", err)
	}
	return out, nil
}

// Search matches titles case-insensitively, most voted first.
func (r *FilmRepo) Search(ctx context.Context, term string, limit int) ([]model.FilmSummary, error) {
	query, args := newSelect(filmSummarySelect).
		Where("t.primarytitle ILIKE ?", likePattern(term)).
		OrderBy(sortTerm("r.numvotes", Desc), "t.tconst ASC").
		Limit(limit).
		Build()

	out := []model.FilmSummary{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	return out, nil
}

// ROIQuery bounds the highest-ROI ranking.  Zero YearStart/YearEnd leave
// that side of the range open.
type ROIQuery struct {
	YearStart int
	YearEnd   int
	MinBudget int64
	Limit     int
}

const roiSelect = `
SELECT t.tconst AS id, t.startyear AS year, t.primarytitle AS film_title,
       r.averagerating AS imdb_rating, m.budget, m.revenue,
       EXISTS (SELECT 1 FROM oscar_awards a WHERE a.film_id = t.tconst AND a.iswinner) AS won_oscar,
       (SELECT string_agg(n.primaryname, ', ' ORDER BY n.primaryname, n.nconst)
          FROM title_principals p
          JOIN name_basics n ON n.nconst = p.nconst
         WHERE p.tconst = t.tconst AND p.category = 'director') AS director
FROM title_basics t
JOIN movie_metadata m ON m.imdb_id = t.tconst
LEFT JOIN title_ratings r ON r.tconst = t.tconst`

// HighestROI ranks films by revenue/budget.  The percentage itself is
// computed by the caller from the returned budget and revenue.
func (r *FilmRepo) HighestROI(ctx context.Context, q ROIQuery) ([]model.ROIFilm, error) {
	query, args := newSelect(roiSelect).
		Where("m.budget > 0").
		Where("m.revenue > 0").
		Where("t.startyear IS NOT NULL").
		WhereIf(q.MinBudget > 0, "m.budget >= ?", q.MinBudget).
		WhereIf(q.YearStart > 0, "t.startyear >= ?", q.YearStart).
		WhereIf(q.YearEnd > 0, "t.startyear <= ?", q.YearEnd).
		OrderBy("(m.revenue::numeric / m.budget) DESC", "t.tconst ASC").
		Limit(q.Limit).
		Build()

	out := []model.ROIFilm{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("highest roi films: %w", err)
	}
	return out, nil
}

// FindActorByName resolves an exact (case-insensitive) name to the actor
// with the most credits.  It returns ErrNotFound when nobody matches.
func (r *FilmRepo) FindActorByName(ctx context.Context, name string) (*model.PersonRef, error) {
	const q = `
SELECT n.nconst AS id, n.primaryname AS name
FROM name_basics n
WHERE LOWER(n.primaryname) = LOWER($1)
  AND EXISTS (SELECT 1 FROM title_principals p WHERE p.nconst = n.nconst AND p.category = ANY($2))
ORDER BY (SELECT COUNT(*) FROM title_principals p WHERE p.nconst = n.nconst) DESC, n.nconst ASC
LIMIT 1`
	var p model.PersonRef
	if err := r.db.GetContext(ctx, &p, q, strings.TrimSpace(name), actorCategories); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find actor %q: %w", name, err)
	}
	return &p, nil
}

// FilmsByActor lists the films an actor is credited in.  Only year and
// title are valid sort keys here.
func (r *FilmRepo) FilmsByActor(ctx context.Context, actorID string, sortBy string, order Order, limit int) ([]model.FilmSummary, error) {
	col := "t.startyear"
	if sortBy == "title" {
		col = "t.primarytitle"
	}
	query, args := newSelect(filmSummarySelect).
		Where("t.tconst IN (SELECT p.tconst FROM title_principals p WHERE p.nconst = ? AND p.category = ANY(?))", actorID, actorCategories).
		OrderBy(sortTerm(col, order), "t.tconst ASC").
		Limit(limit).
		Build()

	out := []model.FilmSummary{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("films by actor %s: %w", actorID, err)
	}
	return out, nil
}

// FilmDetailRow is the raw detail row.  The nested lists arrive as JSON
// arrays built in SQL and may contain null entries.
type FilmDetailRow struct {
	ID        string         `db:"id"`
	Title     string         `db:"title"`
	Year      *int           `db:"year"`
	Genres    pq.StringArray `db:"genres"`
	Rating    *float64       `db:"rating"`
	Votes     *int64         `db:"votes"`
	Budget    *int64         `db:"budget"`
	Revenue   *int64         `db:"revenue"`
	Directors types.JSONText `db:"directors"`
	Cast      types.JSONText `db:"cast_members"`
	Awards    types.JSONText `db:"awards"`
}

const filmDetailQuery = `
SELECT t.tconst AS id, t.primarytitle AS title, t.startyear AS year, t.genres,
       r.averagerating AS rating, r.numvotes AS votes, m.budget, m.revenue,
       COALESCE((SELECT json_agg(json_build_object('id', n.nconst, 'name', n.primaryname)
                                 ORDER BY n.primaryname, n.nconst)
                   FROM title_principals p JOIN name_basics n ON n.nconst = p.nconst
                  WHERE p.tconst = t.tconst AND p.category = 'director'), '[]'::json) AS directors,
       COALESCE((SELECT json_agg(json_build_object('id', n.nconst, 'name', n.primaryname, 'category', p.category)
                                 ORDER BY n.primaryname, n.nconst)
                   FROM title_principals p JOIN name_basics n ON n.nconst = p.nconst
                  WHERE p.tconst = t.tconst AND p.category = ANY($2)), '[]'::json) AS cast_members,
       COALESCE((SELECT json_agg(json_build_object('category', a.category, 'year', a.year, 'is_winner', a.iswinner)
                                 ORDER BY a.year, a.category, a.id)
                   FROM oscar_awards a
                  WHERE a.film_id = t.tconst), '[]'::json) AS awards
FROM title_basics t
LEFT JOIN title_ratings r ON r.tconst = t.tconst
LEFT JOIN movie_metadata m ON m.imdb_id = t.tconst
WHERE t.tconst = $1`

// Detail loads one film with its directors, cast and nominations.
func (r *FilmRepo) Detail(ctx context.Context, id string) (*FilmDetailRow, error) {
	var row FilmDetailRow
	if err := r.db.GetContext(ctx, &row, filmDetailQuery, id, actorCategories); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("film detail %s: %w", id, err)
	}
	return &row, nil
}
