package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// AwardRepo reads the oscar_awards table.
type AwardRepo struct {
	db *sqlx.DB
}

func NewAwardRepo(db *sqlx.DB) *AwardRepo {
	return &AwardRepo{db: db}
}

// AwardQuery filters the nomination list.  Zero values disable a filter.
type AwardQuery struct {
	Year        int
	Category    string
	WinnersOnly bool
	SortBy      string // year | category
	Order       Order
	Limit       int
}

const awardSelect = `
SELECT a.id, a.category, a.year, a.film_id, t.primarytitle AS film_title, a.iswinner AS is_winner,
       COALESCE((SELECT array_agg(n.primaryname ORDER BY n.primaryname, n.nconst)
                   FROM name_basics n
                  WHERE n.nconst = ANY(a.nominee_ids)), '{}') AS nominees
FROM oscar_awards a
LEFT JOIN title_basics t ON t.tconst = a.film_id`

// List returns nominations matching q.
func (r *AwardRepo) List(ctx context.Context, q AwardQuery) ([]model.Award, error) {
	terms := []string{sortTerm("a.year", q.Order), "a.category ASC", "a.id ASC"}
	if q.SortBy == "category" {
		terms = []string{sortTerm("a.category", q.Order), "a.year DESC", "a.id ASC"}
	}
	query, args := newSelect(awardSelect).
		WhereIf(q.Year > 0, "a.year = ?", q.Year).
		WhereIf(q.Category != "", "a.category ILIKE ?", likePattern(q.Category)).
		WhereIf(q.WinnersOnly, "a.iswinner").
		OrderBy(terms...).
		Limit(q.Limit).
		Build()

	out := []model.Award{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return out, nil
}

// ByFilm returns every nomination of one film in chronological order.
func (r *AwardRepo) ByFilm(ctx context.Context, filmID string) ([]model.Award, error) {
	query, args := newSelect(awardSelect).
		Where("a.film_id = ?", filmID).
		OrderBy("a.year ASC", "a.category ASC", "a.id ASC").
		Build()

	out := []model.Award{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("awards for film %s: %w", filmID, err)
	}
	return out, nil
}

// Categories summarises every award category, busiest first.
func (r *AwardRepo) Categories(ctx context.Context) ([]model.CategorySummary, error) {
	const q = `
SELECT category, COUNT(*) AS nominations, COUNT(*) FILTER (WHERE iswinner) AS wins,
       MIN(year) AS first_year, MAX(year) AS last_year
FROM oscar_awards
GROUP BY category
ORDER BY nominations DESC, category ASC`

	out := []model.CategorySummary{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("award categories: %w", err)
	}
	return out, nil
}
