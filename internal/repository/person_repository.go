package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// PersonRepo serves actors or directors.  Both roles read name_basics; they
// differ in the principal categories that count as a credit and in the
// materialized stats view they rank from.
type PersonRepo struct {
	db         *sqlx.DB
	role       model.Role
	statsView  string         // actor_stats | director_stats
	categories pq.StringArray // title_principals.category values of the role
}

// NewActorRepo returns a PersonRepo over actor and actress credits.
func NewActorRepo(db *sqlx.DB) *PersonRepo {
	return &PersonRepo{db: db, role: model.RoleActor, statsView: "actor_stats", categories: actorCategories}
}

// NewDirectorRepo returns a PersonRepo over director credits.
func NewDirectorRepo(db *sqlx.DB) *PersonRepo {
	return &PersonRepo{db: db, role: model.RoleDirector, statsView: "director_stats", categories: pq.StringArray{"director"}}
}

// Rank modes accepted by Top.
const (
	RankByRatings     = "ratings"
	RankByNominations = "nominations"
	RankByBoxOffice   = "boxOffice"
)

// rankModes maps each mode to its sort column and the filter that keeps
// irrelevant rows (e.g. people with no box office data) out of the ranking.
var rankModes = map[string]struct {
	column string
	filter string
}{
	RankByRatings:     {column: "s.avg_rating", filter: "s.film_count >= 5"},
	RankByNominations: {column: "s.total_nominations", filter: "s.total_nominations > 0"},
	RankByBoxOffice:   {column: "s.total_box_office", filter: "s.total_box_office > 0"},
}

// ValidRankMode reports whether mode is one of the Top sort modes.
func ValidRankMode(mode string) bool {
	_, ok := rankModes[mode]
	return ok
}

// PersonRankQuery selects a ranking mode, direction and size.
type PersonRankQuery struct {
	SortBy string
	Order  Order
	Limit  int
}

func (r *PersonRepo) statsSelect() string {
	return `
SELECT s.nconst AS id, s.primaryname AS name, s.film_count, s.avg_rating,
       s.total_nominations, s.total_wins, s.total_box_office
FROM ` + r.statsView + ` s`
}

// Top ranks people from the stats view.  Unknown modes are the caller's
// problem: handlers reject them before calling.
func (r *PersonRepo) Top(ctx context.Context, q PersonRankQuery) ([]model.PersonStats, error) {
	mode, ok := rankModes[q.SortBy]
	if !ok {
		return nil, fmt.Errorf("unknown rank mode %q", q.SortBy)
	}
	query, args := newSelect(r.statsSelect()).
		Where(mode.filter).
		OrderBy(sortTerm(mode.column, q.Order), "s.nconst ASC").
		Limit(q.Limit).
		Build()

	out := []model.PersonStats{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("top %ss: %w", r.role, err)
	}
	return out, nil
}

// Search matches names case-insensitively, most nominated first.
func (r *PersonRepo) Search(ctx context.Context, name string, limit int) ([]model.PersonStats, error) {
	query, args := newSelect(r.statsSelect()).
		Where("s.primaryname ILIKE ?", likePattern(name)).
		OrderBy(sortTerm("s.total_nominations", Desc), sortTerm("s.film_count", Desc), "s.nconst ASC").
		Limit(limit).
		Build()

	out := []model.PersonStats{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("search %ss: %w", r.role, err)
	}
	return out, nil
}

// ByDecade returns, for every decade, the limit people with the most
// nominations credited in this role.  Rows are ordered by decade and rank.
func (r *PersonRepo) ByDecade(ctx context.Context, limit int) ([]model.DecadePerson, error) {
	const q = `
WITH ranked AS (
    SELECT (a.year / 10) * 10 AS decade,
           n.nconst AS id,
           n.primaryname AS name,
           COUNT(*) AS nominations,
           COUNT(*) FILTER (WHERE a.iswinner) AS wins,
           ROW_NUMBER() OVER (PARTITION BY (a.year / 10) * 10
                              ORDER BY COUNT(*) DESC, COUNT(*) FILTER (WHERE a.iswinner) DESC, n.nconst) AS rn
    FROM oscar_awards a
    CROSS JOIN LATERAL unnest(a.nominee_ids) AS nominee(nconst)
    JOIN name_basics n ON n.nconst = nominee.nconst
    WHERE EXISTS (SELECT 1 FROM title_principals p
                   WHERE p.tconst = a.film_id AND p.nconst = n.nconst AND p.category = ANY($1))
    GROUP BY (a.year / 10) * 10, n.nconst, n.primaryname
)
SELECT decade, id, name, nominations, wins
FROM ranked
WHERE rn <= $2
ORDER BY decade ASC, rn ASC`

	out := []model.DecadePerson{}
	if err := r.db.SelectContext(ctx, &out, q, r.categories, limit); err != nil {
		return nil, fmt.Errorf("%ss by decade: %w", r.role, err)
	}
	return out, nil
}

// PersonDetailRow is the raw detail row.  Movies is a JSON array that holds
// a null entry when the person has no credits, and each movie's awards
// array holds a null entry when the movie has no nomination for them.
type PersonDetailRow struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	Professions      pq.StringArray `db:"professions"`
	FilmCount        *int64         `db:"film_count"`
	AvgRating        *float64       `db:"avg_rating"`
	TotalNominations *int64         `db:"total_nominations"`
	TotalWins        *int64         `db:"total_wins"`
	TotalBoxOffice   *int64         `db:"total_box_office"`
	Movies           types.JSONText `db:"movies"`
}

func (r *PersonRepo) detailQuery() string {
	return `
WITH person AS (
    SELECT n.nconst, n.primaryname, n.primaryprofession
    FROM name_basics n
    WHERE n.nconst = $1
), movies AS (
    SELECT t.tconst, t.primarytitle, t.startyear, r.averagerating
    FROM title_principals p
    JOIN title_basics t ON t.tconst = p.tconst
    LEFT JOIN title_ratings r ON r.tconst = t.tconst
    WHERE p.nconst = $1 AND p.category = ANY($2)
), movie_awards AS (
    SELECT mv.tconst,
           json_agg(CASE WHEN a.id IS NULL THEN NULL
                         ELSE json_build_object('category', a.category, 'year', a.year, 'is_winner', a.iswinner) END
                    ORDER BY a.year, a.category, a.id) AS awards
    FROM movies mv
    LEFT JOIN oscar_awards a ON a.film_id = mv.tconst AND $1 = ANY(a.nominee_ids)
    GROUP BY mv.tconst
)
SELECT pe.nconst AS id, pe.primaryname AS name, pe.primaryprofession AS professions,
       s.film_count, s.avg_rating, s.total_nominations, s.total_wins, s.total_box_office,
       json_agg(CASE WHEN mv.tconst IS NULL THEN NULL
                     ELSE json_build_object('id', mv.tconst, 'title', mv.primarytitle, 'year', mv.startyear,
                                            'rating', mv.averagerating, 'awards', ma.awards) END
                ORDER BY mv.startyear DESC NULLS LAST, mv.tconst DESC) AS movies
FROM person pe
LEFT JOIN ` + r.statsView + ` s ON s.nconst = pe.nconst
LEFT JOIN movies mv ON TRUE
LEFT JOIN movie_awards ma ON ma.tconst = mv.tconst
GROUP BY pe.nconst, pe.primaryname, pe.primaryprofession,
         s.film_count, s.avg_rating, s.total_nominations, s.total_wins, s.total_box_office`
}

// Detail loads a person with every credited movie and the nominations that
// name them.  Callers clean the nested arrays.
func (r *PersonRepo) Detail(ctx context.Context, id string) (*PersonDetailRow, error) {
	var row PersonDetailRow
	if err := r.db.GetContext(ctx, &row, r.detailQuery(), id, r.categories); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s detail %s: %w", r.role, id, err)
	}
	return &row, nil
}
