package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// Order is a whitelisted sort direction.
type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// ParseOrder maps "asc"/"desc" (any case) to an Order and falls back to def
// for anything else.
func ParseOrder(s string, def Order) Order {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc
	case "desc":
		return Desc
	}
	return def
}

// String returns the lower-case form echoed back to clients.
func (o Order) String() string { return strings.ToLower(string(o)) }

// selectQuery assembles a SELECT from a fixed base plus optional
// predicates.  Conditions are written with ? placeholders and only values
// travel as arguments; Build rebinds to PostgreSQL's $n form.  Sort
// expressions must come from a whitelist, never from request input.
type selectQuery struct {
	base    string
	where   []string
	args    []any
	groupBy string
	orderBy []string
	limit   int
}

func newSelect(base string) *selectQuery {
	return &selectQuery{base: base}
}

// Where adds a predicate joined with AND.
func (q *selectQuery) Where(cond string, args ...any) *selectQuery {
	q.where = append(q.where, cond)
	q.args = append(q.args, args...)
	return q
}

// WhereIf adds the predicate only when ok is true.
func (q *selectQuery) WhereIf(ok bool, cond string, args ...any) *selectQuery {
	if ok {
		q.Where(cond, args...)
	}
	return q
}

func (q *selectQuery) GroupBy(expr string) *selectQuery {
	q.groupBy = expr
	return q
}

// OrderBy appends sort terms.  Callers finish with a unique column so the
// row order is fully determined.
func (q *selectQuery) OrderBy(terms ...string) *selectQuery {
	q.orderBy = append(q.orderBy, terms...)
	return q
}

// Limit sets a LIMIT; zero or negative means no limit.
func (q *selectQuery) Limit(n int) *selectQuery {
	q.limit = n
	return q
}

// Build returns the statement in $n form and its arguments.
func (q *selectQuery) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(q.base))
	args := append([]any(nil), q.args...)
	if len(q.where) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(q.where, " AND "))
	}
	if q.groupBy != "" {
		sb.WriteString("\nGROUP BY ")
		sb.WriteString(q.groupBy)
	}
	if len(q.orderBy) > 0 {
		sb.WriteString("\nORDER BY ")
		sb.WriteString(strings.Join(q.orderBy, ", "))
	}
	if q.limit > 0 {
		sb.WriteString("\nLIMIT ?")
		args = append(args, q.limit)
	}
	return sqlx.Rebind(sqlx.DOLLAR, sb.String()), args
}

// sortTerm renders "<expr> <dir> NULLS LAST".
func sortTerm(expr string, o Order) string {
	return expr + " " + string(o) + " NULLS LAST"
}

// likePattern escapes LIKE wildcards in s and wraps it for a contains match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
