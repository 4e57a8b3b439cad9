package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/iliyamo/oscar-explorer/internal/views"
)

// table writes tab separated rows aligned into columns.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, headers ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	t.row(toAny(headers)...)
	return t
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func (t *table) row(cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = cell(c)
	}
	fmt.Fprintln(t.tw, strings.Join(parts, "\t"))
}

func (t *table) flush() error { return t.tw.Flush() }

// cell formats nil pointers as "-".
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case *string:
		if x == nil {
			return "-"
		}
		return *x
	case *int:
		if x == nil {
			return "-"
		}
		return strconv.Itoa(*x)
	case *int64:
		if x == nil {
			return "-"
		}
		return strconv.FormatInt(*x, 10)
	case *float64:
		if x == nil {
			return "-"
		}
		return strconv.FormatFloat(*x, 'f', 1, 64)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case bool:
		if x {
			return "yes"
		}
		return ""
	case time.Time:
		return x.Format("2006-01-02")
	case *time.Time:
		if x == nil {
			return "-"
		}
		return x.Format("2006-01-02 15:04")
	default:
		return fmt.Sprint(x)
	}
}

func money(n int64) string {
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String()
}

func moneyp(n *int64) string {
	if n == nil {
		return "-"
	}
	return money(*n)
}

// printNotice shows the page's pending notice, if any.
func printNotice(w io.Writer, n *views.Notifier) {
	if cur, ok := n.Current(); ok {
		fmt.Fprintf(w, "[%s] %s\n", cur.Kind, cur.Message)
	}
}
