package repositories

import (
	"strconv"
	"strings"
)

// Dialect selects the placeholder syntax of the target database.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// rebind rewrites "?" placeholders to "$1", "$2", ... for Postgres.
// Queries in this package never contain a literal '?'.
func rebind(d Dialect, q string) string {
	if d != Postgres {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
