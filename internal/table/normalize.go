package table

import (
	"regexp"
	"strings"
)

// StoreColumn is the canonical name of the column holding store names.
const StoreColumn = "store"

// placeholderColumn matches the names given to blank header cells on load.
var placeholderColumn = regexp.MustCompile(`(?i)^Unnamed`)

// IsPlaceholder reports whether a column name was generated for a blank header.
func IsPlaceholder(name string) bool {
	return placeholderColumn.MatchString(strings.TrimSpace(name))
}

// CleanStore trims a store name and collapses inner whitespace runs to one space.
func CleanStore(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize returns a cleaned copy of t: placeholder columns are dropped,
// column names are trimmed and the values of the store column, when present,
// go through CleanStore. The input is not modified.
func Normalize(t *Table) *Table {
	var keep []int
	var cols []string
	for i, c := range t.Columns {
		if IsPlaceholder(c) {
			continue
		}
		keep = append(keep, i)
		cols = append(cols, strings.TrimSpace(c))
	}

	store := -1
	for j, c := range cols {
		if c == StoreColumn {
			store = j
			break
		}
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, len(keep))
		for j, i := range keep {
			if i < len(row) {
				out[j] = row[i]
			}
		}
		if store >= 0 {
			out[store] = CleanStore(out[store])
		}
		rows[r] = out
	}
	return New(cols, rows)
}
