// Package links implements the store/link pipeline: column resolution,
// pair extraction, deduplication, per-store grouping, store-set comparison
// and the tabular views exported to workbooks.
//
// Everything here is pure and synchronous. Input tables are expected to
// have gone through table.Normalize first.
package links

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/JonMunkholm/storelinks/internal/table"
)

var (
	// ErrResolution is returned when no store or link column can be chosen.
	ErrResolution = errors.New("column not resolvable")

	// ErrSchema is returned when an explicitly requested column is absent.
	ErrSchema = errors.New("column not found")
)

// DefaultPreferredLinkColumns is the fallback priority list used when the
// table has no link* columns and the caller made no explicit choice.
var DefaultPreferredLinkColumns = []string{
	"id_visita (URL extraída)",
	"link",
	"id_visita",
	"url",
}

var httpLike = regexp.MustCompile(`(?i)https?://`)

// HasURL reports whether s contains an http:// or https:// substring.
func HasURL(s string) bool {
	return httpLike.MatchString(s)
}

// ResolveStoreColumn picks the store column: the explicit choice when given,
// else a column named "store", else the first column.
func ResolveStoreColumn(t *table.Table, explicit string) (string, error) {
	if explicit != "" {
		if !t.Has(explicit) {
			return "", fmt.Errorf("store column %q: %w (columns: %s)", explicit, ErrSchema, columnList(t))
		}
		return explicit, nil
	}
	if t.Has(table.StoreColumn) {
		return table.StoreColumn, nil
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("store column: %w: table has no columns", ErrResolution)
	}
	return t.Columns[0], nil
}

// ResolveLinkColumns picks the columns holding links, in priority order:
//  1. every column whose name starts with "link" (case-insensitive)
//  2. the explicit column
//  3. the first existing name of preferred (DefaultPreferredLinkColumns when nil)
//  4. the first column, left to right, holding an http-like value
func ResolveLinkColumns(t *table.Table, explicit string, preferred []string) ([]string, error) {
	if cols := PrefixedLinkColumns(t); len(cols) > 0 {
		return cols, nil
	}

	if explicit != "" {
		if !t.Has(explicit) {
			return nil, fmt.Errorf("link column %q: %w (columns: %s)", explicit, ErrSchema, columnList(t))
		}
		return []string{explicit}, nil
	}

	if preferred == nil {
		preferred = DefaultPreferredLinkColumns
	}
	for _, name := range preferred {
		if t.Has(name) {
			return []string{name}, nil
		}
	}

	if cols := URLColumns(t); len(cols) > 0 {
		return cols[:1], nil
	}

	return nil, fmt.Errorf("link column: %w: no link* column and no column with http links (columns: %s)",
		ErrResolution, columnList(t))
}

// PrefixedLinkColumns returns the columns whose name starts with "link",
// ignoring case, in table order.
func PrefixedLinkColumns(t *table.Table) []string {
	var out []string
	for _, c := range t.Columns {
		if strings.HasPrefix(strings.ToLower(c), "link") {
			out = append(out, c)
		}
	}
	return out
}

// URLColumns returns every column with at least one http-like value.
func URLColumns(t *table.Table) []string {
	var out []string
	for i, c := range t.Columns {
		for _, row := range t.Rows {
			if HasURL(table.Cell(row, i)) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func columnList(t *table.Table) string {
	if len(t.Columns) == 0 {
		return "none"
	}
	return strings.Join(t.Columns, ", ")
}
