package links

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JonMunkholm/storelinks/internal/table"
)

// Cell is the raw content of a store/link cell pair read straight from a
// worksheet, before any URL has been resolved.
type Cell struct {
	Row       int    `json:"row"`
	Store     string `json:"store"`
	Value     string `json:"value"`
	Formula   string `json:"formula,omitempty"`
	Hyperlink string `json:"hyperlink,omitempty"`
}

var (
	quotedURL = regexp.MustCompile(`(?i)"(https?://[^"]+)"`)
	guid      = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// hyperlinkFuncs are the spellings of the HYPERLINK worksheet function.
var hyperlinkFuncs = []string{"HYPERLINK(", "HIPERVINCULO("}

// URLFromFormula returns the first quoted http(s) URL of a HYPERLINK formula.
// The formula may be given with or without its leading "=".
func URLFromFormula(formula string) (string, bool) {
	f := strings.TrimPrefix(strings.TrimSpace(formula), "=")
	upper := strings.ToUpper(f)
	for _, fn := range hyperlinkFuncs {
		if strings.HasPrefix(upper, fn) {
			if m := quotedURL.FindStringSubmatch(f); m != nil {
				return m[1], true
			}
			return "", false
		}
	}
	return "", false
}

// IsGUID reports whether s is a bare 36 character GUID.
func IsGUID(s string) bool {
	return guid.MatchString(strings.TrimSpace(s))
}

// CellURL resolves the link held by c. The hyperlink target wins, then a
// HYPERLINK formula, then a bare GUID appended to prefix (when prefix is set).
func CellURL(c Cell, prefix string) (string, bool) {
	if u := strings.TrimSpace(c.Hyperlink); u != "" {
		return u, true
	}
	formula := c.Formula
	if formula == "" && strings.HasPrefix(c.Value, "=") {
		formula = c.Value
	}
	if u, ok := URLFromFormula(formula); ok {
		return strings.TrimSpace(u), true
	}
	if prefix != "" && IsGUID(c.Value) {
		return prefix + strings.TrimSpace(c.Value), true
	}
	return "", false
}

// CellPairs resolves every cell and returns the pairs with a non-empty store
// and a resolvable URL, in row order.
func CellPairs(cells []Cell, prefix string) []Pair {
	var out []Pair
	for _, c := range cells {
		store := strings.TrimSpace(c.Store)
		if store == "" {
			continue
		}
		if u, ok := CellURL(c, prefix); ok {
			out = append(out, Pair{Store: store, Link: u})
		}
	}
	return out
}

// DiagnosticView shows, for the first limit cells, what was read and which
// URL was detected. limit <= 0 means all cells.
func DiagnosticView(cells []Cell, prefix string, limit int) *table.Table {
	if limit > 0 && len(cells) > limit {
		cells = cells[:limit]
	}
	rows := make([][]string, len(cells))
	for i, c := range cells {
		u, _ := CellURL(c, prefix)
		rows[i] = []string{strconv.Itoa(c.Row), c.Store, c.Value, c.Formula, c.Hyperlink, u}
	}
	return table.New([]string{"row", "store", "cell_value", "formula", "hyperlink_target", "detected_url"}, rows)
}
