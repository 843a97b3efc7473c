// Package templates holds the HTML components of the web UI.
//
// Components are written in .templ files and compiled with templ generate;
// the generated *_templ.go files are committed. Handlers render the same
// component whether they return a full page or an HTMX fragment.
package templates

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/storelinks/internal/core"
	"github.com/JonMunkholm/storelinks/internal/table"
)

// DefaultMaxRows caps the rows shown per table; downloads are complete.
const DefaultMaxRows = 200

const accept = ".csv,.xlsx,.xlsm"

// IndexParams configures the landing page.
type IndexParams struct {
	URLPrefix   string
	MaxFileSize int64
}

// DedupView is the data of a rendered dedup result.
type DedupView struct {
	Result     *core.DedupResult
	View       string
	DownloadID string
	FileName   string
	MaxRows    int
}

// CompareView is the data of a rendered comparison.
type CompareView struct {
	Result     *core.CompareResult
	DownloadID string
	FileName   string
	MaxRows    int
}

// ExtractView is the data of a rendered hyperlink extraction.
type ExtractView struct {
	Result     *core.ExtractResult
	DownloadID string
	FileName   string
	MaxRows    int
}

// DedupViews are the grouped views a dedup result can be shown as, keyed by
// the form value of the view picker.
var DedupViews = []struct {
	Key, Label, Sheet string
}{
	{"row", "One row per link", core.SheetLinksByRow},
	{"wide", "Links in columns", core.SheetLinksInColumns},
	{"joined", "Links joined per store", core.SheetLinksByStore},
}

// DedupViewSheet maps a view key to its sheet name; unknown keys give the
// joined view.
func DedupViewSheet(key string) string {
	for _, v := range DedupViews {
		if v.Key == key {
			return v.Sheet
		}
	}
	return core.SheetLinksByStore
}

type option struct {
	value, label string
}

func optionsOf(values []string) []option {
	opts := make([]option, len(values))
	for i, v := range values {
		opts[i] = option{v, v}
	}
	return opts
}

// linkOptions leads with the automatic pick and names what it would choose.
func linkOptions(res *core.InspectResult) []option {
	auto := "Detect automatically"
	if len(res.LinkColumns) > 0 {
		auto += " (" + strings.Join(res.LinkColumns, ", ") + ")"
	}
	return append([]option{{"", auto}}, optionsOf(res.Columns)...)
}

func viewOptions() []option {
	opts := make([]option, len(DedupViews))
	for i, v := range DedupViews {
		opts[i] = option{v.Key, v.Label}
	}
	return opts
}

type metric struct {
	label, value string
}

func dedupMetrics(res *core.DedupResult) []metric {
	sum := res.Summary
	return []metric{
		{"Source rows", strconv.Itoa(sum.SourceRows)},
		{"Unique pairs", strconv.Itoa(sum.UniquePairs)},
		{"Stores with links", strconv.Itoa(sum.StoresWithLinks)},
		{"Avg links per store", strconv.FormatFloat(sum.AvgLinks, 'f', -1, 64)},
	}
}

func compareMetrics(res *core.CompareResult) []metric {
	cmp := res.Comparison
	return []metric{
		{"In both", strconv.Itoa(len(cmp.Matched))},
		{"Only in A", strconv.Itoa(len(cmp.OnlyA))},
		{"Only in B", strconv.Itoa(len(cmp.OnlyB))},
	}
}

func extractMetrics(res *core.ExtractResult) []metric {
	return []metric{
		{"Rows read", strconv.Itoa(res.Cells)},
		{"Unique pairs", strconv.Itoa(len(res.Pairs))},
		{"Stores", strconv.Itoa(len(res.Groups))},
	}
}

// summaryLabel appends the row count when the table exists.
func summaryLabel(summary string, t *table.Table) string {
	if t == nil {
		return summary
	}
	return summary + " (" + strconv.Itoa(t.Len()) + ")"
}

func visibleRows(t *table.Table, limit int) [][]string {
	if limit > 0 && len(t.Rows) > limit {
		return t.Rows[:limit]
	}
	return t.Rows
}

func shownRows(t *table.Table, limit int) int {
	return len(visibleRows(t, limit))
}

func megabytes(n int64) int64 {
	return n / (1 << 20)
}
