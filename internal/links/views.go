package links

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/storelinks/internal/table"
)

// Column names of the exported views.
const (
	ColStore      = "store"
	ColLink       = "link"
	ColLinks      = "links"
	ColLinkCount  = "unique_link_count"
	ColLinkJoined = "links_joined"
	ColLinksA     = "links_A"
	ColLinksB     = "links_B"
)

// LinkSeparator joins the links of one store inside a single cell.
const LinkSeparator = "\n"

// RowView renders one row per pair: [store, link].
func RowView(pairs []Pair) *table.Table {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p.Store, p.Link}
	}
	return table.New([]string{ColStore, ColLink}, rows)
}

// WideView renders one row per store with links spread over link_1..link_N,
// N being the largest group. Shorter groups are padded with "".
func WideView(groups []Group) *table.Table {
	width := 0
	for _, g := range groups {
		if len(g.Links) > width {
			width = len(g.Links)
		}
	}

	cols := make([]string, 0, width+1)
	cols = append(cols, ColStore)
	for i := 1; i <= width; i++ {
		cols = append(cols, fmt.Sprintf("link_%d", i))
	}

	rows := make([][]string, len(groups))
	for i, g := range groups {
		row := make([]string, width+1)
		row[0] = g.Store
		copy(row[1:], g.Links)
		rows[i] = row
	}
	return table.New(cols, rows)
}

// JoinedView renders [store, unique_link_count, links_joined].
func JoinedView(groups []Group) *table.Table {
	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{g.Store, strconv.Itoa(g.UniqueLinks()), strings.Join(g.Links, LinkSeparator)}
	}
	return table.New([]string{ColStore, ColLinkCount, ColLinkJoined}, rows)
}

// GroupListView renders [store, links] with links joined in one cell.
func GroupListView(groups []Group) *table.Table {
	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{g.Store, strings.Join(g.Links, LinkSeparator)}
	}
	return table.New([]string{ColStore, ColLinks}, rows)
}

// FirstLinkView renders one link per store.
func FirstLinkView(groups []Group) *table.Table {
	return RowView(FirstLinks(groups))
}

// StoreListView renders a single store column.
func StoreListView(stores []string) *table.Table {
	rows := make([][]string, len(stores))
	for i, s := range stores {
		rows[i] = []string{s}
	}
	return table.New([]string{ColStore}, rows)
}

// SideBySideView renders, for each matched store, its links in A and in B.
func SideBySideView(matched []string, a, b []Group) *table.Table {
	ai, bi := GroupIndex(a), GroupIndex(b)
	rows := make([][]string, len(matched))
	for i, s := range matched {
		rows[i] = []string{
			s,
			strings.Join(ai[s].Links, LinkSeparator),
			strings.Join(bi[s].Links, LinkSeparator),
		}
	}
	return table.New([]string{ColStore, ColLinksA, ColLinksB}, rows)
}

// SummaryView renders the run summary as a single row.
func SummaryView(s Summary) *table.Table {
	return table.New(
		[]string{
			"source_rows",
			"unique_pairs",
			"stores_with_links",
			"avg_unique_links_per_store",
			"link_columns",
			"store_column",
		},
		[][]string{{
			strconv.Itoa(s.SourceRows),
			strconv.Itoa(s.UniquePairs),
			strconv.Itoa(s.StoresWithLinks),
			strconv.FormatFloat(s.AvgLinks, 'f', -1, 64),
			strings.Join(s.LinkColumns, ", "),
			s.StoreColumn,
		}},
	)
}
