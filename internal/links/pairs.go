package links

import (
	"sort"
	"strings"

	"github.com/JonMunkholm/storelinks/internal/table"
)

// Pair associates one link with one store.
type Pair struct {
	Store string `json:"store"`
	Link  string `json:"link"`
}

// Group holds the distinct links of one store in first-seen order.
type Group struct {
	Store string   `json:"store"`
	Links []string `json:"links"`
}

// UniqueLinks is the number of distinct links in the group.
func (g Group) UniqueLinks() int {
	return len(g.Links)
}

// rowLinks collects the trimmed, non-empty values of cols in column order,
// without repeats.
func rowLinks(row []string, cols []int) []string {
	var out []string
	seen := make(map[string]struct{}, len(cols))
	for _, i := range cols {
		v := strings.TrimSpace(table.Cell(row, i))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func indexes(t *table.Table, names []string) []int {
	out := make([]int, 0, len(names))
	for _, n := range names {
		if i, ok := t.Index(n); ok {
			out = append(out, i)
		}
	}
	return out
}

// ExtractPairs emits one pair per distinct (store, link) found in t, in
// first-seen order. Rows with an empty store or without a usable link are
// skipped. Unknown column names are ignored.
func ExtractPairs(t *table.Table, storeCol string, linkCols []string) []Pair {
	si, ok := t.Index(storeCol)
	if !ok {
		return nil
	}
	li := indexes(t, linkCols)

	var out []Pair
	seen := make(map[Pair]struct{})
	for _, row := range t.Rows {
		store := strings.TrimSpace(table.Cell(row, si))
		if store == "" {
			continue
		}
		for _, link := range rowLinks(row, li) {
			p := Pair{Store: store, Link: link}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Dedup removes exact duplicates and sorts by store, then link.
func Dedup(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	seen := make(map[Pair]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Store != out[j].Store {
			return out[i].Store < out[j].Store
		}
		return out[i].Link < out[j].Link
	})
	return out
}

// GroupByStore groups the deduplicated, sorted pairs by store.
func GroupByStore(pairs []Pair) []Group {
	var out []Group
	for _, p := range Dedup(pairs) {
		if n := len(out); n > 0 && out[n-1].Store == p.Store {
			out[n-1].Links = append(out[n-1].Links, p.Link)
			continue
		}
		out = append(out, Group{Store: p.Store, Links: []string{p.Link}})
	}
	return out
}

// Aggregate groups links by store across the whole table. Unlike
// GroupByStore it is driven by the stores present in t: a store without any
// usable link is still returned with an empty Links slice. Links keep their
// first-seen row and column order. Groups are sorted by store.
func Aggregate(t *table.Table, storeCol string, linkCols []string) []Group {
	si, ok := t.Index(storeCol)
	if !ok {
		return nil
	}
	li := indexes(t, linkCols)

	pos := make(map[string]int)
	seen := make(map[Pair]struct{})
	var out []Group
	for _, row := range t.Rows {
		store := strings.TrimSpace(table.Cell(row, si))
		if store == "" {
			continue
		}
		g, ok := pos[store]
		if !ok {
			g = len(out)
			pos[store] = g
			out = append(out, Group{Store: store, Links: []string{}})
		}
		for _, link := range rowLinks(row, li) {
			p := Pair{Store: store, Link: link}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out[g].Links = append(out[g].Links, link)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Store < out[j].Store })
	return out
}

// FirstLinks returns one pair per group holding the group's first link.
// Groups without links are skipped.
func FirstLinks(groups []Group) []Pair {
	out := make([]Pair, 0, len(groups))
	for _, g := range groups {
		if len(g.Links) == 0 {
			continue
		}
		out = append(out, Pair{Store: g.Store, Link: g.Links[0]})
	}
	return out
}

// GroupIndex maps store names to their group.
func GroupIndex(groups []Group) map[string]Group {
	out := make(map[string]Group, len(groups))
	for _, g := range groups {
		out[g.Store] = g
	}
	return out
}
