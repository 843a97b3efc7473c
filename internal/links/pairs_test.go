package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/storelinks/internal/table"
)

func TestExtractPairs_DuplicateRows(t *testing.T) {
	tbl := table.New([]string{"store", "link"}, [][]string{
		{"Store A", "http://x"},
		{"Store A", "http://x"},
		{"Store B", "http://y"},
	})

	pairs := Dedup(ExtractPairs(tbl, "store", []string{"link"}))

	assert.Equal(t, []Pair{
		{Store: "Store A", Link: "http://x"},
		{Store: "Store B", Link: "http://y"},
	}, pairs)
}

func TestExtractPairs_SameLinkInSeveralColumns(t *testing.T) {
	tbl := table.New([]string{"store", "link_1", "link_2"}, [][]string{
		{"Store A", "http://a", "http://a"},
	})

	groups := GroupByStore(ExtractPairs(tbl, "store", []string{"link_1", "link_2"}))

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"http://a"}, groups[0].Links)
}

func TestExtractPairs_ColumnOrderWithinRow(t *testing.T) {
	tbl := table.New([]string{"store", "link_1", "link_2", "link_3"}, [][]string{
		{"S", "http://z", " http://a ", "http://z"},
	})

	pairs := ExtractPairs(tbl, "store", []string{"link_1", "link_2", "link_3"})

	assert.Equal(t, []Pair{{"S", "http://z"}, {"S", "http://a"}}, pairs)
}

func TestExtractPairs_SkipsEmptyStoreAndLinks(t *testing.T) {
	tbl := table.New([]string{"store", "link"}, [][]string{
		{"", "http://orphan"},
		{"   ", "http://orphan"},
		{"Store A", ""},
		{"Store A", "   "},
		{" Store A ", " http://ok "},
	})

	pairs := ExtractPairs(tbl, "store", []string{"link"})

	assert.Equal(t, []Pair{{Store: "Store A", Link: "http://ok"}}, pairs)
}

func TestExtractPairs_UnknownStoreColumn(t *testing.T) {
	tbl := table.New([]string{"store", "link"}, [][]string{{"A", "http://a"}})

	assert.Empty(t, ExtractPairs(tbl, "shop", []string{"link"}))
}

func TestDedup_IdempotentAndUnique(t *testing.T) {
	inputs := [][]Pair{
		nil,
		{{"b", "2"}, {"a", "1"}, {"b", "2"}, {"a", "0"}},
		{{"x", "y"}, {"x", "y"}, {"x", "y"}},
	}

	for _, in := range inputs {
		once := Dedup(in)
		assert.Equal(t, once, Dedup(once))

		seen := make(map[Pair]bool)
		for _, p := range once {
			assert.False(t, seen[p], "duplicate pair %v", p)
			seen[p] = true
		}
	}
}

func TestDedup_SortsByStoreThenLink(t *testing.T) {
	got := Dedup([]Pair{{"b", "1"}, {"a", "2"}, {"a", "1"}})

	assert.Equal(t, []Pair{{"a", "1"}, {"a", "2"}, {"b", "1"}}, got)
}

func TestGroupByStore_SortedAndUnique(t *testing.T) {
	pairs := []Pair{
		{"Store B", "http://b2"},
		{"Store A", "http://a1"},
		{"Store B", "http://b1"},
		{"Store B", "http://b2"},
	}

	groups := GroupByStore(pairs)

	require.Len(t, groups, 2)
	assert.Equal(t, "Store A", groups[0].Store)
	assert.Equal(t, "Store B", groups[1].Store)
	// links follow the sorted pair sequence
	assert.Equal(t, []string{"http://b1", "http://b2"}, groups[1].Links)
	assert.Equal(t, 2, groups[1].UniqueLinks())
}

func TestAggregate_KeepsStoresWithoutLinks(t *testing.T) {
	tbl := table.New([]string{"store", "link_1", "link_2"}, [][]string{
		{"Store B", "http://b2", "http://b1"},
		{"Store A", "", ""},
		{"Store B", "http://b1", "http://b3"},
		{"", "http://lost", ""},
	})

	groups := Aggregate(tbl, "store", []string{"link_1", "link_2"})

	assert.Equal(t, []Group{
		{Store: "Store A", Links: []string{}},
		{Store: "Store B", Links: []string{"http://b2", "http://b1", "http://b3"}},
	}, groups)
}

func TestAggregate_NoLinkColumns(t *testing.T) {
	tbl := table.New([]string{"store"}, [][]string{{"A"}, {"A"}, {"B"}})

	groups := Aggregate(tbl, "store", nil)

	assert.Equal(t, []Group{{Store: "A", Links: []string{}}, {Store: "B", Links: []string{}}}, groups)
}

func TestFirstLinks(t *testing.T) {
	groups := []Group{
		{Store: "A", Links: []string{"http://1", "http://2"}},
		{Store: "B", Links: []string{}},
	}

	assert.Equal(t, []Pair{{"A", "http://1"}}, FirstLinks(groups))
}

func TestEmptyTable_ProducesEmptyResults(t *testing.T) {
	tbl := table.Empty("store", "link_1")

	pairs := Dedup(ExtractPairs(tbl, "store", []string{"link_1"}))
	groups := GroupByStore(pairs)

	assert.Empty(t, pairs)
	assert.Empty(t, groups)
	assert.Equal(t, 0, RowView(pairs).Len())
	assert.Equal(t, []string{"store"}, WideView(groups).Columns)
	assert.Equal(t, 0, WideView(groups).Len())
	assert.Equal(t, 0, JoinedView(groups).Len())
	assert.Equal(t, 0.0, AverageLinksPerStore(groups))
}

func TestRaggedRows_DoNotPanic(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"store", "link_1", "link_2"},
		Rows:    [][]string{{"A", "http://a"}, {}, {"B", "", "http://b"}},
	}

	assert.Equal(t, []Pair{{Store: "A", Link: "http://a"}, {Store: "B", Link: "http://b"}},
		ExtractPairs(tbl, "store", []string{"link_1", "link_2"}))
	assert.Equal(t, []string{"link_1", "link_2"}, URLColumns(tbl))
	assert.Len(t, Aggregate(tbl, "store", []string{"link_1", "link_2"}), 2)
}
