package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleGroups = []Group{
	{Store: "A", Links: []string{"http://a1", "http://a2", "http://a3"}},
	{Store: "B", Links: []string{"http://b1"}},
}

func TestRowView(t *testing.T) {
	v := RowView([]Pair{{"A", "http://a"}, {"B", "http://b"}})

	assert.Equal(t, []string{"store", "link"}, v.Columns)
	assert.Equal(t, [][]string{{"A", "http://a"}, {"B", "http://b"}}, v.Rows)
}

func TestWideView_PadsShortGroups(t *testing.T) {
	v := WideView(sampleGroups)

	assert.Equal(t, []string{"store", "link_1", "link_2", "link_3"}, v.Columns)
	require.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"B", "http://b1", "", ""}, v.Rows[1])
}

func TestJoinedView(t *testing.T) {
	v := JoinedView(sampleGroups)

	assert.Equal(t, []string{"store", "unique_link_count", "links_joined"}, v.Columns)
	assert.Equal(t, []string{"A", "3", "http://a1\nhttp://a2\nhttp://a3"}, v.Rows[0])
	assert.Equal(t, []string{"B", "1", "http://b1"}, v.Rows[1])
}

func TestSideBySideView(t *testing.T) {
	b := []Group{{Store: "A", Links: []string{"http://x"}}}

	v := SideBySideView([]string{"A", "C"}, sampleGroups, b)

	assert.Equal(t, []string{"store", "links_A", "links_B"}, v.Columns)
	assert.Equal(t, []string{"A", "http://a1\nhttp://a2\nhttp://a3", "http://x"}, v.Rows[0])
	assert.Equal(t, []string{"C", "", ""}, v.Rows[1])
}

func TestSummaryView(t *testing.T) {
	s := Summarize(10, []Pair{{"A", "1"}, {"A", "2"}, {"B", "1"}}, []Group{
		{Store: "A", Links: []string{"1", "2"}},
		{Store: "B", Links: []string{"1"}},
	}, "store", []string{"link_1", "link_2"})

	v := SummaryView(s)

	require.Equal(t, 1, v.Len())
	assert.Equal(t, "10", v.Value(v.Rows[0], "source_rows"))
	assert.Equal(t, "3", v.Value(v.Rows[0], "unique_pairs"))
	assert.Equal(t, "2", v.Value(v.Rows[0], "stores_with_links"))
	assert.Equal(t, "1.5", v.Value(v.Rows[0], "avg_unique_links_per_store"))
	assert.Equal(t, "link_1, link_2", v.Value(v.Rows[0], "link_columns"))
}

func TestAverageLinksPerStore(t *testing.T) {
	assert.Equal(t, 0.0, AverageLinksPerStore(nil))
	assert.Equal(t, 2.0, AverageLinksPerStore(sampleGroups))
	assert.Equal(t, 1.33, AverageLinksPerStore([]Group{
		{Links: []string{"1"}}, {Links: []string{"1"}}, {Links: []string{"1", "2"}},
	}))
}

func TestStoreListView(t *testing.T) {
	v := StoreListView([]string{"A", "B"})

	assert.Equal(t, []string{"store"}, v.Columns)
	assert.Equal(t, 2, v.Len())
}
