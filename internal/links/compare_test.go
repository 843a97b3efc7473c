package links

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/storelinks/internal/table"
)

func TestCompare_Basic(t *testing.T) {
	got := Compare([]string{"Store A", "Store B"}, []string{"Store B", "Store C"})

	assert.Equal(t, []string{"Store B"}, got.Matched)
	assert.Equal(t, []string{"Store A"}, got.OnlyA)
	assert.Equal(t, []string{"Store C"}, got.OnlyB)
}

func TestCompare_EmptySets(t *testing.T) {
	got := Compare(nil, nil)

	assert.Empty(t, got.Matched)
	assert.Empty(t, got.OnlyA)
	assert.Empty(t, got.OnlyB)

	got = Compare([]string{"x"}, nil)
	assert.Equal(t, []string{"x"}, got.OnlyA)
}

func TestCompare_PartitionLaws(t *testing.T) {
	cases := [][2][]string{
		{{"a", "b", "c"}, {"c", "d"}},
		{{"a", "a", "b"}, {"b", "b"}},
		{{}, {"z"}},
		{{"same"}, {"same"}},
	}

	for _, c := range cases {
		a, b := c[0], c[1]
		got := Compare(a, b)

		left := make(map[string]bool)
		for _, v := range append(append([]string{}, got.Matched...), got.OnlyA...) {
			left[v] = true
		}
		for _, v := range got.OnlyB {
			assert.False(t, left[v], "%q in both sides", v)
		}

		union := make(map[string]bool)
		for _, v := range append(append([]string{}, a...), b...) {
			union[v] = true
		}
		all := append(append(append([]string{}, got.Matched...), got.OnlyA...), got.OnlyB...)
		assert.Len(t, all, len(union))
		for _, v := range all {
			assert.True(t, union[v])
		}

		assert.True(t, sort.StringsAreSorted(got.Matched))
		assert.True(t, sort.StringsAreSorted(got.OnlyA))
		assert.True(t, sort.StringsAreSorted(got.OnlyB))
	}
}

func TestStoreSet(t *testing.T) {
	tbl := table.New([]string{"shop"}, [][]string{{" B  x"}, {"A"}, {""}, {"B x"}})

	assert.Equal(t, []string{"A", "B x"}, StoreSet(tbl, "shop"))
	assert.Nil(t, StoreSet(tbl, "missing"))
}
