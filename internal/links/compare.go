package links

import (
	"sort"

	"github.com/JonMunkholm/storelinks/internal/table"
)

// Comparison splits two store sets into shared and one-sided names.
type Comparison struct {
	Matched []string `json:"matched"`
	OnlyA   []string `json:"onlyA"`
	OnlyB   []string `json:"onlyB"`
}

func set(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Compare returns A∩B, A−B and B−A, each sorted and free of duplicates.
func Compare(a, b []string) Comparison {
	as, bs := set(a), set(b)

	matched := make(map[string]struct{})
	onlyA := make(map[string]struct{})
	for v := range as {
		if _, ok := bs[v]; ok {
			matched[v] = struct{}{}
		} else {
			onlyA[v] = struct{}{}
		}
	}
	onlyB := make(map[string]struct{})
	for v := range bs {
		if _, ok := as[v]; !ok {
			onlyB[v] = struct{}{}
		}
	}

	return Comparison{
		Matched: sortedKeys(matched),
		OnlyA:   sortedKeys(onlyA),
		OnlyB:   sortedKeys(onlyB),
	}
}

// StoreSet returns the distinct, cleaned, non-empty store names of col.
func StoreSet(t *table.Table, col string) []string {
	values, ok := t.Column(col)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = table.CleanStore(v); v != "" {
			seen[v] = struct{}{}
		}
	}
	return sortedKeys(seen)
}
