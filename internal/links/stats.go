package links

import (
	"github.com/montanaflynn/stats"
)

// Summary describes one dedup run.
type Summary struct {
	SourceRows      int      `json:"sourceRows"`
	UniquePairs     int      `json:"uniquePairs"`
	StoresWithLinks int      `json:"storesWithLinks"`
	AvgLinks        float64  `json:"avgUniqueLinksPerStore"`
	StoreColumn     string   `json:"storeColumn"`
	LinkColumns     []string `json:"linkColumns"`
}

// AverageLinksPerStore returns the mean number of unique links per group,
// rounded to two decimals. It is 0 when there are no groups.
func AverageLinksPerStore(groups []Group) float64 {
	if len(groups) == 0 {
		return 0
	}
	counts := make(stats.Float64Data, len(groups))
	for i, g := range groups {
		counts[i] = float64(g.UniqueLinks())
	}
	mean, err := counts.Mean()
	if err != nil {
		return 0
	}
	rounded, err := stats.Round(mean, 2)
	if err != nil {
		return 0
	}
	return rounded
}

// Summarize builds the run summary from the source table size and results.
func Summarize(sourceRows int, pairs []Pair, groups []Group, storeCol string, linkCols []string) Summary {
	withLinks := 0
	for _, g := range groups {
		if len(g.Links) > 0 {
			withLinks++
		}
	}
	return Summary{
		SourceRows:      sourceRows,
		UniquePairs:     len(pairs),
		StoresWithLinks: withLinks,
		AvgLinks:        AverageLinksPerStore(groups),
		StoreColumn:     storeCol,
		LinkColumns:     append([]string(nil), linkCols...),
	}
}
