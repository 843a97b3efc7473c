package core

import (
	"path/filepath"
	"strings"
)

// Output name suffixes and the fixed comparison name.
const (
	DedupSuffix       = "_dedup"
	ExtractSuffix     = "_store_links"
	CompareOutputName = "store_comparison.xlsx"
)

// OutputName derives the result workbook path for input: same directory,
// the input stem plus suffix, always with the .xlsx extension.
//
//	OutputName("data/visits.csv", DedupSuffix) // "data/visits_dedup.xlsx"
func OutputName(input, suffix string) string {
	if input == "" {
		return "result" + suffix + ".xlsx"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ".xlsx"
}
