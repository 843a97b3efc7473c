package core

import "testing"

func TestOutputName(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"visits.xlsx", DedupSuffix, "visits_dedup.xlsx"},
		{"data/visits.csv", DedupSuffix, "data/visits_dedup.xlsx"},
		{"report.v2.xlsm", ExtractSuffix, "report.v2_store_links.xlsx"},
		{"noext", DedupSuffix, "noext_dedup.xlsx"},
		{"", DedupSuffix, "result_dedup.xlsx"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.input, tt.suffix); got != tt.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}
