package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const visitPrefix = "https://example.com/visit/"

func TestURLFromFormula(t *testing.T) {
	tests := []struct {
		formula string
		want    string
		ok      bool
	}{
		{`=HYPERLINK("https://x.test/a","open")`, "https://x.test/a", true},
		{`HIPERVINCULO("http://x.test/b";"ver")`, "http://x.test/b", true},
		{`=hyperlink("HTTP://X.test/c")`, "HTTP://X.test/c", true},
		{`=HYPERLINK(A1,"open")`, "", false},
		{`=SUM(A1:A2)`, "", false},
		{``, "", false},
	}

	for _, tt := range tests {
		got, ok := URLFromFormula(tt.formula)
		assert.Equal(t, tt.ok, ok, tt.formula)
		assert.Equal(t, tt.want, got, tt.formula)
	}
}

func TestCellURL_Priority(t *testing.T) {
	const id = "0a1b2c3d-0000-1111-2222-333344445555"

	tests := []struct {
		name string
		cell Cell
		want string
		ok   bool
	}{
		{"hyperlink target first", Cell{Hyperlink: "https://real", Formula: `HYPERLINK("https://formula")`, Value: id}, "https://real", true},
		{"formula second", Cell{Formula: `HYPERLINK("https://formula","t")`, Value: "t"}, "https://formula", true},
		{"formula in value", Cell{Value: `=HYPERLINK("https://inline")`}, "https://inline", true},
		{"guid last", Cell{Value: " " + id + " "}, visitPrefix + id, true},
		{"plain text", Cell{Value: "nothing"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CellURL(tt.cell, visitPrefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellURL_GUIDNeedsPrefix(t *testing.T) {
	_, ok := CellURL(Cell{Value: "0a1b2c3d-0000-1111-2222-333344445555"}, "")

	assert.False(t, ok)
}

func TestCellPairs(t *testing.T) {
	cells := []Cell{
		{Row: 2, Store: " Store A ", Hyperlink: "https://a"},
		{Row: 3, Store: "", Hyperlink: "https://orphan"},
		{Row: 4, Store: "Store B", Value: "no link"},
	}

	assert.Equal(t, []Pair{{"Store A", "https://a"}}, CellPairs(cells, visitPrefix))
}

func TestDiagnosticView_Limit(t *testing.T) {
	cells := []Cell{{Row: 2, Store: "A", Hyperlink: "https://a"}, {Row: 3}, {Row: 4}}

	v := DiagnosticView(cells, "", 2)

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "https://a", v.Value(v.Rows[0], "detected_url"))
}
