package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/storelinks/internal/links"
	"github.com/JonMunkholm/storelinks/internal/table"
)

func TestSheetName(t *testing.T) {
	assert.Equal(t, "short", SheetName("short"))

	long := strings.Repeat("x", 40)
	assert.Equal(t, strings.Repeat("x", 31), SheetName(long))

	accented := strings.Repeat("é", 35)
	assert.Equal(t, 31, len([]rune(SheetName(accented))))
}

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	groups := []links.Group{
		{Store: "Store A", Links: []string{"http://a1", "http://a2"}},
		{Store: "Store B", Links: []string{"http://b1"}},
	}
	pairs := []links.Pair{{Store: "Store A", Link: "http://a1"}, {Store: "Store A", Link: "http://a2"}, {Store: "Store B", Link: "http://b1"}}
	longName := "a_sheet_name_that_is_far_longer_than_excel_allows"

	sheets := []Sheet{
		{Name: "links_by_row", Table: links.RowView(pairs)},
		{Name: "links_in_columns", Table: links.WideView(groups)},
		{Name: longName, Table: links.JoinedView(groups), Numeric: []string{links.ColLinkCount}},
	}

	data, err := WorkbookBytes(sheets)
	require.NoError(t, err)

	names, err := SheetNames("out.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"links_by_row", "links_in_columns", longName[:31]}, names)

	for _, s := range sheets {
		got, err := Load("out.xlsx", bytes.NewReader(data), SheetName(s.Name))
		require.NoError(t, err, s.Name)
		assert.True(t, s.Table.Equal(got), "sheet %s: got %v / %v", s.Name, got.Columns, got.Rows)
	}
}

func TestWriteWorkbook_NumericCells(t *testing.T) {
	tbl := table.New([]string{"store", "n"}, [][]string{{"A", "2"}, {"B", "n/a"}})

	data, err := WorkbookBytes([]Sheet{{Name: "s", Table: tbl, Numeric: []string{"n"}}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	typ, err := f.GetCellType("s", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)

	v, err := f.GetCellValue("s", "B3")
	require.NoError(t, err)
	assert.Equal(t, "n/a", v)
}

func TestWriteWorkbook_HeaderOnly(t *testing.T) {
	data, err := WorkbookBytes([]Sheet{{Name: "Matched", Table: links.StoreListView(nil)}})
	require.NoError(t, err)

	got, err := Load("out.xlsx", bytes.NewReader(data), "Matched")
	require.NoError(t, err)
	assert.Equal(t, []string{"store"}, got.Columns)
	assert.Equal(t, 0, got.Len())
}

func TestWriteWorkbook_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := WriteWorkbook(&buf, nil)
	assert.True(t, errors.Is(err, ErrFormat))

	err = WriteWorkbook(&buf, []Sheet{
		{Name: "Same", Table: table.Empty("a")},
		{Name: "same", Table: table.Empty("a")},
	})
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestWriteWorkbook_RefusesCellsExcelWouldCut(t *testing.T) {
	many := make([]string, 600)
	for i := range many {
		many[i] = fmt.Sprintf("https://visits.example.com/store/0001/visit/%036d", i)
	}
	groups := []links.Group{{Store: "Store A", Links: many}}

	_, err := WorkbookBytes([]Sheet{{Name: "links_by_store", Table: links.JoinedView(groups)}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCellTooLong))
	assert.True(t, errors.Is(err, ErrFormat))
	assert.Contains(t, err.Error(), `sheet "links_by_store": row 2, column "`+links.ColLinkJoined+`"`)
}

func TestWriteWorkbook_CellAtExcelLimitRoundTrips(t *testing.T) {
	tbl := table.New([]string{"store", "text"}, [][]string{
		{"A", strings.Repeat("é", excelize.TotalCellChars)},
	})

	data, err := WorkbookBytes([]Sheet{{Name: "s", Table: tbl}})
	require.NoError(t, err)

	got, err := Load("out.xlsx", bytes.NewReader(data), "s")
	require.NoError(t, err)
	assert.True(t, tbl.Equal(got))
}
