package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/storelinks/internal/links"
)

func visitsWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	require.NoError(t, f.SetCellValue(sheet, "E1", "tienda"))
	require.NoError(t, f.SetCellValue(sheet, "L1", "id_visita"))

	require.NoError(t, f.SetCellValue(sheet, "E2", "Store A"))
	require.NoError(t, f.SetCellValue(sheet, "L2", "open"))
	require.NoError(t, f.SetCellHyperLink(sheet, "L2", "https://visits.test/1", "External"))

	require.NoError(t, f.SetCellValue(sheet, "E3", " Store B "))
	require.NoError(t, f.SetCellFormula(sheet, "L3", `HYPERLINK("https://visits.test/2","ver")`))

	require.NoError(t, f.SetCellValue(sheet, "E4", "Store C"))
	require.NoError(t, f.SetCellValue(sheet, "L4", "0a1b2c3d-0000-1111-2222-333344445555"))

	require.NoError(t, f.SetCellValue(sheet, "E6", "Store D"))
	require.NoError(t, f.SetCellValue(sheet, "L6", "no link here"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadCells(t *testing.T) {
	cells, err := ReadCells("visits.xlsx", bytes.NewReader(visitsWorkbook(t)), DefaultCellOptions())
	require.NoError(t, err)

	require.Len(t, cells, 4)
	assert.Equal(t, 2, cells[0].Row)
	assert.Equal(t, "https://visits.test/1", cells[0].Hyperlink)
	assert.Equal(t, "Store B", cells[1].Store)
	assert.Contains(t, cells[1].Formula, "HYPERLINK")
	assert.Equal(t, 6, cells[3].Row)

	pairs := links.CellPairs(cells, "https://visits.test/id/")
	assert.Equal(t, []links.Pair{
		{Store: "Store A", Link: "https://visits.test/1"},
		{Store: "Store B", Link: "https://visits.test/2"},
		{Store: "Store C", Link: "https://visits.test/id/0a1b2c3d-0000-1111-2222-333344445555"},
	}, pairs)
}

func TestReadCells_StartRowAndLetters(t *testing.T) {
	opts := CellOptions{StoreLetter: "e", LinkLetter: " l ", StartRow: 4}

	cells, err := ReadCells("visits.xlsx", bytes.NewReader(visitsWorkbook(t)), opts)
	require.NoError(t, err)

	require.Len(t, cells, 2)
	assert.Equal(t, "Store C", cells[0].Store)
}

func TestReadCells_Errors(t *testing.T) {
	_, err := ReadCells("visits.csv", strings.NewReader("a,b\n"), DefaultCellOptions())
	assert.True(t, errors.Is(err, ErrFormat))

	_, err = ReadCells("visits.xlsx", bytes.NewReader(visitsWorkbook(t)), CellOptions{StoreLetter: "E1", LinkLetter: "L"})
	assert.True(t, errors.Is(err, ErrFormat))

	opts := DefaultCellOptions()
	opts.Sheet = "nope"
	_, err = ReadCells("visits.xlsx", bytes.NewReader(visitsWorkbook(t)), opts)
	assert.True(t, errors.Is(err, ErrFormat))
}
