package spreadsheet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"stores.csv", KindCSV, false},
		{"STORES.CSV", KindCSV, false},
		{"report.xlsx", KindXLSX, false},
		{"macro.XLSM", KindXLSX, false},
		{"legacy.xls", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		got, err := KindOf(tt.name)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrFormat), tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestLoad_CSV(t *testing.T) {
	in := "\xEF\xBB\xBFstore,link_1,,link_1\n" +
		"Store A,http://a,x,http://b\n" +
		",,,\n" +
		"Store B,\"http://c\"\n"

	tbl, err := Load("in.csv", strings.NewReader(in), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"store", "link_1", "Unnamed: 2", "link_1.1"}, tbl.Columns)
	assert.Equal(t, [][]string{
		{"Store A", "http://a", "x", "http://b"},
		{"Store B", "http://c", "", ""},
	}, tbl.Rows)
}

func TestLoad_CSVInvalidUTF8(t *testing.T) {
	tbl, err := Load("in.csv", bytes.NewReader([]byte("store\nTienda \xff\n")), "")
	require.NoError(t, err)

	assert.Equal(t, "Tienda �", tbl.Rows[0][0])
}

func TestLoad_CSVRaggedRowsWidenHeader(t *testing.T) {
	tbl, err := Load("in.csv", strings.NewReader("store\nA,http://x\n"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"store", "Unnamed: 1"}, tbl.Columns)
	assert.Equal(t, "http://x", tbl.Rows[0][1])
}

func TestLoad_EmptyInput(t *testing.T) {
	tbl, err := Load("in.csv", strings.NewReader(""), "")
	require.NoError(t, err)

	assert.Empty(t, tbl.Columns)
	assert.Equal(t, 0, tbl.Len())
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load("in.txt", strings.NewReader("a"), "")

	assert.True(t, errors.Is(err, ErrFormat))
}

func workbook(t *testing.T, sheets map[string][][]interface{}, order ...string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestLoad_XLSXSheetSelection(t *testing.T) {
	data := workbook(t, map[string][][]interface{}{
		"first":  {{"store", "link"}, {"A", "http://a"}},
		"second": {{"store", "count"}, {"B", 3}},
	}, "first", "second")

	tbl, err := Load("book.xlsx", bytes.NewReader(data), "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "http://a"}}, tbl.Rows)

	tbl, err = Load("book.xlsx", bytes.NewReader(data), "second")
	require.NoError(t, err)
	assert.Equal(t, []string{"store", "count"}, tbl.Columns)
	assert.Equal(t, [][]string{{"B", "3"}}, tbl.Rows)

	_, err = Load("book.xlsx", bytes.NewReader(data), "third")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
	assert.Contains(t, err.Error(), `"third"`)
}

func TestLoad_CorruptWorkbook(t *testing.T) {
	_, err := Load("book.xlsx", strings.NewReader("not a zip"), "")

	assert.True(t, errors.Is(err, ErrFormat))
}

func TestSheetNames(t *testing.T) {
	data := workbook(t, map[string][][]interface{}{
		"a": {{"store"}},
		"b": {{"store"}},
	}, "a", "b")

	names, err := SheetNames("book.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	names, err = SheetNames("book.csv", strings.NewReader("store\n"))
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stores.csv")
	require.NoError(t, os.WriteFile(path, []byte("store,link\nA,http://a\n"), 0o600))

	data, err := ReadFile(path)
	require.NoError(t, err)
	tbl, err := Load(path, bytes.NewReader(data), "")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingFile))
	assert.Contains(t, err.Error(), "missing.csv")
}
