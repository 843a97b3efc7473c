// Package spreadsheet reads CSV and Excel inputs into tables and writes
// tables back out as multi-sheet xlsx workbooks.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/storelinks/internal/table"
)

var (
	// ErrFormat is returned for unknown file extensions, unknown sheets and
	// unreadable workbooks.
	ErrFormat = errors.New("unsupported input format")

	// ErrMissingFile is returned when an input path does not exist.
	ErrMissingFile = errors.New("input file not found")
)

// Kind is the input family derived from a file extension.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
)

// KindOf maps a file name to its input kind.
func KindOf(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return KindCSV, nil
	case ".xlsx", ".xlsm":
		return KindXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .csv or .xlsx)", ErrFormat, filepath.Ext(name))
	}
}

// Load reads the table held in r. The format is chosen by the extension of
// name. For workbooks, sheet selects the worksheet; an empty sheet means the
// first one. sheet is ignored for CSV input.
func Load(name string, r io.Reader, sheet string) (*table.Table, error) {
	kind, err := KindOf(name)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch kind {
	case KindCSV:
		records, err = readCSV(r)
	case KindXLSX:
		records, err = readSheet(r, sheet)
	}
	if err != nil {
		return nil, err
	}
	return fromRecords(records), nil
}

// ReadFile returns the content of path. A path that does not exist gives
// ErrMissingFile naming it.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// SheetNames lists the worksheets of a workbook in order. CSV input has no
// sheets and yields nil.
func SheetNames(name string, r io.Reader) ([]string, error) {
	kind, err := KindOf(name)
	if err != nil {
		return nil, err
	}
	if kind == KindCSV {
		return nil, nil
	}
	f, err := openWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// readCSV decodes UTF-8 (BOM stripped, invalid bytes replaced with U+FFFD)
// and tolerates stray quotes and ragged rows.
func readCSV(r io.Reader) ([][]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", ErrFormat, err)
	}
	return records, nil
}

func openWorkbook(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrFormat, err)
	}
	return f, nil
}

func readSheet(r io.Reader, sheet string) ([][]string, error) {
	f, err := openWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err = pickSheet(f, sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrFormat, sheet, err)
	}
	return rows, nil
}

func pickSheet(f *excelize.File, sheet string) (string, error) {
	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return "", fmt.Errorf("%w: workbook has no sheets", ErrFormat)
		}
		return sheets[0], nil
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return "", fmt.Errorf("%w: sheet %q not found (sheets: %s)", ErrFormat, sheet, strings.Join(sheets, ", "))
	}
	return sheet, nil
}

// fromRecords turns raw records into a table: the first record is the header,
// fully empty records are skipped.
func fromRecords(records [][]string) *table.Table {
	if len(records) == 0 {
		return table.Empty()
	}

	header := records[0]
	width := len(header)
	for _, rec := range records[1:] {
		if len(rec) > width {
			width = len(rec)
		}
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return table.New(headerNames(header, width), rows)
}

func blank(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}

// headerNames names blank header cells "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2", ... so every column name is unique.
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	taken := make(map[string]bool, width)
	for i := range names {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if taken[name] {
			base := name
			for n := 1; taken[name]; n++ {
				name = base + "." + strconv.Itoa(n)
			}
		}
		taken[name] = true
		names[i] = name
	}
	return names
}
