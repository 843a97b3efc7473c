package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/storelinks/internal/table"
)

// XLSXContentType is the MIME type of the workbooks written by WriteWorkbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MaxSheetName is the longest sheet name Excel accepts, in characters.
const MaxSheetName = 31

// ErrCellTooLong is returned when a cell holds more text than Excel keeps.
// excelize would silently cut it, so the workbook is refused instead.
var ErrCellTooLong = fmt.Errorf("%w: cell exceeds %d characters", ErrFormat, excelize.TotalCellChars)

// Sheet is one named table of a workbook. Cells of the Numeric columns that
// parse as numbers are stored as numbers; everything else is written as text.
type Sheet struct {
	Name    string
	Table   *table.Table
	Numeric []string
}

// SheetName truncates name to MaxSheetName characters.
func SheetName(name string) string {
	r := []rune(name)
	if len(r) <= MaxSheetName {
		return name
	}
	return string(r[:MaxSheetName])
}

// WriteWorkbook writes sheets, in order, as one xlsx workbook. Each sheet
// starts with a header row of column names followed by the table rows.
func WriteWorkbook(w io.Writer, sheets []Sheet) error {
	f, err := build(sheets)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WorkbookBytes is WriteWorkbook into memory.
func WorkbookBytes(sheets []Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, sheets); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func build(sheets []Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook needs at least one sheet", ErrFormat)
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	used := make(map[string]bool, len(sheets))

	for i, s := range sheets {
		name := SheetName(s.Name)
		key := strings.ToLower(name)
		if used[key] {
			_ = f.Close()
			return nil, fmt.Errorf("%w: duplicate sheet name %q", ErrFormat, name)
		}
		used[key] = true

		if i == 0 {
			err := f.SetSheetName(defaultSheet, name)
			if err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("%w: sheet %q: %v", ErrFormat, name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrFormat, name, err)
		}

		if err := writeSheet(f, name, s); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, name string, s Sheet) error {
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("sheet %q: stream writer: %w", name, err)
	}

	t := s.Table
	if t == nil {
		t = table.Empty()
	}

	numeric := make([]bool, len(t.Columns))
	for _, c := range s.Numeric {
		if i, ok := t.Index(c); ok {
			numeric[i] = true
		}
	}

	if len(t.Columns) > 0 {
		header := make([]interface{}, len(t.Columns))
		for i, c := range t.Columns {
			header[i] = c
		}
		if err := sw.SetRow("A1", header); err != nil {
			return fmt.Errorf("sheet %q: header: %w", name, err)
		}
	}

	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("sheet %q: row %d: %w", name, r+2, err)
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			if n := utf8.RuneCountInString(v); n > excelize.TotalCellChars {
				return fmt.Errorf("sheet %q: row %d, column %q: %d characters: %w", name, r+2, columnName(t, i), n, ErrCellTooLong)
			}
			values[i] = cellValue(v, i < len(numeric) && numeric[i])
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("sheet %q: row %d: %w", name, r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("sheet %q: flush: %w", name, err)
	}
	return nil
}

func columnName(t *table.Table, i int) string {
	if i < len(t.Columns) {
		return t.Columns[i]
	}
	name, _ := excelize.ColumnNumberToName(i + 1)
	return name
}

func cellValue(v string, numeric bool) interface{} {
	if v == "" {
		return nil
	}
	if numeric {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return v
}
