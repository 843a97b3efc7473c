package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/storelinks/internal/links"
)

// CellOptions addresses the store and link cells of a worksheet by column
// letter, starting at StartRow (1-based).
type CellOptions struct {
	Sheet       string
	StoreLetter string
	LinkLetter  string
	StartRow    int
}

// DefaultCellOptions reads stores from column E and links from column L,
// skipping the header row.
func DefaultCellOptions() CellOptions {
	return CellOptions{StoreLetter: "E", LinkLetter: "L", StartRow: 2}
}

func (o CellOptions) validate() (CellOptions, error) {
	o.StoreLetter = strings.ToUpper(strings.TrimSpace(o.StoreLetter))
	o.LinkLetter = strings.ToUpper(strings.TrimSpace(o.LinkLetter))
	for _, l := range []string{o.StoreLetter, o.LinkLetter} {
		if _, err := excelize.ColumnNameToNumber(l); err != nil {
			return o, fmt.Errorf("%w: column letter %q: %v", ErrFormat, l, err)
		}
	}
	if o.StartRow < 1 {
		o.StartRow = 1
	}
	return o, nil
}

// ReadCells reads, for every row from StartRow to the last used row, the
// store value and the raw content of the link cell: its displayed value,
// its formula and its hyperlink target. Rows where both cells are empty are
// skipped. CSV input carries no formulas or hyperlinks and is rejected.
func ReadCells(name string, r io.Reader, opts CellOptions) ([]links.Cell, error) {
	kind, err := KindOf(name)
	if err != nil {
		return nil, err
	}
	if kind != KindXLSX {
		return nil, fmt.Errorf("%w: hyperlink extraction needs an .xlsx workbook", ErrFormat)
	}

	opts, err = opts.validate()
	if err != nil {
		return nil, err
	}

	f, err := openWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := pickSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrFormat, sheet, err)
	}

	var out []links.Cell
	for n := opts.StartRow; n <= len(rows); n++ {
		c, err := readCell(f, sheet, n, opts)
		if err != nil {
			return nil, err
		}
		if c.Store == "" && c.Value == "" && c.Formula == "" && c.Hyperlink == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func readCell(f *excelize.File, sheet string, row int, opts CellOptions) (links.Cell, error) {
	storeRef := fmt.Sprintf("%s%d", opts.StoreLetter, row)
	linkRef := fmt.Sprintf("%s%d", opts.LinkLetter, row)

	c := links.Cell{Row: row}

	var err error
	if c.Store, err = f.GetCellValue(sheet, storeRef); err != nil {
		return c, fmt.Errorf("%w: cell %s: %v", ErrFormat, storeRef, err)
	}
	c.Store = strings.TrimSpace(c.Store)

	if c.Value, err = f.GetCellValue(sheet, linkRef); err != nil {
		return c, fmt.Errorf("%w: cell %s: %v", ErrFormat, linkRef, err)
	}
	c.Value = strings.TrimSpace(c.Value)

	if c.Formula, err = f.GetCellFormula(sheet, linkRef); err != nil {
		return c, fmt.Errorf("%w: cell %s: %v", ErrFormat, linkRef, err)
	}

	ok, target, err := f.GetCellHyperLink(sheet, linkRef)
	if err != nil {
		return c, fmt.Errorf("%w: cell %s: %v", ErrFormat, linkRef, err)
	}
	if ok {
		c.Hyperlink = target
	}
	return c, nil
}
