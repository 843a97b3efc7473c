// Package table holds the in-memory tabular model shared by the loader,
// the link pipeline and the workbook exporter.
//
// A Table is a header row plus data rows. Every cell is a string: spreadsheet
// numbers arrive already formatted and empty or missing cells are "".
package table

// Table is an ordered set of rows sharing one column list. Tables built with
// New have rows exactly as wide as Columns; for tables assembled by hand,
// missing cells read as "" through Cell and the methods below.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// New builds a table from columns and rows. Rows shorter than the column list
// are padded with empty strings; extra cells are dropped.
func New(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, fit(row, len(columns)))
	}
	t.reindex()
	return t
}

// Empty returns a table with the given columns and no rows.
func Empty(columns ...string) *Table {
	return New(columns, nil)
}

// Cell returns row[i], or "" when the row is too short.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func fit(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}

// reindex maps each column name to its first position.
func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Index returns the position of column name.
func (t *Table) Index(name string) (int, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	return i, ok
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.Index(name)
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Value returns the cell of row under column name, or "" when the column
// does not exist.
func (t *Table) Value(row []string, name string) string {
	i, ok := t.Index(name)
	if !ok {
		return ""
	}
	return Cell(row, i)
}

// Column returns all values of column name in row order.
func (t *Table) Column(name string) ([]string, bool) {
	i, ok := t.Index(name)
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = Cell(row, i)
	}
	return out, true
}

// Select returns a new table holding only the named columns, in the given
// order. Unknown names are skipped.
func (t *Table) Select(names ...string) *Table {
	var cols []string
	var idx []int
	for _, n := range names {
		if i, ok := t.Index(n); ok {
			cols = append(cols, n)
			idx = append(idx, i)
		}
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, len(idx))
		for j, i := range idx {
			out[j] = Cell(row, i)
		}
		rows[r] = out
	}
	return New(cols, rows)
}

// Rename returns a copy of the table with column from renamed to to.
func (t *Table) Rename(from, to string) *Table {
	cols := append([]string(nil), t.Columns...)
	for i, c := range cols {
		if c == from {
			cols[i] = to
		}
	}
	return New(cols, t.Rows)
}

// Head returns a table with at most n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return New(t.Columns, t.Rows[:n])
}

// Equal reports whether both tables hold the same columns and cells.
func (t *Table) Equal(o *Table) bool {
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for r := range t.Rows {
		for c := range t.Columns {
			if Cell(t.Rows[r], c) != Cell(o.Rows[r], c) {
				return false
			}
		}
	}
	return true
}
