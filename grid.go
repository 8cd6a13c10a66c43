package hiertab

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// Grid is an in-memory 2-D table: ordered column labels plus rows of cells.
// Cells hold string values, time.Time values (after date coercion), or nil
// for missing. All rows have the same width as the column list.
//
// A Grid is built once from external input and treated as read-only by the
// scanner; derived grids (row skip, column drop) are fresh copies.
type Grid struct {
	columns []string
	rows    [][]any
}

// NewGrid creates a Grid with the given column labels and rows. Rows shorter
// than the column list are padded with nil; longer rows are truncated.
func NewGrid(columns []string, rows [][]any) *Grid {
	g := &Grid{columns: append([]string(nil), columns...)}
	width := len(columns)
	g.rows = make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, width)
		copy(cells, row)
		g.rows = append(g.rows, cells)
	}
	return g
}

// GridFromRows creates a Grid from raw string rows with positional column
// labels (A, B, C, ... like a worksheet). Empty strings become nil cells so
// that blank worksheet cells behave as missing values.
func GridFromRows(rows [][]string) *Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	columns := make([]string, width)
	for i := range columns {
		columns[i] = columnLabel(i)
	}
	converted := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, width)
		for i, v := range row {
			if v != "" {
				cells[i] = v
			}
		}
		converted = append(converted, cells)
	}
	return &Grid{columns: columns, rows: converted}
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int { return len(g.rows) }

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int { return len(g.columns) }

// Columns returns a copy of the ordered column labels.
func (g *Grid) Columns() []string {
	return append([]string(nil), g.columns...)
}

// Cell returns the cell at (row, col), or nil when out of range.
func (g *Grid) Cell(row, col int) any {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.columns) {
		return nil
	}
	return g.rows[row][col]
}

// Row returns the cells of row i. The returned slice is the backing row;
// callers must not modify it.
func (g *Grid) Row(i int) []any {
	if i < 0 || i >= len(g.rows) {
		return nil
	}
	return g.rows[i]
}

// HasColumn reports whether a column with the given label exists.
func (g *Grid) HasColumn(name string) bool {
	return g.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of the named column, or -1.
func (g *Grid) ColumnIndex(name string) int {
	for i, c := range g.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ColumnValues returns all cells of the named column in row order, or nil
// if the column does not exist.
func (g *Grid) ColumnValues(name string) []any {
	idx := g.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]any, len(g.rows))
	for i, row := range g.rows {
		values[i] = row[idx]
	}
	return values
}

// PromoteHeader returns a Grid whose column labels come from the first row
// of g, with that row removed. Cells without a header value keep their
// positional label. Used when validating flat tables that carry their own
// header row.
func (g *Grid) PromoteHeader() (*Grid, error) {
	if len(g.rows) == 0 {
		return nil, ErrEmptyGrid
	}
	columns := make([]string, len(g.columns))
	for i := range columns {
		if s := trimmedCell(g.rows[0][i]); s != "" {
			columns[i] = s
		} else {
			columns[i] = g.columns[i]
		}
	}
	return &Grid{columns: columns, rows: g.rows[1:]}, nil
}

// skipRows returns a Grid without the first n rows.
func (g *Grid) skipRows(n int) *Grid {
	if n <= 0 {
		return g
	}
	if n > len(g.rows) {
		n = len(g.rows)
	}
	return &Grid{columns: g.columns, rows: g.rows[n:]}
}

// dropColumns returns a Grid without the columns at the given positions.
// Out-of-range positions are ignored.
func (g *Grid) dropColumns(positions []int) *Grid {
	if len(positions) == 0 {
		return g
	}
	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(g.columns) {
			drop[p] = true
		}
	}
	if len(drop) == 0 {
		return g
	}
	columns := make([]string, 0, len(g.columns)-len(drop))
	for i, c := range g.columns {
		if !drop[i] {
			columns = append(columns, c)
		}
	}
	rows := make([][]any, 0, len(g.rows))
	for _, row := range g.rows {
		cells := make([]any, 0, len(columns))
		for i, v := range row {
			if !drop[i] {
				cells = append(cells, v)
			}
		}
		rows = append(rows, cells)
	}
	return &Grid{columns: columns, rows: rows}
}

// WriteCSV writes the grid as CSV with a header row. Missing cells are
// written as empty fields, time values in RFC 3339 date form.
func (g *Grid) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(g.columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(g.columns))
	for i, row := range g.rows {
		for j, v := range row {
			record[j] = cellString(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// cellString renders a cell for text output.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprint(val)
	}
}

// columnLabel converts a zero-based column index to a worksheet-style
// label: 0 -> A, 25 -> Z, 26 -> AA.
func columnLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}
