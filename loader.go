package hiertab

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// GridFromXLSX loads a worksheet from an xlsx file into a Grid with
// positional column labels. An empty sheet name selects the first sheet.
func GridFromXLSX(path, sheet string) (*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return GridFromXLSXFile(f, sheet)
}

// GridFromXLSXFile loads a worksheet from an already-open workbook.
func GridFromXLSXFile(f *excelize.File, sheet string) (*Grid, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrSheetNotFound
		}
		sheet = sheets[0]
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return GridFromRows(rows), nil
}

// GridFromCSV reads CSV data into a Grid with positional column labels.
// Rows may have varying field counts; the grid is padded to the widest row.
func GridFromCSV(r io.Reader) (*Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return GridFromRows(rows), nil
}

// GridFromCSVHeader reads CSV data whose first row is a header into a Grid
// whose column labels are the header values. Used for validating flat
// tables that were not produced by Transform.
func GridFromCSVHeader(r io.Reader) (*Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	header := rows[0]
	body := make([][]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]any, len(header))
		for i := range header {
			if i < len(row) && row[i] != "" {
				cells[i] = row[i]
			}
		}
		body = append(body, cells)
	}
	return &Grid{columns: append([]string(nil), header...), rows: body}, nil
}
