package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hiertab/hiertab"
)

// renderGrid writes the grid in the requested format: csv, json, or an
// aligned terminal table.
func renderGrid(w io.Writer, g *hiertab.Grid, format string) error {
	switch format {
	case "csv":
		return g.WriteCSV(w)
	case "json":
		return renderJSON(w, g)
	case "table", "":
		renderTable(w, g)
		return nil
	default:
		return fmt.Errorf("unknown format: %s (must be csv, json, or table)", format)
	}
}

// renderJSON writes one object per row keyed by column label.
func renderJSON(w io.Writer, g *hiertab.Grid) error {
	columns := g.Columns()
	rows := make([]map[string]any, 0, g.RowCount())
	for i := 0; i < g.RowCount(); i++ {
		row := make(map[string]any, len(columns))
		for j, col := range columns {
			row[col] = g.Cell(i, j)
		}
		rows = append(rows, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// renderTable writes an aligned table for terminal output.
func renderTable(w io.Writer, g *hiertab.Grid) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, 0, g.ColumnCount())
	for _, col := range g.Columns() {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for i := 0; i < g.RowCount(); i++ {
		row := make(table.Row, 0, g.ColumnCount())
		for j := 0; j < g.ColumnCount(); j++ {
			cell := g.Cell(i, j)
			if cell == nil {
				cell = ""
			}
			row = append(row, cell)
		}
		t.AppendRow(row)
	}
	t.Render()
}
