package hiertab

import "strings"

// Record maps canonical field names to extracted values. Fields not found
// within a record's window are absent, never set to a placeholder.
type Record map[string]string

// extractRecords scans the grid top to bottom and extracts one Record per
// identifier occurrence. Record windows do not overlap: after a record is
// extracted, scanning resumes at the next row that is itself a record start,
// skipping every row strictly in between. A record with no matching target
// fields is still appended, so record count tracks identifier count.
func extractRecords(g *Grid, cfg Config) []Record {
	var records []Record
	total := g.RowCount()
	i := 0
	for i < total {
		if !isRecordStart(g.Row(i), cfg) {
			i++
			continue
		}
		records = append(records, extractSingleRecord(g, i, cfg))
		i = findNextRecordStart(g, i+1, cfg)
	}
	return records
}

// isRecordStart reports whether any cell in the row, trimmed, equals the
// identifier field or one of its aliases. Nil and blank cells never match.
func isRecordStart(row []any, cfg Config) bool {
	identifiers := cfg.aliasesFor(cfg.IdentifierField)
	for _, cell := range row {
		s, ok := cell.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" && identifiers[s] {
			return true
		}
	}
	return false
}

// extractSingleRecord fills a Record for the window starting at startRow.
// Each target field is searched in config order through the rows
// startRow..startRow+SearchRadius-1; the first row where the field's value
// is found wins, and fields found nowhere are omitted.
func extractSingleRecord(g *Grid, startRow int, cfg Config) Record {
	record := Record{}
	total := g.RowCount()
	for _, field := range cfg.TargetFields {
		aliases := cfg.aliasesFor(field)
		for offset := 0; offset < cfg.SearchRadius; offset++ {
			row := startRow + offset
			if row >= total {
				break
			}
			if value, ok := findFieldValue(g, row, aliases, cfg); ok {
				record[field] = value
				break
			}
		}
	}
	return record
}

// findFieldValue locates a field's value relative to its label in the given
// row. The leftmost cell whose trimmed value is in the alias set is the
// label column. The value is then the first trimmed non-empty cell found
// searching rightward within ColumnSearchRadius, and only if that fails,
// downward within SearchRadius in the label's column. Rightward before
// downward is load-bearing: same-row context outranks rows below.
func findFieldValue(g *Grid, row int, aliases map[string]bool, cfg Config) (string, bool) {
	labelCol := -1
	for col := 0; col < g.ColumnCount(); col++ {
		s, ok := g.Cell(row, col).(string)
		if ok && aliases[strings.TrimSpace(s)] {
			labelCol = col
			break
		}
	}
	if labelCol < 0 {
		return "", false
	}

	maxRight := cfg.ColumnSearchRadius
	if remaining := g.ColumnCount() - labelCol; remaining < maxRight {
		maxRight = remaining
	}
	for offset := 1; offset < maxRight; offset++ {
		if v := trimmedCell(g.Cell(row, labelCol+offset)); v != "" {
			return v, true
		}
	}

	maxDown := row + cfg.SearchRadius
	if maxDown > g.RowCount() {
		maxDown = g.RowCount()
	}
	for r := row + 1; r < maxDown; r++ {
		if v := trimmedCell(g.Cell(r, labelCol)); v != "" {
			return v, true
		}
	}

	return "", false
}

// findNextRecordStart returns the index of the first record-start row at or
// after start, or the row count when none remains.
func findNextRecordStart(g *Grid, start int, cfg Config) int {
	for i := start; i < g.RowCount(); i++ {
		if isRecordStart(g.Row(i), cfg) {
			return i
		}
	}
	return g.RowCount()
}

// trimmedCell returns the trimmed string form of a cell, or "" for nil and
// non-string cells.
func trimmedCell(cell any) string {
	s, ok := cell.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
