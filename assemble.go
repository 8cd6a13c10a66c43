package hiertab

import (
	"regexp"
	"strings"
	"time"
)

// defaultDateLayouts are tried in order when coercing date columns.
var defaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// CleanColumnName normalizes a column label: trim, strip newlines,
// lowercase, whitespace runs to underscores, slashes to underscores,
// colons removed, underscore runs collapsed. Cleaning is idempotent.
func CleanColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ToLower(name)
	name = whitespaceRun.ReplaceAllString(name, "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, ":", "")
	name = underscoreRun.ReplaceAllString(name, "_")
	return name
}

// assembleTable builds the normalized output grid from extracted records:
// one row per record, columns named by the union of found fields in
// first-seen order, labels cleaned, declared date columns coerced, and
// columns that end up entirely missing dropped.
func assembleTable(records []Record, cfg Config, layouts []string) *Grid {
	fields := fieldOrder(records, cfg)

	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = CleanColumnName(f)
	}

	rows := make([][]any, 0, len(records))
	for _, record := range records {
		cells := make([]any, len(fields))
		for i, f := range fields {
			if v, ok := record[f]; ok {
				cells[i] = v
			}
		}
		rows = append(rows, cells)
	}
	table := &Grid{columns: columns, rows: rows}

	if len(layouts) == 0 {
		layouts = defaultDateLayouts
	}
	for _, field := range cfg.DateColumns {
		coerceDateColumn(table, CleanColumnName(field), layouts)
	}

	return dropEmptyColumns(table)
}

// fieldOrder returns the target fields that appear in at least one record,
// preserving config order. Fields no record produced never become columns.
func fieldOrder(records []Record, cfg Config) []string {
	var fields []string
	for _, f := range cfg.TargetFields {
		for _, r := range records {
			if _, ok := r[f]; ok {
				fields = append(fields, f)
				break
			}
		}
	}
	return fields
}

// coerceDateColumn parses every cell of the named column as a date.
// Unparsable cells become nil rather than failing the transform.
func coerceDateColumn(g *Grid, column string, layouts []string) {
	idx := g.ColumnIndex(column)
	if idx < 0 {
		return
	}
	for _, row := range g.rows {
		s, ok := row[idx].(string)
		if !ok {
			continue
		}
		if t, ok := parseDate(s, layouts); ok {
			row[idx] = t
		} else {
			row[idx] = nil
		}
	}
}

// parseDate tries each layout in order.
func parseDate(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dropEmptyColumns removes columns whose cells are all nil.
func dropEmptyColumns(g *Grid) *Grid {
	var empty []int
	for i := range g.columns {
		allNil := true
		for _, row := range g.rows {
			if row[i] != nil {
				allNil = false
				break
			}
		}
		if allNil {
			empty = append(empty, i)
		}
	}
	return g.dropColumns(empty)
}
