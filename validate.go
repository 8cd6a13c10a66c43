package hiertab

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
)

// ValidationResult reports the outcome of a Validate call. IsValid is true
// iff Errors is empty.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// CheckResult is the outcome of a single custom validation.
type CheckResult struct {
	Valid   bool
	Message string
}

// CustomValidation is a user-supplied predicate over the whole table.
type CustomValidation func(*Grid) CheckResult

// Rules declares the validation rule set. Every category is optional and
// independent; absent categories are skipped.
type Rules struct {
	// RequiredColumns must all exist in the table.
	RequiredColumns []string

	// DateFormat maps a column to the Go reference-time layout every
	// non-missing string cell must parse under. Cells already holding
	// time.Time values pass.
	DateFormat map[string]string

	// NumericColumns must contain only decimal numerals: an optional
	// leading minus, digits, and at most one dot.
	NumericColumns []string

	// MinValue / MaxValue bound numeric cells per column.
	MinValue map[string]float64
	MaxValue map[string]float64

	// UniqueColumns must not contain duplicate values.
	UniqueColumns []string

	// CustomValidations run last, in order.
	CustomValidations []CustomValidation
}

// Validate checks the grid against the rule set and returns every error and
// warning found. Categories run in a fixed order and never halt early, so a
// failure in one category does not mask failures in later ones. Validate
// keeps no state between calls.
func Validate(g *Grid, rules Rules) ValidationResult {
	var errs, warnings []string

	if len(rules.RequiredColumns) > 0 {
		errs = append(errs, checkRequiredColumns(g, rules.RequiredColumns)...)
	}
	if len(rules.DateFormat) > 0 {
		errs = append(errs, checkDateFormats(g, rules.DateFormat)...)
	}
	if len(rules.NumericColumns) > 0 {
		errs = append(errs, checkNumericColumns(g, rules.NumericColumns)...)
	}
	if len(rules.MinValue) > 0 {
		errs = append(errs, checkBounds(g, rules.MinValue, false)...)
	}
	if len(rules.MaxValue) > 0 {
		errs = append(errs, checkBounds(g, rules.MaxValue, true)...)
	}
	if len(rules.UniqueColumns) > 0 {
		errs = append(errs, checkUniqueColumns(g, rules.UniqueColumns)...)
	}
	for _, check := range rules.CustomValidations {
		if result := check(g); !result.Valid {
			msg := result.Message
			if msg == "" {
				msg = "custom validation failed"
			}
			errs = append(errs, msg)
		}
	}

	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// checkRequiredColumns produces one aggregated error naming every missing
// column.
func checkRequiredColumns(g *Grid, required []string) []string {
	var missing []string
	for _, col := range required {
		if !g.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
}

// checkDateFormats validates string cells of each listed column against its
// layout. Columns absent from the table are skipped.
func checkDateFormats(g *Grid, formats map[string]string) []string {
	var errs []string
	for _, column := range sortedFormatKeys(formats) {
		layout := formats[column]
		if !g.HasColumn(column) {
			continue
		}
		var invalid []string
		for i, cell := range g.ColumnValues(column) {
			switch v := cell.(type) {
			case nil, time.Time:
				continue
			case string:
				if _, err := time.Parse(layout, v); err != nil {
					invalid = append(invalid, fmt.Sprintf("row %d: %s", i, v))
				}
			default:
				invalid = append(invalid, fmt.Sprintf("row %d: %v", i, v))
			}
		}
		if len(invalid) > 0 {
			errs = append(errs, fmt.Sprintf(
				"invalid date format in column %q, expected layout %s, found invalid values: %s",
				column, layout, strings.Join(invalid, "; ")))
		}
	}
	return errs
}

// checkNumericColumns validates that every non-missing cell is a decimal
// numeral.
func checkNumericColumns(g *Grid, columns []string) []string {
	var errs []string
	for _, column := range columns {
		if !g.HasColumn(column) {
			continue
		}
		var invalid []int
		for i, cell := range g.ColumnValues(column) {
			if cell == nil {
				continue
			}
			s, ok := cell.(string)
			if !ok || !isDecimal(s) {
				invalid = append(invalid, i)
			}
		}
		if len(invalid) > 0 {
			errs = append(errs, fmt.Sprintf(
				"non-numeric values found in column %q at rows: %v", column, invalid))
		}
	}
	return errs
}

// checkBounds flags rows whose numeric value falls below the minimum or
// above the maximum. Cells that are not decimal numerals are left to the
// numeric-columns rule.
func checkBounds(g *Grid, bounds map[string]float64, isMax bool) []string {
	var errs []string
	for _, column := range sortedKeys(bounds) {
		bound := bounds[column]
		if !g.HasColumn(column) {
			continue
		}
		var invalid []int
		for i, cell := range g.ColumnValues(column) {
			s, ok := cell.(string)
			if !ok || !isDecimal(s) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				continue
			}
			if (isMax && v > bound) || (!isMax && v < bound) {
				invalid = append(invalid, i)
			}
		}
		if len(invalid) > 0 {
			direction := "below minimum"
			if isMax {
				direction = "above maximum"
			}
			errs = append(errs, fmt.Sprintf(
				"values %s (%v) found in column %q at rows: %v", direction, bound, column, invalid))
		}
	}
	return errs
}

// checkUniqueColumns flags every occurrence after the first of a duplicated
// value.
func checkUniqueColumns(g *Grid, columns []string) []string {
	var errs []string
	for _, column := range columns {
		if !g.HasColumn(column) {
			continue
		}
		seen := make(map[string]bool)
		var duplicates []int
		for i, cell := range g.ColumnValues(column) {
			if cell == nil {
				continue
			}
			key := cellString(cell)
			if seen[key] {
				duplicates = append(duplicates, i)
			}
			seen[key] = true
		}
		if len(duplicates) > 0 {
			errs = append(errs, fmt.Sprintf(
				"duplicate values found in column %q at rows: %v", column, duplicates))
		}
	}
	return errs
}

// isDecimal reports whether s is a signed decimal numeral: an optional
// single leading '-', digits, and at most one '.', with at least one digit
// overall. Exponents and embedded signs are rejected.
func isDecimal(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	digits := 0
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// sortedKeys returns bound-map keys sorted for deterministic error ordering.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFormatKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExprValidation builds a CustomValidation from an expr-lang expression
// evaluated against an environment holding "rows" ([]map[string]any keyed
// by column label, missing cells nil) and "columns" ([]string). The
// expression must yield a boolean; a compile or runtime error fails the
// check with the error text appended to the message.
func ExprValidation(expression, message string) CustomValidation {
	return func(g *Grid) CheckResult {
		env := exprEnv(g)
		program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
		if err != nil {
			return CheckResult{Message: fmt.Sprintf("%s: compile %q: %v", message, expression, err)}
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return CheckResult{Message: fmt.Sprintf("%s: evaluate %q: %v", message, expression, err)}
		}
		if ok, _ := out.(bool); ok {
			return CheckResult{Valid: true}
		}
		return CheckResult{Message: message}
	}
}

// exprEnv converts the grid to the evaluation environment.
func exprEnv(g *Grid) map[string]any {
	columns := g.Columns()
	rows := make([]map[string]any, g.RowCount())
	for i := range rows {
		row := make(map[string]any, len(columns))
		for j, col := range columns {
			row[col] = g.Cell(i, j)
		}
		rows[i] = row
	}
	return map[string]any{
		"rows":    rows,
		"columns": columns,
	}
}
