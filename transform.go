// Package hiertab extracts structured records from hierarchically laid-out
// tabular data, where one logical record spans several rows and columns
// instead of occupying a single row. A positional scan locates record
// boundaries by identifier labels, fills each record's fields from a bounded
// 2-D neighborhood, and normalizes the result into a flat table. A separate
// rule-driven validator checks any table against declarative constraints.
package hiertab

import "fmt"

// Transformer converts hierarchical grids into normalized tables.
type Transformer struct {
	opts *Options
}

// NewTransformer creates a Transformer with the given options.
func NewTransformer(opts ...Option) *Transformer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Transformer{opts: o}
}

// Transform scans the grid per the config and returns the normalized table.
// It fails with a configuration error for an empty identifier field or
// target field list, and with ErrEmptyGrid for a grid without rows; both are
// raised before any transform step runs. A grid with no identifier
// occurrences yields a zero-row table, not an error.
func (t *Transformer) Transform(g *Grid, cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if g == nil || g.RowCount() == 0 {
		return nil, ErrEmptyGrid
	}
	cfg = cfg.withDefaults()
	logger := t.opts.logger
	logger.Info("starting transformation",
		"rows", g.RowCount(), "columns", g.ColumnCount())

	if cfg.SkipRows > 0 {
		g = g.skipRows(cfg.SkipRows)
		logger.Info("skipped leading rows", "count", cfg.SkipRows)
	}
	if len(cfg.DropColumns) > 0 {
		g = g.dropColumns(cfg.DropColumns)
		logger.Info("dropped columns", "positions", cfg.DropColumns)
	}

	records := extractRecords(g, cfg)
	logger.Info("extracted records", "count", len(records))

	table := assembleTable(records, cfg, t.opts.dateLayouts)
	logger.Info("finished transformation",
		"rows", table.RowCount(), "columns", table.ColumnCount())
	return table, nil
}

// Transform is a convenience wrapper using a default Transformer.
func Transform(g *Grid, cfg Config) (*Grid, error) {
	return NewTransformer().Transform(g, cfg)
}
