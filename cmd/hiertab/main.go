// Package main provides the CLI entry point for hiertab. It is a thin
// caller of the hiertab library: it loads tabular input, reads scan and
// validation settings from a YAML config file, and writes results out.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hiertab/hiertab"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	sheet      string
	outputPath string
	format     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hiertab",
		Short: "Extract normalized records from hierarchical spreadsheet data",
		Long: `hiertab scans spreadsheets where each logical record spans multiple
rows and columns, extracts the records by identifier labels, and emits a
flat normalized table. It can also validate tabular data against a
declarative rule set.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "hiertab.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	transformCmd := &cobra.Command{
		Use:   "transform [input.xlsx|input.csv]",
		Short: "Transform hierarchical data into a normalized table",
		Args:  cobra.ExactArgs(1),
		RunE:  runTransform,
	}
	transformCmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (xlsx input; default: first sheet)")
	transformCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	transformCmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: csv, json, or table")

	validateCmd := &cobra.Command{
		Use:   "validate [input.xlsx|input.csv]",
		Short: "Validate a flat table against the configured rule set",
		Long: `validate reads a table whose first row is the header and applies the
rules from the config file. Exit status is 1 when any rule fails.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
	validateCmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (xlsx input; default: first sheet)")

	rootCmd.AddCommand(transformCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTransform(cmd *cobra.Command, args []string) error {
	logger := setupLogger(logLevel, logFormat)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	grid, err := loadGrid(args[0], sheet)
	if err != nil {
		return err
	}

	transformer := hiertab.NewTransformer(hiertab.WithLogger(logger))
	result, err := transformer.Transform(grid, cfg.transformConfig())
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return renderGrid(out, result, format)
}

func runValidate(cmd *cobra.Command, args []string) error {
	setupLogger(logLevel, logFormat)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	grid, err := loadGrid(args[0], sheet)
	if err != nil {
		return err
	}
	grid, err = grid.PromoteHeader()
	if err != nil {
		return err
	}

	result := hiertab.Validate(grid, cfg.validationRules())

	out := cmd.OutOrStdout()
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(out, "error: %s\n", e)
	}
	if !result.IsValid {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}
	fmt.Fprintln(out, "ok")
	return nil
}

// loadGrid reads xlsx or csv input based on the file extension.
func loadGrid(path, sheet string) (*hiertab.Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return hiertab.GridFromXLSX(path, sheet)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		return hiertab.GridFromCSV(f)
	}
}

// setupLogger configures a slog logger writing to stderr so that table
// output on stdout stays clean.
func setupLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	var w io.Writer = os.Stderr
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
