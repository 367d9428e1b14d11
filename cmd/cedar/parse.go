package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cedar/internal/diagfmt"
	"cedar/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.c",
	Short: "Parse a C source file and output its units",
	Long:  `Parse runs the lexer and parser over a C source file and outputs the declaration and expression units it found`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return fmt.Errorf("parse expects a single file; use check for directories")
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		useColor, colorErr := useColorOutput(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		opts := diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatUnitsPretty(os.Stdout, result.Units, result.Exprs, result.Interner, result.FileSet)
	case "json":
		return diagfmt.FormatUnitsJSON(os.Stdout, result.Units, result.Exprs, result.Interner)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
