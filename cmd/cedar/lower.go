package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cedar/internal/diagfmt"
	"cedar/internal/driver"
	"cedar/internal/layout"
	"cedar/internal/source"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] file.c",
	Short: "Lower a C source file to typed IR",
	Long:  `Lower runs the full pipeline over a C source file and outputs the typed IR of every expression unit`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	lowerCmd.Flags().String("target", "", "target triple (default from cedar.toml or x86_64-linux-gnu)")
}

func runLower(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	targetTriple, err := cmd.Flags().GetString("target")
	if err != nil {
		return fmt.Errorf("failed to get target flag: %w", err)
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
		return fmt.Errorf("lower expects a single file; use check for directories")
	}

	target, err := layout.ResolveTarget(targetTriple, filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve target: %w", err)
	}

	// Кэш не используем: попадание вернуло бы диагностики без дерева.
	opts := driver.Options{
		Target:         target,
		MaxDiagnostics: maxDiagnostics,
	}

	fileSet := source.NewFileSet()
	result, err := driver.Check(cmd.Context(), fileSet, filePath, opts)
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		useColor, colorErr := useColorOutput(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		diagfmt.Pretty(os.Stderr, result.Bag, fileSet, diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		})
	}

	// IR печатается и при ошибках: отравленные узлы несут тип ошибки.
	switch format {
	case "pretty":
		err = diagfmt.FormatIRPretty(os.Stdout, result.Typed, result.Interner)
	case "json":
		err = diagfmt.FormatIRJSON(os.Stdout, result.Typed, result.Interner)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to format IR: %w", err)
	}

	if result.Bag.HasErrors() {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}
