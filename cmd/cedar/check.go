package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cedar/internal/diagfmt"
	"cedar/internal/driver"
	"cedar/internal/layout"
	"cedar/internal/pipeline"
	"cedar/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.c|directory>",
	Short: "Check C expressions in a file or directory",
	Long:  `Check runs the full pipeline (lex, parse, analyze) over a C source file or all *.c files within a directory and reports rule violations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// init registers CLI flags for the check command used by runCheck.
// It configures output format, target selection, cache behaviour,
// concurrency, progress UI and IR emission.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("target", "", "target triple (default from cedar.toml or x86_64-linux-gnu)")
	checkCmd.Flags().Bool("no-cache", false, "skip the persistent diagnostic cache")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("emit-ir", false, "emit typed IR after analysis (single files only)")
}

// runCheck executes the "check" command: it parses command flags, checks the
// provided path (single file or directory), formats the diagnostics in the
// chosen output format and exits with a non-zero status when any diagnostics
// contain errors.
func runCheck(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	targetTriple, err := cmd.Flags().GetString("target")
	if err != nil {
		return fmt.Errorf("failed to get target flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	emitIR, err := cmd.Flags().GetBool("emit-ir")
	if err != nil {
		return fmt.Errorf("failed to get emit-ir flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	progressUI, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	target, err := layout.ResolveTarget(targetTriple, filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve target: %w", err)
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() && emitIR {
		return fmt.Errorf("--emit-ir is only supported for single files")
	}

	stopTracing, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer stopTracing()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	// IR строится только после parse и sema, поэтому с --emit-ir кэш обходим:
	// попадание вернуло бы диагностики без дерева.
	var cache *driver.DiskCache
	if !noCache && !emitIR {
		cache, err = driver.OpenDiskCache("cedar")
		if err != nil {
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache unavailable: %v\n", err)
			}
			cache = nil
		}
	}

	opts := driver.Options{
		Target:         target,
		MaxDiagnostics: maxDiagnostics,
		Timings:        showTimings,
		Cache:          cache,
	}

	// TUI рисует в stdout, поэтому включаем его только для pretty-вывода.
	useTUI := shouldUseTUI(progressUI) && format == "pretty"

	useColor, err := useColorOutput(cmd, os.Stdout)
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   2,
		PathMode:  pathMode,
		ShowNotes: withNotes,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
	}

	runFile := func() (int, error) {
		var (
			fileSet *source.FileSet
			result  *driver.Result
			err     error
		)
		if useTUI {
			fileSet, result, err = runCheckFileWithUI(cmd.Context(), "cedar check", filePath, opts)
		} else {
			fileSet = source.NewFileSet()
			result, err = driver.Check(cmd.Context(), fileSet, filePath, opts)
		}
		if err != nil {
			return 0, fmt.Errorf("check failed: %w", err)
		}

		exit := 0
		if result.Bag.HasErrors() {
			exit = 1
		}

		switch format {
		case "pretty":
			diagfmt.Pretty(os.Stdout, result.Bag, fileSet, prettyOpts)
		case "json":
			if err := diagfmt.JSON(os.Stdout, result.Bag, fileSet, jsonOpts); err != nil {
				return 0, fmt.Errorf("failed to format diagnostics: %w", err)
			}
		default:
			return 0, fmt.Errorf("unknown format: %s", format)
		}

		if emitIR {
			switch format {
			case "pretty":
				fmt.Fprintln(os.Stdout, "\n== IR ==")
				if err := diagfmt.FormatIRPretty(os.Stdout, result.Typed, result.Interner); err != nil {
					return 0, fmt.Errorf("failed to format IR: %w", err)
				}
			case "json":
				if err := diagfmt.FormatIRJSON(os.Stdout, result.Typed, result.Interner); err != nil {
					return 0, fmt.Errorf("failed to format IR: %w", err)
				}
			}
		}

		if showTimings && !quiet && format == "pretty" {
			printStageTimings(os.Stdout, result.Timings)
		}

		return exit, nil
	}

	runDir := func() (int, error) {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return 0, fmt.Errorf("failed to get jobs flag: %w", err)
		}

		dirOpts := driver.DirOptions{Options: opts, Jobs: jobs}

		var (
			fileSet *source.FileSet
			results []*driver.Result
		)
		if useTUI {
			files, listErr := driver.ListCFiles(filePath)
			if listErr != nil {
				return 0, fmt.Errorf("check failed: %w", listErr)
			}
			names := pipeline.NormalizeFiles(files, filePath)
			fileSet, results, err = runCheckDirWithUI(cmd.Context(), "cedar check", filePath, names, dirOpts)
		} else {
			fileSet, results, err = driver.CheckDir(cmd.Context(), filePath, dirOpts)
		}
		if err != nil {
			return 0, fmt.Errorf("check failed: %w", err)
		}

		exit := 0
		for _, r := range results {
			if r.Bag.HasErrors() {
				exit = 1
				break
			}
		}

		switch format {
		case "pretty":
			printed := 0
			for _, r := range results {
				if quiet && r.Bag.Len() == 0 {
					continue
				}
				if printed > 0 {
					fmt.Fprintln(os.Stdout)
				}
				printed++
				fmt.Fprintf(os.Stdout, "== %s ==\n", displayPathFor(r, fileSet, fullPath))
				diagfmt.Pretty(os.Stdout, r.Bag, fileSet, prettyOpts)
			}
		case "json":
			output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
			for _, r := range results {
				output[displayPathFor(r, fileSet, fullPath)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fileSet, jsonOpts)
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				return 0, fmt.Errorf("failed to encode diagnostics output: %w", err)
			}
		default:
			return 0, fmt.Errorf("unknown format: %s", format)
		}

		if showTimings && !quiet && format == "pretty" {
			printStageTimings(os.Stdout, aggregateTimings(results))
		}

		return exit, nil
	}

	var (
		exitCode  int
		resultErr error
	)
	if st.IsDir() {
		exitCode, resultErr = runDir()
	} else {
		exitCode, resultErr = runFile()
	}

	if resultErr != nil {
		return resultErr
	}
	if exitCode != 0 {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// displayPathFor picks the path shown in per-file headers and JSON keys.
func displayPathFor(r *driver.Result, fileSet *source.FileSet, fullPath bool) string {
	if r.File != nil {
		mode := "auto"
		if fullPath {
			mode = "absolute"
		}
		return r.File.FormatPath(mode, fileSet.BaseDir())
	}
	if fullPath {
		if abs, err := source.AbsolutePath(r.Path); err == nil {
			return abs
		}
	}
	return r.Path
}
