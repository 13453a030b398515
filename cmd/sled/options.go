package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sled/internal/diag"
	"sled/internal/diagfmt"
	"sled/internal/directive"
	"sled/internal/driver"
	"sled/internal/source"
)

// addReaderFlags registers the flags shared by commands that read source files.
func addReaderFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("allow-space", false, "treat #!name as a directive start")
	cmd.Flags().Bool("fold-case", false, "start reading with symbol case folding on")
	cmd.Flags().String("cross-line", "", "directive datum past end of line: error|truncate")
}

// readerOptions собирает опции прогона: сначала sled.toml (ищется вверх от
// startDir), потом флаги командной строки поверх.
func readerOptions(cmd *cobra.Command, startDir string) (driver.Options, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts := driver.Options{MaxDiagnostics: maxDiagnostics}

	if manifest, ok, err := loadProjectManifest(startDir); err != nil {
		return driver.Options{}, err
	} else if ok {
		if err := applyManifest(&opts, manifest.Config); err != nil {
			return driver.Options{}, err
		}
	}

	if cmd.Flags().Changed("allow-space") {
		if v, _ := cmd.Flags().GetBool("allow-space"); v {
			opts.Space = directive.AllowSpace
		} else {
			opts.Space = directive.StrictNoSpace
		}
	}
	if cmd.Flags().Changed("fold-case") {
		opts.FoldCase, _ = cmd.Flags().GetBool("fold-case")
	}
	if cmd.Flags().Changed("cross-line") {
		switch v, _ := cmd.Flags().GetString("cross-line"); v {
		case "error":
			opts.CrossLine = directive.CrossLineIsError
		case "truncate":
			opts.CrossLine = directive.CrossLineTruncate
		default:
			return driver.Options{}, fmt.Errorf("invalid --cross-line value %q (expected error|truncate)", v)
		}
	}

	opts.Timings, _ = cmd.Root().PersistentFlags().GetBool("timings")
	return opts, nil
}

// printDiagnostics выводит содержимое bag в stderr.
func printDiagnostics(cmd *cobra.Command, fileSet *source.FileSet, bag *diag.Bag) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   2,
		ShowNotes: true,
	})
}
