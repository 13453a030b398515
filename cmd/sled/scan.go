package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sled/internal/diag"
	"sled/internal/diagfmt"
	"sled/internal/driver"
	"sled/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] path",
	Short: "Read datums and line directives from a file or directory",
	Long: `Scan reads every datum in the given file and prints them together
with the #! line directives found between them. A directory is scanned
recursively, file by file.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	scanCmd.Flags().Int("jobs", 0, "max files scanned in parallel (0 = GOMAXPROCS)")
	scanCmd.Flags().String("ui", "auto", "progress UI for directory scans (auto|on|off)")
	addReaderFlags(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return runScanDir(cmd, path, format)
	}
	return runScanFile(cmd, path, format)
}

func runScanFile(cmd *cobra.Command, path, format string) error {
	opts, err := readerOptions(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}

	fileSet, result, err := driver.Scan(path, opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printDiagnostics(cmd, fileSet, result.Bag)
	if err := writeScanOutput(fileSet, result, format); err != nil {
		return err
	}
	if result.HasErrors() {
		return fmt.Errorf("%s: scan finished with errors", path)
	}
	return nil
}

func runScanDir(cmd *cobra.Command, dir, format string) error {
	opts, err := readerOptions(cmd, dir)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")

	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	dirOpts := driver.DirOptions{Options: opts, Jobs: jobs}

	var fileSet *source.FileSet
	var results []*driver.Result
	if !quiet && format == "pretty" && shouldUseTUI(mode) {
		fileSet, results, err = runScanDirWithUI(cmd.Context(), dir, dirOpts)
	} else {
		fileSet, results, err = driver.ScanDir(cmd.Context(), dir, dirOpts)
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	merged := diag.NewBag(opts.MaxDiagnostics)
	failed := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		merged.Merge(result.Bag)
		if result.HasErrors() {
			failed++
		}
	}
	printDiagnostics(cmd, fileSet, merged)

	for _, result := range results {
		if result == nil || result.HasErrors() {
			continue
		}
		if err := writeScanOutput(fileSet, result, format); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

func writeScanOutput(fileSet *source.FileSet, result *driver.Result, format string) error {
	switch format {
	case "json":
		return diagfmt.ScanJSON(os.Stdout, fileSet, result.Datums, result.Directives,
			diagfmt.JSONOpts{IncludePositions: true})
	default:
		diagfmt.DatumsPretty(os.Stdout, fileSet, result.Datums, diagfmt.PathModeAuto)
		diagfmt.DirectivesPretty(os.Stdout, fileSet, result.Directives, diagfmt.PathModeAuto)
		return nil
	}
}

func runScanDirWithUI(ctx context.Context, dir string, opts driver.DirOptions) (*source.FileSet, []*driver.Result, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return scanDirWithProgress(ctx, dir, files, opts)
}
