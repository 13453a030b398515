package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sled/internal/diagfmt"
	"sled/internal/driver"
)

var directivesCmd = &cobra.Command{
	Use:   "directives [flags] file...",
	Short: "List the #! line directives of one or more files",
	Long: `Directives reads each file and prints only its #! line directives,
one per line. With --cached, unchanged files are answered from the
on-disk cache without re-reading.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDirectives,
}

func init() {
	directivesCmd.Flags().Bool("cached", false, "use the directive cache for unchanged files")
	directivesCmd.Flags().Bool("drop-cache", false, "drop the directive cache and exit")
	addReaderFlags(directivesCmd)
}

func runDirectives(cmd *cobra.Command, args []string) error {
	cached, _ := cmd.Flags().GetBool("cached")
	dropCache, _ := cmd.Flags().GetBool("drop-cache")

	var cache *driver.DirectiveCache
	if cached || dropCache {
		var err error
		cache, err = driver.OpenDirectiveCache("sled")
		if err != nil {
			return fmt.Errorf("failed to open directive cache: %w", err)
		}
	}
	if dropCache {
		return cache.DropAll()
	}

	failed := 0
	for _, path := range args {
		if err := listDirectives(cmd, path, cache); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
	}
	return nil
}

func listDirectives(cmd *cobra.Command, path string, cache *driver.DirectiveCache) error {
	if cache != nil {
		if payload, ok, err := cache.LookupFile(path); err == nil && ok {
			for _, d := range payload.Directives {
				fmt.Fprintf(os.Stdout, "%s:%d: %s\n", path, d.Line, d.Rendered)
			}
			return nil
		}
		// промах или ошибка чтения: перечитываем как обычно
	}

	opts, err := readerOptions(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}
	fileSet, result, err := driver.Scan(path, opts)
	if err != nil {
		return err
	}

	printDiagnostics(cmd, fileSet, result.Bag)
	if result.HasErrors() {
		return fmt.Errorf("scan finished with errors")
	}

	diagfmt.DirectivesPretty(os.Stdout, fileSet, result.Directives, diagfmt.PathModeAuto)

	if cache != nil {
		if err := cache.StoreResult(fileSet, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to update directive cache: %v\n", err)
		}
	}
	return nil
}
