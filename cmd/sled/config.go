package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"sled/internal/directive"
	"sled/internal/driver"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Reader readerConfig `toml:"reader"`
	Output outputConfig `toml:"output"`
}

type readerConfig struct {
	// AllowSpace, если true, принимает "#!name" как директиву.
	AllowSpace bool `toml:"allow_space"`
	// CrossLine: "error" (default) или "truncate".
	CrossLine string `toml:"cross_line"`
	FoldCase  bool   `toml:"fold_case"`
}

type outputConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
}

func findSledToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sled.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findSledToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// applyManifest накладывает значения из sled.toml на опции прогона.
// Флаги командной строки применяются после и имеют приоритет.
func applyManifest(opts *driver.Options, cfg projectConfig) error {
	if cfg.Reader.AllowSpace {
		opts.Space = directive.AllowSpace
	}
	switch cfg.Reader.CrossLine {
	case "", "error":
		opts.CrossLine = directive.CrossLineIsError
	case "truncate":
		opts.CrossLine = directive.CrossLineTruncate
	default:
		return fmt.Errorf("invalid reader.cross_line %q (expected error|truncate)", cfg.Reader.CrossLine)
	}
	if cfg.Reader.FoldCase {
		opts.FoldCase = true
	}
	if cfg.Output.MaxDiagnostics > 0 {
		opts.MaxDiagnostics = cfg.Output.MaxDiagnostics
	}
	return nil
}
