package diagfmt

import (
	"os"
	"path/filepath"

	"sled/internal/source"
)

// formatPath форматирует путь файла согласно режиму. Виртуальные файлы
// (stdin, тесты) отдаются как есть.
func formatPath(f *source.File, mode PathMode) string {
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
	case PathModeRelative, PathModeAuto:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, f.Path); err == nil && len(rel) <= len(f.Path) {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}
