package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sled/internal/diag"
	"sled/internal/source"
)

// ListSourceFiles возвращает отсортированный список всех исходных файлов
// (*.scm, *.sld, *.sexp) в директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case strings.HasSuffix(path, ".scm"),
			strings.HasSuffix(path, ".sld"),
			strings.HasSuffix(path, ".sexp"):
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// DirOptions настраивает параллельный прогон по директории.
type DirOptions struct {
	Options

	// Jobs ограничивает число одновременно читаемых файлов;
	// 0 - GOMAXPROCS.
	Jobs int

	// Progress, если задан, получает события по мере обработки файлов.
	Progress ProgressSink
}

// ScanDir читает все исходные файлы в директории параллельно.
// Результаты идут в порядке отсортированных путей независимо от того, в каком
// порядке закончили горутины.
func ScanDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []*Result, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSet(), nil, nil
	}

	// FileSet не потокобезопасен: все файлы грузим до запуска горутин.
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				results[i] = &Result{Path: path, Bag: bag}
				emit(opts.Progress, Event{
					File: path, Stage: StageLoad, Status: StatusError,
					Err: loadErr, Elapsed: time.Since(started),
				})
				return nil
			}

			result := ScanFile(fileSet, fileIDs[path], opts.Options)
			results[i] = result

			status := StatusDone
			if result.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{
				File: path, Stage: StageRead, Status: status,
				Elapsed: time.Since(started),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
