package driver

import (
	"sled/internal/datum"
	"sled/internal/diag"
	"sled/internal/directive"
	"sled/internal/observ"
	"sled/internal/sexp"
	"sled/internal/source"
)

// Options управляет одним прогоном чтения.
type Options struct {
	// Space controls #! start detection.
	Space directive.SpaceMode
	// CrossLine controls directive datums that extend past the directive line.
	CrossLine directive.CrossLineMode
	// FoldCase sets the initial symbol case folding state.
	FoldCase bool

	MaxDiagnostics int
	Timings        bool
}

// Result содержит результат чтения одного файла.
type Result struct {
	Path       string
	FileID     source.FileID
	Datums     []datum.Value
	Directives []directive.Directive
	Bag        *diag.Bag
	Timing     *observ.Report
}

// HasErrors reports whether the run produced error diagnostics.
func (r *Result) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// ScanFile reads all datums and directives from an already loaded file.
// Все синтаксические ошибки оседают в Result.Bag; возвращаемая ошибка по
// чтению не прокидывается, частично прочитанные датумы остаются в Result.
func ScanFile(fileSet *source.FileSet, fileID source.FileID, opts Options) *Result {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	timer := observ.NewTimer()

	reader := sexp.NewReader(file, sexp.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		Space:     opts.Space,
		CrossLine: opts.CrossLine,
		FoldCase:  opts.FoldCase,
	})

	phase := timer.Begin(string(StageRead))
	vals, _ := reader.ReadAll()
	timer.End(phase, file.Path)

	result := &Result{
		Path:       file.Path,
		FileID:     fileID,
		Datums:     vals,
		Directives: reader.Directives(),
		Bag:        bag,
	}

	if opts.Timings {
		report := timer.Report()
		result.Timing = &report
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "scan",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	return result
}

// Scan loads a single file from disk and reads it.
func Scan(path string, opts Options) (*source.FileSet, *Result, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return fileSet, nil, err
	}
	return fileSet, ScanFile(fileSet, fileID, opts), nil
}

// ScanBytes reads datums from an in-memory buffer (stdin, tests).
func ScanBytes(name string, content []byte, opts Options) (*source.FileSet, *Result) {
	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual(name, content)
	return fileSet, ScanFile(fileSet, fileID, opts)
}
