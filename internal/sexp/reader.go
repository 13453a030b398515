package sexp

import (
	"io"

	"golang.org/x/text/cases"

	"sled/internal/datum"
	"sled/internal/directive"
	"sled/internal/source"
)

// Reader reads datums from a single source file per the host grammar and
// collects #! line directives encountered between top-level datums.
type Reader struct {
	file   *source.File
	cursor Cursor
	opts   Options

	dirs []directive.Directive

	// foldCase переключается маркерами #!fold-case / #!no-fold-case.
	foldCase bool
	folder   cases.Caser

	// inDirective выставлен, пока сканер директив читает датумы через нас:
	// встреченный в этом состоянии старт "#!" — это вложенная директива.
	inDirective bool
}

// NewReader creates a reader positioned at the start of the file.
func NewReader(file *source.File, opts Options) *Reader {
	return &Reader{
		file:     file,
		cursor:   NewCursor(file),
		opts:     opts,
		foldCase: opts.FoldCase,
		folder:   cases.Fold(),
	}
}

// ReadDatum skips leading whitespace, comments, named markers, and line
// directives, then reads one datum. At clean end of input it returns io.EOF.
// Встреченные директивы копятся и доступны через Directives().
func (r *Reader) ReadDatum() (datum.Value, error) {
	if err := r.skipTrivia(true); err != nil {
		return datum.Value{}, err
	}
	if r.cursor.EOF() {
		return datum.Value{}, io.EOF
	}
	return r.readDatumHere()
}

// ReadAll reads every remaining datum up to end of input.
func (r *Reader) ReadAll() ([]datum.Value, error) {
	var out []datum.Value
	for {
		v, err := r.ReadDatum()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}

// Directives returns the line directives read so far, in source order.
func (r *Reader) Directives() []directive.Directive {
	return r.dirs
}

// Offset reports the current byte offset, mainly for tests and diagnostics.
func (r *Reader) Offset() uint32 {
	return r.cursor.Off
}

// readDirective is entered with the cursor just past "#!" whose start
// condition already held. Сканеру передаётся адаптер на этот же ридер.
func (r *Reader) readDirective(start Mark) error {
	r.inDirective = true
	d, err := directive.Scan(grammarAdapter{r}, uint32(start), directive.Options{
		Space:     r.opts.Space,
		CrossLine: r.opts.CrossLine,
		Reporter:  r.opts.Reporter,
	})
	r.inDirective = false
	if err != nil {
		return err
	}
	r.dirs = append(r.dirs, d)
	return nil
}
