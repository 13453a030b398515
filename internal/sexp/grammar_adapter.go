package sexp

import (
	"sled/internal/datum"
	"sled/internal/directive"
	"sled/internal/source"
)

// grammarAdapter exposes the reader to the directive scanner. ReadDatum here
// intentionally reads at the current position without skipping trivia: пропуск
// пробелов и комментариев внутри директивы делает сам сканер.
type grammarAdapter struct {
	r *Reader
}

var _ directive.Grammar = grammarAdapter{}

func (a grammarAdapter) EOF() bool  { return a.r.cursor.EOF() }
func (a grammarAdapter) Peek() byte { return a.r.cursor.Peek() }
func (a grammarAdapter) Bump() byte { return a.r.cursor.Bump() }

func (a grammarAdapter) Offset() uint32    { return a.r.cursor.Off }
func (a grammarAdapter) Seek(off uint32)   { a.r.cursor.Off = off }
func (a grammarAdapter) Line() uint32      { return a.r.cursor.Line() }
func (a grammarAdapter) FileID() source.FileID { return a.r.file.ID }

func (a grammarAdapter) SkipComment() (bool, error) {
	return a.r.skipComment()
}

func (a grammarAdapter) ReadDatum() (datum.Value, error) {
	return a.r.readDatumHere()
}
