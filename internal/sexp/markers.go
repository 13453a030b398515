package sexp

import (
	"sled/internal/diag"
)

// readNamedMarker is entered with the cursor just past a "#!" that did not
// qualify as a directive start (StrictNoSpace). Known markers toggle reader
// state; unknown names are a syntax error.
func (r *Reader) readNamedMarker(start Mark) error {
	nameStart := r.cursor.Mark()
	for !r.cursor.EOF() && !isDelimiter(r.cursor.Peek()) {
		r.cursor.Bump()
	}
	name := string(r.file.Content[nameStart:Mark(r.cursor.Off)])

	switch name {
	case "fold-case":
		r.foldCase = true
	case "no-fold-case":
		r.foldCase = false
	default:
		sp := r.cursor.SpanFrom(start)
		return r.errLex(diag.LexUnknownNamedMarker, sp, "unknown #! marker: #!"+name)
	}
	return nil
}
