package sexp

import (
	"sled/internal/diag"
	"sled/internal/directive"
	"sled/internal/source"
)

// Options configures a Reader.
type Options struct {
	// Reporter может быть nil — тогда остаются только возвращаемые ошибки.
	Reporter diag.Reporter

	// Space controls #! start detection, see directive.SpaceMode.
	Space directive.SpaceMode

	// CrossLine controls datums that extend past a directive's anchor line.
	CrossLine directive.CrossLineMode

	// FoldCase sets the initial symbol case folding state, as if the input
	// started with #!fold-case.
	FoldCase bool
}

func (r *Reader) errLex(code diag.Code, sp source.Span, msg string) *Error {
	if r.opts.Reporter != nil {
		diag.ReportError(r.opts.Reporter, code, sp, msg).Emit()
	}
	return &Error{Code: code, Span: sp, Msg: msg}
}
