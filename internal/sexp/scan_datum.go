package sexp

import (
	"sled/internal/datum"
	"sled/internal/diag"
	"sled/internal/directive"
)

// isDelimiter reports bytes that end an atom.
// '#' намеренно не разделитель: символы вида "a#b" допустимы.
func isDelimiter(b byte) bool {
	if isWhitespace(b) {
		return true
	}
	switch b {
	case '(', ')', '"', ';', '\'', '`', ',':
		return true
	}
	return false
}

// readDatumHere reads one datum starting exactly at the cursor. Leading
// trivia must already be consumed. На EOF не вызывается снаружи; guard
// оставлен для датум-комментариев.
func (r *Reader) readDatumHere() (datum.Value, error) {
	if r.cursor.EOF() {
		sp := r.cursor.SpanFrom(r.cursor.Mark())
		return datum.Value{}, r.errLex(diag.LexUnexpectedEOF, sp, "expected a datum, found end of input")
	}

	switch b := r.cursor.Peek(); {
	case b == '(':
		return r.readList()

	case b == ')':
		sp := r.cursor.SpanFrom(r.cursor.Mark())
		return datum.Value{}, r.errLex(diag.LexUnexpectedCloser, sp, "unexpected ')'")

	case b == '"':
		return r.scanString()

	case b == '\'':
		return r.readAbbreviation("quote")

	case b == '`':
		return r.readAbbreviation("quasiquote")

	case b == ',':
		start := r.cursor.Mark()
		r.cursor.Bump()
		if r.cursor.Eat('@') {
			return r.readAbbreviationFrom(start, "unquote-splicing")
		}
		return r.readAbbreviationFrom(start, "unquote")

	case b == '#':
		return r.readHashSyntax()

	default:
		return r.scanAtom()
	}
}

func (r *Reader) readList() (datum.Value, error) {
	start := r.cursor.Mark()
	r.cursor.Bump() // '('
	var items []datum.Value
	for {
		if err := r.skipTrivia(false); err != nil {
			return datum.Value{}, err
		}
		if r.cursor.EOF() {
			sp := r.cursor.SpanFrom(start)
			return datum.Value{}, r.errLex(diag.LexUnterminatedList, sp, "unterminated list")
		}
		if r.cursor.Eat(')') {
			return datum.NewList(items, r.cursor.SpanFrom(start)), nil
		}
		item, err := r.readDatumHere()
		if err != nil {
			return datum.Value{}, err
		}
		items = append(items, item)
	}
}

func (r *Reader) readVector(start Mark) (datum.Value, error) {
	r.cursor.Bump() // '('
	var items []datum.Value
	for {
		if err := r.skipTrivia(false); err != nil {
			return datum.Value{}, err
		}
		if r.cursor.EOF() {
			sp := r.cursor.SpanFrom(start)
			return datum.Value{}, r.errLex(diag.LexUnterminatedList, sp, "unterminated vector")
		}
		if r.cursor.Eat(')') {
			return datum.NewVector(items, r.cursor.SpanFrom(start)), nil
		}
		item, err := r.readDatumHere()
		if err != nil {
			return datum.Value{}, err
		}
		items = append(items, item)
	}
}

// readAbbreviation handles 'x `x — они раскрываются в (quote x) и т.п.
func (r *Reader) readAbbreviation(name string) (datum.Value, error) {
	start := r.cursor.Mark()
	r.cursor.Bump()
	return r.readAbbreviationFrom(start, name)
}

func (r *Reader) readAbbreviationFrom(start Mark, name string) (datum.Value, error) {
	if err := r.skipTrivia(false); err != nil {
		return datum.Value{}, err
	}
	if r.cursor.EOF() {
		sp := r.cursor.SpanFrom(start)
		return datum.Value{}, r.errLex(diag.LexUnexpectedEOF, sp, "expected a datum after '"+name+"' abbreviation")
	}
	inner, err := r.readDatumHere()
	if err != nil {
		return datum.Value{}, err
	}
	sp := r.cursor.SpanFrom(start)
	head := datum.NewSymbol(name, sp)
	return datum.NewList([]datum.Value{head, inner}, sp), nil
}

// readHashSyntax dispatches "#..." forms: vectors, booleans, characters.
// "#!" сюда попадает только из вложенного контекста датума.
func (r *Reader) readHashSyntax() (datum.Value, error) {
	start := r.cursor.Mark()
	b0, b1, ok := r.cursor.Peek2()
	if !ok || b0 != '#' {
		r.cursor.Bump()
		sp := r.cursor.SpanFrom(start)
		return datum.Value{}, r.errLex(diag.LexUnknownChar, sp, "lone '#' at end of input")
	}

	switch b1 {
	case '(':
		r.cursor.Bump() // '#'
		return r.readVector(start)

	case 't', 'f':
		return r.scanBoolean()

	case '\\':
		return r.scanChar()

	case '!':
		r.cursor.Bump()
		r.cursor.Bump()
		sp := r.cursor.SpanFrom(start)
		if directive.StartsHere(grammarAdapter{r}, r.opts.Space) {
			if r.inDirective {
				if r.opts.Reporter != nil {
					diag.ReportError(r.opts.Reporter, diag.DirNested, sp,
						"line directive may not contain another #! directive").Emit()
				}
				return datum.Value{}, &directive.NestedError{Span: sp}
			}
			return datum.Value{}, r.errLex(diag.DirNotTopLevel, sp,
				"line directive is only allowed between datums at top level")
		}
		// именованный маркер посреди датума: обработать и продолжить
		if err := r.readNamedMarker(start); err != nil {
			return datum.Value{}, err
		}
		if err := r.skipTrivia(false); err != nil {
			return datum.Value{}, err
		}
		return r.readDatumHere()

	default:
		r.cursor.Bump()
		r.cursor.Bump()
		sp := r.cursor.SpanFrom(start)
		return datum.Value{}, r.errLex(diag.LexUnknownChar, sp, "unsupported '#' syntax")
	}
}
