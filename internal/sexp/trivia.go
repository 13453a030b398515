package sexp

import (
	"sled/internal/diag"
	"sled/internal/directive"
)

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// skipTrivia консумит пробелы, комментарии, именованные #!-маркеры и (на
// верхнем уровне) линейные директивы. Останавливается на первом значимом
// байте или EOF.
func (r *Reader) skipTrivia(topLevel bool) error {
	for !r.cursor.EOF() {
		b := r.cursor.Peek()

		if isWhitespace(b) {
			r.cursor.Bump()
			continue
		}

		consumed, err := r.skipComment()
		if err != nil {
			return err
		}
		if consumed {
			continue
		}

		// "#!" — директива или именованный маркер
		if b0, b1, ok := r.cursor.Peek2(); ok && b0 == '#' && b1 == '!' {
			start := r.cursor.Mark()
			r.cursor.Bump()
			r.cursor.Bump()
			if directive.StartsHere(grammarAdapter{r}, r.opts.Space) {
				if !topLevel {
					// внутри датума директива не начинается; если мы в
					// директиве — это вложенная
					sp := r.cursor.SpanFrom(start)
					if r.inDirective {
						if r.opts.Reporter != nil {
							diag.ReportError(r.opts.Reporter, diag.DirNested, sp,
								"line directive may not contain another #! directive").Emit()
						}
						return &directive.NestedError{Span: sp}
					}
					return r.errLex(diag.DirNotTopLevel, sp,
						"line directive is only allowed between datums at top level")
				}
				if err := r.readDirective(start); err != nil {
					return err
				}
				continue
			}
			if err := r.readNamedMarker(start); err != nil {
				return err
			}
			continue
		}

		break
	}
	return nil
}

// skipComment consumes one comment if one starts at the cursor: a ';' line
// comment, a nested '#| |#' block comment, or a '#;' datum comment.
func (r *Reader) skipComment() (bool, error) {
	b := r.cursor.Peek()
	if b == ';' {
		for !r.cursor.EOF() && r.cursor.Peek() != '\n' {
			r.cursor.Bump()
		}
		return true, nil
	}
	if b != '#' {
		return false, nil
	}
	b0, b1, ok := r.cursor.Peek2()
	if !ok || b0 != '#' {
		return false, nil
	}
	switch b1 {
	case '|':
		start := r.cursor.Mark()
		r.cursor.Bump()
		r.cursor.Bump()
		depth := 1
		for !r.cursor.EOF() && depth > 0 {
			if c0, c1, ok := r.cursor.Peek2(); ok {
				if c0 == '#' && c1 == '|' {
					r.cursor.Bump()
					r.cursor.Bump()
					depth++
					continue
				}
				if c0 == '|' && c1 == '#' {
					r.cursor.Bump()
					r.cursor.Bump()
					depth--
					continue
				}
			}
			r.cursor.Bump()
		}
		if depth > 0 {
			sp := r.cursor.SpanFrom(start)
			return true, r.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		return true, nil

	case ';':
		// датум-комментарий: выбрасываем следующий датум целиком
		start := r.cursor.Mark()
		r.cursor.Bump()
		r.cursor.Bump()
		if err := r.skipTrivia(false); err != nil {
			return true, err
		}
		if r.cursor.EOF() {
			sp := r.cursor.SpanFrom(start)
			return true, r.errLex(diag.LexUnterminatedDatumComment, sp, "datum comment without a datum")
		}
		if _, err := r.readDatumHere(); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}
