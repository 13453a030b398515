package directive

import (
	"errors"

	"sled/internal/diag"
	"sled/internal/source"
)

// StartsHere performs directive start detection. On entry the cursor is
// positioned immediately after a consumed "#!"; nothing is consumed here.
// Под StrictNoSpace директива начинается только если дальше идёт
// пробел/граница строки/EOF; под AllowSpace — всегда.
func StartsHere(g Grammar, mode SpaceMode) bool {
	if mode == AllowSpace {
		return true
	}
	if g.EOF() {
		return true
	}
	b := g.Peek()
	return b == '\n' || isIntraline(b)
}

// Scan attempts to read a line directive. On entry the cursor must be
// positioned immediately after a consumed "#!"; start is the byte offset of
// the '#'. It returns the Directive, or ErrNotADirective with the cursor
// untouched, or one of *NestedError, *CrossLineError, *MalformedDatumError.
//
// On success the cursor is left at the terminating newline (or at EOF); on
// error it is left at the failure point for diagnostic reporting.
func Scan(g Grammar, start uint32, opts Options) (Directive, error) {
	if !StartsHere(g, opts.Space) {
		return Directive{}, ErrNotADirective
	}

	// Якорная строка: единственное условие завершения. Проверяется заново
	// после каждого skip и каждого прочитанного датума, потому что вложенный
	// комментарий или многострочный литерал могут протащить курсор за '\n'
	// незаметно для одноразовой проверки.
	anchor := g.Line()
	var b Builder

	for {
		if err := skipIntraline(g, anchor); err != nil {
			sp := source.Span{File: g.FileID(), Start: start, End: g.Offset()}
			return Directive{}, scanError(opts, sp, err)
		}
		if g.EOF() || g.Line() != anchor || g.Peek() == '\n' {
			break
		}

		// Вложенная директива на нашем собственном уровне: "#! #! foo".
		// Случай "#! outer (#! inner)" ловит хост внутри ReadDatum.
		if nestedStartsHere(g, opts.Space) {
			sp := source.Span{File: g.FileID(), Start: g.Offset(), End: g.Offset() + 2}
			if opts.Reporter != nil {
				diag.ReportError(opts.Reporter, diag.DirNested, sp,
					"line directive may not contain another #! directive").Emit()
			}
			return Directive{}, &NestedError{Span: sp}
		}

		mark := g.Offset()
		v, err := g.ReadDatum()
		if err != nil {
			sp := source.Span{File: g.FileID(), Start: mark, End: g.Offset()}
			return Directive{}, scanError(opts, sp, err)
		}

		if g.Line() != anchor {
			// Датум сам пересёк границу строки (многострочный литерал или
			// незакрытый список). Поведение настраиваемое.
			sp := v.Span
			if opts.CrossLine == CrossLineTruncate {
				g.Seek(mark)
				for !g.EOF() && g.Peek() != '\n' {
					g.Bump()
				}
				break
			}
			if opts.Reporter != nil {
				diag.ReportError(opts.Reporter, diag.DirCrossesLine, sp,
					"datum in line directive extends past end of line").Emit()
			}
			return Directive{}, &CrossLineError{Span: sp}
		}

		b.Append(v)
	}

	sp := source.Span{File: g.FileID(), Start: start, End: g.Offset()}
	return b.Finalize(sp), nil
}

// nestedStartsHere checks for a "#!" directive start at the cursor without
// leaving the cursor moved.
func nestedStartsHere(g Grammar, mode SpaceMode) bool {
	save := g.Offset()
	if g.Bump() != '#' || g.Bump() != '!' {
		g.Seek(save)
		return false
	}
	ok := StartsHere(g, mode)
	g.Seek(save)
	return ok
}

// scanError wraps a host grammar failure, reporting it once if a reporter is
// configured. Вложенные ошибки хоста (NestedError из внутреннего контекста)
// пробрасываются как есть — их уже отрепортил тот, кто их поднял.
func scanError(opts Options, sp source.Span, err error) error {
	var nested *NestedError
	if errors.As(err, &nested) {
		return err
	}
	var crossed *CrossLineError
	if errors.As(err, &crossed) {
		return err
	}
	if opts.Reporter != nil {
		diag.ReportError(opts.Reporter, diag.DirMalformedDatum, sp, err.Error()).Emit()
	}
	return &MalformedDatumError{Span: sp, Err: err}
}
