package sexp

import (
	"strconv"
	"strings"

	"sled/internal/datum"
	"sled/internal/diag"
)

// scanString is entered at '"'. Поддержка escape: \" \\ \n \t \r \xNN; и
// перенос строки "\<newline><отступ>" (он делает строковый литерал легально
// многострочным). Сырой '\n' внутри строки — ошибка.
func (r *Reader) scanString() (datum.Value, error) {
	start := r.cursor.Mark()
	r.cursor.Bump() // opening '"'
	var decoded strings.Builder

	for !r.cursor.EOF() {
		b := r.cursor.Peek()

		if b == '"' {
			r.cursor.Bump()
			sp := r.cursor.SpanFrom(start)
			text := string(r.file.Content[sp.Start:sp.End])
			return datum.NewString(text, decoded.String(), sp), nil
		}

		if b == '\n' {
			sp := r.cursor.SpanFrom(start)
			return datum.Value{}, r.errLex(diag.LexNewlineInString, sp, "newline in string literal")
		}

		if b == '\\' {
			r.cursor.Bump()
			if r.cursor.EOF() {
				break
			}
			if err := r.scanEscape(&decoded, start); err != nil {
				return datum.Value{}, err
			}
			continue
		}

		decoded.WriteByte(r.cursor.Bump())
	}

	sp := r.cursor.SpanFrom(start)
	return datum.Value{}, r.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
}

// scanEscape is entered just past the backslash.
func (r *Reader) scanEscape(decoded *strings.Builder, start Mark) error {
	switch b := r.cursor.Bump(); b {
	case '"':
		decoded.WriteByte('"')
	case '\\':
		decoded.WriteByte('\\')
	case 'n':
		decoded.WriteByte('\n')
	case 't':
		decoded.WriteByte('\t')
	case 'r':
		decoded.WriteByte('\r')
	case 'x':
		hexStart := r.cursor.Mark()
		for !r.cursor.EOF() && r.cursor.Peek() != ';' && r.cursor.Peek() != '"' && r.cursor.Peek() != '\n' {
			r.cursor.Bump()
		}
		hex := string(r.file.Content[uint32(hexStart):r.cursor.Off])
		if !r.cursor.Eat(';') {
			sp := r.cursor.SpanFrom(start)
			return r.errLex(diag.LexBadEscape, sp, `\x escape must be terminated by ';'`)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			sp := r.cursor.SpanFrom(start)
			return r.errLex(diag.LexBadEscape, sp, `bad \x escape: \x`+hex)
		}
		decoded.WriteRune(rune(n))
	case '\n', ' ', '\t', '\r':
		// перенос строки: \ <intraline ws> \n <intraline ws> — ничего не даёт
		for b != '\n' {
			if r.cursor.EOF() {
				sp := r.cursor.SpanFrom(start)
				return r.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			}
			b = r.cursor.Bump()
			if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
				sp := r.cursor.SpanFrom(start)
				return r.errLex(diag.LexBadEscape, sp, "bad line continuation in string")
			}
		}
		for !r.cursor.EOF() && (r.cursor.Peek() == ' ' || r.cursor.Peek() == '\t') {
			r.cursor.Bump()
		}
	default:
		sp := r.cursor.SpanFrom(start)
		return r.errLex(diag.LexBadEscape, sp, "unknown escape character in string")
	}
	return nil
}
