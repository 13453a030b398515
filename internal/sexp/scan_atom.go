package sexp

import (
	"strconv"
	"unicode/utf8"

	"sled/internal/datum"
	"sled/internal/diag"
)

// scanAtom scans a maximal run of non-delimiter bytes and classifies it:
// exact integer, inexact real, иначе символ. Символы вроде "1+2" или "-*-"
// не проходят через strconv и остаются символами.
func (r *Reader) scanAtom() (datum.Value, error) {
	start := r.cursor.Mark()
	for !r.cursor.EOF() && !isDelimiter(r.cursor.Peek()) {
		r.cursor.Bump()
	}
	sp := r.cursor.SpanFrom(start)
	text := string(r.file.Content[sp.Start:sp.End])

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return datum.NewInt(text, n, sp), nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		// strconv принимает "Inf"/"NaN"; в этой грамматике это символы
		if looksNumeric(text) {
			return datum.NewFloat(text, f, sp), nil
		}
	}

	name := text
	if r.foldCase {
		name = r.folder.String(name)
	}
	return datum.NewSymbol(name, sp), nil
}

// looksNumeric reports whether the atom starts like a number rather than an
// identifier: digit, or sign/dot followed by a digit.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
	}
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// scanBoolean is entered at "#t"/"#f"; long forms #true/#false тоже валидны.
func (r *Reader) scanBoolean() (datum.Value, error) {
	start := r.cursor.Mark()
	r.cursor.Bump() // '#'
	for !r.cursor.EOF() && !isDelimiter(r.cursor.Peek()) {
		r.cursor.Bump()
	}
	sp := r.cursor.SpanFrom(start)
	text := string(r.file.Content[sp.Start:sp.End])

	switch text {
	case "#t", "#true":
		return datum.NewBool(text, true, sp), nil
	case "#f", "#false":
		return datum.NewBool(text, false, sp), nil
	}
	return datum.Value{}, r.errLex(diag.LexUnknownChar, sp, "bad boolean literal: "+text)
}

// scanChar is entered at "#\".
func (r *Reader) scanChar() (datum.Value, error) {
	start := r.cursor.Mark()
	r.cursor.Bump() // '#'
	r.cursor.Bump() // '\'
	if r.cursor.EOF() {
		sp := r.cursor.SpanFrom(start)
		return datum.Value{}, r.errLex(diag.LexBadChar, sp, "unterminated character literal")
	}

	// первый символ после #\ всегда входит в литерал, даже если это
	// разделитель: #\( и #\space оба валидны
	nameStart := r.cursor.Mark()
	r.cursor.Bump()
	for !r.cursor.EOF() && !isDelimiter(r.cursor.Peek()) {
		r.cursor.Bump()
	}
	sp := r.cursor.SpanFrom(start)
	name := string(r.file.Content[uint32(nameStart):sp.End])
	text := string(r.file.Content[sp.Start:sp.End])

	if utf8.RuneCountInString(name) == 1 {
		c, _ := utf8.DecodeRuneInString(name)
		return datum.NewChar(text, c, sp), nil
	}
	switch name {
	case "space":
		return datum.NewChar(text, ' ', sp), nil
	case "newline":
		return datum.NewChar(text, '\n', sp), nil
	case "tab":
		return datum.NewChar(text, '\t', sp), nil
	case "return":
		return datum.NewChar(text, '\r', sp), nil
	case "null", "nul":
		return datum.NewChar(text, 0, sp), nil
	}
	if len(name) > 1 && name[0] == 'x' {
		if n, err := strconv.ParseUint(name[1:], 16, 32); err == nil && utf8.ValidRune(rune(n)) {
			return datum.NewChar(text, rune(n), sp), nil
		}
	}
	return datum.Value{}, r.errLex(diag.LexBadChar, sp, "bad character literal: "+text)
}
