package datum

import (
	"fmt"
	"strings"
)

// Write renders the value in standard external syntax.
// Перечитывание результата через Reader даёт структурно равный Value.
func Write(v Value) string {
	var sb strings.Builder
	writeTo(&sb, v)
	return sb.String()
}

func (v Value) String() string {
	return Write(v)
}

func writeTo(sb *strings.Builder, v Value) {
	switch v.Kind {
	case Symbol, Int, Float, Bool:
		sb.WriteString(v.Text)
	case Char:
		writeChar(sb, v.Char)
	case String:
		writeString(sb, v.Str)
	case List:
		sb.WriteByte('(')
		writeItems(sb, v.List)
		sb.WriteByte(')')
	case Vector:
		sb.WriteString("#(")
		writeItems(sb, v.List)
		sb.WriteByte(')')
	default:
		sb.WriteString("#<invalid>")
	}
}

func writeItems(sb *strings.Builder, items []Value) {
	for i, it := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeTo(sb, it)
	}
}

func writeChar(sb *strings.Builder, r rune) {
	switch r {
	case ' ':
		sb.WriteString(`#\space`)
	case '\n':
		sb.WriteString(`#\newline`)
	case '\t':
		sb.WriteString(`#\tab`)
	default:
		if r < 0x20 {
			fmt.Fprintf(sb, `#\x%x`, r)
			return
		}
		sb.WriteString(`#\`)
		sb.WriteRune(r)
	}
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}
