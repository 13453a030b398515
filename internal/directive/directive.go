package directive

import (
	"strings"

	"sled/internal/datum"
	"sled/internal/source"
)

// Directive is the ordered list of datums produced by one #! line.
// Порядок элементов повторяет порядок слева направо в исходной строке.
// Immutable once finalized.
type Directive struct {
	Span   source.Span
	Datums []datum.Value
}

// Len returns the number of datums. An empty directive (bare #!) has zero.
func (d Directive) Len() int {
	return len(d.Datums)
}

// String renders the directive in its external syntax.
func (d Directive) String() string {
	var sb strings.Builder
	sb.WriteString("#!")
	for _, v := range d.Datums {
		sb.WriteByte(' ')
		sb.WriteString(datum.Write(v))
	}
	return sb.String()
}

// Builder accumulates datums during a scan and finalizes them into a
// Directive. It exists as the tagging point: the embedding reader receives a
// Directive value, not a plain list, so downstream code can tell directive
// content from ordinary read syntax.
type Builder struct {
	datums []datum.Value
}

// Append adds one datum in textual order.
func (b *Builder) Append(v datum.Value) {
	b.datums = append(b.datums, v)
}

// Len returns the number of datums appended so far.
func (b *Builder) Len() int {
	return len(b.datums)
}

// Finalize produces the immutable Directive. The datum slice is copied so the
// builder can be reused without aliasing the returned value.
func (b *Builder) Finalize(sp source.Span) Directive {
	out := make([]datum.Value, len(b.datums))
	copy(out, b.datums)
	return Directive{Span: sp, Datums: out}
}
