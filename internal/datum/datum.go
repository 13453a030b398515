package datum

import (
	"sled/internal/source"
)

// Kind represents the category of a datum value.
type Kind uint8

const (
	// Invalid indicates an erroneous datum.
	Invalid Kind = iota
	// Symbol represents an identifier datum.
	Symbol
	// Int represents an exact integer datum.
	Int
	// Float represents an inexact real datum.
	Float
	// Bool represents #t/#f.
	Bool
	// Char represents a character datum (#\a, #\space, ...).
	Char
	// String represents a string datum.
	String
	// List represents a proper list (...).
	List
	// Vector represents a vector #(...).
	Vector
)

func (k Kind) String() string {
	switch k {
	case Symbol:
		return "symbol"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case String:
		return "string"
	case List:
		return "list"
	case Vector:
		return "vector"
	}
	return "invalid"
}

// Value represents a single datum with its location.
// Text хранит исходную лексему атома; для list/vector - пусто.
type Value struct {
	Kind Kind
	Span source.Span
	Text string

	Int   int64
	Float float64
	Bool  bool
	Char  rune
	Str   string

	List []Value
}

// IsAtom reports whether the value is not a list or vector.
func (v Value) IsAtom() bool {
	return v.Kind != List && v.Kind != Vector
}

// NewSymbol constructs a symbol datum.
func NewSymbol(name string, sp source.Span) Value {
	return Value{Kind: Symbol, Span: sp, Text: name}
}

// NewInt constructs an exact integer datum.
func NewInt(text string, n int64, sp source.Span) Value {
	return Value{Kind: Int, Span: sp, Text: text, Int: n}
}

// NewFloat constructs an inexact real datum.
func NewFloat(text string, f float64, sp source.Span) Value {
	return Value{Kind: Float, Span: sp, Text: text, Float: f}
}

// NewBool constructs a boolean datum.
func NewBool(text string, b bool, sp source.Span) Value {
	return Value{Kind: Bool, Span: sp, Text: text, Bool: b}
}

// NewChar constructs a character datum.
func NewChar(text string, r rune, sp source.Span) Value {
	return Value{Kind: Char, Span: sp, Text: text, Char: r}
}

// NewString constructs a string datum from its decoded contents.
func NewString(text, decoded string, sp source.Span) Value {
	return Value{Kind: String, Span: sp, Text: text, Str: decoded}
}

// NewList constructs a proper list datum.
func NewList(items []Value, sp source.Span) Value {
	return Value{Kind: List, Span: sp, List: items}
}

// NewVector constructs a vector datum.
func NewVector(items []Value, sp source.Span) Value {
	return Value{Kind: Vector, Span: sp, List: items}
}

// Equal сравнивает значения структурно, игнорируя Span и исходную лексему.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Symbol:
		return a.Text == b.Text
	case Int:
		return a.Int == b.Int
	case Float:
		return a.Float == b.Float
	case Bool:
		return a.Bool == b.Bool
	case Char:
		return a.Char == b.Char
	case String:
		return a.Str == b.Str
	case List, Vector:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	}
	return false
}
