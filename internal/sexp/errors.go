package sexp

import (
	"fmt"

	"sled/internal/diag"
	"sled/internal/source"
)

// Error is a syntax error of the host grammar with its source location.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}
