package diag

import (
	"sled/internal/source"
)

// Note is a secondary span/message attached to a diagnostic for extra context.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding produced by a reader phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
