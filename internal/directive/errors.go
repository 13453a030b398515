package directive

import (
	"errors"
	"fmt"

	"sled/internal/source"
)

// ErrNotADirective is the control signal for the "#! is not a line directive
// here" branch. Callers must treat it as a normal branch, not a failure: no
// input has been consumed when it is returned.
var ErrNotADirective = errors.New("not a line directive")

// NestedError reports a directive start inside another directive.
type NestedError struct {
	Span source.Span
}

func (e *NestedError) Error() string {
	return "nested line directive"
}

// CrossLineError reports a datum whose syntax extends past the anchor line.
type CrossLineError struct {
	Span source.Span
}

func (e *CrossLineError) Error() string {
	return "directive datum crosses line boundary"
}

// MalformedDatumError wraps a host syntax error raised inside a directive.
type MalformedDatumError struct {
	Span source.Span
	Err  error
}

func (e *MalformedDatumError) Error() string {
	return fmt.Sprintf("malformed datum in directive: %v", e.Err)
}

func (e *MalformedDatumError) Unwrap() error {
	return e.Err
}
