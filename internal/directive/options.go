package directive

import (
	"sled/internal/diag"
)

// SpaceMode controls whether whitespace is required between #! and the first datum.
type SpaceMode uint8

const (
	// StrictNoSpace accepts only "#!" followed by whitespace, newline, or EOF
	// as a directive start; "#!name" is left to the host (named markers).
	StrictNoSpace SpaceMode = iota
	// AllowSpace additionally accepts "#!name", producing the same Directive
	// shape as "#! name".
	AllowSpace
)

// CrossLineMode controls what happens when a datum read ends past the anchor line.
type CrossLineMode uint8

const (
	// CrossLineIsError fails the directive read with *CrossLineError.
	CrossLineIsError CrossLineMode = iota
	// CrossLineTruncate drops the offending datum, keeps the ones already
	// read, and leaves the cursor at the anchor line's newline.
	CrossLineTruncate
)

// Options configures a directive scan.
type Options struct {
	Space     SpaceMode
	CrossLine CrossLineMode
	Reporter  diag.Reporter // может быть nil — тогда остаются только возвращаемые ошибки
}
