package directive

import (
	"sled/internal/datum"
	"sled/internal/source"
)

// Grammar — вводимая возможность хост-ридера, через которую работает сканер.
// Реализуется настоящим ридером (internal/sexp) и стабами в тестах.
type Grammar interface {
	// EOF reports whether the cursor is at end of input.
	EOF() bool
	// Peek returns the next byte without consuming it (0 at EOF).
	Peek() byte
	// Bump consumes the next byte and returns it.
	Bump() byte
	// Offset reports the current byte offset in the stream.
	Offset() uint32
	// Seek moves the cursor to a previously observed offset.
	Seek(off uint32)
	// Line reports the 1-based line number at the current offset.
	// Сам '\n' принадлежит строке, которую он завершает.
	Line() uint32
	// FileID identifies the stream for span construction.
	FileID() source.FileID

	// SkipComment consumes one comment of the host grammar if one starts at
	// the cursor, and reports whether it consumed anything. Comment syntax is
	// host-specific; the scanner only clamps the result to the anchor line.
	SkipComment() (consumed bool, err error)

	// ReadDatum reads one datum per the host grammar, leaving the cursor just
	// past its last character, or fails with a host syntax error.
	ReadDatum() (datum.Value, error)
}
