// Package directive implements reading of #! line directives.
//
// A line directive is the two-character marker #! followed by end-of-line,
// end-of-input, or horizontal whitespace, then zero or more datums separated
// by intraline whitespace and comments, terminated by the end of the physical
// line. It lets metadata (shebang lines, mode lines, copyright headers) live
// in source text as something line-oriented tools read as a comment and the
// reader returns as structured data.
//
// The package is host-grammar-agnostic: datum parsing and comment recognition
// are delegated to an injected Grammar capability, so the scanner can be
// driven by the real reader in internal/sexp or by a stub grammar in tests.
// Its own responsibility is the boundary discipline:
//
//   - the directive never extends past the physical line it began on
//     (the anchor line), re-checked after every skip and every datum read;
//   - a directive may not contain another directive start;
//   - on the "not a directive" branch no input is consumed.
package directive
