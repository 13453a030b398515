// Package datum defines the value model produced by the S-expression reader.
//
// A Value is a flat struct tagged with a Kind, mirroring how tokens carry
// their payload: atoms keep their lexeme in Text plus a decoded payload
// (Int/Float/Bool/Char/Str), compound values keep their children in List.
// Every Value carries the source.Span it was read from.
//
// Values are immutable by convention: once the reader returns one, nothing
// in this module mutates it.
package datum
