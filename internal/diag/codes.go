package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические / host grammar
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedList         Code = 1005
	LexUnexpectedCloser         Code = 1006
	LexBadChar                  Code = 1007
	LexNewlineInString          Code = 1008
	LexUnknownNamedMarker       Code = 1009
	LexBadEscape                Code = 1010
	LexUnterminatedDatumComment Code = 1011
	LexUnexpectedEOF            Code = 1012

	// Директивы
	DirInfo           Code = 2000
	DirNested         Code = 2001
	DirCrossesLine    Code = 2002
	DirMalformedDatum Code = 2003
	DirNotTopLevel    Code = 2004

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexUnterminatedList:         "Unterminated list",
	LexUnexpectedCloser:         "Unexpected closing delimiter",
	LexBadChar:                  "Bad character literal",
	LexNewlineInString:          "Newline in string literal",
	LexUnknownNamedMarker:       "Unknown #! named marker",
	LexBadEscape:                "Bad escape sequence",
	LexUnterminatedDatumComment: "Unterminated datum comment",
	LexUnexpectedEOF:            "Unexpected end of input",
	DirInfo:                     "Directive information",
	DirNested:                   "Nested line directive",
	DirCrossesLine:              "Directive datum crosses line boundary",
	DirMalformedDatum:           "Malformed datum in directive",
	DirNotTopLevel:              "Line directive not allowed here",
	IOLoadFileError:             "I/O load file error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
