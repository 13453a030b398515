package sexp_test

import (
	"errors"
	"io"
	"testing"

	"sled/internal/datum"
	"sled/internal/diag"
	"sled/internal/directive"
	"sled/internal/sexp"
	"sled/internal/source"
)

func newReader(t *testing.T, content string, opts sexp.Options) *sexp.Reader {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.scm", []byte(content))
	return sexp.NewReader(fs.Get(id), opts)
}

func readAll(t *testing.T, content string, opts sexp.Options) (*sexp.Reader, []datum.Value) {
	t.Helper()
	r := newReader(t, content, opts)
	vals, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll(%q): unexpected error: %v", content, err)
	}
	return r, vals
}

func TestReadAtoms(t *testing.T) {
	_, vals := readAll(t, `foo 42 -3.5 #t #f #\a #\space "hi"`, sexp.Options{})
	wantKinds := []datum.Kind{
		datum.Symbol, datum.Int, datum.Float, datum.Bool,
		datum.Bool, datum.Char, datum.Char, datum.String,
	}
	if len(vals) != len(wantKinds) {
		t.Fatalf("got %d datums, want %d", len(vals), len(wantKinds))
	}
	for i, k := range wantKinds {
		if vals[i].Kind != k {
			t.Errorf("datum %d: kind = %s, want %s", i, vals[i].Kind, k)
		}
	}
	if vals[1].Int != 42 {
		t.Errorf("int datum = %d, want 42", vals[1].Int)
	}
	if vals[2].Float != -3.5 {
		t.Errorf("float datum = %v, want -3.5", vals[2].Float)
	}
	if !vals[3].Bool || vals[4].Bool {
		t.Errorf("bool datums = %v %v, want true false", vals[3].Bool, vals[4].Bool)
	}
	if vals[5].Char != 'a' || vals[6].Char != ' ' {
		t.Errorf("char datums = %q %q, want 'a' ' '", vals[5].Char, vals[6].Char)
	}
	if vals[7].Str != "hi" {
		t.Errorf("string datum = %q, want %q", vals[7].Str, "hi")
	}
}

func TestNumericLookingSymbols(t *testing.T) {
	_, vals := readAll(t, `+ - ... 1+ -a +5 .5`, sexp.Options{})
	wantKinds := []datum.Kind{
		datum.Symbol, datum.Symbol, datum.Symbol,
		datum.Symbol, datum.Symbol, datum.Int, datum.Float,
	}
	for i, k := range wantKinds {
		if vals[i].Kind != k {
			t.Errorf("datum %d (%q): kind = %s, want %s", i, vals[i].Text, vals[i].Kind, k)
		}
	}
}

func TestListsAndVectors(t *testing.T) {
	_, vals := readAll(t, `(a (b c) #(1 2)) ()`, sexp.Options{})
	if len(vals) != 2 {
		t.Fatalf("got %d datums, want 2", len(vals))
	}
	outer := vals[0]
	if outer.Kind != datum.List || len(outer.List) != 3 {
		t.Fatalf("outer = %s, want list of 3", datum.Write(outer))
	}
	if outer.List[1].Kind != datum.List || len(outer.List[1].List) != 2 {
		t.Errorf("inner list = %s", datum.Write(outer.List[1]))
	}
	if outer.List[2].Kind != datum.Vector || len(outer.List[2].List) != 2 {
		t.Errorf("vector = %s", datum.Write(outer.List[2]))
	}
	if vals[1].Kind != datum.List || len(vals[1].List) != 0 {
		t.Errorf("empty list = %s", datum.Write(vals[1]))
	}
}

func TestAbbreviations(t *testing.T) {
	_, vals := readAll(t, "'x `y ,z ,@w", sexp.Options{})
	want := []string{"quote", "quasiquote", "unquote", "unquote-splicing"}
	for i, name := range want {
		v := vals[i]
		if v.Kind != datum.List || len(v.List) != 2 {
			t.Fatalf("datum %d = %s, want two-element list", i, datum.Write(v))
		}
		if v.List[0].Kind != datum.Symbol || v.List[0].Text != name {
			t.Errorf("datum %d head = %s, want %s", i, datum.Write(v.List[0]), name)
		}
	}
}

func TestComments(t *testing.T) {
	input := "; leading\n(a #|block #|nested|# comment|# b) #;(dropped 1 2) c"
	_, vals := readAll(t, input, sexp.Options{})
	if len(vals) != 2 {
		t.Fatalf("got %d datums, want 2: %v", len(vals), vals)
	}
	if got := datum.Write(vals[0]); got != "(a b)" {
		t.Errorf("first datum = %s, want (a b)", got)
	}
	if vals[1].Kind != datum.Symbol || vals[1].Text != "c" {
		t.Errorf("second datum = %s, want c", datum.Write(vals[1]))
	}
}

func TestStringEscapes(t *testing.T) {
	_, vals := readAll(t, "\"a\\n\\x41;\\\"\"", sexp.Options{})
	if len(vals) != 1 {
		t.Fatalf("got %d datums, want 1", len(vals))
	}
	if vals[0].Str != "a\nA\"" {
		t.Errorf("decoded = %q, want %q", vals[0].Str, "a\nA\"")
	}
}

func TestNewlineInStringIsError(t *testing.T) {
	r := newReader(t, "\"a\nb\"", sexp.Options{})
	_, err := r.ReadDatum()
	var serr *sexp.Error
	if !errors.As(err, &serr) || serr.Code != diag.LexNewlineInString {
		t.Fatalf("err = %v, want LexNewlineInString", err)
	}
}

func TestStringLineContinuation(t *testing.T) {
	_, vals := readAll(t, "\"ab\\\n   cd\"", sexp.Options{})
	if len(vals) != 1 || vals[0].Str != "abcd" {
		t.Fatalf("datums = %v, want one string %q", vals, "abcd")
	}
}

func TestFoldCaseMarkers(t *testing.T) {
	_, vals := readAll(t, "FOO #!fold-case BAR #!no-fold-case BAZ", sexp.Options{})
	want := []string{"FOO", "bar", "BAZ"}
	for i, name := range want {
		if vals[i].Text != name {
			t.Errorf("datum %d = %q, want %q", i, vals[i].Text, name)
		}
	}
}

func TestUnknownNamedMarker(t *testing.T) {
	r := newReader(t, "#!bogus", sexp.Options{})
	_, err := r.ReadAll()
	var serr *sexp.Error
	if !errors.As(err, &serr) || serr.Code != diag.LexUnknownNamedMarker {
		t.Fatalf("err = %v, want LexUnknownNamedMarker", err)
	}
}

func TestDirectiveBetweenDatums(t *testing.T) {
	input := "(define x 1)\n#! lang scheme 42\n(display x)\n"
	r, vals := readAll(t, input, sexp.Options{})
	if len(vals) != 2 {
		t.Fatalf("got %d datums, want 2", len(vals))
	}
	dirs := r.Directives()
	if len(dirs) != 1 {
		t.Fatalf("got %d directives, want 1", len(dirs))
	}
	d := dirs[0]
	if d.Len() != 3 {
		t.Fatalf("directive has %d datums, want 3: %s", d.Len(), d)
	}
	if got := d.String(); got != "#! lang scheme 42" {
		t.Errorf("String() = %q", got)
	}
	// "(define x 1)\n" is 13 bytes; the directive line itself is 17.
	if d.Span.Start != 13 || d.Span.End != 30 {
		t.Errorf("span = [%d, %d), want [13, 30)", d.Span.Start, d.Span.End)
	}
}

func TestEmptyDirective(t *testing.T) {
	r, vals := readAll(t, "#!\nx", sexp.Options{})
	if len(vals) != 1 || vals[0].Text != "x" {
		t.Fatalf("datums = %v, want [x]", vals)
	}
	dirs := r.Directives()
	if len(dirs) != 1 || dirs[0].Len() != 0 {
		t.Fatalf("directives = %v, want one empty", dirs)
	}
}

func TestDirectiveAtEOFWithoutNewline(t *testing.T) {
	r, vals := readAll(t, "#! a b", sexp.Options{})
	if len(vals) != 0 {
		t.Fatalf("datums = %v, want none", vals)
	}
	if dirs := r.Directives(); len(dirs) != 1 || dirs[0].Len() != 2 {
		t.Fatalf("directives = %v, want one with two datums", dirs)
	}
}

func TestMarkerIsNotADirectiveUnderStrictNoSpace(t *testing.T) {
	r, vals := readAll(t, "#!fold-case X", sexp.Options{})
	if len(r.Directives()) != 0 {
		t.Fatalf("directives = %v, want none", r.Directives())
	}
	if len(vals) != 1 || vals[0].Text != "x" {
		t.Fatalf("datums = %v, want folded symbol x", vals)
	}
}

func TestAllowSpaceMode(t *testing.T) {
	r, vals := readAll(t, "#!r7rs\n(x)", sexp.Options{Space: directive.AllowSpace})
	if len(vals) != 1 {
		t.Fatalf("datums = %v, want one list", vals)
	}
	dirs := r.Directives()
	if len(dirs) != 1 || dirs[0].Len() != 1 {
		t.Fatalf("directives = %v, want one with one datum", dirs)
	}
	if d := dirs[0].Datums[0]; d.Kind != datum.Symbol || d.Text != "r7rs" {
		t.Errorf("directive datum = %s, want r7rs", datum.Write(d))
	}
}

func TestCommentsInsideDirective(t *testing.T) {
	r, _ := readAll(t, "#! a #|inline|# #;(x 1) b\nc", sexp.Options{})
	dirs := r.Directives()
	if len(dirs) != 1 {
		t.Fatalf("directives = %v, want 1", dirs)
	}
	if got := dirs[0].String(); got != "#! a b" {
		t.Errorf("String() = %q, want %q", got, "#! a b")
	}
}

func TestLineCommentEndsDirective(t *testing.T) {
	r, _ := readAll(t, "#! a ; trailing\nb", sexp.Options{})
	dirs := r.Directives()
	if len(dirs) != 1 || dirs[0].String() != "#! a" {
		t.Fatalf("directives = %v, want one %q", dirs, "#! a")
	}
}

func TestNestedDirectiveTopLevel(t *testing.T) {
	bag := diag.NewBag(16)
	r := newReader(t, "#! #! foo\n", sexp.Options{Reporter: diag.BagReporter{Bag: bag}})
	_, err := r.ReadDatum()
	var nested *directive.NestedError
	if !errors.As(err, &nested) {
		t.Fatalf("err = %v, want *directive.NestedError", err)
	}
	if !hasCode(bag, diag.DirNested) {
		t.Errorf("bag %v missing DirNested", bag.Items())
	}
}

func TestNestedDirectiveInsideDatum(t *testing.T) {
	r := newReader(t, "#! outer (#! inner)\n", sexp.Options{})
	_, err := r.ReadDatum()
	var nested *directive.NestedError
	if !errors.As(err, &nested) {
		t.Fatalf("err = %v, want *directive.NestedError", err)
	}
}

func TestDirectiveNotAllowedInsideDatum(t *testing.T) {
	r := newReader(t, "(a #! b)\n", sexp.Options{})
	_, err := r.ReadDatum()
	var serr *sexp.Error
	if !errors.As(err, &serr) || serr.Code != diag.DirNotTopLevel {
		t.Fatalf("err = %v, want DirNotTopLevel", err)
	}
}

func TestCrossLineDatumIsError(t *testing.T) {
	bag := diag.NewBag(16)
	r := newReader(t, "#! a \"x\\\ny\" z\n", sexp.Options{Reporter: diag.BagReporter{Bag: bag}})
	_, err := r.ReadDatum()
	var crossed *directive.CrossLineError
	if !errors.As(err, &crossed) {
		t.Fatalf("err = %v, want *directive.CrossLineError", err)
	}
	if !hasCode(bag, diag.DirCrossesLine) {
		t.Errorf("bag %v missing DirCrossesLine", bag.Items())
	}
}

func TestCrossLineDatumTruncates(t *testing.T) {
	r := newReader(t, "#! a (b\nc) d\n", sexp.Options{CrossLine: directive.CrossLineTruncate})
	v, err := r.ReadDatum()
	if err != nil {
		t.Fatalf("ReadDatum: %v", err)
	}
	// датум после усечения начинается со следующей строки
	if v.Kind != datum.Symbol || v.Text != "c" {
		t.Errorf("first datum after directive = %s, want c", datum.Write(v))
	}
	dirs := r.Directives()
	if len(dirs) != 1 || dirs[0].String() != "#! a" {
		t.Fatalf("directives = %v, want one %q", dirs, "#! a")
	}
}

func TestMalformedDirectiveDatum(t *testing.T) {
	bag := diag.NewBag(16)
	r := newReader(t, "#! (a\n", sexp.Options{Reporter: diag.BagReporter{Bag: bag}})
	_, err := r.ReadDatum()
	var malformed *directive.MalformedDatumError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want *directive.MalformedDatumError", err)
	}
	var serr *sexp.Error
	if !errors.As(err, &serr) || serr.Code != diag.LexUnterminatedList {
		t.Errorf("unwrapped err = %v, want LexUnterminatedList", err)
	}
	if !hasCode(bag, diag.DirMalformedDatum) {
		t.Errorf("bag %v missing DirMalformedDatum", bag.Items())
	}
}

func TestDirectiveRoundTrip(t *testing.T) {
	input := "#! lang (v 1 2) #\\a \"s\" 3.5 #t\nx"
	r, _ := readAll(t, input, sexp.Options{})
	dirs := r.Directives()
	if len(dirs) != 1 {
		t.Fatalf("directives = %v, want 1", dirs)
	}
	first := dirs[0]

	r2, _ := readAll(t, first.String()+"\n", sexp.Options{})
	dirs2 := r2.Directives()
	if len(dirs2) != 1 {
		t.Fatalf("re-read directives = %v, want 1", dirs2)
	}
	second := dirs2[0]
	if first.Len() != second.Len() {
		t.Fatalf("re-read %d datums, want %d", second.Len(), first.Len())
	}
	for i := range first.Datums {
		if !datum.Equal(first.Datums[i], second.Datums[i]) {
			t.Errorf("datum %d: %s != %s", i,
				datum.Write(first.Datums[i]), datum.Write(second.Datums[i]))
		}
	}
}

func TestReadDatumEOF(t *testing.T) {
	r := newReader(t, "  ; only trivia\n", sexp.Options{})
	if _, err := r.ReadDatum(); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
