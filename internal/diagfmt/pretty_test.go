package diagfmt

import (
	"strings"
	"testing"

	"sled/internal/diag"
	"sled/internal/source"
)

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.scm", []byte("(a b\n(c d)\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedList,
		Message:  "unterminated list",
		Primary:  source.Span{File: id, Start: 0, End: 4},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "test.scm:1:1: ERROR LEX1005: unterminated list") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "(a b") {
		t.Errorf("missing context line:\n%s", out)
	}
	if !strings.Contains(out, "^~~~") {
		t.Errorf("missing caret underline:\n%s", out)
	}
	if !strings.Contains(out, "1 error(s), 0 warning(s)") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.scm", []byte("#! a\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.DirInfo,
		Message:  "something",
		Primary:  source.Span{File: id, Start: 0, End: 2},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 3, End: 4}, Msg: "see here"},
		},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(sb.String(), "note: test.scm:1:4: see here") {
		t.Errorf("missing note:\n%s", sb.String())
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.scm", []byte("line1\nline2\nline3\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "bad",
		Primary:  source.Span{File: id, Start: 12, End: 17},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Context: 2})
	out := sb.String()
	for _, want := range []string{"line1", "line2", "line3"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in context:\n%s", want, out)
		}
	}
}
