package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"sled/internal/datum"
	"sled/internal/diag"
	"sled/internal/directive"
	"sled/internal/source"
)

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.scm", []byte("(a\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedList,
		Message:  "unterminated list",
		Primary:  source.Span{File: id, Start: 0, End: 2},
	})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("output = %+v, want one diagnostic", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1005" || d.Severity != "ERROR" {
		t.Errorf("diag = %+v", d)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 1 {
		t.Errorf("location = %+v", d.Location)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.scm", []byte("x\n"))

	bag := diag.NewBag(8)
	for i := 0; i < 3; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.LexInfo,
			Message:  "w",
			Primary:  source.Span{File: id},
		})
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Errorf("count = %d, want 2", out.Count)
	}
}

func TestScanJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.scm", []byte("#! lang scheme\n(a 1)\n"))

	vals := []datum.Value{
		datum.NewList([]datum.Value{
			datum.NewSymbol("a", source.Span{File: id, Start: 16, End: 17}),
			datum.NewInt("1", 1, source.Span{File: id, Start: 18, End: 19}),
		}, source.Span{File: id, Start: 15, End: 20}),
	}
	dirs := []directive.Directive{
		{
			Span: source.Span{File: id, Start: 0, End: 14},
			Datums: []datum.Value{
				datum.NewSymbol("lang", source.Span{File: id, Start: 3, End: 7}),
				datum.NewSymbol("scheme", source.Span{File: id, Start: 8, End: 14}),
			},
		},
	}

	var buf bytes.Buffer
	if err := ScanJSON(&buf, fs, vals, dirs, JSONOpts{}); err != nil {
		t.Fatalf("ScanJSON: %v", err)
	}

	var out ScanOutputJSON
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Datums) != 1 || len(out.Directives) != 1 {
		t.Fatalf("output = %+v", out)
	}
	if out.Datums[0].Kind != "list" || len(out.Datums[0].Items) != 2 {
		t.Errorf("datum = %+v", out.Datums[0])
	}
	if out.Directives[0].Rendered != "#! lang scheme" {
		t.Errorf("directive rendered = %q", out.Directives[0].Rendered)
	}
}
