package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sled/internal/datum"
	"sled/internal/diag"
)

func TestScanBytes(t *testing.T) {
	content := []byte("#! lang scheme\n(define x 1)\n")
	_, result := ScanBytes("test.scm", content, Options{MaxDiagnostics: 16})

	if result.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Bag.Items())
	}
	if len(result.Datums) != 1 || result.Datums[0].Kind != datum.List {
		t.Fatalf("datums = %v, want one list", result.Datums)
	}
	if len(result.Directives) != 1 || result.Directives[0].String() != "#! lang scheme" {
		t.Fatalf("directives = %v", result.Directives)
	}
}

func TestScanBytesCollectsDiagnostics(t *testing.T) {
	_, result := ScanBytes("test.scm", []byte("(a\n"), Options{MaxDiagnostics: 16})
	if !result.HasErrors() {
		t.Fatal("expected error diagnostics")
	}
	if !hasCode(result.Bag, diag.LexUnterminatedList) {
		t.Errorf("bag %v missing LexUnterminatedList", result.Bag.Items())
	}
}

func TestScanBytesTimings(t *testing.T) {
	_, result := ScanBytes("test.scm", []byte("x\n"), Options{MaxDiagnostics: 16, Timings: true})
	if result.Timing == nil {
		t.Fatal("expected timing report")
	}
	if !hasCode(result.Bag, diag.ObsTimings) {
		t.Errorf("bag %v missing ObsTimings", result.Bag.Items())
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.scm"), "#! mode a\n(one)\n")
	writeFile(t, filepath.Join(dir, "b.sld"), "(two)\n")
	writeFile(t, filepath.Join(dir, "skip.txt"), "not scheme\n")

	events := make(chan Event, 64)
	_, results, err := ScanDir(context.Background(), dir, DirOptions{
		Options:  Options{MaxDiagnostics: 16},
		Jobs:     2,
		Progress: ChannelSink{Ch: events},
	})
	close(events)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// сортировка по пути: a.scm раньше b.sld
	if len(results[0].Directives) != 1 {
		t.Errorf("a.scm directives = %v", results[0].Directives)
	}
	if len(results[1].Datums) != 1 {
		t.Errorf("b.sld datums = %v", results[1].Datums)
	}

	sawDone := false
	for ev := range events {
		if ev.Stage == StageRead && ev.Status == StatusDone {
			sawDone = true
		}
	}
	if !sawDone {
		t.Error("no done events observed")
	}
}

func TestScanDirEmpty(t *testing.T) {
	_, results, err := ScanDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %v, want none", results)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
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
