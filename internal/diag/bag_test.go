package diag

import (
	"testing"

	"sled/internal/source"
)

func mkDiag(code Code, sev Severity, start, end uint32) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  code.Title(),
		Primary:  source.Span{File: 0, Start: start, End: end},
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(mkDiag(LexUnknownChar, SevError, 0, 1)) {
		t.Error("Expected first Add to succeed")
	}
	if !bag.Add(mkDiag(LexUnknownChar, SevError, 1, 2)) {
		t.Error("Expected second Add to succeed")
	}
	if bag.Add(mkDiag(LexUnknownChar, SevError, 2, 3)) {
		t.Error("Expected third Add to fail at the cap")
	}
	if bag.Len() != 2 {
		t.Errorf("Expected 2 items, got %d", bag.Len())
	}
}

func TestBagHasErrorsWarnings(t *testing.T) {
	bag := NewBag(10)
	bag.Add(mkDiag(ObsInfo, SevInfo, 0, 1))
	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("Info-only bag should report no errors or warnings")
	}
	bag.Add(mkDiag(LexBadNumber, SevWarning, 1, 2))
	if bag.HasErrors() {
		t.Error("Warning should not count as error")
	}
	if !bag.HasWarnings() {
		t.Error("Expected HasWarnings")
	}
	bag.Add(mkDiag(DirNested, SevError, 2, 3))
	if !bag.HasErrors() {
		t.Error("Expected HasErrors")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(mkDiag(DirNested, SevError, 10, 12))
	bag.Add(mkDiag(LexUnknownChar, SevWarning, 10, 12))
	bag.Add(mkDiag(LexBadNumber, SevError, 2, 4))
	bag.Sort()

	items := bag.Items()
	if items[0].Primary.Start != 2 {
		t.Errorf("Expected earliest span first, got start %d", items[0].Primary.Start)
	}
	// одинаковый span: ошибка раньше предупреждения
	if items[1].Severity != SevError || items[2].Severity != SevWarning {
		t.Errorf("Expected error before warning at same span: %v %v", items[1].Severity, items[2].Severity)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(mkDiag(DirNested, SevError, 5, 7))
	bag.Add(mkDiag(DirNested, SevError, 5, 7))
	bag.Add(mkDiag(DirNested, SevError, 8, 9))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Expected 2 items after dedup, got %d", bag.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(mkDiag(LexInfo, SevInfo, 0, 1))
	b := NewBag(2)
	b.Add(mkDiag(LexInfo, SevInfo, 1, 2))
	b.Add(mkDiag(LexInfo, SevInfo, 2, 3))

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("Expected 3 items after merge, got %d", a.Len())
	}
}
