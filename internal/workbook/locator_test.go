package workbook

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocateOverrideWins(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "override.xlsx")
	candidate := filepath.Join(dir, "candidate.xlsx")
	for _, p := range []string{override, candidate} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	got, found := Locate(override, []string{candidate})
	if !found || got != override {
		t.Fatalf("Locate = %q, %v; want override", got, found)
	}
}

func TestLocateOverrideAbsentDoesNotFallThrough(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "candidate.xlsx")
	if err := os.WriteFile(candidate, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, found := Locate(filepath.Join(dir, "missing.xlsx"), []string{candidate}); found {
		t.Fatalf("an explicit override that is absent should not fall back to candidates")
	}
}

func TestLocateCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.xlsx")
	if err := os.WriteFile(second, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, found := Locate("", []string{filepath.Join(dir, "first.xlsx"), second})
	if !found || got != second {
		t.Fatalf("Locate = %q, %v; want second candidate", got, found)
	}
}

func TestLocateNothing(t *testing.T) {
	if _, found := Locate("", []string{filepath.Join(t.TempDir(), "none.xlsx")}); found {
		t.Fatalf("expected not found")
	}
}
