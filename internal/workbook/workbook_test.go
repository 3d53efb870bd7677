package workbook

import (
	"errors"
	"testing"
)

func TestSheetCellTolerance(t *testing.T) {
	sheet := NewSheet("s", [][]string{
		{"a", " b ", ""},
		{"1,234.5"},
	})

	if v, ok := sheet.Cell(0, 1); !ok || v != "b" {
		t.Fatalf("Cell(0,1) = %q, %v", v, ok)
	}
	if _, ok := sheet.Cell(0, 2); ok {
		t.Fatalf("empty cell should be absent")
	}
	if _, ok := sheet.Cell(0, 99); ok {
		t.Fatalf("out-of-range column should be absent")
	}
	if _, ok := sheet.Cell(99, 0); ok {
		t.Fatalf("out-of-range row should be absent")
	}
	if _, ok := sheet.Cell(1, 2); ok {
		t.Fatalf("ragged row should be absent, not panic")
	}
}

func TestSheetNumber(t *testing.T) {
	sheet := NewSheet("s", [][]string{
		{"1,234.5", "abc", "-42", ""},
	})
	if v, ok := sheet.Number(0, 0); !ok || v != 1234.5 {
		t.Fatalf("Number(0,0) = %v, %v", v, ok)
	}
	if _, ok := sheet.Number(0, 1); ok {
		t.Fatalf("non-numeric cell should not coerce")
	}
	if v, ok := sheet.Number(0, 2); !ok || v != -42 {
		t.Fatalf("Number(0,2) = %v, %v", v, ok)
	}
	if _, ok := sheet.Number(0, 3); ok {
		t.Fatalf("empty cell should not coerce")
	}
}

func TestWorkbookMissingSheet(t *testing.T) {
	wb := &Workbook{}
	_, err := wb.Sheet("nope")
	if !errors.Is(err, ErrSheetMissing) {
		t.Fatalf("expected ErrSheetMissing, got %v", err)
	}
}

func TestNonEmptyRows(t *testing.T) {
	sheet := NewSheet("s", [][]string{
		{"header"},
		{""},
		{"x"},
		{"", ""},
		{"", "y"},
	})
	if got := sheet.NonEmptyRows(1, 5); got != 2 {
		t.Fatalf("NonEmptyRows(1,5) = %d, want 2", got)
	}
	if got := sheet.NonEmptyRows(0, 99); got != 3 {
		t.Fatalf("NonEmptyRows(0,99) = %d, want 3", got)
	}
}
