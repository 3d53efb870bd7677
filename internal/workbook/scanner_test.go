package workbook

import (
	"testing"
	"time"
)

func accountsGrid(rows, cols int) [][]string {
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	return grid
}

func liquidityScan() MarkerScan {
	return MarkerScan{
		HeaderRow:     1,
		DateRow:       0,
		DateColOffset: -2,
		ValueRow:      98,
		Required:      []string{"VALOR", "EUR"},
		WindowDays:    30,
	}
}

func TestMarkerScanSingleMatch(t *testing.T) {
	grid := accountsGrid(99, 12)
	grid[1][10] = "VALOR EUR"
	grid[0][8] = "05-Aug-25"
	grid[98][10] = "32,600,000"

	samples := liquidityScan().Scan(NewSheet("Lista contas", grid))
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	want := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	if !samples[0].Date.Equal(want) {
		t.Fatalf("date = %v, want %v", samples[0].Date, want)
	}
	if samples[0].Value != 32_600_000 {
		t.Fatalf("value = %v, want 32600000", samples[0].Value)
	}
}

func TestMarkerScanRequiresAllSubstrings(t *testing.T) {
	grid := accountsGrid(99, 12)
	grid[1][5] = "VALOR USD"
	grid[0][3] = "05-Aug-25"
	grid[98][5] = "1000"

	if samples := liquidityScan().Scan(NewSheet("Lista contas", grid)); len(samples) != 0 {
		t.Fatalf("expected no samples for partial header match, got %d", len(samples))
	}
}

func TestMarkerScanSkipsZeroAndBadDates(t *testing.T) {
	grid := accountsGrid(99, 20)
	// Zero value.
	grid[1][4] = "VALOR EUR"
	grid[0][2] = "05-Aug-25"
	grid[98][4] = "0"
	// Unparseable date.
	grid[1][9] = "VALOR EUR"
	grid[0][7] = "not a date"
	grid[98][9] = "500"
	// Good sample.
	grid[1][14] = "VALOR EUR"
	grid[0][12] = "06-Aug-25"
	grid[98][14] = "750"

	samples := liquidityScan().Scan(NewSheet("Lista contas", grid))
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if samples[0].Value != 750 {
		t.Fatalf("value = %v, want 750", samples[0].Value)
	}
}

func TestMarkerScanSortsAndWindows(t *testing.T) {
	grid := accountsGrid(99, 20)
	// Out of order, with one sample falling outside the 30-day window.
	put := func(col int, date string, value string) {
		grid[1][col] = "VALOR EUR"
		grid[0][col-2] = date
		grid[98][col] = value
	}
	put(4, "10-Aug-25", "300")
	put(8, "01-Jun-25", "100")
	put(12, "20-Jul-25", "200")

	samples := liquidityScan().Scan(NewSheet("Lista contas", grid))
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples inside the window, got %d", len(samples))
	}
	if !samples[0].Date.Before(samples[1].Date) {
		t.Fatalf("samples not sorted ascending: %v, %v", samples[0].Date, samples[1].Date)
	}
	if samples[0].Value != 200 || samples[1].Value != 300 {
		t.Fatalf("unexpected values: %v, %v", samples[0].Value, samples[1].Value)
	}
}
