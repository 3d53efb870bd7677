// Package workbook reads the treasury Excel workbook. The file is
// human-edited and unversioned, so every accessor tolerates missing sheets,
// out-of-range coordinates and malformed cells instead of raising.
package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrSourceAbsent marks a workbook that could not be located.
	ErrSourceAbsent = errors.New("workbook not found")
	// ErrSheetMissing marks an expected sheet that the workbook lacks.
	ErrSheetMissing = errors.New("sheet not found")
)

// Workbook is an in-memory snapshot of the file's cell grids. All reads
// after Load are pure and need no file handle.
type Workbook struct {
	sheets map[string]*Sheet
}

// Sheet is a rectangular cell grid addressed by 0-indexed row and column.
type Sheet struct {
	Name string
	rows [][]string
}

// Load opens the workbook and snapshots every sheet as raw cell text.
func Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{sheets: make(map[string]*Sheet)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.sheets[name] = &Sheet{Name: name, rows: rows}
	}
	return wb, nil
}

// Sheet returns the named sheet or ErrSheetMissing.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: %q", ErrSheetMissing, name)
	}
	s, ok := w.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetMissing, name)
	}
	return s, nil
}

// NewSheet builds a sheet from a raw grid. Used by tests and fixtures.
func NewSheet(name string, rows [][]string) *Sheet {
	return &Sheet{Name: name, rows: rows}
}

// NewWorkbook builds an empty in-memory workbook for fixtures.
func NewWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string]*Sheet)}
}

// AddSheet installs or replaces a sheet by name.
func (w *Workbook) AddSheet(s *Sheet) {
	if s == nil {
		return
	}
	if w.sheets == nil {
		w.sheets = make(map[string]*Sheet)
	}
	w.sheets[s.Name] = s
}

// Cell returns the trimmed cell text at (row, col). The second return is
// false for out-of-range coordinates and blank cells.
func (s *Sheet) Cell(row, col int) (string, bool) {
	if s == nil || row < 0 || col < 0 || row >= len(s.rows) {
		return "", false
	}
	r := s.rows[row]
	if col >= len(r) {
		return "", false
	}
	v := strings.TrimSpace(r[col])
	if v == "" {
		return "", false
	}
	return v, true
}

// Number reads the cell at (row, col) as a float. Thousands separators are
// stripped first; anything else non-numeric reports absent.
func (s *Sheet) Number(row, col int) (float64, bool) {
	raw, ok := s.Cell(row, col)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// RowCount reports how many rows the sheet holds.
func (s *Sheet) RowCount() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// ColCount reports the widest row of the sheet.
func (s *Sheet) ColCount() int {
	if s == nil {
		return 0
	}
	max := 0
	for _, r := range s.rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// NonEmptyRows counts rows in [from, to) that contain at least one
// non-blank cell. Range ends are clamped to the sheet.
func (s *Sheet) NonEmptyRows(from, to int) int {
	if s == nil {
		return 0
	}
	if from < 0 {
		from = 0
	}
	if to > len(s.rows) {
		to = len(s.rows)
	}
	n := 0
	for i := from; i < to; i++ {
		for _, cell := range s.rows[i] {
			if strings.TrimSpace(cell) != "" {
				n++
				break
			}
		}
	}
	return n
}
