package workbook

import (
	"sort"
	"strings"
	"time"
)

// SeriesSample is one accepted (date, value) point from a marker scan.
type SeriesSample struct {
	Date  time.Time
	Value float64
}

// MarkerScan locates columns by header text instead of fixed position: a
// column matches when its header cell, upper-cased, contains every required
// substring. The sample date sits on DateRow at the matched column plus
// DateColOffset; the sample value sits on ValueRow at the matched column.
type MarkerScan struct {
	HeaderRow     int
	DateRow       int
	DateColOffset int
	ValueRow      int
	Required      []string
	WindowDays    int
}

// Scan walks every column left-to-right and collects accepted samples,
// sorted ascending by date and windowed to the most recent WindowDays
// relative to the series' own maximum date. A sample is accepted only when
// both its date and value cells are present and the value is non-zero; any
// single coercion failure skips that sample without aborting the scan.
func (m MarkerScan) Scan(sheet *Sheet) []SeriesSample {
	if sheet == nil {
		return nil
	}

	var samples []SeriesSample
	for col := 0; col < sheet.ColCount(); col++ {
		header, ok := sheet.Cell(m.HeaderRow, col)
		if !ok || !matchesAll(header, m.Required) {
			continue
		}

		dateCol := col + m.DateColOffset
		if dateCol < 0 {
			continue
		}
		rawDate, ok := sheet.Cell(m.DateRow, dateCol)
		if !ok {
			continue
		}
		value, ok := sheet.Number(m.ValueRow, col)
		if !ok || value == 0 {
			continue
		}

		date, err := ParseCellDate(rawDate)
		if err != nil {
			continue
		}
		samples = append(samples, SeriesSample{Date: date, Value: value})
	}

	if len(samples) == 0 {
		return nil
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Date.Before(samples[j].Date)
	})

	if m.WindowDays > 0 {
		cutoff := samples[len(samples)-1].Date.AddDate(0, 0, -m.WindowDays)
		kept := samples[:0]
		for _, s := range samples {
			if !s.Date.Before(cutoff) {
				kept = append(kept, s)
			}
		}
		samples = kept
	}
	return samples
}

func matchesAll(header string, required []string) bool {
	upper := strings.ToUpper(header)
	for _, sub := range required {
		if !strings.Contains(upper, strings.ToUpper(sub)) {
			return false
		}
	}
	return len(required) > 0
}
