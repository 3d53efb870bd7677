package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the 1900 date system origin used by the workbook's numeric
// date cells.
var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// textLayouts are tried in order after the two primary formats.
var textLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2-Jan-2006",
}

// ParseCellDate coerces a raw cell into a date. Attempt order: the
// day-abbrevmonth-2digityear text form, the day/month/4digityear text form,
// a generic set of text layouts, then numeric 1900-system serial days.
// The serial offset compensates for the historical leap-year miscount at
// serial day 59.
func ParseCellDate(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	if t, err := time.Parse("02-Jan-06", v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("02/01/2006", v); err == nil {
		return t, nil
	}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		return fromSerial(serial), nil
	}

	return time.Time{}, fmt.Errorf("unparseable date cell %q", raw)
}

func fromSerial(serial float64) time.Time {
	days := serial - 1
	if serial > 59 {
		days = serial - 2
	}
	return serialEpoch.Add(time.Duration(days * 24 * float64(time.Hour)))
}
