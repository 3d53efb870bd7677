package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"treasuryhub/internal/workbook"
)

// BankAmount is one bank-name/amount pair read from a labeled row range.
type BankAmount struct {
	Bank   string
	Amount decimal.Decimal
}

// ForecastMonth is one month of the cash-flow forecast, current or prior year.
type ForecastMonth struct {
	Month   int
	Label   string
	Year    int
	Type    string
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Net     decimal.Decimal
}

// Metrics are the derived headline figures. Liquid and investment-grade
// shares are fixed proportions of the total, not independently sourced.
type Metrics struct {
	TotalBalance    decimal.Decimal
	LiquidAssets    decimal.Decimal
	InvestmentGrade decimal.Decimal
}

// BankExposure is one bank's per-currency amounts with an approximate
// EUR-equivalent total used only for ranking currencies within the bank.
// Percents are each currency's EUR-equivalent share of the bank total and
// sum to 100 for any bank with a positive total.
type BankExposure struct {
	Bank     string
	Amounts  map[string]float64
	Percents map[string]float64
	TotalEUR float64
}

// Variation is the latest day-over-day movement with a sign classification.
type Variation struct {
	Value    float64
	Positive bool
}

// LiquidityPoint is one dated total-liquidity sample in millions.
type LiquidityPoint struct {
	Date     time.Time
	Millions float64
}

// Summary carries the headline totals for the account overview.
type Summary struct {
	TotalLiquidityM float64
	AccountCount    int
	ActiveBanks     int
}

// pairRows reads label/value pairs from a fixed row range. Rows with an
// absent label or a non-coercible value are skipped.
func pairRows(sheet *workbook.Sheet, firstRow, lastRow, labelCol, valueCol int) []BankAmount {
	var out []BankAmount
	for row := firstRow; row <= lastRow; row++ {
		name, ok := sheet.Cell(row, labelCol)
		if !ok {
			continue
		}
		value, ok := sheet.Number(row, valueCol)
		if !ok {
			continue
		}
		out = append(out, BankAmount{
			Bank:   strings.TrimSpace(name),
			Amount: decimal.NewFromFloat(value),
		})
	}
	return out
}

// CashPositions reads the position sync's bank/amount pairs.
func CashPositions(wb *workbook.Workbook) ([]BankAmount, error) {
	sheet, err := wb.Sheet(SheetSeven)
	if err != nil {
		return nil, fmt.Errorf("cash positions: %w", err)
	}
	return pairRows(sheet, positionFirstRow, positionLastRow, positionNameCol, positionValueCol), nil
}

// BankBalances reads the ranked bank list.
func BankBalances(wb *workbook.Workbook) ([]BankAmount, error) {
	sheet, err := wb.Sheet(SheetTables)
	if err != nil {
		return nil, fmt.Errorf("bank balances: %w", err)
	}
	return pairRows(sheet, bankListFirstRow, bankListLastRow, bankListNameCol, bankListValueCol), nil
}

// Forecast reads both 12-month windows. A month is emitted when its label is
// present and not the literal "nan"; missing numeric cells coerce to zero.
func Forecast(wb *workbook.Workbook, forecastYear int) ([]ForecastMonth, error) {
	sheet, err := wb.Sheet(SheetDash)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	windows := []struct {
		startCol int
		year     int
		ftype    string
	}{
		{forecastCurrentCol, forecastYear, "FORECAST"},
		{forecastPriorCol, forecastYear - 1, "HISTORICAL"},
	}

	var out []ForecastMonth
	for _, w := range windows {
		for m := 0; m < forecastMonths; m++ {
			col := w.startCol + m
			label, ok := sheet.Cell(forecastLabelRow, col)
			if !ok || strings.EqualFold(label, "nan") {
				continue
			}
			out = append(out, ForecastMonth{
				Month:   m + 1,
				Label:   label,
				Year:    w.year,
				Type:    w.ftype,
				Inflow:  numberOrZero(sheet, forecastInflowRow, col),
				Outflow: numberOrZero(sheet, forecastOutflowRow, col),
				Net:     numberOrZero(sheet, forecastNetRow, col),
			})
		}
	}
	return out, nil
}

func numberOrZero(sheet *workbook.Sheet, row, col int) decimal.Decimal {
	if v, ok := sheet.Number(row, col); ok {
		return decimal.NewFromFloat(v)
	}
	return decimal.Zero
}

// KeyMetrics derives the headline figures from extracted positions. The
// 80/20 split is an approximation carried through to the store.
func KeyMetrics(positions []BankAmount) Metrics {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.Amount)
	}
	return Metrics{
		TotalBalance:    total,
		LiquidAssets:    total.Mul(decimal.NewFromFloat(0.8)),
		InvestmentGrade: total.Mul(decimal.NewFromFloat(0.2)),
	}
}

// eurFactor is a coarse conversion used only to rank currencies within a
// bank. It is not a financial FX rate.
func eurFactor(currency string) float64 {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "EUR":
		return 1.0
	case "USD":
		return 0.92
	case "GBP":
		return 1.17
	case "SEK", "NOK", "DKK", "ISK":
		return 0.09
	default:
		return 0.5
	}
}

// Exposure reads the bank-by-currency grid. Banks with no readable amounts
// are dropped.
func Exposure(wb *workbook.Workbook) ([]BankExposure, error) {
	sheet, err := wb.Sheet(SheetTables)
	if err != nil {
		return nil, fmt.Errorf("exposure: %w", err)
	}

	currencies := make(map[int]string)
	for col := exposureFirstCol; col <= exposureLastCol; col++ {
		if label, ok := sheet.Cell(exposureHeaderRow, col); ok {
			currencies[col] = strings.TrimSpace(label)
		}
	}

	var out []BankExposure
	for row := exposureFirstBank; row <= exposureLastBank; row++ {
		bank, ok := sheet.Cell(row, 0)
		if !ok {
			continue
		}
		exp := BankExposure{
			Bank:     strings.TrimSpace(bank),
			Amounts:  make(map[string]float64),
			Percents: make(map[string]float64),
		}
		for col, currency := range currencies {
			amount, ok := sheet.Number(row, col)
			if !ok || amount == 0 {
				continue
			}
			exp.Amounts[currency] = amount
			exp.TotalEUR += amount * eurFactor(currency)
		}
		if len(exp.Amounts) == 0 {
			continue
		}
		if exp.TotalEUR > 0 {
			for currency, amount := range exp.Amounts {
				exp.Percents[currency] = amount * eurFactor(currency) / exp.TotalEUR * 100
			}
		}
		out = append(out, exp)
	}
	return out, nil
}

// scanRowRight returns the first numeric non-zero cell found scanning the
// row right-to-left. Both daily-flow rows use the same direction so the
// figure and its percentage always come from the same day's column.
func scanRowRight(sheet *workbook.Sheet, row int) (float64, bool) {
	for col := sheet.ColCount() - 1; col >= 0; col-- {
		if v, ok := sheet.Number(row, col); ok && v != 0 {
			return v, true
		}
	}
	return 0, false
}

// LatestVariation reads the most recent day-over-day movement as an amount.
// It scans the same row as the daily flow figure, not the percentage row.
func LatestVariation(wb *workbook.Workbook) (Variation, bool) {
	sheet, err := wb.Sheet(SheetAccounts)
	if err != nil {
		return Variation{}, false
	}
	v, ok := scanRowRight(sheet, dailyFlowRow)
	if !ok {
		return Variation{}, false
	}
	return Variation{Value: v, Positive: v >= 0}, true
}

// pctDisplay normalizes a percentage cell. The sheet holds either a ready
// percentage or a fraction; magnitudes below one are fractions and scale
// by 100.
func pctDisplay(v float64) float64 {
	if v > -1 && v < 1 {
		return v * 100
	}
	return v
}

// DailyCashFlow reads the latest daily figure and its percentage change.
func DailyCashFlow(wb *workbook.Workbook) (flow, pct float64, ok bool) {
	sheet, err := wb.Sheet(SheetAccounts)
	if err != nil {
		return 0, 0, false
	}
	flow, ok = scanRowRight(sheet, dailyFlowRow)
	if !ok {
		return 0, 0, false
	}
	if raw, found := scanRowRight(sheet, dailyPctRow); found {
		pct = pctDisplay(raw)
	}
	return flow, pct, true
}

// LiquiditySeries locates value columns by marker text and returns the
// windowed trend in millions. An empty result means the caller should use
// the synthetic series instead.
func LiquiditySeries(wb *workbook.Workbook) ([]LiquidityPoint, error) {
	sheet, err := wb.Sheet(SheetAccounts)
	if err != nil {
		return nil, fmt.Errorf("liquidity series: %w", err)
	}

	scan := workbook.MarkerScan{
		HeaderRow:     liquidityHeaderRow,
		DateRow:       liquidityDateRow,
		DateColOffset: liquidityDateBack,
		ValueRow:      liquidityValueRow,
		Required:      []string{"VALOR", "EUR"},
		WindowDays:    liquidityWindow,
	}

	var out []LiquidityPoint
	for _, s := range scan.Scan(sheet) {
		out = append(out, LiquidityPoint{Date: s.Date, Millions: s.Value / 1e6})
	}
	return out, nil
}

// AccountsSummary reads the headline totals: raw liquidity scaled to
// millions and the non-empty account count.
func AccountsSummary(wb *workbook.Workbook, activeBanks int) (Summary, error) {
	tables, err := wb.Sheet(SheetTables)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	accounts, err := wb.Sheet(SheetAccounts)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}

	sum := Summary{ActiveBanks: activeBanks}
	if raw, ok := tables.Number(totalLiquidityRow, totalLiquidityCol); ok {
		sum.TotalLiquidityM = raw / 1e6
	}
	sum.AccountCount = accounts.NonEmptyRows(accountsFirstRow, accountsLastRow+1)
	return sum, nil
}
