package extract

import (
	"testing"

	"github.com/shopspring/decimal"

	"treasuryhub/internal/workbook"
)

func grid(rows, cols int) [][]string {
	g := make([][]string, rows)
	for i := range g {
		g[i] = make([]string, cols)
	}
	return g
}

type sheetSpec map[string][][]string

func buildWorkbook(t *testing.T, sheets sheetSpec) *workbook.Workbook {
	t.Helper()
	wb := workbook.NewWorkbook()
	for name, rows := range sheets {
		wb.AddSheet(workbook.NewSheet(name, rows))
	}
	return wb
}

func TestCashPositionsSkipsBadRows(t *testing.T) {
	g := grid(95, 4)
	g[77][1] = "Bank A"
	g[77][2] = "1500000"
	// Row 78: no name at all.
	g[79][1] = "Bank B"
	g[79][2] = "not-a-number"

	wb := buildWorkbook(t, sheetSpec{SheetSeven: g})
	positions, err := CashPositions(wb)
	if err != nil {
		t.Fatalf("CashPositions: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	if positions[0].Bank != "Bank A" {
		t.Fatalf("bank = %q, want Bank A", positions[0].Bank)
	}
	if !positions[0].Amount.Equal(decimal.NewFromInt(1_500_000)) {
		t.Fatalf("amount = %s, want 1500000", positions[0].Amount)
	}
}

func TestCashPositionsMissingSheet(t *testing.T) {
	wb := buildWorkbook(t, sheetSpec{})
	if _, err := CashPositions(wb); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}

func TestForecastWindows(t *testing.T) {
	g := grid(8, 30)
	// Current year: Jan populated, Feb labeled "nan", Mar missing numerics.
	g[forecastLabelRow][1] = "Jan"
	g[forecastInflowRow][1] = "100"
	g[forecastOutflowRow][1] = "40"
	g[forecastNetRow][1] = "60"
	g[forecastLabelRow][2] = "nan"
	g[forecastInflowRow][2] = "999"
	g[forecastLabelRow][3] = "Mar"
	// Prior year: Jan only.
	g[forecastLabelRow][15] = "Jan"
	g[forecastInflowRow][15] = "80"
	g[forecastOutflowRow][15] = "30"
	g[forecastNetRow][15] = "50"

	wb := buildWorkbook(t, sheetSpec{SheetDash: g})
	months, err := Forecast(wb, 2025)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(months) != 3 {
		t.Fatalf("expected 3 months, got %d", len(months))
	}

	jan := months[0]
	if jan.Month != 1 || jan.Year != 2025 || jan.Type != "FORECAST" {
		t.Fatalf("unexpected first month: %+v", jan)
	}
	if !jan.Net.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("net = %s, want 60", jan.Net)
	}

	mar := months[1]
	if mar.Month != 3 {
		t.Fatalf("expected month 3, got %d", mar.Month)
	}
	if !mar.Inflow.IsZero() || !mar.Outflow.IsZero() || !mar.Net.IsZero() {
		t.Fatalf("missing numerics should coerce to zero: %+v", mar)
	}

	prior := months[2]
	if prior.Year != 2024 || prior.Type != "HISTORICAL" {
		t.Fatalf("unexpected prior-year month: %+v", prior)
	}
}

func TestKeyMetricsSplit(t *testing.T) {
	metrics := KeyMetrics([]BankAmount{
		{Bank: "A", Amount: decimal.NewFromInt(600)},
		{Bank: "B", Amount: decimal.NewFromInt(400)},
	})
	if !metrics.TotalBalance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("total = %s, want 1000", metrics.TotalBalance)
	}
	if !metrics.LiquidAssets.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("liquid = %s, want 800", metrics.LiquidAssets)
	}
	if !metrics.InvestmentGrade.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("investment = %s, want 200", metrics.InvestmentGrade)
	}
}

func TestKeyMetricsEmpty(t *testing.T) {
	metrics := KeyMetrics(nil)
	if !metrics.TotalBalance.IsZero() {
		t.Fatalf("total = %s, want 0", metrics.TotalBalance)
	}
}

func TestExposureConversion(t *testing.T) {
	g := grid(14, 16)
	g[0][1] = "EUR"
	g[0][2] = "USD"
	g[0][3] = "SEK"
	g[1][0] = "Bank A"
	g[1][1] = "100"
	g[1][2] = "50"
	g[1][3] = "200"
	g[2][0] = "Bank B" // no amounts, dropped

	wb := buildWorkbook(t, sheetSpec{SheetTables: g})
	exposure, err := Exposure(wb)
	if err != nil {
		t.Fatalf("Exposure: %v", err)
	}
	if len(exposure) != 1 {
		t.Fatalf("expected 1 bank, got %d", len(exposure))
	}
	want := 100*1.0 + 50*0.92 + 200*0.09
	if diff := exposure[0].TotalEUR - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("total EUR = %v, want %v", exposure[0].TotalEUR, want)
	}
}

func TestExposurePercentsSumToHundred(t *testing.T) {
	g := grid(14, 16)
	g[0][1] = "EUR"
	g[0][2] = "USD"
	g[0][3] = "SEK"
	g[1][0] = "Bank A"
	g[1][1] = "100"
	g[1][2] = "50"
	g[1][3] = "200"

	wb := buildWorkbook(t, sheetSpec{SheetTables: g})
	exposure, err := Exposure(wb)
	if err != nil {
		t.Fatalf("Exposure: %v", err)
	}
	if len(exposure) != 1 {
		t.Fatalf("expected 1 bank, got %d", len(exposure))
	}

	var sum float64
	for _, pct := range exposure[0].Percents {
		if pct <= 0 {
			t.Fatalf("percent should be positive, got %v", pct)
		}
		sum += pct
	}
	if diff := sum - 100; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("percents sum = %v, want 100", sum)
	}

	eurShare := 100.0 / exposure[0].TotalEUR * 100
	if diff := exposure[0].Percents["EUR"] - eurShare; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("EUR percent = %v, want %v", exposure[0].Percents["EUR"], eurShare)
	}
}

func TestDailyCashFlowScansRightToLeft(t *testing.T) {
	g := grid(103, 10)
	g[dailyFlowRow][3] = "500"
	g[dailyFlowRow][7] = "1250"
	g[dailyPctRow][7] = "2.4"

	wb := buildWorkbook(t, sheetSpec{SheetAccounts: g})
	flow, pct, ok := DailyCashFlow(wb)
	if !ok {
		t.Fatalf("expected a daily flow")
	}
	if flow != 1250 {
		t.Fatalf("flow = %v, want rightmost value 1250", flow)
	}
	if pct != 2.4 {
		t.Fatalf("pct = %v, want 2.4", pct)
	}
}

func TestLatestVariationReadsFlowRow(t *testing.T) {
	g := grid(103, 10)
	g[dailyFlowRow][5] = "-1250000"
	g[dailyPctRow][7] = "-1.7"

	wb := buildWorkbook(t, sheetSpec{SheetAccounts: g})
	v, ok := LatestVariation(wb)
	if !ok {
		t.Fatalf("expected a variation")
	}
	if v.Value != -1250000 {
		t.Fatalf("variation = %+v, want the -1250000 amount, not the percentage", v)
	}
	if v.Positive {
		t.Fatalf("variation = %+v, want negative", v)
	}
}

func TestDailyCashFlowScalesFractionPct(t *testing.T) {
	g := grid(103, 10)
	g[dailyFlowRow][7] = "1250000"
	g[dailyPctRow][7] = "0.024"

	wb := buildWorkbook(t, sheetSpec{SheetAccounts: g})
	_, pct, ok := DailyCashFlow(wb)
	if !ok {
		t.Fatalf("expected a daily flow")
	}
	if diff := pct - 2.4; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("pct = %v, want fraction scaled to 2.4", pct)
	}
}

func TestLiquiditySeriesMillions(t *testing.T) {
	g := grid(99, 12)
	g[liquidityHeaderRow][10] = "VALOR EUR"
	g[liquidityDateRow][8] = "05-Aug-25"
	g[liquidityValueRow][10] = "32,600,000"

	wb := buildWorkbook(t, sheetSpec{SheetAccounts: g})
	series, err := LiquiditySeries(wb)
	if err != nil {
		t.Fatalf("LiquiditySeries: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}
	if series[0].Millions != 32.6 {
		t.Fatalf("millions = %v, want 32.6", series[0].Millions)
	}
}

func TestAccountsSummary(t *testing.T) {
	tables := grid(93, 4)
	tables[totalLiquidityRow][totalLiquidityCol] = "32,600,000"
	accounts := grid(99, 4)
	accounts[2][0] = "acct-1"
	accounts[3][0] = "acct-2"
	accounts[98][0] = "beyond range"

	wb := buildWorkbook(t, sheetSpec{SheetTables: tables, SheetAccounts: accounts})
	sum, err := AccountsSummary(wb, 13)
	if err != nil {
		t.Fatalf("AccountsSummary: %v", err)
	}
	if sum.TotalLiquidityM != 32.6 {
		t.Fatalf("liquidity = %v, want 32.6", sum.TotalLiquidityM)
	}
	if sum.AccountCount != 2 {
		t.Fatalf("accounts = %d, want 2", sum.AccountCount)
	}
	if sum.ActiveBanks != 13 {
		t.Fatalf("active banks = %d, want 13", sum.ActiveBanks)
	}
}
