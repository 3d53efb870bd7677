// Package fallback supplies fixed substitute datasets for every data shape
// the dashboard reads. It is consulted when the workbook cannot be located,
// a sheet cannot be read, or a mapper yields nothing; its output is always
// tagged so consumers can render a sample-data notice.
package fallback

import (
	"time"

	"github.com/shopspring/decimal"

	"treasuryhub/internal/extract"
)

// Summary returns the substitute headline totals.
func Summary() extract.Summary {
	return extract.Summary{
		TotalLiquidityM: 32.6,
		AccountCount:    96,
		ActiveBanks:     13,
	}
}

// BankBalances returns the substitute ranked bank list.
func BankBalances() []extract.BankAmount {
	banks := []struct {
		name    string
		balance float64
	}{
		{"UME BANK", 5.668},
		{"BANCO AZUL", 4.21},
		{"NORDIC TRUST", 3.89},
		{"CAIXA CENTRAL", 3.455},
		{"ATLANTICO", 2.98},
		{"BPM COMMERCIAL", 2.64},
		{"MERIDIAN", 2.31},
		{"CREDIT MUTUEL", 1.987},
		{"HELVETIA PRIVAT", 1.73},
		{"BALTIC UNION", 1.45},
		{"IBERIA CAPITAL", 1.12},
		{"ALPINE SAVINGS", 0.89},
		{"LBCB", 0.57},
	}
	out := make([]extract.BankAmount, 0, len(banks))
	for _, b := range banks {
		out = append(out, extract.BankAmount{
			Bank:   b.name,
			Amount: decimal.NewFromFloat(b.balance),
		})
	}
	return out
}

// LiquiditySeries returns the substitute trend, in millions.
func LiquiditySeries() []extract.LiquidityPoint {
	values := []float64{28.5, 29.1, 30.2, 29.8, 31.0, 31.9, 32.6}
	start := time.Date(2025, time.August, 5, 0, 0, 0, 0, time.UTC)
	out := make([]extract.LiquidityPoint, 0, len(values))
	for i, v := range values {
		// Business days only; Aug 9-10 2025 fall on a weekend.
		day := start.AddDate(0, 0, i)
		if i >= 4 {
			day = start.AddDate(0, 0, i+2)
		}
		out = append(out, extract.LiquidityPoint{Date: day, Millions: v})
	}
	return out
}

// DailyCashFlow returns the substitute daily movement.
func DailyCashFlow() (flow, pct float64) {
	return 1_250_000, 2.4
}
