package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MetricTotalBalance    = "total_balance"
	MetricLiquidAssets    = "liquid_assets"
	MetricInvestmentGrade = "investment_grade"
)

// KeyMetric holds one current value per metric name (upsert-by-name).
// Approximated marks values derived by a fixed proportion of another metric
// rather than measured from the workbook.
type KeyMetric struct {
	ID                  uint64          `gorm:"primaryKey;autoIncrement"`
	MetricName          string          `gorm:"type:text;uniqueIndex;not null"`
	MetricValue         decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	MetricChange        decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	MetricChangePercent decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
	Approximated        bool            `gorm:"not null;default:false"`
	CalculationDate     string          `gorm:"type:date;not null"`
	LastUpdated         time.Time       `gorm:"not null"`
}

func (KeyMetric) TableName() string {
	return "key_metrics"
}
