package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ForecastTypeForecast   = "FORECAST"
	ForecastTypeHistorical = "HISTORICAL"
)

// ForecastRecord is one month of the cash flow forecast. NetFlow is stored
// as the workbook reports it and is never recomputed from inflow/outflow.
type ForecastRecord struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	Month        int             `gorm:"not null"`
	MonthLabel   string          `gorm:"type:text"`
	Year         int             `gorm:"not null;index"`
	Inflow       decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	Outflow      decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	NetFlow      decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	ForecastType string          `gorm:"type:varchar(16);not null;default:FORECAST"`
	LastUpdated  time.Time       `gorm:"not null"`
	CreatedDate  string          `gorm:"type:date;not null;index"`
}

func (ForecastRecord) TableName() string {
	return "cash_flow_forecast"
}
