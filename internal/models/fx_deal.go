package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DealTypeBuy  = "BUY"
	DealTypeSell = "SELL"

	DealStatusActive = "ACTIVE"
	DealStatusClosed = "CLOSED"
)

// FxDeal is created by the UI form and read-only for the sync engine.
// DealID uniqueness is enforced by the store.
type FxDeal struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement"`
	DealID      string          `gorm:"type:text;uniqueIndex;not null"`
	DealType    string          `gorm:"type:varchar(8);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Rate        decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	Counterpart string          `gorm:"type:text"`
	ValueDate   string          `gorm:"type:date"`
	DealDate    string          `gorm:"type:date;index"`
	Status      string          `gorm:"type:varchar(16);not null;default:ACTIVE"`
	ProfitLoss  decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	Notes       string          `gorm:"type:text"`
	CreatedBy   string          `gorm:"type:text;not null;default:System"`
	LastUpdated time.Time       `gorm:"not null"`
	CreatedDate string          `gorm:"type:date;not null"`
}

func (FxDeal) TableName() string {
	return "fx_deals"
}
