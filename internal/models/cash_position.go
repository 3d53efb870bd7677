package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashPosition is one bank's balance as extracted by a sync pass. Rows are
// day-scoped: a pass replaces every row sharing its CreatedDate.
type CashPosition struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement"`
	BankName    string          `gorm:"type:text;not null;index"`
	Currency    string          `gorm:"type:varchar(3);not null;default:EUR"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	LastUpdated time.Time       `gorm:"not null"`
	CreatedDate string          `gorm:"type:date;not null;index"`
}

func (CashPosition) TableName() string {
	return "cash_positions"
}
