package db

import (
	"treasuryhub/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.CashPosition{},
		&models.ForecastRecord{},
		&models.FxDeal{},
		&models.KeyMetric{},
		&models.SyncLogEntry{},
	)
}
