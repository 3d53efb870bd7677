package gormrepository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"treasuryhub/internal/models"
	"treasuryhub/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// InTx runs fn inside one transaction. The day-scoped replaces go through
// it so the delete and insert commit or roll back together.
func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- write path -------------------------------------------------------------

func (s *Store) ReplacePositionsForDay(ctx context.Context, day string, items []models.CashPosition) error {
	return s.InTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("created_date = ?", day).Delete(&models.CashPosition{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (s *Store) ReplaceForecastForDay(ctx context.Context, day string, items []models.ForecastRecord) error {
	return s.InTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("created_date = ?", day).Delete(&models.ForecastRecord{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (s *Store) UpsertMetric(ctx context.Context, item *models.KeyMetric) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.MetricName) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "metric_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"metric_value",
			"metric_change",
			"metric_change_percent",
			"approximated",
			"calculation_date",
			"last_updated",
		}),
	}).Create(item).Error
}

func (s *Store) GetMetric(ctx context.Context, name string) (*models.KeyMetric, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.KeyMetric
	err := s.db.WithContext(ctx).Where("metric_name = ?", name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListMetrics(ctx context.Context) ([]models.KeyMetric, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.KeyMetric
	if err := s.db.WithContext(ctx).
		Model(&models.KeyMetric{}).
		Order("metric_name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertFxDeal(ctx context.Context, item *models.FxDeal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	err := s.db.WithContext(ctx).Create(item).Error
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicateDeal
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *Store) AppendSyncLog(ctx context.Context, item *models.SyncLogEntry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// --- read path --------------------------------------------------------------

func (s *Store) ListFxDeals(ctx context.Context, params repository.ListFxDealsParams) ([]models.FxDeal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.fxDealQuery(ctx, params).Order("deal_date desc, id desc")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.FxDeal
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountFxDeals(ctx context.Context, params repository.ListFxDealsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	if err := s.fxDealQuery(ctx, params).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) fxDealQuery(ctx context.Context, params repository.ListFxDealsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.FxDeal{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.Currency != nil && strings.TrimSpace(*params.Currency) != "" {
		query = query.Where("currency = ?", strings.TrimSpace(*params.Currency))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("deal_date >= ?", params.Since.UTC().Format("2006-01-02"))
	}
	return query
}

func (s *Store) LatestSyncLog(ctx context.Context) (*models.SyncLogEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.SyncLogEntry
	err := s.db.WithContext(ctx).Order("sync_timestamp desc, id desc").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSyncLog(ctx context.Context, limit int) ([]models.SyncLogEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SyncLogEntry
	if err := s.db.WithContext(ctx).
		Model(&models.SyncLogEntry{}).
		Order("sync_timestamp desc, id desc").
		Limit(normalizeLimit(limit, 50)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountSyncLogForDay(ctx context.Context, day time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.SyncLogEntry{}).
		Where("sync_timestamp >= ? AND sync_timestamp < ?", start, end).
		Count(&count).Error
	return count, err
}

func (s *Store) ListPositionsForDay(ctx context.Context, day string) ([]models.CashPosition, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.CashPosition
	if err := s.db.WithContext(ctx).
		Where("created_date = ?", day).
		Order("amount desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) LatestPositions(ctx context.Context) ([]models.CashPosition, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var latest sql.NullString
	err := s.db.WithContext(ctx).
		Model(&models.CashPosition{}).
		Select("max(created_date)").
		Scan(&latest).Error
	if err != nil || !latest.Valid || latest.String == "" {
		return nil, err
	}
	return s.ListPositionsForDay(ctx, latest.String)
}

func (s *Store) ListForecast(ctx context.Context, params repository.ListForecastParams) ([]models.ForecastRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ForecastRecord{})
	if params.Year != nil {
		query = query.Where("year = ?", *params.Year)
	}
	if params.Type != nil && strings.TrimSpace(*params.Type) != "" {
		query = query.Where("forecast_type = ?", strings.TrimSpace(*params.Type))
	}
	var items []models.ForecastRecord
	if err := query.Order("year asc, month asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) TableCounts(ctx context.Context) (repository.TableCounts, error) {
	if s == nil || s.db == nil {
		return repository.TableCounts{}, nil
	}
	var counts repository.TableCounts
	targets := []struct {
		model any
		dest  *int64
	}{
		{&models.CashPosition{}, &counts.CashPositions},
		{&models.ForecastRecord{}, &counts.Forecast},
		{&models.FxDeal{}, &counts.FxDeals},
		{&models.KeyMetric{}, &counts.KeyMetrics},
		{&models.SyncLogEntry{}, &counts.SyncLog},
	}
	for _, t := range targets {
		if err := s.db.WithContext(ctx).Model(t.model).Count(t.dest).Error; err != nil {
			return repository.TableCounts{}, err
		}
	}
	return counts, nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
