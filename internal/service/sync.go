package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"treasuryhub/internal/cache"
	"treasuryhub/internal/config"
	"treasuryhub/internal/extract"
	"treasuryhub/internal/models"
	"treasuryhub/internal/repository"
	"treasuryhub/internal/workbook"
)

var hundred = decimal.NewFromInt(100)

// SyncService runs one full workbook-to-store synchronization pass. It is
// the only writer of position, forecast and metric rows. Runs are exclusive:
// a pass that starts while another is in flight is skipped, not queued.
type SyncService struct {
	cfg   config.SyncConfig
	wbCfg config.WorkbookConfig
	store repository.Store
	cache *cache.Cache
	log   *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewSyncService(cfg config.SyncConfig, wbCfg config.WorkbookConfig, store repository.Store, c *cache.Cache, log *zap.Logger) *SyncService {
	return &SyncService{
		cfg:   cfg,
		wbCfg: wbCfg,
		store: store,
		cache: c,
		log:   log,
		now:   time.Now,
	}
}

// Sync runs one pass and reports whether it succeeded. Every pass that
// actually runs appends exactly one sync_log row, success or failure; an
// overlap-skipped invocation appends nothing.
func (s *SyncService) Sync(ctx context.Context, syncType string) bool {
	if !s.mu.TryLock() {
		s.log.Warn("sync already running, skipping", zap.String("sync_type", syncType))
		return false
	}
	defer s.mu.Unlock()

	start := s.now()
	s.log.Info("sync started", zap.String("sync_type", syncType))

	path, found := workbook.Locate(s.wbCfg.Path, s.wbCfg.Candidates)
	if !found {
		s.finish(ctx, start, syncType, path, nil, 0, nil, fmt.Errorf("workbook not found in %v", s.wbCfg.Candidates))
		return false
	}
	modTime := workbook.ModTime(path)

	wb, err := workbook.Load(path)
	if err != nil {
		s.finish(ctx, start, syncType, path, modTime, 0, nil, fmt.Errorf("load workbook: %w", err))
		return false
	}

	// All three sub-syncs read the same sheets; a missing sheet fails the
	// whole pass rather than producing a partial day.
	for _, name := range []string{extract.SheetSeven, extract.SheetDash} {
		if _, err := wb.Sheet(name); err != nil {
			s.finish(ctx, start, syncType, path, modTime, 0, nil, err)
			return false
		}
	}

	day := start.UTC().Format("2006-01-02")
	breakdown := make(map[string]int)
	var errs []string
	total := 0

	run := func(name string, fn func() (int, error)) {
		n, err := fn()
		breakdown[name] = n
		total += n
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			s.log.Error("sub-sync failed", zap.String("target", name), zap.Error(err))
			return
		}
		s.log.Info("sub-sync done", zap.String("target", name), zap.Int("records", n))
	}

	run("positions", func() (int, error) { return s.syncPositions(ctx, wb, day, start) })
	run("forecast", func() (int, error) { return s.syncForecast(ctx, wb, day, start) })
	run("metrics", func() (int, error) { return s.syncMetrics(ctx, wb, start) })

	var passErr error
	switch {
	case len(errs) == len(breakdown):
		// Every sub-sync failing is indistinguishable from a store failure.
		passErr = errors.New(strings.Join(errs, "; "))
	case len(errs) > 0:
		s.log.Warn("sync completed with partial failures", zap.Strings("errors", errs))
	}

	ok := s.finish(ctx, start, syncType, path, modTime, total, breakdown, passErr)
	if ok {
		s.cache.Invalidate()
	}
	return ok
}

// finish appends the single sync_log row for this pass.
func (s *SyncService) finish(ctx context.Context, start time.Time, syncType, path string, modTime *time.Time, records int, breakdown map[string]int, passErr error) bool {
	entry := models.SyncLogEntry{
		SyncTimestamp:       start,
		FilePath:            path,
		FileModifiedTime:    modTime,
		Status:              models.SyncStatusSuccess,
		RecordsProcessed:    records,
		SyncDurationSeconds: s.now().Sub(start).Seconds(),
		SyncType:            syncType,
	}
	if passErr != nil {
		entry.Status = models.SyncStatusError
		msg := passErr.Error()
		entry.ErrorMessage = &msg
	}
	if len(breakdown) > 0 {
		if raw, err := json.Marshal(breakdown); err == nil {
			entry.Breakdown = datatypes.JSON(raw)
		}
	}

	if err := s.store.AppendSyncLog(ctx, &entry); err != nil {
		s.log.Error("append sync log failed", zap.Error(err))
	}

	if passErr != nil {
		s.log.Error("sync failed",
			zap.String("sync_type", syncType),
			zap.Error(passErr),
			zap.Float64("duration_s", entry.SyncDurationSeconds))
		return false
	}
	s.log.Info("sync finished",
		zap.String("sync_type", syncType),
		zap.Int("records", records),
		zap.Float64("duration_s", entry.SyncDurationSeconds))
	return true
}

func (s *SyncService) syncPositions(ctx context.Context, wb *workbook.Workbook, day string, now time.Time) (int, error) {
	positions, err := extract.CashPositions(wb)
	if err != nil {
		return 0, err
	}
	items := make([]models.CashPosition, 0, len(positions))
	for _, p := range positions {
		items = append(items, models.CashPosition{
			BankName:    p.Bank,
			Currency:    "EUR",
			Amount:      p.Amount,
			LastUpdated: now,
			CreatedDate: day,
		})
	}
	if err := s.store.ReplacePositionsForDay(ctx, day, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *SyncService) syncForecast(ctx context.Context, wb *workbook.Workbook, day string, now time.Time) (int, error) {
	months, err := extract.Forecast(wb, s.cfg.ForecastYear)
	if err != nil {
		return 0, err
	}
	items := make([]models.ForecastRecord, 0, len(months))
	for _, m := range months {
		items = append(items, models.ForecastRecord{
			Month:        m.Month,
			MonthLabel:   m.Label,
			Year:         m.Year,
			Inflow:       m.Inflow,
			Outflow:      m.Outflow,
			NetFlow:      m.Net,
			ForecastType: m.Type,
			LastUpdated:  now,
			CreatedDate:  day,
		})
	}
	if err := s.store.ReplaceForecastForDay(ctx, day, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *SyncService) syncMetrics(ctx context.Context, wb *workbook.Workbook, now time.Time) (int, error) {
	positions, err := extract.CashPositions(wb)
	if err != nil {
		return 0, err
	}
	metrics := extract.KeyMetrics(positions)

	targets := []struct {
		name         string
		value        decimal.Decimal
		approximated bool
	}{
		{models.MetricTotalBalance, metrics.TotalBalance, false},
		{models.MetricLiquidAssets, metrics.LiquidAssets, true},
		{models.MetricInvestmentGrade, metrics.InvestmentGrade, true},
	}

	count := 0
	for _, t := range targets {
		item, err := s.buildMetric(ctx, t.name, t.value, t.approximated, now)
		if err != nil {
			return count, err
		}
		if err := s.store.UpsertMetric(ctx, item); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// buildMetric derives day-over-day change from the previously stored value.
func (s *SyncService) buildMetric(ctx context.Context, name string, value decimal.Decimal, approximated bool, now time.Time) (*models.KeyMetric, error) {
	item := &models.KeyMetric{
		MetricName:      name,
		MetricValue:     value,
		Approximated:    approximated,
		CalculationDate: now.UTC().Format("2006-01-02"),
		LastUpdated:     now,
	}

	prev, err := s.store.GetMetric(ctx, name)
	if err != nil {
		return nil, err
	}
	if prev != nil && !prev.MetricValue.IsZero() {
		change := item.MetricValue.Sub(prev.MetricValue)
		item.MetricChange = change
		item.MetricChangePercent = change.Div(prev.MetricValue).Mul(hundred)
	}
	return item, nil
}
