package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"treasuryhub/internal/cache"
	"treasuryhub/internal/config"
	"treasuryhub/internal/extract"
	"treasuryhub/internal/fallback"
	"treasuryhub/internal/models"
	"treasuryhub/internal/repository"
	"treasuryhub/internal/workbook"
)

// DailyFlow is the latest daily movement with its percentage change.
type DailyFlow struct {
	Flow     float64
	Pct      float64
	Positive bool
}

// SyncStatus is the operational view for the status endpoint.
type SyncStatus struct {
	LastSync *models.SyncLogEntry
	Counts   repository.TableCounts
}

// DashboardService serves interactive reads. Results are cached with a
// short TTL; when the workbook is unavailable or a mapper yields nothing,
// the fixed substitute dataset is returned instead, tagged with its
// provenance so callers can render a sample-data notice. Reads never fail
// on a workbook problem.
type DashboardService struct {
	wbCfg   config.WorkbookConfig
	dashCfg config.DashboardConfig
	store   repository.Store
	cache   *cache.Cache
	log     *zap.Logger
}

func NewDashboardService(wbCfg config.WorkbookConfig, dashCfg config.DashboardConfig, store repository.Store, c *cache.Cache, log *zap.Logger) *DashboardService {
	return &DashboardService{
		wbCfg:   wbCfg,
		dashCfg: dashCfg,
		store:   store,
		cache:   c,
		log:     log,
	}
}

// openWorkbook loads and caches the parsed workbook. The TTL bounds how
// stale an interactive read can be between syncs.
func (d *DashboardService) openWorkbook() (*workbook.Workbook, error) {
	return cache.GetOrLoad(d.cache, "workbook", func() (*workbook.Workbook, error) {
		path, found := workbook.Locate(d.wbCfg.Path, d.wbCfg.Candidates)
		if !found {
			return nil, workbook.ErrSourceAbsent
		}
		return workbook.Load(path)
	})
}

// Summary returns the headline totals.
func (d *DashboardService) Summary(ctx context.Context) extract.Tagged[extract.Summary] {
	return readTagged(d, "summary", fallback.Summary, func(wb *workbook.Workbook) (extract.Summary, bool) {
		sum, err := extract.AccountsSummary(wb, d.dashCfg.ActiveBanks)
		if err != nil || sum.TotalLiquidityM == 0 {
			return extract.Summary{}, false
		}
		return sum, true
	})
}

// BankBalances returns the ranked bank list.
func (d *DashboardService) BankBalances(ctx context.Context) extract.Tagged[[]extract.BankAmount] {
	return readTagged(d, "bank_balances", fallback.BankBalances, func(wb *workbook.Workbook) ([]extract.BankAmount, bool) {
		banks, err := extract.BankBalances(wb)
		if err != nil || len(banks) == 0 {
			return nil, false
		}
		return banks, true
	})
}

// LiquidityTrend returns the windowed liquidity series, in millions.
func (d *DashboardService) LiquidityTrend(ctx context.Context) extract.Tagged[[]extract.LiquidityPoint] {
	return readTagged(d, "liquidity_trend", fallback.LiquiditySeries, func(wb *workbook.Workbook) ([]extract.LiquidityPoint, bool) {
		series, err := extract.LiquiditySeries(wb)
		if err != nil || len(series) == 0 {
			return nil, false
		}
		return series, true
	})
}

// DailyCashFlow returns the latest daily movement.
func (d *DashboardService) DailyCashFlow(ctx context.Context) extract.Tagged[DailyFlow] {
	return readTagged(d, "daily_cash_flow", func() DailyFlow {
		flow, pct := fallback.DailyCashFlow()
		return DailyFlow{Flow: flow, Pct: pct, Positive: flow >= 0}
	}, func(wb *workbook.Workbook) (DailyFlow, bool) {
		flow, pct, ok := extract.DailyCashFlow(wb)
		if !ok {
			return DailyFlow{}, false
		}
		return DailyFlow{Flow: flow, Pct: pct, Positive: flow >= 0}, true
	})
}

// Variation returns the latest day-over-day movement amount with its sign
// classification. The substitute derives from the fixed daily flow amount.
func (d *DashboardService) Variation(ctx context.Context) extract.Tagged[extract.Variation] {
	return readTagged(d, "variation", func() extract.Variation {
		flow, _ := fallback.DailyCashFlow()
		return extract.Variation{Value: flow, Positive: flow >= 0}
	}, func(wb *workbook.Workbook) (extract.Variation, bool) {
		return extract.LatestVariation(wb)
	})
}

// Exposure returns the per-bank currency breakdown. The substitute dataset
// assumes everything is EUR.
func (d *DashboardService) Exposure(ctx context.Context) extract.Tagged[[]extract.BankExposure] {
	return readTagged(d, "exposure", fallbackExposure, func(wb *workbook.Workbook) ([]extract.BankExposure, bool) {
		exposure, err := extract.Exposure(wb)
		if err != nil || len(exposure) == 0 {
			return nil, false
		}
		return exposure, true
	})
}

func fallbackExposure() []extract.BankExposure {
	banks := fallback.BankBalances()
	out := make([]extract.BankExposure, 0, len(banks))
	for _, b := range banks {
		amount, _ := b.Amount.Float64()
		out = append(out, extract.BankExposure{
			Bank:     b.Bank,
			Amounts:  map[string]float64{"EUR": amount},
			Percents: map[string]float64{"EUR": 100},
			TotalEUR: amount,
		})
	}
	return out
}

// readTagged runs one cached read: workbook first, substitute on any
// failure. The tagged result is cached either way so repeated misses do not
// re-open the file.
func readTagged[T any](d *DashboardService, key string, substitute func() T, read func(*workbook.Workbook) (T, bool)) extract.Tagged[T] {
	result, _ := cache.GetOrLoad(d.cache, key, func() (extract.Tagged[T], error) {
		wb, err := d.openWorkbook()
		if err != nil {
			d.log.Warn("read falling back to sample data", zap.String("dataset", key), zap.Error(err))
			return extract.FromFallback(substitute()), nil
		}
		data, ok := read(wb)
		if !ok {
			d.log.Warn("read yielded no usable rows, using sample data", zap.String("dataset", key))
			return extract.FromFallback(substitute()), nil
		}
		return extract.FromWorkbook(data), nil
	})
	return result
}

// Positions returns the most recent day's persisted cash positions.
func (d *DashboardService) Positions(ctx context.Context) ([]models.CashPosition, error) {
	return d.store.LatestPositions(ctx)
}

// Forecast returns persisted forecast rows, optionally filtered.
func (d *DashboardService) Forecast(ctx context.Context, params repository.ListForecastParams) ([]models.ForecastRecord, error) {
	return d.store.ListForecast(ctx, params)
}

// Metrics returns the persisted headline metrics.
func (d *DashboardService) Metrics(ctx context.Context) ([]models.KeyMetric, error) {
	return d.store.ListMetrics(ctx)
}

// Status returns the latest sync outcome and table counts.
func (d *DashboardService) Status(ctx context.Context) (SyncStatus, error) {
	last, err := d.store.LatestSyncLog(ctx)
	if err != nil {
		return SyncStatus{}, err
	}
	counts, err := d.store.TableCounts(ctx)
	if err != nil {
		return SyncStatus{}, err
	}
	return SyncStatus{LastSync: last, Counts: counts}, nil
}

// SyncHistory returns recent sync log rows, newest first.
func (d *DashboardService) SyncHistory(ctx context.Context, limit int) ([]models.SyncLogEntry, error) {
	return d.store.ListSyncLog(ctx, limit)
}

// WorkbookInfo reports whether the source file is currently reachable.
func (d *DashboardService) WorkbookInfo() (path string, modTime *time.Time, found bool) {
	path, found = workbook.Locate(d.wbCfg.Path, d.wbCfg.Candidates)
	if !found {
		return path, nil, false
	}
	return path, workbook.ModTime(path), true
}
