package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"treasuryhub/internal/models"
)

// ErrDuplicateDeal reports a deal_id collision on insert.
var ErrDuplicateDeal = errors.New("deal id already exists")

// Store is the single write/read surface over the relational tables. The
// sync orchestrator is the only writer of position, forecast and metric
// rows; the sync log is append-only.
type Store interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Day-scoped replace: delete the day's rows, then insert.
	ReplacePositionsForDay(ctx context.Context, day string, items []models.CashPosition) error
	ReplaceForecastForDay(ctx context.Context, day string, items []models.ForecastRecord) error

	UpsertMetric(ctx context.Context, item *models.KeyMetric) error
	GetMetric(ctx context.Context, name string) (*models.KeyMetric, error)
	ListMetrics(ctx context.Context) ([]models.KeyMetric, error)

	InsertFxDeal(ctx context.Context, item *models.FxDeal) error
	ListFxDeals(ctx context.Context, params ListFxDealsParams) ([]models.FxDeal, error)
	CountFxDeals(ctx context.Context, params ListFxDealsParams) (int64, error)

	AppendSyncLog(ctx context.Context, item *models.SyncLogEntry) error
	LatestSyncLog(ctx context.Context) (*models.SyncLogEntry, error)
	ListSyncLog(ctx context.Context, limit int) ([]models.SyncLogEntry, error)
	CountSyncLogForDay(ctx context.Context, day time.Time) (int64, error)

	ListPositionsForDay(ctx context.Context, day string) ([]models.CashPosition, error)
	LatestPositions(ctx context.Context) ([]models.CashPosition, error)
	ListForecast(ctx context.Context, params ListForecastParams) ([]models.ForecastRecord, error)

	TableCounts(ctx context.Context) (TableCounts, error)
}

type ListFxDealsParams struct {
	Limit    int
	Offset   int
	Status   *string
	Currency *string
	Since    *time.Time
}

type ListForecastParams struct {
	Year *int
	Type *string
}

type TableCounts struct {
	CashPositions int64
	Forecast      int64
	FxDeals       int64
	KeyMetrics    int64
	SyncLog       int64
}
