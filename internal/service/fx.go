package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"treasuryhub/internal/models"
	"treasuryhub/internal/repository"
)

// FxDealService records and lists FX deals. Deals are entered interactively
// and are never touched by the sync path.
type FxDealService struct {
	store repository.Store
	now   func() time.Time
}

func NewFxDealService(store repository.Store) *FxDealService {
	return &FxDealService{store: store, now: time.Now}
}

// CreateDealInput is the validated shape for a new deal.
type CreateDealInput struct {
	DealID      string
	DealType    string
	Currency    string
	Amount      decimal.Decimal
	Rate        decimal.Decimal
	Counterpart string
	ValueDate   time.Time
	Notes       string
	CreatedBy   string
}

// Create validates the input, fills defaults and inserts the deal. A
// duplicate deal_id surfaces as repository.ErrDuplicateDeal.
func (f *FxDealService) Create(ctx context.Context, in CreateDealInput) (*models.FxDeal, error) {
	dealType := strings.ToUpper(strings.TrimSpace(in.DealType))
	if dealType != models.DealTypeBuy && dealType != models.DealTypeSell {
		return nil, fmt.Errorf("deal_type must be %s or %s", models.DealTypeBuy, models.DealTypeSell)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !in.Rate.IsPositive() {
		return nil, fmt.Errorf("rate must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(currency) != 3 {
		return nil, fmt.Errorf("currency must be a 3-letter code")
	}

	now := f.now()
	dealID := strings.TrimSpace(in.DealID)
	if dealID == "" {
		count, err := f.store.CountFxDeals(ctx, repository.ListFxDealsParams{})
		if err != nil {
			return nil, err
		}
		dealID = fmt.Sprintf("FX-%s-%03d", now.Format("20060102"), count+1)
	}
	valueDate := in.ValueDate
	if valueDate.IsZero() {
		valueDate = now
	}
	day := now.UTC().Format("2006-01-02")
	createdBy := strings.TrimSpace(in.CreatedBy)
	if createdBy == "" {
		createdBy = "System"
	}

	deal := &models.FxDeal{
		DealID:      dealID,
		DealType:    dealType,
		Currency:    currency,
		Amount:      in.Amount,
		Rate:        in.Rate,
		Counterpart: strings.TrimSpace(in.Counterpart),
		ValueDate:   valueDate.UTC().Format("2006-01-02"),
		DealDate:    day,
		Status:      models.DealStatusActive,
		Notes:       in.Notes,
		CreatedBy:   createdBy,
		LastUpdated: now,
		CreatedDate: day,
	}
	if err := f.store.InsertFxDeal(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

// List returns deals newest first.
func (f *FxDealService) List(ctx context.Context, params repository.ListFxDealsParams) ([]models.FxDeal, int64, error) {
	items, err := f.store.ListFxDeals(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := f.store.CountFxDeals(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
