package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"treasuryhub/internal/repository"
	"treasuryhub/internal/service"
)

type FxDealHandler struct {
	Deals *service.FxDealService
}

func (h *FxDealHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/fx-deals")
	group.GET("", h.list)
	group.POST("", h.create)
}

type createDealRequest struct {
	DealID      string          `json:"deal_id"`
	DealType    string          `json:"deal_type" binding:"required"`
	Currency    string          `json:"currency" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	Counterpart string          `json:"counterpart"`
	ValueDate   string          `json:"value_date"`
	Notes       string          `json:"notes"`
	CreatedBy   string          `json:"created_by"`
}

func (h *FxDealHandler) create(c *gin.Context) {
	var req createDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var valueDate time.Time
	if raw := strings.TrimSpace(req.ValueDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "value_date must be YYYY-MM-DD", nil)
			return
		}
		valueDate = parsed
	}

	deal, err := h.Deals.Create(c.Request.Context(), service.CreateDealInput{
		DealID:      req.DealID,
		DealType:    req.DealType,
		Currency:    req.Currency,
		Amount:      req.Amount,
		Rate:        req.Rate,
		Counterpart: req.Counterpart,
		ValueDate:   valueDate,
		Notes:       req.Notes,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateDeal) {
			Error(c, http.StatusConflict, err.Error(), nil)
			return
		}
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusCreated, apiResponse{Code: 0, Message: "ok", Data: deal})
}

func (h *FxDealHandler) list(c *gin.Context) {
	params := repository.ListFxDealsParams{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}
	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		params.Status = &status
	}
	if currency := strings.ToUpper(strings.TrimSpace(c.Query("currency"))); currency != "" {
		params.Currency = &currency
	}
	if since := strings.TrimSpace(c.Query("since")); since != "" {
		if parsed, err := time.Parse("2006-01-02", since); err == nil {
			params.Since = &parsed
		}
	}

	items, total, err := h.Deals.List(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	meta := paginationMeta(params.Limit, params.Offset, int64(len(items)))
	meta["total"] = total
	Ok(c, items, meta)
}
