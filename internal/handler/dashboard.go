package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"treasuryhub/internal/extract"
	"treasuryhub/internal/repository"
	"treasuryhub/internal/service"
)

type DashboardHandler struct {
	Dashboard *service.DashboardService
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/dashboard")
	group.GET("/summary", h.summary)
	group.GET("/banks", h.banks)
	group.GET("/liquidity", h.liquidity)
	group.GET("/cashflow/daily", h.dailyCashFlow)
	group.GET("/variation", h.variation)
	group.GET("/exposure", h.exposure)
	group.GET("/positions", h.positions)
	group.GET("/forecast", h.forecast)
	group.GET("/metrics", h.metrics)
}

// sourceMeta carries the provenance label so clients can render a
// sample-data notice.
func sourceMeta(origin extract.Origin) map[string]any {
	return map[string]any{"data_source": origin.Label()}
}

func (h *DashboardHandler) summary(c *gin.Context) {
	result := h.Dashboard.Summary(c.Request.Context())
	Ok(c, gin.H{
		"total_liquidity_m": result.Data.TotalLiquidityM,
		"account_count":     result.Data.AccountCount,
		"active_banks":      result.Data.ActiveBanks,
	}, sourceMeta(result.Origin))
}

func (h *DashboardHandler) banks(c *gin.Context) {
	result := h.Dashboard.BankBalances(c.Request.Context())
	items := make([]gin.H, 0, len(result.Data))
	for _, b := range result.Data {
		items = append(items, gin.H{"bank_name": b.Bank, "balance": b.Amount})
	}
	Ok(c, items, sourceMeta(result.Origin))
}

func (h *DashboardHandler) liquidity(c *gin.Context) {
	result := h.Dashboard.LiquidityTrend(c.Request.Context())
	items := make([]gin.H, 0, len(result.Data))
	for _, p := range result.Data {
		items = append(items, gin.H{
			"date":    p.Date.Format("2006-01-02"),
			"value_m": p.Millions,
		})
	}
	Ok(c, items, sourceMeta(result.Origin))
}

func (h *DashboardHandler) dailyCashFlow(c *gin.Context) {
	result := h.Dashboard.DailyCashFlow(c.Request.Context())
	Ok(c, gin.H{
		"flow":     result.Data.Flow,
		"pct":      result.Data.Pct,
		"positive": result.Data.Positive,
	}, sourceMeta(result.Origin))
}

func (h *DashboardHandler) variation(c *gin.Context) {
	result := h.Dashboard.Variation(c.Request.Context())
	Ok(c, gin.H{
		"value":    result.Data.Value,
		"positive": result.Data.Positive,
	}, sourceMeta(result.Origin))
}

func (h *DashboardHandler) exposure(c *gin.Context) {
	result := h.Dashboard.Exposure(c.Request.Context())
	items := make([]gin.H, 0, len(result.Data))
	for _, e := range result.Data {
		items = append(items, gin.H{
			"bank_name": e.Bank,
			"amounts":   e.Amounts,
			"percents":  e.Percents,
			"total_eur": e.TotalEUR,
		})
	}
	Ok(c, items, sourceMeta(result.Origin))
}

func (h *DashboardHandler) positions(c *gin.Context) {
	items, err := h.Dashboard.Positions(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

func (h *DashboardHandler) forecast(c *gin.Context) {
	params := repository.ListForecastParams{}
	if year := intQuery(c, "year", 0); year > 0 {
		params.Year = &year
	}
	if ftype := strings.ToUpper(strings.TrimSpace(c.Query("type"))); ftype != "" {
		params.Type = &ftype
	}
	items, err := h.Dashboard.Forecast(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

func (h *DashboardHandler) metrics(c *gin.Context) {
	items, err := h.Dashboard.Metrics(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
