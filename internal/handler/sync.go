package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treasuryhub/internal/models"
	"treasuryhub/internal/service"
)

type SyncHandler struct {
	Sync      *service.SyncService
	Dashboard *service.DashboardService
}

func (h *SyncHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/sync")
	group.POST("/trigger", h.trigger)
	group.GET("/status", h.status)
	group.GET("/log", h.log)
}

// trigger runs one manual pass inline. An overlap with a running pass
// reports 409 rather than queueing.
func (h *SyncHandler) trigger(c *gin.Context) {
	ok := h.Sync.Sync(c.Request.Context(), models.SyncTypeManual)
	if !ok {
		Error(c, http.StatusConflict, "sync failed or already running", nil)
		return
	}
	Ok(c, gin.H{"status": "completed"}, nil)
}

func (h *SyncHandler) status(c *gin.Context) {
	status, err := h.Dashboard.Status(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	path, modTime, found := h.Dashboard.WorkbookInfo()
	payload := gin.H{
		"last_sync": status.LastSync,
		"counts": gin.H{
			"cash_positions":     status.Counts.CashPositions,
			"cash_flow_forecast": status.Counts.Forecast,
			"fx_deals":           status.Counts.FxDeals,
			"key_metrics":        status.Counts.KeyMetrics,
			"sync_log":           status.Counts.SyncLog,
		},
		"workbook": gin.H{
			"path":     path,
			"found":    found,
			"modified": modTime,
		},
	}
	Ok(c, payload, nil)
}

func (h *SyncHandler) log(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	items, err := h.Dashboard.SyncHistory(c.Request.Context(), limit)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, 0, int64(len(items))))
}
