package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// ReportHandler exposes the stock summary endpoint.
type ReportHandler struct {
	svc *reporting.Service
}

// NewReportHandler builds the handler.
func NewReportHandler(svc *reporting.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// StockSummary handles GET /api/reports/stock.
func (h *ReportHandler) StockSummary(c *gin.Context) {
	report, err := h.svc.StockSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
