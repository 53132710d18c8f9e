package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/service/issuance"
)

// IssuanceHandler exposes the issue/restock operations and the ledger.
type IssuanceHandler struct {
	svc    *issuance.Service
	logger *zap.Logger
}

// NewIssuanceHandler builds the handler with its dependencies.
func NewIssuanceHandler(svc *issuance.Service, logger *zap.Logger) *IssuanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IssuanceHandler{svc: svc, logger: logger}
}

type issueRequest struct {
	StudentName string `json:"student_name"`
	Quantity    int    `json:"quantity"`
	IssueDate   string `json:"issue_date"`
}

// Issue handles POST /api/items/:id/issue.
func (h *IssuanceHandler) Issue(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}

	result, err := h.svc.Issue(c.Request.Context(), session(c), issuance.IssueRequest{
		ItemID:      c.Param("id"),
		StudentName: req.StudentName,
		Quantity:    req.Quantity,
		IssueDate:   req.IssueDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"state":  result.State,
		"record": result.Record,
		"item":   result.Item,
	})
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

// Restock handles POST /api/items/:id/restock.
func (h *IssuanceHandler) Restock(c *gin.Context) {
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}
	item, err := h.svc.Restock(c.Request.Context(), session(c), c.Param("id"), req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListRecords handles GET /api/issuances.
func (h *IssuanceHandler) ListRecords(c *gin.Context) {
	views, err := h.svc.ListRecords(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// RecentMovements handles GET /api/issuances/recent.
func (h *IssuanceHandler) RecentMovements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	movements, err := h.svc.RecentMovements(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

type correctRecordRequest struct {
	StudentName *string `json:"student_name"`
	Quantity    *int    `json:"quantity_taken"`
	IssueDate   *string `json:"issue_date"`
}

// CorrectRecord handles PATCH /api/issuances/:id.
func (h *IssuanceHandler) CorrectRecord(c *gin.Context) {
	var req correctRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}
	record, err := h.svc.CorrectRecord(c.Request.Context(), session(c), c.Param("id"), repository.IssuanceUpdate{
		StudentName: req.StudentName,
		Quantity:    req.Quantity,
		IssueDate:   req.IssueDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteRecord handles DELETE /api/issuances/:id.
func (h *IssuanceHandler) DeleteRecord(c *gin.Context) {
	if err := h.svc.DeleteRecord(c.Request.Context(), session(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
