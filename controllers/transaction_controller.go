package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-console/models"
	"hotel-console/services"
	"hotel-console/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TransactionController struct {
	TransactionSvc *services.TransactionService
}

func NewTransactionController(svc *services.TransactionService) *TransactionController {
	return &TransactionController{TransactionSvc: svc}
}

type ledgerQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=income expense all"`
	Search string `form:"search"`
	Range  string `form:"range" binding:"omitempty,oneof=month year all"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=5000"`
}

func (q ledgerQuery) filter() services.TransactionFilter {
	f := services.TransactionFilter{
		Search: q.Search,
		Range:  services.Range(q.Range),
		Limit:  q.Limit,
	}
	if q.Type != "all" {
		f.Type = models.TransactionType(q.Type)
	}
	return f
}

// GetTransactions (GET /api/transactions)
func (ctrl *TransactionController) GetTransactions(c *gin.Context) {
	var q ledgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	txs, err := ctrl.TransactionSvc.List(c.Request.Context(), q.filter())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, txs)
}

// ExportTransactions (GET /api/transactions/export)
func (ctrl *TransactionController) ExportTransactions(c *gin.Context) {
	var q ledgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	var buf bytes.Buffer
	if _, err := ctrl.TransactionSvc.Export(c.Request.Context(), q.filter(), &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("ledger-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetTransaction (GET /api/transactions/:id)
func (ctrl *TransactionController) GetTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	tx, err := ctrl.TransactionSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tx)
}

// CreateTransaction (POST /api/transactions)
func (ctrl *TransactionController) CreateTransaction(c *gin.Context) {
	var in services.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	tx, err := ctrl.TransactionSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, tx)
}

// UpdateTransaction (PUT /api/transactions/:id)
func (ctrl *TransactionController) UpdateTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var ch services.TransactionChanges
	if err := c.ShouldBindJSON(&ch); err != nil {
		bindError(c, err)
		return
	}
	tx, err := ctrl.TransactionSvc.Update(c.Request.Context(), id, ch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tx)
}

// DeleteTransaction (DELETE /api/transactions/:id)
func (ctrl *TransactionController) DeleteTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ctrl.TransactionSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}
