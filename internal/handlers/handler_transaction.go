package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// TransactionHandler serves the transaction list screen and its mutations.
type TransactionHandler struct {
	cache     portssvc.TransactionCacheSvcFacade
	reporting portssvc.ReportingSvcFacade
	importer  portssvc.ImportSvcFacade
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(services *portssvc.ServiceContainer) *TransactionHandler {
	return &TransactionHandler{
		cache:     services.TransactionCache,
		reporting: services.Reporting,
		importer:  services.Importer,
	}
}

// ListTransactions godoc
// @Summary List transactions
// @Description Returns the authenticated user's transactions filtered and sorted for display.
// @Tags transactions
// @Produce json
// @Param search query string false "Case-insensitive match on description or category"
// @Param type query string false "all | expense | income" default(all)
// @Param sortField query string false "date | description | category | amount" default(date)
// @Param sortOrder query string false "asc | desc" default(desc)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txns, snap, err := h.reporting.ListView(c.Request.Context(), userID, params.ViewOptions())
	if err != nil && !snap.Initializing {
		handleServiceError(c, err)
		return
	}

	resp := dto.ToListTransactionsResponse(txns)
	resp.Initializing = snap.Initializing
	if snap.Err != nil && snap.Initializing {
		resp.Error = "transaction store is still initializing"
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Persists a draft transaction for the authenticated user. The amount sign is normalized from the kind.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction draft"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.cache.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Replaces the full record identified by ID. No partial patches.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Replacement record"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.cache.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.cache.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportTransactions godoc
// @Summary Import transactions from CSV
// @Description Accepts a multipart CSV upload with columns Date,Payee,Notes,Amount,Category. Row failures are collected, not fatal.
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportSummary
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/import [post]
func (h *TransactionHandler) ImportTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	summary, err := h.importer.ImportCSV(c.Request.Context(), userID, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
