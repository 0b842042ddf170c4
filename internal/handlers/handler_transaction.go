package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/dto"
	"github.com/kudibook/kudibook_app/internal/middleware"
)

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	auditService       portssvc.AuditSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, as portssvc.AuditSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		auditService:       as,
	}
}

// registerTransactionRoutes registers all transaction-related routes.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, as portssvc.AuditSvcFacade) {
	h := newTransactionHandler(ts, as)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
		transactions.GET("/:id/audit", h.getTransactionAudit)
	}
}

// respondWithServiceError translates the service error taxonomy into HTTP
// status codes. Unknown errors are never echoed to the client.
func respondWithServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrBusinessRule):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createTransaction godoc
// @Summary Record a new transaction
// @Description Records a sale, payment, credit or refund and applies its balance impact atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		logger.Error("Device ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, deviceID)
	if err != nil {
		respondWithServiceError(c, logger, err, "create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.Type)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondWithServiceError(c, logger, err, "retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Patches a transaction; the customer balance absorbs only the difference
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for update transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		logger.Error("Device ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, deviceID)
	if err != nil {
		respondWithServiceError(c, logger, err, "update transaction")
		return
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction and recomputes the customer's balance aggregates
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		logger.Error("Device ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID, deviceID); err != nil {
		respondWithServiceError(c, logger, err, "delete transaction")
		return
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// getTransactionAudit godoc
// @Summary Get the audit trail for a transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   limit query int false "Max entries" default(50)
// @Success 200 {array} domain.AuditEntry
// @Security BearerAuth
// @Router /transactions/{id}/audit [get]
func (h *transactionHandler) getTransactionAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	entries, err := h.auditService.ListByRecord(c.Request.Context(), transactionID, limit)
	if err != nil {
		respondWithServiceError(c, logger, err, "retrieve audit trail")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
