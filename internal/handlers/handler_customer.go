package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/dto"
	"github.com/kudibook/kudibook_app/internal/middleware"
)

// customerHandler handles HTTP requests related to customers and their
// ledger views.
type customerHandler struct {
	customerService    portssvc.CustomerSvcFacade
	transactionService portssvc.TransactionSvcFacade
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(cs portssvc.CustomerSvcFacade, ts portssvc.TransactionSvcFacade) *customerHandler {
	return &customerHandler{
		customerService:    cs,
		transactionService: ts,
	}
}

// registerCustomerRoutes registers all customer-related routes.
func registerCustomerRoutes(rg *gin.RouterGroup, cs portssvc.CustomerSvcFacade, ts portssvc.TransactionSvcFacade) {
	h := newCustomerHandler(cs, ts)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.GET("/:customerID/transactions", h.listCustomerTransactions)
		customers.POST("/:customerID/payments", h.applyPayment)
		customers.GET("/:customerID/statement", h.getStatement)
	}
}

// createCustomer godoc
// @Summary Register a new customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		logger.Error("Device ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, deviceID)
	if err != nil {
		respondWithServiceError(c, logger, err, "create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.CustomerResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), limit, offset)
	if err != nil {
		respondWithServiceError(c, logger, err, "list customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": dto.ToCustomerResponses(customers)})
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		respondWithServiceError(c, logger, err, "retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// listCustomerTransactions godoc
// @Summary List a customer's transactions
// @Tags customers
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Param   limit query int false "Page size" default(25)
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID}/transactions [get]
func (h *customerHandler) listCustomerTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if err != nil || limit <= 0 {
		limit = 25
	}
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	txns, newNextToken, err := h.transactionService.ListTransactionsByCustomer(c.Request.Context(), customerID, limit, nextToken)
	if err != nil {
		respondWithServiceError(c, logger, err, "list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    newNextToken,
	})
}

// applyPayment godoc
// @Summary Apply a payment to a customer's debts
// @Description Records a payment and distributes it across outstanding debts, oldest first
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Param   payment body dto.ApplyPaymentRequest true "Payment details"
// @Success 200 {object} dto.ApplyPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID}/payments [post]
func (h *customerHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for apply payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		logger.Error("Device ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, outcome, err := h.transactionService.ApplyPaymentToDebt(c.Request.Context(), customerID, req, deviceID)
	if err != nil {
		respondWithServiceError(c, logger, err, "apply payment")
		return
	}

	allocations := make([]dto.AllocationDetail, len(outcome.Allocations))
	for i, alloc := range outcome.Allocations {
		allocations[i] = dto.AllocationDetail{
			TransactionID: alloc.TransactionID,
			Allocated:     alloc.Allocated,
			NewRemaining:  alloc.NewRemaining,
			NewStatus:     string(alloc.NewStatus),
		}
	}

	logger.Info("Payment applied",
		slog.String("payment_id", payment.TransactionID),
		slog.Int64("debt_cleared", outcome.TotalAllocated),
		slog.Int64("credit_created", outcome.CreditCreated))

	c.JSON(http.StatusOK, dto.ApplyPaymentResponse{
		Payment:       dto.ToTransactionResponse(payment),
		Allocations:   allocations,
		DebtCleared:   outcome.TotalAllocated,
		CreditCreated: outcome.CreditCreated,
		Fallback:      outcome.Fallback,
	})
}

// getStatement godoc
// @Summary Get a customer's statement
// @Description Retrieves the customer's transactions in a date range with opening and closing balances
// @Tags customers
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Param   from query string false "Range start (RFC3339)"
// @Param   to query string false "Range end (RFC3339)"
// @Success 200 {object} dto.CustomerStatementResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID}/statement [get]
func (h *customerHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date: must be RFC3339"})
			return
		}
		from = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date: must be RFC3339"})
			return
		}
		to = &t
	}

	data, err := h.transactionService.GetCustomerStatement(c.Request.Context(), customerID, from, to)
	if err != nil {
		respondWithServiceError(c, logger, err, "retrieve statement")
		return
	}

	c.JSON(http.StatusOK, dto.CustomerStatementResponse{
		CustomerID:     customerID,
		Transactions:   dto.ToTransactionResponses(data.Transactions),
		OpeningBalance: data.OpeningBalance,
		ClosingBalance: data.ClosingBalance,
	})
}
