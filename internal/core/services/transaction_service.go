package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/dto"
	"github.com/kudibook/kudibook_app/internal/middleware"
	"github.com/kudibook/kudibook_app/internal/utils/money"
)

const transactionsTable = "transactions"

// transactionService orchestrates the ledger: every mutation runs the
// calculator, writes the row and the customer balance delta in one atomic
// unit through the repository, and appends an audit entry afterwards.
type transactionService struct {
	txnRepo         portsrepo.TransactionRepositoryFacade
	customerRepo    portsrepo.CustomerRepositoryFacade
	auditSvc        portssvc.AuditSvcFacade
	validator       portssvc.TransactionValidator
	defaultCurrency string
}

// NewTransactionService creates the ledger service. All collaborators are
// injected; there are no package-level repository instances.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	validator portssvc.TransactionValidator,
	defaultCurrency string,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:         txnRepo,
		customerRepo:    customerRepo,
		auditSvc:        auditSvc,
		validator:       validator,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// balanceContribution is a transaction's current contribution to the
// customer's aggregates. Deleted and cancelled rows contribute nothing.
// Update applies only the difference between old and new contributions.
func balanceContribution(t domain.Transaction) money.BalanceImpact {
	if t.IsDeleted || t.Status == domain.StatusCancelled {
		return money.BalanceImpact{}
	}
	return money.CalculateCustomerBalanceImpact(t.Type, t.PaymentMethod, t.Amount, t.RemainingAmount, t.AppliedToDebt)
}

func totalSpentContribution(t domain.Transaction) int64 {
	if t.Type != domain.TypeSale || t.IsDeleted || t.Status == domain.StatusCancelled {
		return 0
	}
	return t.Amount
}

// CreateTransaction validates and records a new ledger entry.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, deviceID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		CustomerID:          req.CustomerID,
		ProductID:           req.ProductID,
		Amount:              req.Amount,
		Description:         req.Description,
		Date:                req.Date,
		Type:                domain.TransactionType(req.Type),
		PaymentMethod:       domain.PaymentMethod(req.PaymentMethod),
		LinkedTransactionID: req.LinkedTransactionID,
		AppliedToDebt:       req.AppliedToDebt,
		DueDate:             req.DueDate,
		Currency:            s.defaultCurrency,
		ExchangeRate:        decimal.NewFromInt(1),
		Metadata:            req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     deviceID,
			LastUpdatedAt: now,
			LastUpdatedBy: deviceID,
		},
	}

	// Credit issuance always defers the full amount.
	if txn.Type == domain.TypeCredit {
		txn.PaymentMethod = domain.MethodCredit
	}

	if txn.Type == domain.TypeRefund {
		if txn.Amount > customer.TotalSpent {
			return nil, fmt.Errorf("%w: refund of %d exceeds customer's total purchases of %d", apperrors.ErrBusinessRule, txn.Amount, customer.TotalSpent)
		}
	}

	init := money.CalculateInitialAmounts(txn.Type, txn.PaymentMethod, txn.Amount, req.PaidAmount)
	txn.PaymentMethod = init.PaymentMethod

	statusRes := money.CalculateStatus(txn.Type, txn.Amount, init.PaidAmount, init.RemainingAmount)
	txn.PaidAmount = statusRes.PaidAmount
	txn.RemainingAmount = statusRes.RemainingAmount
	txn.Status = statusRes.Status
	txn.PercentagePaid = statusRes.PercentagePaid

	// Payments applied to debt go through the allocator instead of a flat
	// balance subtraction.
	if txn.Type == domain.TypePayment && txn.AppliedToDebt {
		oldestFirst := true
		if req.ApplyOldestFirst != nil {
			oldestFirst = *req.ApplyOldestFirst
		}
		created, _, err := s.allocate(ctx, txn, oldestFirst, deviceID)
		return created, err
	}

	impact := money.CalculateCustomerBalanceImpact(txn.Type, txn.PaymentMethod, txn.Amount, txn.RemainingAmount, txn.AppliedToDebt)
	delta := domain.BalanceDelta{
		DebtChange:   impact.DebtChange,
		CreditChange: impact.CreditChange,
	}
	if txn.Type == domain.TypeSale {
		delta.TotalSpentChange = txn.Amount
		delta.PurchaseDate = &txn.Date
	}

	// Credit/mixed sales consume any prepaid credit before creating new debt.
	// The repository decides the amount under the customer row lock so a
	// concurrent sale cannot spend the same credit.
	applyCredit := txn.Type == domain.TypeSale &&
		(txn.PaymentMethod == domain.MethodCredit || txn.PaymentMethod == domain.MethodMixed)

	created, err := s.txnRepo.CreateTransaction(ctx, txn, delta, applyCredit)
	if err != nil {
		logger.Error("Failed to create transaction", slog.String("error", err.Error()), slog.String("customer_id", txn.CustomerID))
		return nil, err
	}

	s.auditSvc.RecordCreate(ctx, transactionsTable, created.TransactionID, transactionSnapshot(*created), deviceID)
	return created, nil
}

// ApplyPaymentToDebt records a payment and distributes it across the
// customer's outstanding debts, oldest first unless requested otherwise.
func (s *transactionService) ApplyPaymentToDebt(ctx context.Context, customerID string, req dto.ApplyPaymentRequest, deviceID string) (*domain.Transaction, *portsrepo.AllocationOutcome, error) {
	if req.Amount <= 0 {
		return nil, nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, nil, err
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = domain.MethodCash
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		CustomerID:      customerID,
		Amount:          req.Amount,
		Description:     req.Description,
		Date:            now,
		Type:            domain.TypePayment,
		PaymentMethod:   method,
		PaidAmount:      req.Amount,
		RemainingAmount: 0,
		Status:          domain.StatusCompleted,
		PercentagePaid:  100,
		AppliedToDebt:   true,
		Currency:        s.defaultCurrency,
		ExchangeRate:    decimal.NewFromInt(1),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     deviceID,
			LastUpdatedAt: now,
			LastUpdatedBy: deviceID,
		},
	}

	oldestFirst := true
	if req.ApplyOldestFirst != nil {
		oldestFirst = *req.ApplyOldestFirst
	}
	return s.allocate(ctx, txn, oldestFirst, deviceID)
}

func (s *transactionService) allocate(ctx context.Context, txn domain.Transaction, oldestFirst bool, deviceID string) (*domain.Transaction, *portsrepo.AllocationOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	outcome, err := s.txnRepo.AllocatePayment(ctx, txn, oldestFirst)
	if err != nil {
		logger.Error("Failed to allocate payment", slog.String("error", err.Error()), slog.String("customer_id", txn.CustomerID))
		return nil, nil, err
	}
	if outcome.Fallback {
		logger.Warn("Payment allocation fell back to flat balance reduction",
			slog.String("payment_id", txn.TransactionID),
			slog.Int64("amount", txn.Amount))
	}

	s.auditSvc.RecordCreate(ctx, transactionsTable, txn.TransactionID, transactionSnapshot(txn), deviceID)
	s.auditSvc.RecordAllocations(ctx, txn.TransactionID, outcome.Allocations, deviceID)
	return &txn, outcome, nil
}

// UpdateTransaction patches a transaction and applies only the difference
// between its old and new balance contributions to the customer aggregate.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, deviceID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdate(*existing, req); err != nil {
		return nil, err
	}

	updated := *existing
	amountsChanged := false

	if req.Amount != nil && *req.Amount != updated.Amount {
		updated.Amount = *req.Amount
		amountsChanged = true
	}
	if req.PaymentMethod != nil && domain.PaymentMethod(*req.PaymentMethod) != updated.PaymentMethod {
		updated.PaymentMethod = domain.PaymentMethod(*req.PaymentMethod)
		amountsChanged = true
	}
	if req.PaidAmount != nil {
		updated.PaidAmount = *req.PaidAmount
		amountsChanged = true
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.DueDate != nil {
		updated.DueDate = req.DueDate
	}
	if req.Metadata != nil {
		updated.Metadata = req.Metadata
	}
	if req.IsDeleted != nil {
		updated.IsDeleted = *req.IsDeleted
	}

	if amountsChanged {
		// Same split formula as create, applied to the new field values.
		if updated.Type == domain.TypeRefund || updated.Type == domain.TypePayment {
			updated.PaidAmount = updated.Amount
			updated.RemainingAmount = 0
		} else {
			switch updated.PaymentMethod {
			case domain.MethodCredit:
				if req.PaidAmount == nil {
					updated.PaidAmount = existing.PaidAmount
				}
			case domain.MethodMixed:
			default:
				if req.PaidAmount == nil {
					updated.PaidAmount = updated.Amount
				}
			}
			updated.RemainingAmount = updated.Amount - updated.PaidAmount
		}
	}

	if req.Status != nil && domain.TransactionStatus(*req.Status) == domain.StatusCancelled {
		updated.Status = domain.StatusCancelled
	} else {
		statusRes := money.CalculateStatus(updated.Type, updated.Amount, updated.PaidAmount, updated.RemainingAmount)
		updated.Status = statusRes.Status
		updated.PercentagePaid = statusRes.PercentagePaid
	}

	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = deviceID

	oldImpact := balanceContribution(*existing)
	newImpact := balanceContribution(updated)
	delta := domain.BalanceDelta{
		DebtChange:       newImpact.DebtChange - oldImpact.DebtChange,
		CreditChange:     newImpact.CreditChange - oldImpact.CreditChange,
		TotalSpentChange: totalSpentContribution(updated) - totalSpentContribution(*existing),
	}

	if err := s.txnRepo.UpdateTransaction(ctx, updated, delta); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.auditSvc.RecordUpdate(ctx, transactionsTable, transactionID, transactionSnapshot(*existing), transactionSnapshot(updated), deviceID)
	return &updated, nil
}

// DeleteTransaction removes the row and recomputes the customer's aggregates
// from the remaining history, so deltas cannot compound errors.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, deviceID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, *existing); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	s.auditSvc.RecordDelete(ctx, transactionsTable, transactionID, transactionSnapshot(*existing), deviceID)
	return nil
}

// GetTransactionByID retrieves a single transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactionsByCustomer retrieves a page of a customer's transactions.
func (s *transactionService) ListTransactionsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, nil, err
	}
	return s.txnRepo.ListTransactionsByCustomer(ctx, customerID, limit, nextToken)
}

// GetCustomerStatement returns the customer's history over the range with
// opening/closing balances derived from the full transaction history. The
// derived closing balance doubles as an integrity check on the cached
// aggregate.
func (s *transactionService) GetCustomerStatement(ctx context.Context, customerID string, from, to *time.Time) (*portsrepo.StatementData, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	data, err := s.txnRepo.GetStatement(ctx, customerID, from, to)
	if err != nil {
		return nil, err
	}

	if to == nil && data.ClosingBalance != customer.OutstandingBalance {
		logger.Warn("Cached outstanding balance drifted from transaction history",
			slog.String("customer_id", customerID),
			slog.Int64("cached", customer.OutstandingBalance),
			slog.Int64("derived", data.ClosingBalance))
	}

	return data, nil
}

// transactionSnapshot flattens a transaction into the audit value map. The
// audit service redacts it before persisting.
func transactionSnapshot(t domain.Transaction) map[string]any {
	snap := map[string]any{
		"transactionID":   t.TransactionID,
		"customerID":      t.CustomerID,
		"type":            string(t.Type),
		"paymentMethod":   string(t.PaymentMethod),
		"amount":          t.Amount,
		"paidAmount":      t.PaidAmount,
		"remainingAmount": t.RemainingAmount,
		"status":          string(t.Status),
		"percentagePaid":  t.PercentagePaid,
		"appliedToDebt":   t.AppliedToDebt,
		"date":            t.Date,
		"description":     t.Description,
		"isDeleted":       t.IsDeleted,
	}
	if t.LinkedTransactionID != nil {
		snap["linkedTransactionID"] = *t.LinkedTransactionID
	}
	if t.DueDate != nil {
		snap["dueDate"] = *t.DueDate
	}
	if t.Metadata != nil {
		snap["metadata"] = t.Metadata
	}
	return snap
}
