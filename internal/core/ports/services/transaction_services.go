package services

import (
	"context"
	"time"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	"github.com/kudibook/kudibook_app/internal/dto"
)

// TransactionReaderSvc defines read operations over the ledger.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByCustomer retrieves a cursor-paginated list of a
	// customer's transactions.
	ListTransactionsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// GetCustomerStatement returns the transactions in the range plus the
	// opening/closing outstanding balance, derived from history.
	GetCustomerStatement(ctx context.Context, customerID string, from, to *time.Time) (*portsrepo.StatementData, error)
}

// TransactionWriterSvc defines the mutating ledger operations. Every call
// either returns the fully-formed entity or a typed error; there is no
// partial-success shape.
type TransactionWriterSvc interface {
	// CreateTransaction validates and records a new ledger entry, applying
	// its balance impact atomically.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, deviceID string) (*domain.Transaction, error)

	// UpdateTransaction patches a transaction, applying only the difference
	// between the old and new balance contribution.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, deviceID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and recomputes the customer's
	// aggregates from the remaining history.
	DeleteTransaction(ctx context.Context, transactionID string, deviceID string) error

	// ApplyPaymentToDebt records a payment and distributes it across the
	// customer's outstanding debts.
	ApplyPaymentToDebt(ctx context.Context, customerID string, req dto.ApplyPaymentRequest, deviceID string) (*domain.Transaction, *portsrepo.AllocationOutcome, error)
}

// TransactionSvcFacade combines all ledger service operations.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// TransactionValidator checks requests before any write happens. It is
// injected into the ledger service so validation rules are explicit
// dependencies rather than module-level free functions.
type TransactionValidator interface {
	// ValidateCreate checks a creation request. Returns an error wrapping
	// apperrors.ErrValidation on violation.
	ValidateCreate(req dto.CreateTransactionRequest) error

	// ValidateUpdate checks a patch against the current row.
	ValidateUpdate(existing domain.Transaction, req dto.UpdateTransactionRequest) error
}
