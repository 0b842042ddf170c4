package repositories

import (
	"context"
	"time"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/utils/money"
)

// AllocationOutcome is the committed result of applying a payment against a
// customer's debts. Fallback is set when the repository had to take the flat
// balance-reduction path instead of per-debt allocation.
type AllocationOutcome struct {
	Allocations    []money.DebtAllocation
	TotalAllocated int64
	CreditCreated  int64
	Fallback       bool
}

// StatementData is a customer's transaction history over a range, with the
// outstanding balance on each edge of the range, both derived from the full
// history by aggregate queries.
type StatementData struct {
	Transactions   []domain.Transaction
	OpeningBalance int64
	ClosingBalance int64
}

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByCustomer retrieves a cursor-paginated list of a
	// customer's non-deleted transactions, newest first.
	ListTransactionsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// GetStatement retrieves the transactions in [from, to] plus the
	// outstanding balance before and at the end of the range.
	GetStatement(ctx context.Context, customerID string, from, to *time.Time) (*StatementData, error)
}

// TransactionWriter defines the mutating operations. Each call executes the
// row write and the customer balance delta in one atomic unit of work.
type TransactionWriter interface {
	// CreateTransaction inserts the row and applies the balance delta
	// atomically. When applyCredit is set, the customer's available credit
	// balance is consumed against the row's remaining amount under the
	// customer row lock, and the returned transaction reflects the applied
	// credit. Deciding inside the lock keeps two concurrent sales from
	// spending the same credit.
	CreateTransaction(ctx context.Context, txn domain.Transaction, delta domain.BalanceDelta, applyCredit bool) (*domain.Transaction, error)

	// UpdateTransaction rewrites the row and applies the (difference) delta
	// atomically.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, delta domain.BalanceDelta) error

	// DeleteTransaction removes the row and recomputes the customer's
	// aggregate totals from the remaining history, atomically.
	DeleteTransaction(ctx context.Context, txn domain.Transaction) error

	// AllocatePayment inserts the payment row, locks the customer's open
	// debts, distributes the payment across them, and updates the customer
	// balances, all in one atomic unit. When invoked while a unit of work is
	// already open it falls back to a single flat balance reduction.
	AllocatePayment(ctx context.Context, payment domain.Transaction, oldestFirst bool) (*AllocationOutcome, error)
}

// TransactionRepositoryFacade combines all transaction persistence
// operations.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
