package repositories

import (
	"context"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CustomerRepositoryFacade is the customer collaborator of the ledger. The
// balance aggregate fields are mutated only through these methods, never
// computed ad hoc elsewhere.
type CustomerRepositoryFacade interface {
	// SaveCustomer inserts or updates a customer record.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// FindCustomerByID retrieves a customer.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error)

	// IncreaseOutstandingBalance adds amount (kobo) to the customer's debt.
	IncreaseOutstandingBalance(ctx context.Context, customerID string, amount int64) error

	// DecreaseOutstandingBalance subtracts amount from the customer's debt,
	// flooring at zero.
	DecreaseOutstandingBalance(ctx context.Context, customerID string, amount int64) error

	// UpdateTotals recomputes totalSpent, outstandingBalance and lastPurchase
	// from the customers' transaction history. Used after deletes so rounding
	// and ordering errors cannot compound.
	UpdateTotals(ctx context.Context, customerIDs []string) error

	// FindCustomerByIDForUpdate locks the customer row inside the given
	// transaction and returns its current state.
	FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error)

	// ApplyBalanceDeltaInTx applies a signed balance delta inside the given
	// transaction. Outstanding balance is floored at zero by the store.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, customerID string, delta domain.BalanceDelta) error

	// RecomputeTotalsInTx recomputes the aggregate fields from history inside
	// the given transaction.
	RecomputeTotalsInTx(ctx context.Context, tx pgx.Tx, customerID string) error
}
