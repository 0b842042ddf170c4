package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	"github.com/kudibook/kudibook_app/internal/models"
	"github.com/kudibook/kudibook_app/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `
	customer_id, name, phone, total_spent, outstanding_balance, credit_balance, last_purchase,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Phone,
		&m.TotalSpent,
		&m.OutstandingBalance,
		&m.CreditBalance,
		&m.LastPurchase,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCustomer inserts a customer, or updates the mutable fields on conflict.
// Balance columns are never written through this path.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, name, phone, total_spent, outstanding_balance, credit_balance, last_purchase, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (customer_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Phone,
		m.TotalSpent,
		m.OutstandingBalance,
		m.CreditBalance,
		m.LastPurchase,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save customer "+m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}
	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// ListCustomers retrieves a page of customers ordered by name.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name ASC, customer_id ASC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list customers", err)
	}
	defer rows.Close()

	var ms []models.Customer
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating customer rows", err)
	}
	return mapping.ToDomainCustomerSlice(ms), nil
}

// IncreaseOutstandingBalance adds amount (kobo) to the customer's debt.
func (r *PgxCustomerRepository) IncreaseOutstandingBalance(ctx context.Context, customerID string, amount int64) error {
	query := `UPDATE customers SET outstanding_balance = outstanding_balance + $2, last_updated_at = NOW() WHERE customer_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, customerID, amount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to increase outstanding balance for customer "+customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DecreaseOutstandingBalance subtracts amount from the customer's debt,
// flooring at zero.
func (r *PgxCustomerRepository) DecreaseOutstandingBalance(ctx context.Context, customerID string, amount int64) error {
	query := `UPDATE customers SET outstanding_balance = GREATEST(outstanding_balance - $2, 0), last_updated_at = NOW() WHERE customer_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, customerID, amount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to decrease outstanding balance for customer "+customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateTotals recomputes the cached aggregates from transaction history for
// each customer.
func (r *PgxCustomerRepository) UpdateTotals(ctx context.Context, customerIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, id := range customerIDs {
		if err := r.RecomputeTotalsInTx(ctx, tx, id); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindCustomerByIDForUpdate locks the customer row inside the given
// transaction and returns its current state.
func (r *PgxCustomerRepository) FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 FOR UPDATE;`
	m, err := scanCustomer(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock customer "+customerID, err)
	}
	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// ApplyBalanceDeltaInTx applies a signed balance delta inside the given
// transaction. The outstanding balance floors at zero; the caller surfaces
// any excess as credit.
func (r *PgxCustomerRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, customerID string, delta domain.BalanceDelta) error {
	if delta.IsZero() {
		return nil
	}
	query := `
		UPDATE customers SET
			outstanding_balance = GREATEST(outstanding_balance + $2, 0),
			credit_balance = credit_balance + $3,
			total_spent = total_spent + $4,
			last_purchase = GREATEST(COALESCE(last_purchase, 'epoch'::timestamptz), COALESCE($5, 'epoch'::timestamptz)),
			last_updated_at = NOW()
		WHERE customer_id = $1;
	`
	tag, err := tx.Exec(ctx, query, customerID, delta.DebtChange, delta.CreditChange, delta.TotalSpentChange, delta.PurchaseDate)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply balance delta for customer "+customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecomputeTotalsInTx rebuilds the aggregate columns from the transaction
// history inside the given transaction. Deleted and cancelled rows are
// excluded; credit balance is untouched because overpayments are not
// re-derivable from sale/credit remainders alone.
func (r *PgxCustomerRepository) RecomputeTotalsInTx(ctx context.Context, tx pgx.Tx, customerID string) error {
	query := `
		UPDATE customers c SET
			total_spent = agg.total_spent,
			outstanding_balance = agg.outstanding_balance,
			last_purchase = agg.last_purchase,
			last_updated_at = NOW()
		FROM (
			SELECT
				COALESCE(SUM(amount) FILTER (WHERE type = 'sale'), 0) AS total_spent,
				COALESCE(SUM(remaining_amount) FILTER (WHERE type IN ('sale', 'credit')), 0) AS outstanding_balance,
				MAX(date) FILTER (WHERE type = 'sale') AS last_purchase
			FROM transactions
			WHERE customer_id = $1 AND NOT is_deleted AND status != 'cancelled'
		) agg
		WHERE c.customer_id = $1;
	`
	if _, err := tx.Exec(ctx, query, customerID); err != nil {
		return apperrors.NewAppError(500, "failed to recompute totals for customer "+customerID, err)
	}
	return nil
}
