package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	"github.com/kudibook/kudibook_app/internal/models"
	"github.com/kudibook/kudibook_app/internal/utils/mapping"
	"github.com/kudibook/kudibook_app/internal/utils/money"
	"github.com/kudibook/kudibook_app/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
	customerRepo portsrepo.CustomerRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool, customerRepo portsrepo.CustomerRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		customerRepo:   customerRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, customer_id, product_id, amount, description, date, type, payment_method,
	paid_amount, remaining_amount, status, percentage_paid, linked_transaction_id, applied_to_debt,
	due_date, currency, exchange_rate, metadata, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by
`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.CustomerID,
		&m.ProductID,
		&m.Amount,
		&m.Description,
		&m.Date,
		&m.Type,
		&m.PaymentMethod,
		&m.PaidAmount,
		&m.RemainingAmount,
		&m.Status,
		&m.PercentagePaid,
		&m.LinkedTransactionID,
		&m.AppliedToDebt,
		&m.DueDate,
		&m.Currency,
		&m.ExchangeRate,
		&m.Metadata,
		&m.IsDeleted,
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

func insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.CustomerID,
		m.ProductID,
		m.Amount,
		m.Description,
		m.Date,
		m.Type,
		m.PaymentMethod,
		m.PaidAmount,
		m.RemainingAmount,
		m.Status,
		m.PercentagePaid,
		m.LinkedTransactionID,
		m.AppliedToDebt,
		m.DueDate,
		m.Currency,
		m.ExchangeRate,
		m.Metadata,
		m.IsDeleted,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// applyDeltaWithOverflow locks the customer row and applies the delta. A debt
// reduction larger than the current outstanding balance is clamped at zero and
// the excess is added to the credit balance instead of being dropped.
func (r *PgxTransactionRepository) applyDeltaWithOverflow(ctx context.Context, tx pgx.Tx, customerID string, delta domain.BalanceDelta) error {
	if delta.IsZero() {
		return nil
	}
	customer, err := r.customerRepo.FindCustomerByIDForUpdate(ctx, tx, customerID)
	if err != nil {
		return err
	}
	if delta.DebtChange < 0 {
		if excess := -delta.DebtChange - customer.OutstandingBalance; excess > 0 {
			delta.DebtChange = -customer.OutstandingBalance
			delta.CreditChange += excess
		}
	}
	return r.customerRepo.ApplyBalanceDeltaInTx(ctx, tx, customerID, delta)
}

// consumeCreditBalance locks the customer row and applies its available
// credit to the transaction's remaining amount, adjusting the delta to
// release the consumed credit. Reading the balance under the lock keeps two
// concurrent sales from spending the same credit.
func (r *PgxTransactionRepository) consumeCreditBalance(ctx context.Context, tx pgx.Tx, txn *domain.Transaction, delta *domain.BalanceDelta) error {
	if txn.RemainingAmount <= 0 {
		return nil
	}
	customer, err := r.customerRepo.FindCustomerByIDForUpdate(ctx, tx, txn.CustomerID)
	if err != nil {
		return err
	}
	if customer.CreditBalance <= 0 {
		return nil
	}

	applied := customer.CreditBalance
	if txn.RemainingAmount < applied {
		applied = txn.RemainingAmount
	}
	txn.PaidAmount += applied
	txn.RemainingAmount -= applied
	statusRes := money.CalculateStatus(txn.Type, txn.Amount, txn.PaidAmount, txn.RemainingAmount)
	txn.Status = statusRes.Status
	txn.PercentagePaid = statusRes.PercentagePaid

	delta.DebtChange -= applied
	delta.CreditChange -= applied
	return nil
}

// CreateTransaction inserts the row and applies the balance delta in one
// database transaction, consuming available customer credit first when asked.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction, delta domain.BalanceDelta, applyCredit bool) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)
	ctx = contextWithTx(ctx, tx)

	if applyCredit {
		if err := r.consumeCreditBalance(ctx, tx, &txn, &delta); err != nil {
			return nil, err
		}
	}

	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return nil, err
	}
	if err := r.applyDeltaWithOverflow(ctx, tx, txn.CustomerID, delta); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateTransaction rewrites the row and applies the difference delta in one
// database transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, delta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)
	ctx = contextWithTx(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions SET
			amount = $2, description = $3, date = $4, payment_method = $5,
			paid_amount = $6, remaining_amount = $7, status = $8, percentage_paid = $9,
			due_date = $10, metadata = $11, is_deleted = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.Description,
		m.Date,
		m.PaymentMethod,
		m.PaidAmount,
		m.RemainingAmount,
		m.Status,
		m.PercentagePaid,
		m.DueDate,
		m.Metadata,
		m.IsDeleted,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyDeltaWithOverflow(ctx, tx, txn.CustomerID, delta); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the row and recomputes the customer's aggregates
// from the remaining history, so accumulated deltas cannot drift.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)
	ctx = contextWithTx(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.customerRepo.RecomputeTotalsInTx(ctx, tx, txn.CustomerID); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// AllocatePayment inserts the payment row, locks the customer's open debts,
// distributes the payment across them and updates the customer balances, all
// in one database transaction. When an ambient unit of work is already open on
// the context it cannot nest another Begin; it falls back to a flat balance
// reduction inside the ambient transaction instead.
func (r *PgxTransactionRepository) AllocatePayment(ctx context.Context, payment domain.Transaction, oldestFirst bool) (*portsrepo.AllocationOutcome, error) {
	if ambient, ok := txFromContext(ctx); ok {
		return r.allocateFlat(ctx, ambient, payment)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)
	ctx = contextWithTx(ctx, tx)

	if err := insertTransactionTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	order := "ASC"
	if !oldestFirst {
		order = "DESC"
	}
	debtQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE customer_id = $1
		  AND type IN ('sale', 'credit')
		  AND remaining_amount > 0
		  AND NOT is_deleted
		  AND status != 'cancelled'
		ORDER BY date ` + order + `, transaction_id ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, debtQuery, payment.CustomerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock open debts for customer "+payment.CustomerID, err)
	}

	var debtModels []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan debt row", err)
		}
		debtModels = append(debtModels, *m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating debt rows", err)
	}

	result := money.AllocatePayment(payment.Amount, mapping.ToDomainTransactionSlice(debtModels))

	batch := &pgx.Batch{}
	updateQuery := `
		UPDATE transactions SET
			paid_amount = $2, remaining_amount = $3, status = $4, percentage_paid = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1;
	`
	now := payment.LastUpdatedAt
	for _, alloc := range result.Allocations {
		pct := float64(100)
		if alloc.NewRemaining > 0 {
			statusRes := money.CalculateStatus(domain.TypeSale, alloc.NewPaid+alloc.NewRemaining, alloc.NewPaid, alloc.NewRemaining)
			pct = statusRes.PercentagePaid
		}
		batch.Queue(updateQuery,
			alloc.TransactionID,
			alloc.NewPaid,
			alloc.NewRemaining,
			string(alloc.NewStatus),
			pct,
			now,
			payment.LastUpdatedBy,
		)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to apply allocations for payment "+payment.TransactionID, err)
		}
	}

	delta := domain.BalanceDelta{
		DebtChange:   -result.TotalAllocated,
		CreditChange: result.CreditCreated,
	}
	if err := r.applyDeltaWithOverflow(ctx, tx, payment.CustomerID, delta); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &portsrepo.AllocationOutcome{
		Allocations:    result.Allocations,
		TotalAllocated: result.TotalAllocated,
		CreditCreated:  result.CreditCreated,
	}, nil
}

// allocateFlat is the degraded path taken inside an ambient transaction: the
// payment row is inserted and the outstanding balance reduced in one step,
// without touching individual debt rows.
func (r *PgxTransactionRepository) allocateFlat(ctx context.Context, tx pgx.Tx, payment domain.Transaction) (*portsrepo.AllocationOutcome, error) {
	if err := insertTransactionTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	customer, err := r.customerRepo.FindCustomerByIDForUpdate(ctx, tx, payment.CustomerID)
	if err != nil {
		return nil, err
	}

	over := money.HandleOverpayment(payment.Amount, customer.OutstandingBalance)
	delta := domain.BalanceDelta{
		DebtChange:   -over.DebtCleared,
		CreditChange: over.CreditCreated,
	}
	if err := r.customerRepo.ApplyBalanceDeltaInTx(ctx, tx, payment.CustomerID, delta); err != nil {
		return nil, err
	}

	return &portsrepo.AllocationOutcome{
		TotalAllocated: over.DebtCleared,
		CreditCreated:  over.CreditCreated,
		Fallback:       true,
	}, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// ListTransactionsByCustomer retrieves a cursor-paginated page of a customer's
// non-deleted transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE customer_id = $1 AND NOT is_deleted
		ORDER BY date DESC, created_at DESC
		LIMIT $2;
	`
	args := []any{customerID, limit + 1}

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		query = `
			SELECT ` + transactionColumns + `
			FROM transactions
			WHERE customer_id = $1 AND NOT is_deleted
			  AND (date, created_at) < ($3, $4)
			ORDER BY date DESC, created_at DESC
			LIMIT $2;
		`
		args = append(args, txnDate, createdAt)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions for customer "+customerID, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed iterating transaction rows", err)
	}

	var newNextToken *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainTransactionSlice(ms), newNextToken, nil
}

// GetStatement retrieves the customer's transactions in [from, to] plus the
// outstanding balance on each edge of the range. Balances are derived from
// remaining amounts, so an allocation is reflected at the debt's date rather
// than the payment's.
func (r *PgxTransactionRepository) GetStatement(ctx context.Context, customerID string, from, to *time.Time) (*portsrepo.StatementData, error) {
	listQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE customer_id = $1 AND NOT is_deleted
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, listQuery, customerID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load statement for customer "+customerID, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating statement rows", err)
	}

	balanceQuery := `
		SELECT
			COALESCE(SUM(remaining_amount) FILTER (WHERE $2::timestamptz IS NOT NULL AND date < $2), 0),
			COALESCE(SUM(remaining_amount) FILTER (WHERE $3::timestamptz IS NULL OR date <= $3), 0)
		FROM transactions
		WHERE customer_id = $1
		  AND type IN ('sale', 'credit')
		  AND NOT is_deleted
		  AND status != 'cancelled';
	`
	var opening, closing int64
	if err := r.Pool.QueryRow(ctx, balanceQuery, customerID, from, to).Scan(&opening, &closing); err != nil {
		return nil, apperrors.NewAppError(500, "failed to derive statement balances for customer "+customerID, err)
	}

	return &portsrepo.StatementData{
		Transactions:   mapping.ToDomainTransactionSlice(ms),
		OpeningBalance: opening,
		ClosingBalance: closing,
	}, nil
}
