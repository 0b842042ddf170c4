package pgsql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudibook/kudibook_app/internal/core/domain"
)

// stubTx satisfies pgx.Tx so paths that run inside an already-open
// transaction can be exercised without a database. It records the statements
// it is handed.
type stubTx struct {
	execSQL     []string
	execErr     error
	commitErr   error
	rollbackErr error
}

func (t *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *stubTx) Commit(ctx context.Context) error { return t.commitErr }

func (t *stubTx) Rollback(ctx context.Context) error { return t.rollbackErr }

func (t *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *stubTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	t.execSQL = append(t.execSQL, sql)
	return pgconn.CommandTag{}, t.execErr
}

func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *stubTx) Conn() *pgx.Conn { return nil }

// stubCustomerRepo is an in-memory customer collaborator recording the lock
// reads and balance deltas the transaction repository issues.
type stubCustomerRepo struct {
	customer  *domain.Customer
	lockReads int
	deltas    []domain.BalanceDelta
}

func (r *stubCustomerRepo) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	return nil
}

func (r *stubCustomerRepo) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	cp := *r.customer
	return &cp, nil
}

func (r *stubCustomerRepo) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	return nil, nil
}

func (r *stubCustomerRepo) IncreaseOutstandingBalance(ctx context.Context, customerID string, amount int64) error {
	return nil
}

func (r *stubCustomerRepo) DecreaseOutstandingBalance(ctx context.Context, customerID string, amount int64) error {
	return nil
}

func (r *stubCustomerRepo) UpdateTotals(ctx context.Context, customerIDs []string) error {
	return nil
}

func (r *stubCustomerRepo) FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	r.lockReads++
	cp := *r.customer
	return &cp, nil
}

func (r *stubCustomerRepo) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, customerID string, delta domain.BalanceDelta) error {
	r.deltas = append(r.deltas, delta)
	return nil
}

func (r *stubCustomerRepo) RecomputeTotalsInTx(ctx context.Context, tx pgx.Tx, customerID string) error {
	return nil
}

func paymentRow(amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID:  "pay-1",
		CustomerID:     "cust-1",
		Type:           domain.TypePayment,
		PaymentMethod:  domain.MethodCash,
		Amount:         amount,
		PaidAmount:     amount,
		Status:         domain.StatusCompleted,
		PercentagePaid: 100,
		AppliedToDebt:  true,
	}
}

// A payment arriving while a unit of work is already open on the context must
// not nest a second Begin: it inserts the row and reduces the outstanding
// balance flat, surfacing the excess as credit.
func TestAllocatePaymentWithAmbientTxFallsBackToFlatReduction(t *testing.T) {
	cust := &stubCustomerRepo{customer: &domain.Customer{CustomerID: "cust-1", OutstandingBalance: 2000}}
	repo := &PgxTransactionRepository{customerRepo: cust}
	tx := &stubTx{}
	ctx := contextWithTx(context.Background(), tx)

	outcome, err := repo.AllocatePayment(ctx, paymentRow(2500), true)

	require.NoError(t, err)
	assert.True(t, outcome.Fallback)
	assert.Equal(t, int64(2000), outcome.TotalAllocated)
	assert.Equal(t, int64(500), outcome.CreditCreated)
	assert.Empty(t, outcome.Allocations)

	// Only the payment insert runs against the ambient transaction; no debt
	// rows are touched.
	require.Len(t, tx.execSQL, 1)
	assert.Contains(t, tx.execSQL[0], "INSERT INTO transactions")
	assert.Equal(t, 1, cust.lockReads)
	require.Len(t, cust.deltas, 1)
	assert.Equal(t, domain.BalanceDelta{DebtChange: -2000, CreditChange: 500}, cust.deltas[0])
}

func TestAllocatePaymentWithAmbientTxCoveredByOutstanding(t *testing.T) {
	cust := &stubCustomerRepo{customer: &domain.Customer{CustomerID: "cust-1", OutstandingBalance: 2000}}
	repo := &PgxTransactionRepository{customerRepo: cust}
	ctx := contextWithTx(context.Background(), &stubTx{})

	outcome, err := repo.AllocatePayment(ctx, paymentRow(1500), true)

	require.NoError(t, err)
	assert.True(t, outcome.Fallback)
	assert.Equal(t, int64(1500), outcome.TotalAllocated)
	assert.Equal(t, int64(0), outcome.CreditCreated)
	require.Len(t, cust.deltas, 1)
	assert.Equal(t, domain.BalanceDelta{DebtChange: -1500}, cust.deltas[0])
}

func TestConsumeCreditBalance(t *testing.T) {
	saleRow := func() domain.Transaction {
		return domain.Transaction{
			TransactionID:   "txn-1",
			CustomerID:      "cust-1",
			Type:            domain.TypeSale,
			PaymentMethod:   domain.MethodCredit,
			Amount:          5000,
			RemainingAmount: 5000,
			Status:          domain.StatusPending,
		}
	}

	t.Run("partial credit reduces the new debt", func(t *testing.T) {
		cust := &stubCustomerRepo{customer: &domain.Customer{CustomerID: "cust-1", CreditBalance: 2000}}
		repo := &PgxTransactionRepository{customerRepo: cust}
		txn := saleRow()
		delta := domain.BalanceDelta{DebtChange: 5000, TotalSpentChange: 5000}

		err := repo.consumeCreditBalance(context.Background(), &stubTx{}, &txn, &delta)

		require.NoError(t, err)
		assert.Equal(t, int64(2000), txn.PaidAmount)
		assert.Equal(t, int64(3000), txn.RemainingAmount)
		assert.Equal(t, domain.StatusPartial, txn.Status)
		assert.Equal(t, int64(3000), delta.DebtChange)
		assert.Equal(t, int64(-2000), delta.CreditChange)
		assert.Equal(t, int64(5000), delta.TotalSpentChange)
		assert.Equal(t, 1, cust.lockReads)
	})

	t.Run("credit covering the sale completes it", func(t *testing.T) {
		cust := &stubCustomerRepo{customer: &domain.Customer{CustomerID: "cust-1", CreditBalance: 6000}}
		repo := &PgxTransactionRepository{customerRepo: cust}
		txn := saleRow()
		delta := domain.BalanceDelta{DebtChange: 5000, TotalSpentChange: 5000}

		err := repo.consumeCreditBalance(context.Background(), &stubTx{}, &txn, &delta)

		require.NoError(t, err)
		assert.Equal(t, int64(5000), txn.PaidAmount)
		assert.Equal(t, int64(0), txn.RemainingAmount)
		assert.Equal(t, domain.StatusCompleted, txn.Status)
		assert.Equal(t, float64(100), txn.PercentagePaid)
		assert.Equal(t, int64(0), delta.DebtChange)
		assert.Equal(t, int64(-5000), delta.CreditChange)
	})

	t.Run("no credit leaves the row untouched", func(t *testing.T) {
		cust := &stubCustomerRepo{customer: &domain.Customer{CustomerID: "cust-1"}}
		repo := &PgxTransactionRepository{customerRepo: cust}
		txn := saleRow()
		delta := domain.BalanceDelta{DebtChange: 5000, TotalSpentChange: 5000}

		err := repo.consumeCreditBalance(context.Background(), &stubTx{}, &txn, &delta)

		require.NoError(t, err)
		assert.Equal(t, int64(0), txn.PaidAmount)
		assert.Equal(t, int64(5000), txn.RemainingAmount)
		assert.Equal(t, domain.BalanceDelta{DebtChange: 5000, TotalSpentChange: 5000}, delta)
	})
}
