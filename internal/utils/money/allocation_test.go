package money_test

import (
	"testing"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/utils/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debt(id string, remaining, paid int64) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		Type:            domain.TypeSale,
		Amount:          remaining + paid,
		PaidAmount:      paid,
		RemainingAmount: remaining,
		Status:          domain.StatusPending,
	}
}

func TestAllocatePaymentOldestFirstWalk(t *testing.T) {
	debts := []domain.Transaction{
		debt("d1", 2000, 0),
		debt("d2", 3000, 1000),
		debt("d3", 1500, 0),
	}

	res := money.AllocatePayment(4000, debts)

	require.Len(t, res.Allocations, 2)
	assert.Equal(t, int64(4000), res.TotalAllocated)
	assert.Zero(t, res.CreditCreated)

	assert.Equal(t, "d1", res.Allocations[0].TransactionID)
	assert.Equal(t, int64(2000), res.Allocations[0].Allocated)
	assert.Equal(t, int64(0), res.Allocations[0].NewRemaining)
	assert.Equal(t, domain.StatusCompleted, res.Allocations[0].NewStatus)

	assert.Equal(t, "d2", res.Allocations[1].TransactionID)
	assert.Equal(t, int64(2000), res.Allocations[1].Allocated)
	assert.Equal(t, int64(1000), res.Allocations[1].NewRemaining)
	assert.Equal(t, int64(3000), res.Allocations[1].NewPaid)
	assert.Equal(t, domain.StatusPartial, res.Allocations[1].NewStatus)
}

func TestAllocatePaymentConservation(t *testing.T) {
	// For p <= sum(remaining): no credit and remaining shrinks by exactly p.
	debts := []domain.Transaction{debt("a", 1000, 0), debt("b", 2500, 0), debt("c", 400, 0)}
	total := int64(3900)

	for _, p := range []int64{0, 1, 399, 400, 1000, 3899, 3900} {
		res := money.AllocatePayment(p, debts)
		assert.Zero(t, res.CreditCreated, "payment %d", p)
		assert.Equal(t, p, res.TotalAllocated, "payment %d", p)

		remainingAfter := total
		for _, a := range res.Allocations {
			remainingAfter -= a.Allocated
		}
		assert.Equal(t, total-p, remainingAfter, "payment %d", p)
	}
}

func TestAllocatePaymentOverpayment(t *testing.T) {
	debts := []domain.Transaction{debt("a", 2000, 0)}

	res := money.AllocatePayment(2500, debts)

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, int64(2000), res.TotalAllocated)
	assert.Equal(t, int64(500), res.CreditCreated)
	assert.Equal(t, domain.StatusCompleted, res.Allocations[0].NewStatus)
	assert.Zero(t, res.Allocations[0].NewRemaining)
}

func TestAllocatePaymentNoDebts(t *testing.T) {
	res := money.AllocatePayment(1000, nil)
	assert.Empty(t, res.Allocations)
	assert.Zero(t, res.TotalAllocated)
	assert.Equal(t, int64(1000), res.CreditCreated)
}

func TestAllocatePaymentSkipsZeroAmountDebts(t *testing.T) {
	debts := []domain.Transaction{
		debt("zero", 0, 500),
		debt("open", 800, 0),
	}

	res := money.AllocatePayment(800, debts)

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, "open", res.Allocations[0].TransactionID)
	assert.Equal(t, int64(800), res.TotalAllocated)
	assert.Zero(t, res.CreditCreated)
}

func TestAllocatePaymentExactMatchLeavesNoCredit(t *testing.T) {
	debts := []domain.Transaction{debt("a", 1200, 0), debt("b", 800, 0)}

	res := money.AllocatePayment(2000, debts)

	assert.Equal(t, int64(2000), res.TotalAllocated)
	assert.Zero(t, res.CreditCreated)
	for _, a := range res.Allocations {
		assert.Equal(t, domain.StatusCompleted, a.NewStatus)
		assert.Zero(t, a.NewRemaining)
	}
}
