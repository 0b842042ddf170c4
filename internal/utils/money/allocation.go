package money

import "github.com/kudibook/kudibook_app/internal/core/domain"

// DebtAllocation is one debt's share of a payment.
type DebtAllocation struct {
	TransactionID string
	Allocated     int64
	NewRemaining  int64
	NewPaid       int64
	NewStatus     domain.TransactionStatus
}

// AllocationResult is the outcome of distributing a payment across debts.
// CreditCreated is whatever could not be allocated; the customer's
// outstanding balance decreases by exactly TotalAllocated.
type AllocationResult struct {
	Allocations    []DebtAllocation
	TotalAllocated int64
	CreditCreated  int64
}

// AllocatePayment walks the given debts in order and distributes the payment
// across them. Debts with nothing remaining are skipped. Each touched debt is
// completed when its remainder reaches exactly zero, partial otherwise.
// Ordering (oldest-first or newest-first) is the caller's responsibility.
func AllocatePayment(amount int64, debts []domain.Transaction) AllocationResult {
	result := AllocationResult{}
	left := amount

	for _, debt := range debts {
		if left <= 0 {
			break
		}
		if debt.RemainingAmount <= 0 {
			continue
		}

		allocated := left
		if debt.RemainingAmount < allocated {
			allocated = debt.RemainingAmount
		}

		newRemaining := debt.RemainingAmount - allocated
		status := domain.StatusPartial
		if newRemaining == 0 {
			status = domain.StatusCompleted
		}

		result.Allocations = append(result.Allocations, DebtAllocation{
			TransactionID: debt.TransactionID,
			Allocated:     allocated,
			NewRemaining:  newRemaining,
			NewPaid:       debt.PaidAmount + allocated,
			NewStatus:     status,
		})
		left -= allocated
	}

	result.TotalAllocated = amount - left
	if left > 0 {
		result.CreditCreated = left
	}
	return result
}
