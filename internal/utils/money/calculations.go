// Package money is the single source of truth for splitting amounts between
// paid and outstanding, for the signed balance impact of each transaction
// type, and for status derivation. Every other component consumes these
// functions; the same formula must never be duplicated elsewhere.
//
// All amounts are int64 in the currency's minor unit (kobo).
package money

import (
	"math"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const minorUnitsPerMajor = 2 // kobo per naira, as a decimal shift

// ToMinorUnits converts a major-unit amount (naira) to kobo. Values that are
// exactly representable in kobo round-trip without drift.
func ToMinorUnits(major decimal.Decimal) int64 {
	return major.Shift(minorUnitsPerMajor).Round(0).IntPart()
}

// ToMajorUnits converts kobo back to a major-unit amount.
func ToMajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-minorUnitsPerMajor)
}

// InitialAmounts is the paid/remaining split for a freshly created
// transaction, with the payment method normalized.
type InitialAmounts struct {
	PaidAmount      int64
	RemainingAmount int64
	PaymentMethod   domain.PaymentMethod
}

// CalculateInitialAmounts computes the initial paid/remaining split for a new
// transaction. A blank method normalizes to cash. Credit method defers the
// whole amount; mixed splits it at providedPaid, degenerating to fully paid
// when no cash portion is given. Refunds and payments are always fully paid.
func CalculateInitialAmounts(txnType domain.TransactionType, method domain.PaymentMethod, amount int64, providedPaid *int64) InitialAmounts {
	if method == "" {
		method = domain.MethodCash
	}

	if txnType == domain.TypeRefund || txnType == domain.TypePayment {
		return InitialAmounts{PaidAmount: amount, RemainingAmount: 0, PaymentMethod: method}
	}

	switch method {
	case domain.MethodCredit:
		return InitialAmounts{PaidAmount: 0, RemainingAmount: amount, PaymentMethod: method}
	case domain.MethodMixed:
		paid := amount
		if providedPaid != nil {
			paid = *providedPaid
		}
		return InitialAmounts{PaidAmount: paid, RemainingAmount: amount - paid, PaymentMethod: method}
	default:
		return InitialAmounts{PaidAmount: amount, RemainingAmount: 0, PaymentMethod: method}
	}
}

// DebtImpact is the unsigned change a transaction makes to the customer's
// outstanding debt, with its direction.
type DebtImpact struct {
	Change     int64
	IsIncrease bool
	IsDecrease bool
}

// Signed returns the impact as a signed delta (+increase, -decrease).
func (d DebtImpact) Signed() int64 {
	if d.IsDecrease {
		return -d.Change
	}
	return d.Change
}

// CalculateDebtImpact computes how a transaction moves the customer's
// outstanding debt. Sales only create debt for the deferred portion; cash
// sales have zero impact. Payments reduce debt only when applied to it.
func CalculateDebtImpact(txnType domain.TransactionType, method domain.PaymentMethod, amount int64, appliedToDebt bool) DebtImpact {
	switch txnType {
	case domain.TypeSale:
		if method == domain.MethodCredit || method == domain.MethodMixed {
			init := CalculateInitialAmounts(txnType, method, amount, nil)
			if init.RemainingAmount > 0 {
				return DebtImpact{Change: init.RemainingAmount, IsIncrease: true}
			}
		}
		return DebtImpact{}
	case domain.TypePayment:
		if appliedToDebt {
			return DebtImpact{Change: amount, IsDecrease: true}
		}
		return DebtImpact{}
	case domain.TypeRefund:
		return DebtImpact{Change: amount, IsDecrease: true}
	case domain.TypeCredit:
		return DebtImpact{Change: amount, IsIncrease: true}
	default:
		return DebtImpact{}
	}
}

// BalanceImpact carries the signed deltas a transaction applies to the
// customer's outstandingBalance and creditBalance.
type BalanceImpact struct {
	DebtChange   int64
	CreditChange int64
}

// CalculateCustomerBalanceImpact computes the signed aggregate deltas for a
// transaction. A payment not applied to debt parks the full amount as credit.
func CalculateCustomerBalanceImpact(txnType domain.TransactionType, method domain.PaymentMethod, amount, remainingAmount int64, appliedToDebt bool) BalanceImpact {
	switch txnType {
	case domain.TypeSale:
		if method == domain.MethodCredit || method == domain.MethodMixed {
			return BalanceImpact{DebtChange: remainingAmount}
		}
		return BalanceImpact{}
	case domain.TypePayment:
		if appliedToDebt {
			return BalanceImpact{DebtChange: -amount}
		}
		return BalanceImpact{CreditChange: amount}
	case domain.TypeRefund:
		return BalanceImpact{DebtChange: -amount}
	case domain.TypeCredit:
		return BalanceImpact{DebtChange: amount}
	default:
		return BalanceImpact{}
	}
}

// StatusResult is the derived status of a transaction given its amounts.
type StatusResult struct {
	Status          domain.TransactionStatus
	PaidAmount      int64
	RemainingAmount int64
	PercentagePaid  float64
}

// CalculateStatus derives status and percentage paid from the amounts.
// Completed when nothing remains (including zero-amount transactions and
// overpayment), partial when something has been paid with a remainder, else
// pending. PercentagePaid is round((paid/total)*10000)/100, clamped at 0 and
// defined as 0 when total is 0.
func CalculateStatus(txnType domain.TransactionType, total, paid, remaining int64) StatusResult {
	res := StatusResult{PaidAmount: paid, RemainingAmount: remaining}

	switch {
	case remaining <= 0:
		res.Status = domain.StatusCompleted
	case paid > 0:
		res.Status = domain.StatusPartial
	default:
		res.Status = domain.StatusPending
	}

	res.PercentagePaid = percentagePaid(total, paid)
	return res
}

// CalculateStatusFromMajor is the float boundary of CalculateStatus, for
// callers still holding major-unit float amounts. Non-finite inputs degrade
// to a safe pending/0 result instead of propagating corruption.
func CalculateStatusFromMajor(txnType domain.TransactionType, total, paid, remaining float64) StatusResult {
	for _, v := range []float64{total, paid, remaining} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return StatusResult{Status: domain.StatusPending, PercentagePaid: 0}
		}
	}
	return CalculateStatus(txnType,
		ToMinorUnits(decimal.NewFromFloat(total)),
		ToMinorUnits(decimal.NewFromFloat(paid)),
		ToMinorUnits(decimal.NewFromFloat(remaining)),
	)
}

func percentagePaid(total, paid int64) float64 {
	if total == 0 {
		return 0
	}
	ratio := decimal.NewFromInt(paid).Div(decimal.NewFromInt(total))
	pct, _ := ratio.Mul(decimal.NewFromInt(10000)).Round(0).Div(decimal.NewFromInt(100)).Float64()
	if pct < 0 {
		return 0
	}
	return pct
}

// MixedPaymentValidation is the result of checking a cash+credit split.
type MixedPaymentValidation struct {
	IsValid bool
	Error   string
}

// ValidateMixedPayment checks a mixed payment's cash and credit components
// against the total. Negativity is checked before the sum. Equality is exact:
// money must reconcile to the kobo, with no rounding tolerance.
func ValidateMixedPayment(total, cash, credit int64) MixedPaymentValidation {
	if cash < 0 || credit < 0 {
		return MixedPaymentValidation{Error: "Payment amounts cannot be negative"}
	}
	if cash+credit != total {
		return MixedPaymentValidation{Error: "Payment amounts must equal total amount"}
	}
	return MixedPaymentValidation{IsValid: true}
}

// OverpaymentResult splits a payment into the portion that clears debt and
// the excess that becomes customer credit.
type OverpaymentResult struct {
	DebtCleared   int64
	CreditCreated int64
}

// HandleOverpayment resolves a payment against the customer's outstanding
// debt. The excess is never dropped; it surfaces as CreditCreated.
func HandleOverpayment(paymentAmount, outstandingDebt int64) OverpaymentResult {
	cleared := paymentAmount
	if outstandingDebt < cleared {
		cleared = outstandingDebt
	}
	credit := paymentAmount - outstandingDebt
	if credit < 0 {
		credit = 0
	}
	return OverpaymentResult{DebtCleared: cleared, CreditCreated: credit}
}
