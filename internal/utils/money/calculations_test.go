package money_test

import (
	"math"
	"testing"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnitConversionRoundTrip(t *testing.T) {
	cases := []int64{0, 1, 99, 100, 12345, 1_000_000, 999_999_999, 1_000_000_000}
	for _, minor := range cases {
		major := money.ToMajorUnits(minor)
		assert.Equal(t, minor, money.ToMinorUnits(major), "round trip for %d kobo", minor)
	}

	// Repeated round-tripping must not drift.
	v := int64(987_654_321)
	for i := 0; i < 50; i++ {
		v = money.ToMinorUnits(money.ToMajorUnits(v))
	}
	assert.Equal(t, int64(987_654_321), v)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5000), money.ToMinorUnits(decimal.NewFromInt(50)))
	assert.Equal(t, int64(1250), money.ToMinorUnits(decimal.RequireFromString("12.50")))
	assert.Equal(t, int64(1), money.ToMinorUnits(decimal.RequireFromString("0.01")))
}

func TestCalculateInitialAmounts(t *testing.T) {
	paid := func(v int64) *int64 { return &v }

	tests := []struct {
		name     string
		txnType  domain.TransactionType
		method   domain.PaymentMethod
		amount   int64
		provided *int64
		want     money.InitialAmounts
	}{
		{
			name: "credit sale defers everything", txnType: domain.TypeSale, method: domain.MethodCredit, amount: 5000,
			want: money.InitialAmounts{PaidAmount: 0, RemainingAmount: 5000, PaymentMethod: domain.MethodCredit},
		},
		{
			name: "cash sale fully paid", txnType: domain.TypeSale, method: domain.MethodCash, amount: 3000,
			want: money.InitialAmounts{PaidAmount: 3000, RemainingAmount: 0, PaymentMethod: domain.MethodCash},
		},
		{
			name: "blank method normalizes to cash", txnType: domain.TypeSale, method: "", amount: 700,
			want: money.InitialAmounts{PaidAmount: 700, RemainingAmount: 0, PaymentMethod: domain.MethodCash},
		},
		{
			name: "mixed with cash portion", txnType: domain.TypeSale, method: domain.MethodMixed, amount: 10000, provided: paid(4000),
			want: money.InitialAmounts{PaidAmount: 4000, RemainingAmount: 6000, PaymentMethod: domain.MethodMixed},
		},
		{
			name: "mixed without cash portion degenerates to fully paid", txnType: domain.TypeSale, method: domain.MethodMixed, amount: 10000,
			want: money.InitialAmounts{PaidAmount: 10000, RemainingAmount: 0, PaymentMethod: domain.MethodMixed},
		},
		{
			name: "payment always fully paid", txnType: domain.TypePayment, method: domain.MethodCredit, amount: 2000,
			want: money.InitialAmounts{PaidAmount: 2000, RemainingAmount: 0, PaymentMethod: domain.MethodCredit},
		},
		{
			name: "refund fully paid regardless of method", txnType: domain.TypeRefund, method: domain.MethodMixed, amount: 1500,
			want: money.InitialAmounts{PaidAmount: 1500, RemainingAmount: 0, PaymentMethod: domain.MethodMixed},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := money.CalculateInitialAmounts(tc.txnType, tc.method, tc.amount, tc.provided)
			assert.Equal(t, tc.want, got)
			if tc.txnType != domain.TypeRefund {
				assert.Equal(t, tc.amount, got.PaidAmount+got.RemainingAmount, "paid + remaining must equal amount")
			}
		})
	}
}

func TestCalculateDebtImpact(t *testing.T) {
	tests := []struct {
		name          string
		txnType       domain.TransactionType
		method        domain.PaymentMethod
		amount        int64
		appliedToDebt bool
		want          money.DebtImpact
	}{
		{name: "credit sale increases debt", txnType: domain.TypeSale, method: domain.MethodCredit, amount: 5000,
			want: money.DebtImpact{Change: 5000, IsIncrease: true}},
		{name: "cash sale no impact", txnType: domain.TypeSale, method: domain.MethodCash, amount: 5000,
			want: money.DebtImpact{}},
		{name: "payment applied to debt decreases", txnType: domain.TypePayment, method: domain.MethodCash, amount: 3000, appliedToDebt: true,
			want: money.DebtImpact{Change: 3000, IsDecrease: true}},
		{name: "payment not applied no impact", txnType: domain.TypePayment, method: domain.MethodCash, amount: 3000,
			want: money.DebtImpact{}},
		{name: "refund decreases", txnType: domain.TypeRefund, method: domain.MethodCash, amount: 1000,
			want: money.DebtImpact{Change: 1000, IsDecrease: true}},
		{name: "credit issuance increases", txnType: domain.TypeCredit, method: domain.MethodCredit, amount: 8000,
			want: money.DebtImpact{Change: 8000, IsIncrease: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := money.CalculateDebtImpact(tc.txnType, tc.method, tc.amount, tc.appliedToDebt)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDebtImpactSigned(t *testing.T) {
	assert.Equal(t, int64(5000), money.DebtImpact{Change: 5000, IsIncrease: true}.Signed())
	assert.Equal(t, int64(-3000), money.DebtImpact{Change: 3000, IsDecrease: true}.Signed())
	assert.Equal(t, int64(0), money.DebtImpact{}.Signed())
}

func TestCalculateCustomerBalanceImpact(t *testing.T) {
	// A payment parked as future credit touches only creditBalance.
	got := money.CalculateCustomerBalanceImpact(domain.TypePayment, domain.MethodCash, 2500, 0, false)
	assert.Equal(t, money.BalanceImpact{CreditChange: 2500}, got)

	got = money.CalculateCustomerBalanceImpact(domain.TypePayment, domain.MethodCash, 2500, 0, true)
	assert.Equal(t, money.BalanceImpact{DebtChange: -2500}, got)

	got = money.CalculateCustomerBalanceImpact(domain.TypeSale, domain.MethodMixed, 10000, 6000, false)
	assert.Equal(t, money.BalanceImpact{DebtChange: 6000}, got)

	got = money.CalculateCustomerBalanceImpact(domain.TypeRefund, domain.MethodCash, 1200, 0, false)
	assert.Equal(t, money.BalanceImpact{DebtChange: -1200}, got)

	got = money.CalculateCustomerBalanceImpact(domain.TypeCredit, domain.MethodCredit, 4000, 4000, false)
	assert.Equal(t, money.BalanceImpact{DebtChange: 4000}, got)
}

func TestCalculateStatus(t *testing.T) {
	tests := []struct {
		name                  string
		total, paid, remaining int64
		wantStatus            domain.TransactionStatus
		wantPct               float64
	}{
		{name: "pending", total: 1000, paid: 0, remaining: 1000, wantStatus: domain.StatusPending, wantPct: 0},
		{name: "partial", total: 1000, paid: 400, remaining: 600, wantStatus: domain.StatusPartial, wantPct: 40},
		{name: "completed", total: 1000, paid: 1000, remaining: 0, wantStatus: domain.StatusCompleted, wantPct: 100},
		{name: "overpaid still completed", total: 1000, paid: 1500, remaining: -500, wantStatus: domain.StatusCompleted, wantPct: 150},
		{name: "zero total completed", total: 0, paid: 0, remaining: 0, wantStatus: domain.StatusCompleted, wantPct: 0},
		{name: "two decimal rounding", total: 10000, paid: 9999, remaining: 1, wantStatus: domain.StatusPartial, wantPct: 99.99},
		{name: "third rounds to 2dp", total: 3000, paid: 1000, remaining: 2000, wantStatus: domain.StatusPartial, wantPct: 33.33},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := money.CalculateStatus(domain.TypeSale, tc.total, tc.paid, tc.remaining)
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.InDelta(t, tc.wantPct, got.PercentagePaid, 0.0001)
		})
	}
}

func TestCalculateStatusRemainingEquivalence(t *testing.T) {
	// remaining <= 0 <=> completed, over a spread of values.
	for remaining := int64(-3); remaining <= 3; remaining++ {
		got := money.CalculateStatus(domain.TypeSale, 100, 100-remaining, remaining)
		if remaining <= 0 {
			assert.Equal(t, domain.StatusCompleted, got.Status, "remaining=%d", remaining)
		} else {
			assert.NotEqual(t, domain.StatusCompleted, got.Status, "remaining=%d", remaining)
		}
	}
}

func TestCalculateStatusFromMajorNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := money.CalculateStatusFromMajor(domain.TypeSale, v, 10, 10)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.Zero(t, got.PercentagePaid)
	}

	got := money.CalculateStatusFromMajor(domain.TypeSale, 100, 99.99, 0.01)
	assert.Equal(t, domain.StatusPartial, got.Status)
	assert.InDelta(t, 99.99, got.PercentagePaid, 0.0001)
}

func TestValidateMixedPayment(t *testing.T) {
	// Negativity is checked before the sum check.
	got := money.ValidateMixedPayment(1000, 800, -200)
	assert.False(t, got.IsValid)
	assert.Equal(t, "Payment amounts cannot be negative", got.Error)

	got = money.ValidateMixedPayment(1000, 800, 300)
	assert.False(t, got.IsValid)
	assert.Equal(t, "Payment amounts must equal total amount", got.Error)

	// Exact equality, no rounding tolerance: one kobo off is invalid.
	got = money.ValidateMixedPayment(1000, 800, 199)
	assert.False(t, got.IsValid)
	assert.Equal(t, "Payment amounts must equal total amount", got.Error)

	got = money.ValidateMixedPayment(1000, 800, 200)
	assert.True(t, got.IsValid)
	assert.Empty(t, got.Error)
}

func TestHandleOverpayment(t *testing.T) {
	assert.Equal(t, money.OverpaymentResult{DebtCleared: 0, CreditCreated: 1000}, money.HandleOverpayment(1000, 0))
	assert.Equal(t, money.OverpaymentResult{DebtCleared: 1500, CreditCreated: 0}, money.HandleOverpayment(1500, 1500))
	assert.Equal(t, money.OverpaymentResult{DebtCleared: 2000, CreditCreated: 500}, money.HandleOverpayment(2500, 2000))
	assert.Equal(t, money.OverpaymentResult{DebtCleared: 300, CreditCreated: 0}, money.HandleOverpayment(300, 900))
}
