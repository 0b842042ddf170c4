package domain

import "testing"

func TestAmountsConsistent(t *testing.T) {
	tests := []struct {
		name string
		txn  Transaction
		want bool
	}{
		{"fully paid sale", Transaction{Type: TypeSale, Amount: 5000, PaidAmount: 5000, RemainingAmount: 0}, true},
		{"partial sale", Transaction{Type: TypeSale, Amount: 5000, PaidAmount: 2000, RemainingAmount: 3000}, true},
		{"drifted sale", Transaction{Type: TypeSale, Amount: 5000, PaidAmount: 2000, RemainingAmount: 2000}, false},
		{"refund always fully paid", Transaction{Type: TypeRefund, Amount: 1500, PaidAmount: 1500, RemainingAmount: 0}, true},
		{"refund with remainder is inconsistent", Transaction{Type: TypeRefund, Amount: 1500, PaidAmount: 1500, RemainingAmount: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.txn.AmountsConsistent(); got != tt.want {
				t.Errorf("AmountsConsistent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOpenDebt(t *testing.T) {
	tests := []struct {
		name string
		txn  Transaction
		want bool
	}{
		{"open credit sale", Transaction{Type: TypeSale, RemainingAmount: 3000, Status: StatusPartial}, true},
		{"open credit issuance", Transaction{Type: TypeCredit, RemainingAmount: 2000, Status: StatusPending}, true},
		{"settled sale", Transaction{Type: TypeSale, RemainingAmount: 0, Status: StatusCompleted}, false},
		{"payment never a debt", Transaction{Type: TypePayment, RemainingAmount: 100}, false},
		{"deleted row excluded", Transaction{Type: TypeSale, RemainingAmount: 3000, IsDeleted: true}, false},
		{"cancelled row excluded", Transaction{Type: TypeSale, RemainingAmount: 3000, Status: StatusCancelled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.txn.IsOpenDebt(); got != tt.want {
				t.Errorf("IsOpenDebt() = %v, want %v", got, tt.want)
			}
		})
	}
}
