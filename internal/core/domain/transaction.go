package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypeSale    TransactionType = "sale"
	TypePayment TransactionType = "payment"
	TypeCredit  TransactionType = "credit"
	TypeRefund  TransactionType = "refund"
)

// PaymentMethod is how a transaction was settled.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodPOSCard      PaymentMethod = "pos_card"
	MethodCredit       PaymentMethod = "credit"
	MethodMixed        PaymentMethod = "mixed"
)

// TransactionStatus reflects how much of a transaction has been settled.
// Cancelled is terminal and only reachable through explicit cancellation,
// never computed from amounts.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusPartial   TransactionStatus = "partial"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction is the atomic ledger entry. All amounts are integers in the
// currency's minor unit (kobo) to avoid floating-point drift.
type Transaction struct {
	TransactionID       string            `json:"transactionID"` // Primary Key (UUID)
	CustomerID          string            `json:"customerID"`    // FK -> Customer.customerID (Not Null)
	ProductID           *string           `json:"productID,omitempty"`
	Amount              int64             `json:"amount"` // Face value in kobo, >= 0
	Description         string            `json:"description"`
	Date                time.Time         `json:"date"` // Business date; must not be in the future
	Type                TransactionType   `json:"type"`
	PaymentMethod       PaymentMethod     `json:"paymentMethod"`
	PaidAmount          int64             `json:"paidAmount"`
	RemainingAmount     int64             `json:"remainingAmount"`
	Status              TransactionStatus `json:"status"`
	PercentagePaid      float64           `json:"percentagePaid"` // 0-100, 2 decimals
	LinkedTransactionID *string           `json:"linkedTransactionID,omitempty"`
	AppliedToDebt       bool              `json:"appliedToDebt"`
	DueDate             *time.Time        `json:"dueDate,omitempty"` // Credit transactions only
	Currency            string            `json:"currency"`
	ExchangeRate        decimal.Decimal   `json:"exchangeRate"`
	Metadata            map[string]any    `json:"metadata,omitempty"`
	IsDeleted           bool              `json:"isDeleted"`
	AuditFields
}

// AmountsConsistent reports whether paid + remaining adds up to the face
// value. Refunds are always treated as fully paid, so only the paid side is
// checked for them.
func (t Transaction) AmountsConsistent() bool {
	if t.Type == TypeRefund {
		return t.PaidAmount == t.Amount && t.RemainingAmount == 0
	}
	return t.PaidAmount+t.RemainingAmount == t.Amount
}

// IsOpenDebt reports whether this transaction still carries debt a payment
// could be allocated against.
func (t Transaction) IsOpenDebt() bool {
	if t.IsDeleted || t.Status == StatusCancelled {
		return false
	}
	return (t.Type == TypeSale || t.Type == TypeCredit) && t.RemainingAmount > 0
}
