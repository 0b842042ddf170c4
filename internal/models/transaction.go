package models

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

// Transaction mirrors a row of the transactions table. All amounts are
// integers in kobo.
type Transaction struct {
	TransactionID       string          `db:"transaction_id"`
	CustomerID          string          `db:"customer_id"`
	ProductID           *string         `db:"product_id"`
	Amount              int64           `db:"amount"`
	Description         string          `db:"description"`
	Date                time.Time       `db:"date"`
	Type                string          `db:"type"`
	PaymentMethod       string          `db:"payment_method"`
	PaidAmount          int64           `db:"paid_amount"`
	RemainingAmount     int64           `db:"remaining_amount"`
	Status              string          `db:"status"`
	PercentagePaid      float64         `db:"percentage_paid"`
	LinkedTransactionID *string         `db:"linked_transaction_id"`
	AppliedToDebt       bool            `db:"applied_to_debt"`
	DueDate             *time.Time      `db:"due_date"`
	Currency            string          `db:"currency"`
	ExchangeRate        decimal.Decimal `db:"exchange_rate"`
	Metadata            map[string]any  `db:"metadata"`
	IsDeleted           bool            `db:"is_deleted"`
	AuditFields
}
