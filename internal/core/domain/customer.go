package domain

import "time"

// Customer carries the balance aggregate for one customer. The balance fields
// are a cached roll-up of the customer's transaction history; only the ledger
// service mutates them, and they must always be re-derivable from the full
// history.
type Customer struct {
	CustomerID         string     `json:"customerID"` // Primary Key (UUID)
	Name               string     `json:"name"`
	Phone              string     `json:"phone,omitempty"`
	TotalSpent         int64      `json:"totalSpent"`         // Sum of all sale amounts, kobo
	OutstandingBalance int64      `json:"outstandingBalance"` // Unpaid debt, kobo, never negative
	CreditBalance      int64      `json:"creditBalance"`      // Prepaid/overpaid amount, kobo
	LastPurchase       *time.Time `json:"lastPurchase,omitempty"`
	AuditFields
}

// BalanceDelta is the signed change one ledger operation applies to a
// customer's aggregate fields, in kobo. Debt decreases are clamped at zero by
// the store; any excess must be surfaced by the caller, never dropped.
type BalanceDelta struct {
	DebtChange       int64
	CreditChange     int64
	TotalSpentChange int64
	PurchaseDate     *time.Time // Set on sales; advances LastPurchase
}

// IsZero reports whether the delta would change nothing.
func (d BalanceDelta) IsZero() bool {
	return d.DebtChange == 0 && d.CreditChange == 0 && d.TotalSpentChange == 0 && d.PurchaseDate == nil
}
