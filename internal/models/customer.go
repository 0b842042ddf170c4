package models

import "time"

// Customer mirrors a row of the customers table. Balance columns are kobo.
type Customer struct {
	CustomerID         string     `db:"customer_id"`
	Name               string     `db:"name"`
	Phone              string     `db:"phone"`
	TotalSpent         int64      `db:"total_spent"`
	OutstandingBalance int64      `db:"outstanding_balance"`
	CreditBalance      int64      `db:"credit_balance"`
	LastPurchase       *time.Time `db:"last_purchase"`
	AuditFields
}
