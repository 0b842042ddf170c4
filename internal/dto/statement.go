package dto

// AllocationDetail reports how much of a payment landed on one debt.
type AllocationDetail struct {
	TransactionID string `json:"transactionID"`
	Allocated     int64  `json:"allocated"`
	NewRemaining  int64  `json:"newRemaining"`
	NewStatus     string `json:"newStatus"`
}

// ApplyPaymentRequest applies a payment against a customer's outstanding
// debts.
type ApplyPaymentRequest struct {
	Amount           int64  `json:"amount" binding:"required,gt=0"`
	PaymentMethod    string `json:"paymentMethod" binding:"omitempty,oneof=cash bank_transfer pos_card"`
	Description      string `json:"description"`
	ApplyOldestFirst *bool  `json:"applyOldestFirst,omitempty"`
}

// ApplyPaymentResponse is the outcome of a debt allocation.
type ApplyPaymentResponse struct {
	Payment       TransactionResponse `json:"payment"`
	Allocations   []AllocationDetail  `json:"allocations"`
	DebtCleared   int64               `json:"debtCleared"`
	CreditCreated int64               `json:"creditCreated"`
	Fallback      bool                `json:"fallback,omitempty"` // Flat reduction taken instead of per-debt allocation
}

// CustomerStatementResponse is a customer's transaction history over a date
// range, with the outstanding balance at each edge of the range.
type CustomerStatementResponse struct {
	CustomerID     string                `json:"customerID"`
	Transactions   []TransactionResponse `json:"transactions"`
	OpeningBalance int64                 `json:"openingBalance"`
	ClosingBalance int64                 `json:"closingBalance"`
}
