package dto

import (
	"time"

	"github.com/kudibook/kudibook_app/internal/core/domain"
)

// CreateTransactionRequest is the payload for recording a new ledger entry.
// Amounts are integers in kobo.
type CreateTransactionRequest struct {
	CustomerID          string     `json:"customerID" binding:"required"`
	ProductID           *string    `json:"productID,omitempty"`
	Type                string     `json:"type" binding:"required,oneof=sale payment credit refund"`
	PaymentMethod       string     `json:"paymentMethod" binding:"omitempty,oneof=cash bank_transfer pos_card credit mixed"`
	Amount              int64      `json:"amount" binding:"min=0"`
	PaidAmount          *int64     `json:"paidAmount,omitempty"` // Cash portion of a mixed payment
	Description         string     `json:"description"`
	Date                time.Time  `json:"date" binding:"required"`
	LinkedTransactionID *string    `json:"linkedTransactionID,omitempty"`
	AppliedToDebt       bool       `json:"appliedToDebt"`
	ApplyOldestFirst    *bool      `json:"applyOldestFirst,omitempty"` // Allocation order; defaults to oldest first
	DueDate             *time.Time `json:"dueDate,omitempty"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

// UpdateTransactionRequest is a partial patch of an existing transaction.
// Nil fields are left untouched.
type UpdateTransactionRequest struct {
	Amount        *int64     `json:"amount,omitempty" binding:"omitempty,min=0"`
	PaymentMethod *string    `json:"paymentMethod,omitempty" binding:"omitempty,oneof=cash bank_transfer pos_card credit mixed"`
	PaidAmount    *int64     `json:"paidAmount,omitempty" binding:"omitempty,min=0"`
	Description   *string    `json:"description,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Status        *string    `json:"status,omitempty" binding:"omitempty,oneof=pending partial completed cancelled"`
	IsDeleted     *bool      `json:"isDeleted,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// TransactionResponse is the data returned for a single transaction.
type TransactionResponse struct {
	TransactionID       string     `json:"transactionID"`
	CustomerID          string     `json:"customerID"`
	ProductID           *string    `json:"productID,omitempty"`
	Type                string     `json:"type"`
	PaymentMethod       string     `json:"paymentMethod"`
	Amount              int64      `json:"amount"`
	PaidAmount          int64      `json:"paidAmount"`
	RemainingAmount     int64      `json:"remainingAmount"`
	Status              string     `json:"status"`
	PercentagePaid      float64    `json:"percentagePaid"`
	Description         string     `json:"description"`
	Date                time.Time  `json:"date"`
	LinkedTransactionID *string    `json:"linkedTransactionID,omitempty"`
	AppliedToDebt       bool       `json:"appliedToDebt"`
	DueDate             *time.Time `json:"dueDate,omitempty"`
	Currency            string     `json:"currency"`
	IsDeleted           bool       `json:"isDeleted"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// ListTransactionsResponse is a cursor-paginated page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       txn.TransactionID,
		CustomerID:          txn.CustomerID,
		ProductID:           txn.ProductID,
		Type:                string(txn.Type),
		PaymentMethod:       string(txn.PaymentMethod),
		Amount:              txn.Amount,
		PaidAmount:          txn.PaidAmount,
		RemainingAmount:     txn.RemainingAmount,
		Status:              string(txn.Status),
		PercentagePaid:      txn.PercentagePaid,
		Description:         txn.Description,
		Date:                txn.Date,
		LinkedTransactionID: txn.LinkedTransactionID,
		AppliedToDebt:       txn.AppliedToDebt,
		DueDate:             txn.DueDate,
		Currency:            txn.Currency,
		IsDeleted:           txn.IsDeleted,
		CreatedAt:           txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
