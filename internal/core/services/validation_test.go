package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/core/services"
	"github.com/kudibook/kudibook_app/internal/dto"
)

func validCreateRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		CustomerID:    "cust-1",
		Type:          "sale",
		PaymentMethod: "cash",
		Amount:        5000,
		Date:          time.Now().Add(-time.Hour),
	}
}

func TestValidateCreate(t *testing.T) {
	v := services.NewTransactionValidator()
	paid := int64(800)
	badPaid := int64(1200)
	due := time.Now().Add(14 * 24 * time.Hour)

	tests := []struct {
		name    string
		mutate  func(*dto.CreateTransactionRequest)
		wantErr string
	}{
		{"valid cash sale", func(r *dto.CreateTransactionRequest) {}, ""},
		{"zero-amount sale", func(r *dto.CreateTransactionRequest) { r.Amount = 0 }, "sale amount must be greater than zero"},
		{"future date", func(r *dto.CreateTransactionRequest) { r.Date = time.Now().Add(48 * time.Hour) }, "date cannot be in the future"},
		{"payment on credit method", func(r *dto.CreateTransactionRequest) {
			r.Type = "payment"
			r.PaymentMethod = "credit"
		}, "not allowed for payments"},
		{"mixed split adds up", func(r *dto.CreateTransactionRequest) {
			r.Amount = 1000
			r.PaymentMethod = "mixed"
			r.PaidAmount = &paid
		}, ""},
		{"mixed cash portion exceeds total", func(r *dto.CreateTransactionRequest) {
			r.Amount = 1000
			r.PaymentMethod = "mixed"
			r.PaidAmount = &badPaid
		}, "Payment amounts cannot be negative"},
		{"due date on cash sale", func(r *dto.CreateTransactionRequest) { r.DueDate = &due }, "dueDate only applies to credit"},
		{"due date on credit sale", func(r *dto.CreateTransactionRequest) {
			r.PaymentMethod = "credit"
			r.DueDate = &due
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := v.ValidateCreate(req)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := services.NewTransactionValidator()
	existing := domain.Transaction{
		TransactionID:   "txn-1",
		Type:            domain.TypeSale,
		Amount:          5000,
		PaidAmount:      2000,
		RemainingAmount: 3000,
		Status:          domain.StatusPartial,
	}
	zero := int64(0)
	tooMuch := int64(6000)
	future := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name     string
		existing domain.Transaction
		req      dto.UpdateTransactionRequest
		wantErr  string
	}{
		{"plain description change", existing, dto.UpdateTransactionRequest{Description: strPtr("corrected")}, ""},
		{"deleted row refuses edits", domain.Transaction{IsDeleted: true}, dto.UpdateTransactionRequest{}, "transaction is deleted"},
		{"cancelled row is immutable", domain.Transaction{Status: domain.StatusCancelled}, dto.UpdateTransactionRequest{}, "cancelled transactions cannot be modified"},
		{"sale amount to zero", existing, dto.UpdateTransactionRequest{Amount: &zero}, "sale amount must be greater than zero"},
		{"future date", existing, dto.UpdateTransactionRequest{Date: &future}, "date cannot be in the future"},
		{"paid exceeds total", existing, dto.UpdateTransactionRequest{PaidAmount: &tooMuch}, "paid amount cannot exceed total amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(tt.existing, tt.req)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func strPtr(s string) *string { return &s }
