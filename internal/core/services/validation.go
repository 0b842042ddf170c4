package services

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/dto"
	"github.com/kudibook/kudibook_app/internal/utils/money"
)

// transactionValidator is the default TransactionValidator. Validation rules
// live here, injected into the ledger service, rather than as module-level
// free functions with hidden cross-references.
type transactionValidator struct {
	validate *validator.Validate
}

// NewTransactionValidator creates the default request validator.
func NewTransactionValidator() portssvc.TransactionValidator {
	return &transactionValidator{validate: validator.New()}
}

var _ portssvc.TransactionValidator = (*transactionValidator)(nil)

func (v *transactionValidator) ValidateCreate(req dto.CreateTransactionRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	txnType := domain.TransactionType(req.Type)
	method := domain.PaymentMethod(req.PaymentMethod)

	if req.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	if txnType == domain.TypeSale && req.Amount == 0 {
		return fmt.Errorf("%w: sale amount must be greater than zero", apperrors.ErrValidation)
	}
	if req.Date.After(time.Now()) {
		return fmt.Errorf("%w: transaction date cannot be in the future", apperrors.ErrValidation)
	}

	// Payments settle immediately; deferring them makes no sense.
	if txnType == domain.TypePayment && (method == domain.MethodCredit || method == domain.MethodMixed) {
		return fmt.Errorf("%w: payment method %q is not allowed for payments", apperrors.ErrValidation, req.PaymentMethod)
	}

	if method == domain.MethodMixed && req.PaidAmount != nil {
		check := money.ValidateMixedPayment(req.Amount, *req.PaidAmount, req.Amount-*req.PaidAmount)
		if !check.IsValid {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, check.Error)
		}
	}

	if req.DueDate != nil && txnType != domain.TypeCredit && method != domain.MethodCredit && method != domain.MethodMixed {
		return fmt.Errorf("%w: dueDate only applies to credit transactions", apperrors.ErrValidation)
	}

	return nil
}

func (v *transactionValidator) ValidateUpdate(existing domain.Transaction, req dto.UpdateTransactionRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if existing.IsDeleted && (req.IsDeleted == nil || *req.IsDeleted) {
		return fmt.Errorf("%w: transaction is deleted", apperrors.ErrValidation)
	}
	if existing.Status == domain.StatusCancelled {
		return fmt.Errorf("%w: cancelled transactions cannot be modified", apperrors.ErrValidation)
	}

	if req.Amount != nil && *req.Amount == 0 && existing.Type == domain.TypeSale {
		return fmt.Errorf("%w: sale amount must be greater than zero", apperrors.ErrValidation)
	}
	if req.Date != nil && req.Date.After(time.Now()) {
		return fmt.Errorf("%w: transaction date cannot be in the future", apperrors.ErrValidation)
	}

	if req.PaidAmount != nil {
		amount := existing.Amount
		if req.Amount != nil {
			amount = *req.Amount
		}
		if *req.PaidAmount > amount {
			return fmt.Errorf("%w: paid amount cannot exceed total amount", apperrors.ErrValidation)
		}
	}

	return nil
}
