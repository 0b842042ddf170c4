package mapping

import (
	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its database model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:       d.TransactionID,
		CustomerID:          d.CustomerID,
		ProductID:           d.ProductID,
		Amount:              d.Amount,
		Description:         d.Description,
		Date:                d.Date,
		Type:                string(d.Type),
		PaymentMethod:       string(d.PaymentMethod),
		PaidAmount:          d.PaidAmount,
		RemainingAmount:     d.RemainingAmount,
		Status:              string(d.Status),
		PercentagePaid:      d.PercentagePaid,
		LinkedTransactionID: d.LinkedTransactionID,
		AppliedToDebt:       d.AppliedToDebt,
		DueDate:             d.DueDate,
		Currency:            d.Currency,
		ExchangeRate:        d.ExchangeRate,
		Metadata:            d.Metadata,
		IsDeleted:           d.IsDeleted,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a models.Transaction to its domain form.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:       m.TransactionID,
		CustomerID:          m.CustomerID,
		ProductID:           m.ProductID,
		Amount:              m.Amount,
		Description:         m.Description,
		Date:                m.Date,
		Type:                domain.TransactionType(m.Type),
		PaymentMethod:       domain.PaymentMethod(m.PaymentMethod),
		PaidAmount:          m.PaidAmount,
		RemainingAmount:     m.RemainingAmount,
		Status:              domain.TransactionStatus(m.Status),
		PercentagePaid:      m.PercentagePaid,
		LinkedTransactionID: m.LinkedTransactionID,
		AppliedToDebt:       m.AppliedToDebt,
		DueDate:             m.DueDate,
		Currency:            m.Currency,
		ExchangeRate:        m.ExchangeRate,
		Metadata:            m.Metadata,
		IsDeleted:           m.IsDeleted,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of models to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
