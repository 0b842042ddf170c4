package mapping

import (
	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/models"
)

// ToModelCustomer converts a domain.Customer to its database model.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:         d.CustomerID,
		Name:               d.Name,
		Phone:              d.Phone,
		TotalSpent:         d.TotalSpent,
		OutstandingBalance: d.OutstandingBalance,
		CreditBalance:      d.CreditBalance,
		LastPurchase:       d.LastPurchase,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a models.Customer to its domain form.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:         m.CustomerID,
		Name:               m.Name,
		Phone:              m.Phone,
		TotalSpent:         m.TotalSpent,
		OutstandingBalance: m.OutstandingBalance,
		CreditBalance:      m.CreditBalance,
		LastPurchase:       m.LastPurchase,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of models to domain customers.
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}
