package services

import (
	"context"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/dto"
)

// CustomerSvcFacade manages customer records. Balance aggregates on the
// customer are owned by the ledger service; this service never touches them
// directly.
type CustomerSvcFacade interface {
	// CreateCustomer registers a new customer with zeroed balances.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, deviceID string) (*domain.Customer, error)

	// GetCustomerByID retrieves a customer.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error)
}
