package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/dto"
	"github.com/kudibook/kudibook_app/internal/middleware"
)

const customersTable = "customers"

type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
}

// NewCustomerService creates the customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo, auditSvc: auditSvc}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, deviceID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     deviceID,
			LastUpdatedAt: now,
			LastUpdatedBy: deviceID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to create customer", slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.RecordCreate(ctx, customersTable, customer.CustomerID, map[string]any{
		"customerID": customer.CustomerID,
		"name":       customer.Name,
		"phone":      customer.Phone,
	}, deviceID)

	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx, limit, offset)
}
