package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/core/services"
	"github.com/kudibook/kudibook_app/internal/dto"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockAuditSvc     *MockAuditService
	service          portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewCustomerService(suite.mockCustomerRepo, suite.mockAuditSvc)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_StartsWithZeroBalances() {
	ctx := context.Background()
	deviceID := uuid.NewString()
	req := dto.CreateCustomerRequest{Name: "Mama Nkechi", Phone: "+2348012345678"}

	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(customer domain.Customer) bool {
		return customer.Name == req.Name &&
			customer.TotalSpent == 0 &&
			customer.OutstandingBalance == 0 &&
			customer.CreditBalance == 0 &&
			customer.CreatedBy == deviceID
	})).Return(nil).Once()
	suite.mockAuditSvc.On("RecordCreate", ctx, "customers", mock.AnythingOfType("string"), mock.Anything, deviceID).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, deviceID)

	suite.Require().NoError(err)
	suite.NotEmpty(customer.CustomerID)
	suite.Nil(customer.LastPurchase)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	customer, err := suite.service.GetCustomerByID(ctx, customerID)

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestListCustomers_PassesPaging() {
	ctx := context.Background()
	expected := []domain.Customer{{CustomerID: "c1"}, {CustomerID: "c2"}}

	suite.mockCustomerRepo.On("ListCustomers", ctx, 25, 50).Return(expected, nil).Once()

	customers, err := suite.service.ListCustomers(ctx, 25, 50)

	suite.Require().NoError(err)
	suite.Equal(expected, customers)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
