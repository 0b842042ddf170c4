package dto

import (
	"time"

	"github.com/kudibook/kudibook_app/internal/core/domain"
)

// CreateCustomerRequest is the payload for registering a new customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CustomerResponse is the data returned for a customer, including the cached
// balance aggregate.
type CustomerResponse struct {
	CustomerID         string     `json:"customerID"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone,omitempty"`
	TotalSpent         int64      `json:"totalSpent"`
	OutstandingBalance int64      `json:"outstandingBalance"`
	CreditBalance      int64      `json:"creditBalance"`
	LastPurchase       *time.Time `json:"lastPurchase,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:         c.CustomerID,
		Name:               c.Name,
		Phone:              c.Phone,
		TotalSpent:         c.TotalSpent,
		OutstandingBalance: c.OutstandingBalance,
		CreditBalance:      c.CreditBalance,
		LastPurchase:       c.LastPurchase,
		CreatedAt:          c.CreatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers.
func ToCustomerResponses(cs []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(cs))
	for i, c := range cs {
		responses[i] = ToCustomerResponse(&c)
	}
	return responses
}
