package partner

import (
	"time"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Notes       string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Notes       string `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	CompanyName      string    `json:"company_name,omitempty"`
	Status           string    `json:"status"`
	ContactName      string    `json:"contact_name,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	LedgerCustomerID *int64    `json:"ledger_customer_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewCustomerResponse converts a domain customer to a response DTO
func NewCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		CompanyName:      c.CompanyName,
		Status:           string(c.Status),
		ContactName:      c.ContactName,
		Phone:            c.Phone,
		Email:            c.Email,
		Notes:            c.Notes,
		LedgerCustomerID: c.LedgerCustomerID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
