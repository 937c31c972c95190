package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusArchived CustomerStatus = "archived"
)

// Customer represents a customer in the partner context.
// It is the aggregate root for customer-related operations. A customer
// may carry a link to its counterpart in the external billing ledger;
// the link is established by the reconciliation sync or by a manual
// override and is unique across customers.
type Customer struct {
	shared.BaseAggregateRoot
	Name             string         `gorm:"type:varchar(200);not null;index"`
	CompanyName      string         `gorm:"type:varchar(200);index"` // Organization name, empty for individuals
	Status           CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName      string         `gorm:"type:varchar(100)"`
	Phone            string         `gorm:"type:varchar(50)"`
	Email            string         `gorm:"type:varchar(200);index"`
	Notes            string         `gorm:"type:text"`
	LedgerCustomerID *int64         `gorm:"uniqueIndex"` // Counterpart ID in the billing ledger, nil when unlinked
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name, companyName string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		CompanyName:       strings.TrimSpace(companyName),
		Status:            CustomerStatusActive,
	}, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, companyName string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if len(companyName) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.CompanyName = strings.TrimSpace(companyName)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes on the customer
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Archive marks the customer as archived
func (c *Customer) Archive() {
	c.Status = CustomerStatusArchived
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// LinkLedgerCustomer records the customer's counterpart ID in the billing
// ledger. Overwrites any previous link.
func (c *Customer) LinkLedgerCustomer(ledgerCustomerID int64) error {
	if ledgerCustomerID <= 0 {
		return shared.NewDomainError("INVALID_LEDGER_ID", "Ledger customer ID must be positive")
	}

	c.LedgerCustomerID = &ledgerCustomerID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// UnlinkLedgerCustomer clears the ledger counterpart link
func (c *Customer) UnlinkLedgerCustomer() {
	c.LedgerCustomerID = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsLinkedTo reports whether the customer is linked to the given ledger counterpart
func (c *Customer) IsLinkedTo(ledgerCustomerID int64) bool {
	return c.LedgerCustomerID != nil && *c.LedgerCustomerID == ledgerCustomerID
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
