package models

import (
	"github.com/crm/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Name             string                 `gorm:"type:varchar(200);not null;index"`
	CompanyName      string                 `gorm:"type:varchar(200);index"`
	Status           partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName      string                 `gorm:"type:varchar(100)"`
	Phone            string                 `gorm:"type:varchar(50)"`
	Email            string                 `gorm:"type:varchar(200);index"`
	Notes            string                 `gorm:"type:text"`
	LedgerCustomerID *int64                 `gorm:"uniqueIndex"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		CompanyName:       m.CompanyName,
		Status:            m.Status,
		ContactName:       m.ContactName,
		Phone:             m.Phone,
		Email:             m.Email,
		Notes:             m.Notes,
		LedgerCustomerID:  m.LedgerCustomerID,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.CompanyName = c.CompanyName
	m.Status = c.Status
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Notes = c.Notes
	m.LedgerCustomerID = c.LedgerCustomerID
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
