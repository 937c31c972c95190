package models

import (
	"time"

	"github.com/crm/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerInvoiceModel is the persistence model for the Invoice mirror.
type LedgerInvoiceModel struct {
	AggregateModel
	LedgerInvoiceID    int64                `gorm:"not null;uniqueIndex"`
	LedgerCustomerID   int64                `gorm:"not null;index"`
	LedgerCustomerName string               `gorm:"type:varchar(200);not null"`
	CustomerID         *uuid.UUID           `gorm:"type:uuid;index"`
	Number             string               `gorm:"type:varchar(100);not null"`
	Subject            string               `gorm:"type:varchar(500)"`
	Status             ledger.InvoiceStatus `gorm:"type:varchar(20);not null"`
	Currency           string               `gorm:"type:varchar(10);not null;default:'USD'"`
	Amount             decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	AmountDue          decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	IssueDate          time.Time            `gorm:"not null"`
	DueDate            *time.Time
	PaidDate           *time.Time
	Notes              string    `gorm:"type:text"`
	SyncedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerInvoiceModel) TableName() string {
	return "ledger_invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *LedgerInvoiceModel) ToDomain() *ledger.Invoice {
	return &ledger.Invoice{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		LedgerInvoiceID:    m.LedgerInvoiceID,
		LedgerCustomerID:   m.LedgerCustomerID,
		LedgerCustomerName: m.LedgerCustomerName,
		CustomerID:         m.CustomerID,
		Number:             m.Number,
		Subject:            m.Subject,
		Status:             m.Status,
		Currency:           m.Currency,
		Amount:             m.Amount,
		AmountDue:          m.AmountDue,
		IssueDate:          m.IssueDate,
		DueDate:            m.DueDate,
		PaidDate:           m.PaidDate,
		Notes:              m.Notes,
		SyncedAt:           m.SyncedAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *LedgerInvoiceModel) FromDomain(i *ledger.Invoice) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.LedgerInvoiceID = i.LedgerInvoiceID
	m.LedgerCustomerID = i.LedgerCustomerID
	m.LedgerCustomerName = i.LedgerCustomerName
	m.CustomerID = i.CustomerID
	m.Number = i.Number
	m.Subject = i.Subject
	m.Status = i.Status
	m.Currency = i.Currency
	m.Amount = i.Amount
	m.AmountDue = i.AmountDue
	m.IssueDate = i.IssueDate
	m.DueDate = i.DueDate
	m.PaidDate = i.PaidDate
	m.Notes = i.Notes
	m.SyncedAt = i.SyncedAt
}

// LedgerInvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func LedgerInvoiceModelFromDomain(i *ledger.Invoice) *LedgerInvoiceModel {
	m := &LedgerInvoiceModel{}
	m.FromDomain(i)
	return m
}

// SyncStatusModel is the persistence model for the SyncStatus entity.
type SyncStatusModel struct {
	BaseModel
	Entity        ledger.SyncEntity `gorm:"type:varchar(50);not null;uniqueIndex"`
	State         ledger.SyncState  `gorm:"type:varchar(20);not null;default:'pending'"`
	LastSyncedAt  *time.Time
	LastError     string `gorm:"type:text"`
	RecordsSynced int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SyncStatusModel) TableName() string {
	return "sync_statuses"
}

// ToDomain converts the persistence model to a domain SyncStatus entity.
func (m *SyncStatusModel) ToDomain() *ledger.SyncStatus {
	return &ledger.SyncStatus{
		BaseEntity:    m.BaseModel.ToDomain(),
		Entity:        m.Entity,
		State:         m.State,
		LastSyncedAt:  m.LastSyncedAt,
		LastError:     m.LastError,
		RecordsSynced: m.RecordsSynced,
	}
}

// FromDomain populates the persistence model from a domain SyncStatus entity.
func (m *SyncStatusModel) FromDomain(s *ledger.SyncStatus) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Entity = s.Entity
	m.State = s.State
	m.LastSyncedAt = s.LastSyncedAt
	m.LastError = s.LastError
	m.RecordsSynced = s.RecordsSynced
}

// SyncStatusModelFromDomain creates a new persistence model from a domain SyncStatus.
func SyncStatusModelFromDomain(s *ledger.SyncStatus) *SyncStatusModel {
	m := &SyncStatusModel{}
	m.FromDomain(s)
	return m
}
