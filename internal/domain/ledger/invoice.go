package ledger

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of a ledger invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusOpen    InvoiceStatus = "open"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// IsValid reports whether the status is one of the known lifecycle states
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusOpen, InvoiceStatusPartial,
		InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusVoid:
		return true
	default:
		return false
	}
}

// Invoice is the local read-only mirror of an invoice that lives in the
// external billing ledger. The ledger owns the invoice; sync runs
// refresh the mirror and the only locally writable fact is which
// customer it belongs to. Identified by LedgerInvoiceID for upserts.
type Invoice struct {
	shared.BaseAggregateRoot
	LedgerInvoiceID    int64           `gorm:"not null;uniqueIndex"`
	LedgerCustomerID   int64           `gorm:"not null;index"`
	LedgerCustomerName string          `gorm:"type:varchar(200);not null"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index"` // Local customer, nil while unmatched
	Number             string          `gorm:"type:varchar(100);not null"`
	Subject            string          `gorm:"type:varchar(500)"`
	Status             InvoiceStatus   `gorm:"type:varchar(20);not null"`
	Currency           string          `gorm:"type:varchar(10);not null;default:'USD'"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountDue          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IssueDate          time.Time       `gorm:"not null"`
	DueDate            *time.Time
	PaidDate           *time.Time
	Notes              string    `gorm:"type:text"`
	SyncedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "ledger_invoices"
}

// NewInvoiceFromRecord builds a mirror invoice from a fetched ledger
// record and the customer resolution decided for it.
func NewInvoiceFromRecord(rec InvoiceRecord, customerID *uuid.UUID, syncedAt time.Time) (*Invoice, error) {
	if rec.LedgerInvoiceID <= 0 {
		return nil, shared.NewDomainError("INVALID_LEDGER_ID", "Ledger invoice ID must be positive")
	}
	if rec.LedgerCustomerID <= 0 {
		return nil, shared.NewDomainError("INVALID_LEDGER_ID", "Ledger customer ID must be positive")
	}
	if !rec.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown invoice status: "+string(rec.Status))
	}

	currency := rec.Currency
	if currency == "" {
		currency = "USD"
	}

	return &Invoice{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		LedgerInvoiceID:    rec.LedgerInvoiceID,
		LedgerCustomerID:   rec.LedgerCustomerID,
		LedgerCustomerName: rec.CustomerName,
		CustomerID:         customerID,
		Number:             rec.Number,
		Subject:            rec.Subject,
		Status:             rec.Status,
		Currency:           currency,
		Amount:             rec.Amount,
		AmountDue:          rec.AmountDue,
		IssueDate:          rec.IssueDate,
		DueDate:            rec.DueDate,
		PaidDate:           rec.PaidDate,
		Notes:              rec.Notes,
		SyncedAt:           syncedAt,
	}, nil
}

// AssignCustomer links the mirror to a local customer
func (i *Invoice) AssignCustomer(customerID uuid.UUID) {
	i.CustomerID = &customerID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// IsMatched reports whether the invoice is linked to a local customer
func (i *Invoice) IsMatched() bool {
	return i.CustomerID != nil
}
