package ledger

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnmatchedCustomer aggregates the mirrored invoices of one ledger
// customer that no local customer has claimed yet.
type UnmatchedCustomer struct {
	LedgerCustomerID   int64           `json:"ledger_customer_id"`
	LedgerCustomerName string          `json:"ledger_customer_name"`
	InvoiceCount       int64           `json:"invoice_count"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
}

// InvoiceRepository defines the interface for ledger invoice mirror persistence
type InvoiceRepository interface {
	// FindByID finds an invoice mirror by its local ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByLedgerInvoiceID finds an invoice mirror by its ledger identity
	FindByLedgerInvoiceID(ctx context.Context, ledgerInvoiceID int64) (*Invoice, error)

	// FindAll finds invoice mirrors matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// FindByCustomer finds invoice mirrors linked to a local customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindUnmatched aggregates unlinked invoices per ledger customer,
	// ordered by ledger customer ID.
	FindUnmatched(ctx context.Context) ([]UnmatchedCustomer, error)

	// Upsert inserts the mirror or, when a row with the same ledger
	// invoice ID exists, overwrites its mirrored fields and customer
	// link in a single atomic statement.
	Upsert(ctx context.Context, invoice *Invoice) error

	// Save updates a previously loaded invoice mirror
	Save(ctx context.Context, invoice *Invoice) error

	// AssignCustomerByLedgerCustomer links every invoice of the given
	// ledger customer to the local customer, returning the number of
	// rows updated.
	AssignCustomerByLedgerCustomer(ctx context.Context, ledgerCustomerID int64, customerID uuid.UUID) (int64, error)

	// Count counts invoice mirrors matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
