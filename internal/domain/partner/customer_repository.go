package partner

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByLedgerCustomerID finds the customer linked to the given ledger counterpart
	FindByLedgerCustomerID(ctx context.Context, ledgerCustomerID int64) (*Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// FindAllOrdered returns every customer in a stable order (creation
	// time, then ID). Used by the reconciliation matcher, which depends
	// on deterministic candidate ordering.
	FindAllOrdered(ctx context.Context) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
