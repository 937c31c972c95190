package reconciliation

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/ledger"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LinkService handles manual overrides of the automatic matching:
// binding a ledger customer to a local customer, re-pointing a single
// invoice, and listing what the matcher could not place.
type LinkService struct {
	customers partner.CustomerRepository
	invoices  ledger.InvoiceRepository
	logger    *zap.Logger
}

// NewLinkService creates a new LinkService
func NewLinkService(customers partner.CustomerRepository, invoices ledger.InvoiceRepository, logger *zap.Logger) *LinkService {
	return &LinkService{
		customers: customers,
		invoices:  invoices,
		logger:    logger,
	}
}

// UnmatchedCustomers lists ledger customers whose invoices no local
// customer has claimed, aggregated per ledger customer.
func (s *LinkService) UnmatchedCustomers(ctx context.Context) ([]ledger.UnmatchedCustomer, error) {
	return s.invoices.FindUnmatched(ctx)
}

// LinkCustomer binds a ledger customer to a local customer and claims
// every mirrored invoice of that ledger customer, including ones from
// earlier runs. Subsequent sync runs honor the stored link before any
// name matching. The customer's stored link is written only when the
// customer does not carry one yet.
func (s *LinkService) LinkCustomer(ctx context.Context, ledgerCustomerID int64, customerID uuid.UUID) (*LinkCustomerResult, error) {
	if ledgerCustomerID <= 0 {
		return nil, shared.NewDomainError("INVALID_LEDGER_ID", "Ledger customer ID must be positive")
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	existing, err := s.customers.FindByLedgerCustomerID(ctx, ledgerCustomerID)
	switch {
	case err == nil:
		if existing.ID != customer.ID {
			return nil, shared.NewDomainError("LEDGER_ID_TAKEN", "Ledger customer is already linked to another customer")
		}
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	// The customer's own link is written only when absent. A customer
	// already linked to a different ledger customer keeps that link so
	// an earlier automatic match stays intact; the override still claims
	// this ledger customer's invoices below.
	switch {
	case customer.IsLinkedTo(ledgerCustomerID):
	case customer.LedgerCustomerID != nil:
		s.logger.Info("existing customer ledger link preserved",
			zap.Int64("linked_ledger_customer_id", *customer.LedgerCustomerID),
			zap.Int64("ledger_customer_id", ledgerCustomerID),
			zap.String("customer_id", customer.ID.String()))
	default:
		if err := customer.LinkLedgerCustomer(ledgerCustomerID); err != nil {
			return nil, err
		}
		if err := s.customers.Save(ctx, customer); err != nil {
			return nil, err
		}
	}

	count, err := s.invoices.AssignCustomerByLedgerCustomer(ctx, ledgerCustomerID, customer.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("manual customer link applied",
		zap.Int64("ledger_customer_id", ledgerCustomerID),
		zap.String("customer_id", customer.ID.String()),
		zap.Int64("invoices_linked", count))

	return &LinkCustomerResult{
		LedgerCustomerID: ledgerCustomerID,
		CustomerID:       customer.ID.String(),
		InvoicesLinked:   count,
	}, nil
}

// LinkInvoice points a single mirrored invoice at a local customer
// without touching the customer's ledger link.
func (s *LinkService) LinkInvoice(ctx context.Context, invoiceID, customerID uuid.UUID) (*ledger.Invoice, error) {
	invoice, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	invoice.AssignCustomer(customer.ID)
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("manual invoice link applied",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("customer_id", customer.ID.String()))

	return invoice, nil
}
