package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway errors. Adapters wrap these with %w so callers can classify
// upstream failures without knowing the transport.
var (
	// ErrGatewayUnavailable indicates the ledger could not be reached
	ErrGatewayUnavailable = errors.New("ledger gateway unavailable")
	// ErrGatewayAuth indicates the ledger rejected our credentials
	ErrGatewayAuth = errors.New("ledger gateway authentication failed")
	// ErrGatewayRequest indicates the ledger answered with an error status
	ErrGatewayRequest = errors.New("ledger gateway request failed")
	// ErrGatewayResponse indicates the ledger answered with an unparseable body
	ErrGatewayResponse = errors.New("ledger gateway invalid response")
)

// InvoiceRecord is one invoice as reported by the external billing
// ledger, already decoded from the wire format and carrying ledger
// identifiers rather than local ones.
type InvoiceRecord struct {
	LedgerInvoiceID  int64
	LedgerCustomerID int64
	CustomerName     string
	Number           string
	Subject          string
	Status           InvoiceStatus
	Currency         string
	Amount           decimal.Decimal
	AmountDue        decimal.Decimal
	IssueDate        time.Time
	DueDate          *time.Time
	PaidDate         *time.Time
	Notes            string
}

// ConnectionCheck is the result of probing the ledger account
type ConnectionCheck struct {
	OK          bool   `json:"ok"`
	AccountName string `json:"account_name,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Gateway is the outbound port to the external billing ledger
type Gateway interface {
	// FetchInvoices retrieves the complete invoice set, following
	// pagination internally. It returns either every page or an error;
	// a partial result is never returned.
	FetchInvoices(ctx context.Context) ([]InvoiceRecord, error)

	// TestConnection verifies credentials and reachability without
	// mutating anything on either side.
	TestConnection(ctx context.Context) (*ConnectionCheck, error)
}
