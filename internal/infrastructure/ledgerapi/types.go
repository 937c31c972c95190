package ledgerapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// invoicePage is one page of the ledger's invoice listing
type invoicePage struct {
	Invoices []invoicePayload `json:"invoices"`
	Page     int              `json:"page"`
	HasMore  bool             `json:"has_more"`
}

// invoicePayload is the ledger's wire representation of an invoice
type invoicePayload struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Number       string          `json:"number"`
	Subject      string          `json:"subject"`
	Status       string          `json:"status"`
	Currency     string          `json:"currency"`
	Amount       decimal.Decimal `json:"amount"`
	AmountDue    decimal.Decimal `json:"amount_due"`
	IssueDate    apiDate         `json:"issue_date"`
	DueDate      *apiDate        `json:"due_date"`
	PaidDate     *apiDate        `json:"paid_date"`
	Notes        string          `json:"notes"`
}

// accountPayload is the ledger's account probe response
type accountPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p invoicePayload) toRecord() (ledger.InvoiceRecord, error) {
	status, err := mapInvoiceStatus(p.Status)
	if err != nil {
		return ledger.InvoiceRecord{}, err
	}

	return ledger.InvoiceRecord{
		LedgerInvoiceID:  p.ID,
		LedgerCustomerID: p.CustomerID,
		CustomerName:     p.CustomerName,
		Number:           p.Number,
		Subject:          p.Subject,
		Status:           status,
		Currency:         p.Currency,
		Amount:           p.Amount,
		AmountDue:        p.AmountDue,
		IssueDate:        p.IssueDate.Time,
		DueDate:          p.DueDate.timePtr(),
		PaidDate:         p.PaidDate.timePtr(),
		Notes:            p.Notes,
	}, nil
}

// mapInvoiceStatus translates the ledger's status vocabulary into ours
func mapInvoiceStatus(raw string) (ledger.InvoiceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "draft":
		return ledger.InvoiceStatusDraft, nil
	case "open", "sent", "viewed":
		return ledger.InvoiceStatusOpen, nil
	case "partial", "partially_paid":
		return ledger.InvoiceStatusPartial, nil
	case "paid":
		return ledger.InvoiceStatusPaid, nil
	case "overdue", "past_due":
		return ledger.InvoiceStatusOverdue, nil
	case "void", "written_off":
		return ledger.InvoiceStatusVoid, nil
	default:
		return "", fmt.Errorf("%w: unknown invoice status %q", ledger.ErrGatewayResponse, raw)
	}
}

const apiDateLayout = "2006-01-02"

// apiDate parses the ledger's date-only timestamps
type apiDate struct {
	time.Time
}

func (d *apiDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := time.Parse(apiDateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d *apiDate) timePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
