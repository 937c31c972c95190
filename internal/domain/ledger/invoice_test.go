package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() InvoiceRecord {
	due := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	return InvoiceRecord{
		LedgerInvoiceID:  1001,
		LedgerCustomerID: 77,
		CustomerName:     "Acme, Inc.",
		Number:           "INV-1001",
		Subject:          "January retainer",
		Status:           InvoiceStatusOpen,
		Currency:         "USD",
		Amount:           decimal.RequireFromString("1500.00"),
		AmountDue:        decimal.RequireFromString("1500.00"),
		IssueDate:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:          &due,
	}
}

func TestNewInvoiceFromRecord(t *testing.T) {
	t.Run("builds a matched mirror", func(t *testing.T) {
		customerID := uuid.New()
		syncedAt := time.Now()

		inv, err := NewInvoiceFromRecord(sampleRecord(), &customerID, syncedAt)

		require.NoError(t, err)
		assert.Equal(t, int64(1001), inv.LedgerInvoiceID)
		assert.Equal(t, int64(77), inv.LedgerCustomerID)
		assert.Equal(t, "Acme, Inc.", inv.LedgerCustomerName)
		require.NotNil(t, inv.CustomerID)
		assert.Equal(t, customerID, *inv.CustomerID)
		assert.Equal(t, InvoiceStatusOpen, inv.Status)
		assert.Equal(t, syncedAt, inv.SyncedAt)
		assert.True(t, inv.IsMatched())
	})

	t.Run("builds an unmatched mirror", func(t *testing.T) {
		inv, err := NewInvoiceFromRecord(sampleRecord(), nil, time.Now())

		require.NoError(t, err)
		assert.Nil(t, inv.CustomerID)
		assert.False(t, inv.IsMatched())
	})

	t.Run("defaults currency to USD", func(t *testing.T) {
		rec := sampleRecord()
		rec.Currency = ""

		inv, err := NewInvoiceFromRecord(rec, nil, time.Now())
		require.NoError(t, err)
		assert.Equal(t, "USD", inv.Currency)
	})

	t.Run("rejects missing ledger identity", func(t *testing.T) {
		rec := sampleRecord()
		rec.LedgerInvoiceID = 0

		_, err := NewInvoiceFromRecord(rec, nil, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		rec := sampleRecord()
		rec.Status = InvoiceStatus("cancelled")

		_, err := NewInvoiceFromRecord(rec, nil, time.Now())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cancelled")
	})
}

func TestInvoiceStatusIsValid(t *testing.T) {
	valid := []InvoiceStatus{
		InvoiceStatusDraft, InvoiceStatusOpen, InvoiceStatusPartial,
		InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusVoid,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, InvoiceStatus("").IsValid())
	assert.False(t, InvoiceStatus("archived").IsValid())
}

func TestInvoiceAssignCustomer(t *testing.T) {
	inv, err := NewInvoiceFromRecord(sampleRecord(), nil, time.Now())
	require.NoError(t, err)

	customerID := uuid.New()
	inv.AssignCustomer(customerID)

	require.NotNil(t, inv.CustomerID)
	assert.Equal(t, customerID, *inv.CustomerID)
	assert.Equal(t, 2, inv.GetVersion())
}
