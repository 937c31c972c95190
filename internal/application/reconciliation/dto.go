package reconciliation

import (
	"time"

	"github.com/crm/backend/internal/domain/ledger"
)

// SyncOutcome summarizes what a completed sync run did
type SyncOutcome struct {
	RecordsSynced     int `json:"records_synced"`
	CustomersLinked   int `json:"customers_linked"`
	InvoicesUnmatched int `json:"invoices_unmatched"`
}

// SyncStatusView is the read model for the sync status endpoint
type SyncStatusView struct {
	Entity        string     `json:"entity"`
	State         string     `json:"state"`
	LastSyncedAt  *time.Time `json:"last_synced_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	RecordsSynced int        `json:"records_synced"`
}

func newSyncStatusView(status *ledger.SyncStatus) *SyncStatusView {
	return &SyncStatusView{
		Entity:        string(status.Entity),
		State:         string(status.State),
		LastSyncedAt:  status.LastSyncedAt,
		LastError:     status.LastError,
		RecordsSynced: status.RecordsSynced,
	}
}

// LinkCustomerResult reports the effect of a manual customer link
type LinkCustomerResult struct {
	LedgerCustomerID int64  `json:"ledger_customer_id"`
	CustomerID       string `json:"customer_id"`
	InvoicesLinked   int64  `json:"invoices_linked"`
}
