package ledger

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
)

// SyncState represents the lifecycle state of a sync run
type SyncState string

const (
	// SyncStatePending means no run has happened yet
	SyncStatePending SyncState = "pending"
	// SyncStateSyncing means a run currently holds the sync lock
	SyncStateSyncing SyncState = "syncing"
	// SyncStateSuccess means the most recent run completed
	SyncStateSuccess SyncState = "success"
	// SyncStateError means the most recent run failed
	SyncStateError SyncState = "error"
)

// IsValid returns true if the state is one of the known states
func (s SyncState) IsValid() bool {
	switch s {
	case SyncStatePending, SyncStateSyncing, SyncStateSuccess, SyncStateError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the state
func (s SyncState) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving to next is a legal transition.
// A run may start from any settled state; only a running sync may settle.
func (s SyncState) CanTransitionTo(next SyncState) bool {
	switch s {
	case SyncStatePending, SyncStateSuccess, SyncStateError:
		return next == SyncStateSyncing
	case SyncStateSyncing:
		return next == SyncStateSuccess || next == SyncStateError
	default:
		return false
	}
}

// SyncEntity names a category of records covered by reconciliation
type SyncEntity string

const (
	// SyncEntityInvoices is the invoice mirror sync
	SyncEntityInvoices SyncEntity = "invoices"
)

// ErrSyncAlreadyRunning is returned when a run is requested while
// another run holds the sync lock.
var ErrSyncAlreadyRunning = shared.NewDomainError("SYNC_RUNNING", "A sync run is already in progress")

// SyncStatus tracks reconciliation state for one entity category. It
// reflects the most recent run only; the record doubles as the run lock
// because the transition into syncing is exclusive.
type SyncStatus struct {
	shared.BaseEntity
	Entity        SyncEntity `gorm:"type:varchar(50);not null;uniqueIndex"`
	State         SyncState  `gorm:"type:varchar(20);not null;default:'pending'"`
	LastSyncedAt  *time.Time
	LastError     string `gorm:"type:text"`
	RecordsSynced int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SyncStatus) TableName() string {
	return "sync_statuses"
}

// NewSyncStatus creates a pending status record for an entity category
func NewSyncStatus(entity SyncEntity) *SyncStatus {
	return &SyncStatus{
		BaseEntity: shared.NewBaseEntity(),
		Entity:     entity,
		State:      SyncStatePending,
	}
}

// Begin moves the record into syncing, claiming the run lock
func (s *SyncStatus) Begin() error {
	if !s.State.CanTransitionTo(SyncStateSyncing) {
		if s.State == SyncStateSyncing {
			return ErrSyncAlreadyRunning
		}
		return shared.ErrInvalidState
	}
	s.State = SyncStateSyncing
	s.LastError = ""
	s.Touch()
	return nil
}

// Complete settles a running sync as successful
func (s *SyncStatus) Complete(finishedAt time.Time, recordsSynced int) error {
	if !s.State.CanTransitionTo(SyncStateSuccess) {
		return shared.ErrInvalidState
	}
	s.State = SyncStateSuccess
	s.LastSyncedAt = &finishedAt
	s.LastError = ""
	s.RecordsSynced = recordsSynced
	s.Touch()
	return nil
}

// Fail settles a running sync as failed, recording the cause verbatim
func (s *SyncStatus) Fail(message string) error {
	if !s.State.CanTransitionTo(SyncStateError) {
		return shared.ErrInvalidState
	}
	s.State = SyncStateError
	s.LastError = message
	s.Touch()
	return nil
}

// IsStale reports whether a syncing record has been held longer than
// the staleness timeout, which means its run died without settling.
func (s *SyncStatus) IsStale(now time.Time, staleAfter time.Duration) bool {
	return s.State == SyncStateSyncing && now.Sub(s.UpdatedAt) > staleAfter
}
