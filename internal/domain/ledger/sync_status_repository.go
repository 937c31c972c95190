package ledger

import (
	"context"
	"time"
)

// SyncStatusRepository defines the interface for sync status persistence
type SyncStatusRepository interface {
	// Get returns the status record for an entity category, creating a
	// pending record if none exists yet.
	Get(ctx context.Context, entity SyncEntity) (*SyncStatus, error)

	// BeginRun atomically claims the run lock by moving the record into
	// syncing. Returns ErrSyncAlreadyRunning when another run holds the
	// lock, unless that run has been syncing longer than staleAfter, in
	// which case the stale lock is taken over. Creates the record when
	// it does not exist.
	BeginRun(ctx context.Context, entity SyncEntity, staleAfter time.Duration) (*SyncStatus, error)

	// Save persists a settled or updated status record
	Save(ctx context.Context, status *SyncStatus) error
}
