package reconciliation

import (
	"context"

	"github.com/crm/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

// StatusService exposes read-only reconciliation state
type StatusService struct {
	gateway  ledger.Gateway
	statuses ledger.SyncStatusRepository
	logger   *zap.Logger
}

// NewStatusService creates a new StatusService
func NewStatusService(gateway ledger.Gateway, statuses ledger.SyncStatusRepository, logger *zap.Logger) *StatusService {
	return &StatusService{
		gateway:  gateway,
		statuses: statuses,
		logger:   logger,
	}
}

// Status returns the current sync status for the invoice mirror,
// materializing a pending record when no run has ever happened.
func (s *StatusService) Status(ctx context.Context) (*SyncStatusView, error) {
	status, err := s.statuses.Get(ctx, ledger.SyncEntityInvoices)
	if err != nil {
		return nil, err
	}
	return newSyncStatusView(status), nil
}

// TestConnection probes the ledger account without touching local state
func (s *StatusService) TestConnection(ctx context.Context) (*ledger.ConnectionCheck, error) {
	check, err := s.gateway.TestConnection(ctx)
	if err != nil {
		s.logger.Warn("ledger connection check failed", zap.Error(err))
		return nil, err
	}
	return check, nil
}
