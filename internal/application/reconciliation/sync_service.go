package reconciliation

import (
	"context"
	"sync"
	"time"

	"github.com/crm/backend/internal/domain/ledger"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultStaleAfter = 30 * time.Minute
	defaultWorkers    = 4
)

// SyncConfig tunes a sync run
type SyncConfig struct {
	// StaleAfter is how long a syncing record may go without progress
	// before a new run may take over its lock
	StaleAfter time.Duration
	// Workers is the number of concurrent invoice processors
	Workers int
}

func (c SyncConfig) withDefaults() SyncConfig {
	if c.StaleAfter <= 0 {
		c.StaleAfter = defaultStaleAfter
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	return c
}

// SyncService reconciles the local invoice mirror with the external
// billing ledger. A run fetches the full invoice set, resolves each
// invoice to a local customer through the run-scoped match cache, and
// upserts the mirror rows. At most one run is active at a time; the
// sync status record is the lock.
type SyncService struct {
	gateway   ledger.Gateway
	customers partner.CustomerRepository
	invoices  ledger.InvoiceRepository
	statuses  ledger.SyncStatusRepository
	config    SyncConfig
	logger    *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	gateway ledger.Gateway,
	customers partner.CustomerRepository,
	invoices ledger.InvoiceRepository,
	statuses ledger.SyncStatusRepository,
	config SyncConfig,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		gateway:   gateway,
		customers: customers,
		invoices:  invoices,
		statuses:  statuses,
		config:    config.withDefaults(),
		logger:    logger,
	}
}

// Run executes one sync run. It returns ledger.ErrSyncAlreadyRunning
// when another run holds the lock. Any failure after the lock is
// claimed settles the status record as error with the cause recorded.
func (s *SyncService) Run(ctx context.Context) (*SyncOutcome, error) {
	status, err := s.statuses.BeginRun(ctx, ledger.SyncEntityInvoices, s.config.StaleAfter)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sync run started", zap.String("entity", string(ledger.SyncEntityInvoices)))

	outcome, runErr := s.execute(ctx)
	if runErr != nil {
		s.logger.Error("sync run failed", zap.Error(runErr))
		if ferr := status.Fail(runErr.Error()); ferr != nil {
			s.logger.Error("could not settle sync status", zap.Error(ferr))
		} else if serr := s.statuses.Save(ctx, status); serr != nil {
			s.logger.Error("could not persist sync status", zap.Error(serr))
		}
		return nil, runErr
	}

	if err := status.Complete(time.Now(), outcome.RecordsSynced); err != nil {
		return nil, err
	}
	if err := s.statuses.Save(ctx, status); err != nil {
		// The row keeps state syncing until the staleness timeout
		// releases it, so make the stuck lock visible to operators.
		s.logger.Error("could not persist completed sync status, record stays syncing until the stale takeover",
			zap.String("entity", string(ledger.SyncEntityInvoices)),
			zap.Duration("stale_after", s.config.StaleAfter),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("sync run completed",
		zap.Int("records_synced", outcome.RecordsSynced),
		zap.Int("customers_linked", outcome.CustomersLinked),
		zap.Int("invoices_unmatched", outcome.InvoicesUnmatched))

	return outcome, nil
}

// execute performs the fetch-resolve-upsert pipeline under the run lock
func (s *SyncService) execute(ctx context.Context) (*SyncOutcome, error) {
	records, err := s.gateway.FetchInvoices(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := s.customers.FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}

	// Seed the cache with links persisted by earlier runs or manual
	// overrides so those customers are never re-matched by name.
	cache := ledger.NewMatchCache()
	for i := range candidates {
		if candidates[i].LedgerCustomerID != nil {
			cache.StoreMatch(*candidates[i].LedgerCustomerID, candidates[i].ID)
		}
	}

	run := &syncRun{
		service:    s,
		cache:      cache,
		candidates: candidates,
		syncedAt:   time.Now(),
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := s.config.Workers
	if workers > len(records) {
		workers = len(records)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan ledger.InvoiceRecord)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				if runCtx.Err() != nil {
					continue
				}
				if err := run.processRecord(runCtx, rec); err != nil {
					run.fail(err)
					cancel()
				}
			}
		}()
	}

	for _, rec := range records {
		jobs <- rec
	}
	close(jobs)
	wg.Wait()

	if err := run.firstError(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	linked, unmatched := run.counts()
	return &SyncOutcome{
		RecordsSynced:     len(records),
		CustomersLinked:   linked,
		InvoicesUnmatched: unmatched,
	}, nil
}

// syncRun carries the mutable state of one run across workers
type syncRun struct {
	service    *SyncService
	cache      *ledger.MatchCache
	candidates []partner.Customer
	syncedAt   time.Time

	mu        sync.Mutex
	err       error
	linked    int
	unmatched int
}

func (r *syncRun) fail(err error) {
	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
}

func (r *syncRun) firstError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *syncRun) counts() (linked, unmatched int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.linked, r.unmatched
}

// processRecord resolves one fetched invoice to a customer and upserts
// its mirror row.
func (r *syncRun) processRecord(ctx context.Context, rec ledger.InvoiceRecord) error {
	var resolveErr error
	customerID, matched := r.cache.Resolve(rec.LedgerCustomerID, func() (uuid.UUID, bool) {
		match := ledger.FindMatch(rec.CustomerName, r.candidates)
		if match == nil {
			return uuid.Nil, false
		}

		// Work on a copy so the shared candidate slice stays immutable
		// for concurrently running matchers.
		linked := *match
		if !linked.IsLinkedTo(rec.LedgerCustomerID) {
			if err := linked.LinkLedgerCustomer(rec.LedgerCustomerID); err != nil {
				resolveErr = err
				return uuid.Nil, false
			}
			if err := r.service.customers.Save(ctx, &linked); err != nil {
				resolveErr = err
				return uuid.Nil, false
			}
			r.mu.Lock()
			r.linked++
			r.mu.Unlock()
			r.service.logger.Info("customer linked to ledger counterpart",
				zap.String("customer_id", linked.ID.String()),
				zap.Int64("ledger_customer_id", rec.LedgerCustomerID))
		}
		return linked.ID, true
	})
	if resolveErr != nil {
		return resolveErr
	}

	var assignee *uuid.UUID
	if matched {
		id := customerID
		assignee = &id
	}

	invoice, err := ledger.NewInvoiceFromRecord(rec, assignee, r.syncedAt)
	if err != nil {
		return err
	}
	if err := r.service.invoices.Upsert(ctx, invoice); err != nil {
		return err
	}

	if !matched {
		r.mu.Lock()
		r.unmatched++
		r.mu.Unlock()
	}
	return nil
}
