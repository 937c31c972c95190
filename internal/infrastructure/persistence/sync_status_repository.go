package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/crm/backend/internal/domain/ledger"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSyncStatusRepository implements SyncStatusRepository using GORM
type GormSyncStatusRepository struct {
	db *gorm.DB
}

var _ ledger.SyncStatusRepository = (*GormSyncStatusRepository)(nil)

// NewGormSyncStatusRepository creates a new GormSyncStatusRepository
func NewGormSyncStatusRepository(db *gorm.DB) *GormSyncStatusRepository {
	return &GormSyncStatusRepository{db: db}
}

// Get returns the status record for an entity, creating a pending
// record on first sight.
func (r *GormSyncStatusRepository) Get(ctx context.Context, entity ledger.SyncEntity) (*ledger.SyncStatus, error) {
	if err := r.ensureExists(ctx, entity); err != nil {
		return nil, err
	}

	var model models.SyncStatusModel
	if err := r.db.WithContext(ctx).
		Where("entity = ?", entity).
		First(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// BeginRun atomically moves the status record into syncing. The guarded
// UPDATE is the mutual exclusion for sync runs: it only matches a row
// that is not currently syncing, or whose syncing run went quiet for
// longer than staleAfter.
func (r *GormSyncStatusRepository) BeginRun(ctx context.Context, entity ledger.SyncEntity, staleAfter time.Duration) (*ledger.SyncStatus, error) {
	if err := r.ensureExists(ctx, entity); err != nil {
		return nil, err
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.SyncStatusModel{}).
		Where("entity = ?", entity).
		Where("state <> ? OR updated_at < ?", ledger.SyncStateSyncing, now.Add(-staleAfter)).
		Updates(map[string]interface{}{
			"state":      ledger.SyncStateSyncing,
			"last_error": "",
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ledger.ErrSyncAlreadyRunning
	}

	var model models.SyncStatusModel
	if err := r.db.WithContext(ctx).
		Where("entity = ?", entity).
		First(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a settled or updated status record
func (r *GormSyncStatusRepository) Save(ctx context.Context, status *ledger.SyncStatus) error {
	model := models.SyncStatusModelFromDomain(status)
	return r.db.WithContext(ctx).Save(model).Error
}

// ensureExists seeds a pending record for the entity if none exists
func (r *GormSyncStatusRepository) ensureExists(ctx context.Context, entity ledger.SyncEntity) error {
	seed := models.SyncStatusModelFromDomain(ledger.NewSyncStatus(entity))
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity"}},
			DoNothing: true,
		}).
		Create(seed).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return nil
}
