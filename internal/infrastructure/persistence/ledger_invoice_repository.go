package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/crm/backend/internal/domain/ledger"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertColumns are the mirrored fields overwritten when a sync run
// sees a ledger invoice again. The local ID and creation time survive.
var upsertColumns = []string{
	"ledger_customer_id", "ledger_customer_name", "customer_id",
	"number", "subject", "status", "currency", "amount", "amount_due",
	"issue_date", "due_date", "paid_date", "notes", "synced_at", "updated_at",
}

// GormLedgerInvoiceRepository implements InvoiceRepository using GORM
type GormLedgerInvoiceRepository struct {
	db *gorm.DB
}

var _ ledger.InvoiceRepository = (*GormLedgerInvoiceRepository)(nil)

// NewGormLedgerInvoiceRepository creates a new GormLedgerInvoiceRepository
func NewGormLedgerInvoiceRepository(db *gorm.DB) *GormLedgerInvoiceRepository {
	return &GormLedgerInvoiceRepository{db: db}
}

// FindByID finds an invoice mirror by its local ID
func (r *GormLedgerInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	var model models.LedgerInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLedgerInvoiceID finds an invoice mirror by its ledger identity
func (r *GormLedgerInvoiceRepository) FindByLedgerInvoiceID(ctx context.Context, ledgerInvoiceID int64) (*ledger.Invoice, error) {
	var model models.LedgerInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("ledger_invoice_id = ?", ledgerInvoiceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoice mirrors matching the filter
func (r *GormLedgerInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Invoice, error) {
	var invoiceModels []models.LedgerInvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LedgerInvoiceModel{}), filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(invoiceModels), nil
}

// FindByCustomer finds invoice mirrors linked to a local customer
func (r *GormLedgerInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]ledger.Invoice, error) {
	var invoiceModels []models.LedgerInvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LedgerInvoiceModel{}).Where("customer_id = ?", customerID),
		filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(invoiceModels), nil
}

// FindUnmatched aggregates unlinked invoices per ledger customer
func (r *GormLedgerInvoiceRepository) FindUnmatched(ctx context.Context) ([]ledger.UnmatchedCustomer, error) {
	var results []ledger.UnmatchedCustomer
	err := r.db.WithContext(ctx).
		Model(&models.LedgerInvoiceModel{}).
		Select("ledger_customer_id, MAX(ledger_customer_name) AS ledger_customer_name, COUNT(*) AS invoice_count, SUM(amount) AS total_amount").
		Where("customer_id IS NULL").
		Group("ledger_customer_id").
		Order("ledger_customer_id ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert inserts the mirror or overwrites the existing row with the
// same ledger invoice ID in one atomic statement.
func (r *GormLedgerInvoiceRepository) Upsert(ctx context.Context, invoice *ledger.Invoice) error {
	model := models.LedgerInvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ledger_invoice_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(model).Error
}

// Save updates a previously loaded invoice mirror
func (r *GormLedgerInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	model := models.LedgerInvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// AssignCustomerByLedgerCustomer links every invoice of the ledger
// customer to the local customer.
func (r *GormLedgerInvoiceRepository) AssignCustomerByLedgerCustomer(ctx context.Context, ledgerCustomerID int64, customerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LedgerInvoiceModel{}).
		Where("ledger_customer_id = ?", ledgerCustomerID).
		Update("customer_id", customerID)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Count counts invoice mirrors matching the filter
func (r *GormLedgerInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.LedgerInvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormLedgerInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, LedgerInvoiceSortFields, "issue_date")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("issue_date DESC, ledger_invoice_id DESC")
	}

	return query
}

func (r *GormLedgerInvoiceRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(number) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(ledger_customer_name) LIKE ?",
			pattern, pattern, pattern)
	}
	return query
}

func toDomainInvoices(invoiceModels []models.LedgerInvoiceModel) []ledger.Invoice {
	invoices := make([]ledger.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices
}
