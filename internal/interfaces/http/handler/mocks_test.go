package handler

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/ledger"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByLedgerCustomerID(ctx context.Context, ledgerCustomerID int64) (*partner.Customer, error) {
	args := m.Called(ctx, ledgerCustomerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllOrdered(ctx context.Context) ([]partner.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByLedgerInvoiceID(ctx context.Context, ledgerInvoiceID int64) (*ledger.Invoice, error) {
	args := m.Called(ctx, ledgerInvoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]ledger.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]ledger.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindUnmatched(ctx context.Context) ([]ledger.UnmatchedCustomer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.UnmatchedCustomer), args.Error(1)
}

func (m *MockInvoiceRepository) Upsert(ctx context.Context, invoice *ledger.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) AssignCustomerByLedgerCustomer(ctx context.Context, ledgerCustomerID int64, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ledgerCustomerID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockSyncStatusRepository struct {
	mock.Mock
}

func (m *MockSyncStatusRepository) Get(ctx context.Context, entity ledger.SyncEntity) (*ledger.SyncStatus, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SyncStatus), args.Error(1)
}

func (m *MockSyncStatusRepository) BeginRun(ctx context.Context, entity ledger.SyncEntity, staleAfter time.Duration) (*ledger.SyncStatus, error) {
	args := m.Called(ctx, entity, staleAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SyncStatus), args.Error(1)
}

func (m *MockSyncStatusRepository) Save(ctx context.Context, status *ledger.SyncStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FetchInvoices(ctx context.Context) ([]ledger.InvoiceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.InvoiceRecord), args.Error(1)
}

func (m *MockGateway) TestConnection(ctx context.Context) (*ledger.ConnectionCheck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ConnectionCheck), args.Error(1)
}
