package partner

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
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

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer with contact info", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := service.Create(ctx, CreateCustomerRequest{
			Name:        "Acme Corp",
			CompanyName: "Acme Corporation",
			ContactName: "Jane Doe",
			Phone:       "+1 555 0100",
			Email:       "jane@acme.example.com",
			Notes:       "key account",
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", resp.Name)
		assert.Equal(t, "Acme Corporation", resp.CompanyName)
		assert.Equal(t, "jane@acme.example.com", resp.Email)
		assert.Equal(t, "active", resp.Status)
		assert.Nil(t, resp.LedgerCustomerID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		_, err := service.Create(ctx, CreateCustomerRequest{Name: "   "})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		_, err := service.Create(ctx, CreateCustomerRequest{
			Name:  "Acme Corp",
			Email: "not-an-email",
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestCustomerService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns customer by ID", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customer, err := partner.NewCustomer("Globex", "")
		require.NoError(t, err)
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		resp, err := service.Get(ctx, customer.ID)

		require.NoError(t, err)
		assert.Equal(t, customer.ID, resp.ID)
		assert.Equal(t, "Globex", resp.Name)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Get(ctx, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	a, err := partner.NewCustomer("Alpha", "")
	require.NoError(t, err)
	b, err := partner.NewCustomer("Beta", "Beta LLC")
	require.NoError(t, err)

	filter := shared.Filter{Page: 1, PageSize: 20}
	repo.On("FindAll", ctx, filter).Return([]partner.Customer{*a, *b}, nil)
	repo.On("Count", ctx, filter).Return(int64(2), nil)

	result, err := service.List(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, "Alpha", result.Items[0].Name)
	assert.Equal(t, "Beta LLC", result.Items[1].CompanyName)
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates basic info and contact", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customer, err := partner.NewCustomer("Old Name", "")
		require.NoError(t, err)
		originalVersion := customer.Version

		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)

		resp, err := service.Update(ctx, customer.ID, UpdateCustomerRequest{
			Name:        "New Name",
			CompanyName: "New Co",
			Email:       "contact@newco.example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
		assert.Equal(t, "New Co", resp.CompanyName)
		assert.Greater(t, customer.Version, originalVersion)
		repo.AssertExpectations(t)
	})

	t.Run("does not save when validation fails", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customer, err := partner.NewCustomer("Valid", "")
		require.NoError(t, err)
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err = service.Update(ctx, customer.ID, UpdateCustomerRequest{Name: ""})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customer, err := partner.NewCustomer("Doomed", "")
		require.NoError(t, err)
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("Delete", ctx, customer.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, customer.ID))
		repo.AssertExpectations(t)
	})

	t.Run("returns not found for missing customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete")
	})
}
