package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sobitas/backend/internal/domain/catalog"
	"github.com/sobitas/backend/internal/domain/shared"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByReference(ctx context.Context, reference string) (*catalog.Product, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("REF-1", "Whey Protein 2kg", decimal.NewFromInt(120))
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByReference", mock.Anything, "REF-1").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	svc := NewProductService(repo, zap.NewNop())
	resp, err := svc.Create(context.Background(), CreateProductRequest{
		Reference: "REF-1",
		Name:      "Whey Protein 2kg",
		UnitPrice: decimal.NewFromInt(120),
	})

	require.NoError(t, err)
	assert.Equal(t, "REF-1", resp.Reference)
	assert.False(t, resp.InStock)
	repo.AssertExpectations(t)
}

func TestProductService_Create_DuplicateReference(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByReference", mock.Anything, "REF-1").Return(newProduct(t), nil)

	svc := NewProductService(repo, zap.NewNop())
	_, err := svc.Create(context.Background(), CreateProductRequest{
		Reference: "REF-1",
		Name:      "Whey Protein 2kg",
		UnitPrice: decimal.NewFromInt(120),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_REFERENCE", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Update(t *testing.T) {
	product := newProduct(t)
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Update", mock.Anything, product).Return(nil)

	svc := NewProductService(repo, zap.NewNop())
	name := "Whey Protein 2kg Vanille"
	price := decimal.NewFromInt(130)
	resp, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{
		Name:      &name,
		UnitPrice: &price,
	})

	require.NoError(t, err)
	assert.Equal(t, "Whey Protein 2kg Vanille", resp.Name)
	assert.True(t, resp.UnitPrice.Equal(price))
	repo.AssertExpectations(t)
}

func TestProductService_Update_ConcurrencyConflictSurfaces(t *testing.T) {
	product := newProduct(t)
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Update", mock.Anything, product).Return(shared.ErrConcurrencyConflict)

	svc := NewProductService(repo, zap.NewNop())
	name := "renamed"
	_, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{Name: &name})

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestProductService_Update_RejectsNegativePrice(t *testing.T) {
	product := newProduct(t)
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	svc := NewProductService(repo, zap.NewNop())
	price := decimal.NewFromInt(-5)
	_, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{UnitPrice: &price})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	repo := new(MockProductRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	svc := NewProductService(repo, zap.NewNop())
	assert.ErrorIs(t, svc.Delete(context.Background(), id), shared.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
