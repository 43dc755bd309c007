package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sobitas/backend/internal/domain/catalog"
	"github.com/sobitas/backend/internal/domain/shared"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}))
	return db
}

func buildProduct(t *testing.T, reference string, price float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(reference, "Whey Protein 2kg", decimal.NewFromFloat(price))
	require.NoError(t, err)
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := buildProduct(t, "whey-2kg", 120)
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "WHEY-2KG", found.Reference)
	assert.Equal(t, 1, found.Version)

	// Reference lookup normalizes case and whitespace.
	found, err = repo.FindByReference(ctx, "  whey-2kg ")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_DuplicateReference(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, buildProduct(t, "REF-1", 10)))

	err := repo.Save(ctx, buildProduct(t, "REF-1", 15))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_REFERENCE", domainErr.Code)
}

func TestGormProductRepository_UpdateVersionGuard(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := buildProduct(t, "REF-1", 10)
	require.NoError(t, repo.Save(ctx, product))

	product.Name = "Whey Protein 2kg Vanille"
	require.NoError(t, product.UpdatePrice(decimal.NewFromInt(12)))
	require.NoError(t, repo.Update(ctx, product))
	assert.Equal(t, 2, product.Version)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Whey Protein 2kg Vanille", found.Name)
	assert.Equal(t, 2, found.Version)

	// A writer holding the old version loses.
	stale := *found
	stale.Version = 1
	stale.Name = "stale write"
	assert.ErrorIs(t, repo.Update(ctx, &stale), shared.ErrConcurrencyConflict)

	found, err = repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Whey Protein 2kg Vanille", found.Name)
}

func TestGormProductRepository_UpdateNeverTouchesStock(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := buildProduct(t, "REF-1", 10)
	require.NoError(t, repo.Save(ctx, product))
	require.NoError(t, db.Model(&catalog.Product{}).
		Where("id = ?", product.ID).
		Update("qty_on_hand", 40).Error)

	// The in-memory copy carries a stale quantity; Update must not write it.
	product.QtyOnHand = 0
	product.Name = "renamed"
	require.NoError(t, repo.Update(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), found.QtyOnHand)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := buildProduct(t, "REF-1", 10)
	require.NoError(t, repo.Save(ctx, product))
	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)
}

func TestGormProductRepository_FindAllInStockFilter(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	inStock := buildProduct(t, "REF-1", 10)
	inStock.QtyOnHand = 5
	outOfStock := buildProduct(t, "REF-2", 20)
	require.NoError(t, repo.Save(ctx, inStock))
	require.NoError(t, repo.Save(ctx, outOfStock))

	filter := shared.DefaultFilter()
	filter.Filters = map[string]any{"in_stock": true}
	products, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "REF-1", products[0].Reference)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
