package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobitas/backend/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct(" whey-2kg ", "Whey Protein 2kg", decimal.NewFromFloat(120.5))
	require.NoError(t, err)

	assert.Equal(t, "WHEY-2KG", product.Reference)
	assert.Equal(t, int64(0), product.QtyOnHand)
	assert.False(t, product.InStock())
	assert.Equal(t, 1, product.Version)
}

func TestNewProduct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		prodName  string
		price     decimal.Decimal
		code      string
	}{
		{"empty reference", "  ", "Whey", decimal.NewFromInt(10), "INVALID_REFERENCE"},
		{"empty name", "REF-1", "  ", decimal.NewFromInt(10), "INVALID_NAME"},
		{"negative price", "REF-1", "Whey", decimal.NewFromInt(-1), "INVALID_PRICE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.reference, tt.prodName, tt.price)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestUpdatePrice(t *testing.T) {
	product, err := NewProduct("REF-1", "Whey", decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, product.UpdatePrice(decimal.NewFromInt(12)))
	assert.True(t, product.UnitPrice.Equal(decimal.NewFromInt(12)))

	err = product.UpdatePrice(decimal.NewFromInt(-1))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
}

func TestInStock(t *testing.T) {
	product, err := NewProduct("REF-1", "Whey", decimal.NewFromInt(10))
	require.NoError(t, err)

	product.QtyOnHand = 3
	assert.True(t, product.InStock())
	product.QtyOnHand = -2
	assert.False(t, product.InStock())
}
