package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sobitas/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Reference string          `json:"reference" binding:"required,min=1,max=100"`
	Name      string          `json:"name" binding:"required,min=1,max=255"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=255"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// ProductResponse represents a product in responses
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Reference string          `json:"reference"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	QtyOnHand int64           `json:"qty_on_hand"`
	InStock   bool            `json:"in_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to a ProductResponse
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID,
		Reference: product.Reference,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		QtyOnHand: product.QtyOnHand,
		InStock:   product.InStock(),
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
