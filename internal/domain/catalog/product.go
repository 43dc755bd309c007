package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sobitas/backend/internal/domain/shared"
)

// Product represents a sellable product. Only its stock level and reference
// price matter to the document pipeline; catalog browsing, images and
// descriptions live elsewhere.
type Product struct {
	shared.BaseAggregateRoot
	Reference string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	// QtyOnHand is mutated exclusively through the stock ledger.
	QtyOnHand int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(reference, name string, unitPrice decimal.Decimal) (*Product, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Product reference cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         strings.ToUpper(reference),
		Name:              name,
		UnitPrice:         unitPrice,
	}, nil
}

// UpdatePrice sets a new reference unit price
func (p *Product) UpdatePrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now()
	return nil
}

// InStock returns true when on-hand quantity is positive
func (p *Product) InStock() bool {
	return p.QtyOnHand > 0
}
