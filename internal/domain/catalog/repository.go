package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/sobitas/backend/internal/domain/shared"
)

// ProductRepository persists products. Stock mutation does NOT go through
// here; the sales stock ledger is the only writer of QtyOnHand.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByReference(ctx context.Context, reference string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	// Update persists header changes guarded by the product's version;
	// a stale version yields ErrConcurrencyConflict. QtyOnHand is never
	// written here.
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
