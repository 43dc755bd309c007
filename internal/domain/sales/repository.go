package sales

import (
	"context"

	"github.com/google/uuid"

	"github.com/sobitas/backend/internal/domain/shared"
)

// DocumentRepository persists Document aggregates with their line items and
// status history. The status history is append-only: implementations must
// only ever insert entries, never rewrite or delete past ones.
type DocumentRepository interface {
	// FindByID finds a document by its ID, with lines and history loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	// FindByNumber finds a document by type and assigned number
	FindByNumber(ctx context.Context, docType DocumentType, number string) (*Document, error)
	// FindAll lists documents of a type with filtering and pagination
	FindAll(ctx context.Context, docType DocumentType, filter shared.Filter) ([]Document, error)
	// Count counts documents of a type matching the filter
	Count(ctx context.Context, docType DocumentType, filter shared.Filter) (int64, error)
	// Create inserts a new document with its lines and initial history.
	// A unique-constraint violation on (type, number) is reported as
	// shared.ErrDuplicateNumber so callers can retry with a fresh number.
	Create(ctx context.Context, doc *Document) error
	// Update persists header changes, the current line set and any new
	// status history entries
	Update(ctx context.Context, doc *Document) error
	// Delete removes a document and cascades to its lines and history
	Delete(ctx context.Context, id uuid.UUID) error
}

// SequenceCounter assigns the next document number for a (type, year) pair.
// Numbers are formatted "YYYY/NNNN" and must be unique per type and year;
// the increment must be atomic so concurrent creations never collide.
// Gaps from rolled-back creations are acceptable, duplicates are not.
type SequenceCounter interface {
	Next(ctx context.Context, docType DocumentType, year int) (string, error)
}

// StockLedger is the single writer of product on-hand quantity. Both
// operations must lock the product row so concurrent documents touching the
// same product never lose updates. Callers mutating several products must
// pass them in a stable order (sorted by product ID) to avoid deadlocks.
type StockLedger interface {
	// LockProducts acquires row locks on the given products for the rest of
	// the transaction. IDs are locked in sorted order regardless of input
	// order, so two requests over overlapping product sets cannot deadlock.
	LockProducts(ctx context.Context, productIDs []uuid.UUID) error
	// Decrement removes qty units from the product's on-hand stock.
	// Whether stock may go negative is an implementation policy.
	Decrement(ctx context.Context, productID uuid.UUID, qty int64) error
	// Increment returns qty units to the product's on-hand stock
	Increment(ctx context.Context, productID uuid.UUID, qty int64) error
}
