package sales

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sobitas/backend/internal/domain/sales"
)

// Reconciler converges a document's persisted line items and the product
// stock onto a newly submitted line set. The strategy is full revert and
// recreate: every currently persisted line is reverted (stock returned) and
// dropped, then the submitted set is built from scratch and stock taken for
// it. Ran inside one transaction this is equivalent to a diff and keeps the
// totals trivially recomputable from the new set alone.
type Reconciler struct {
	ledger sales.StockLedger
}

// NewReconciler creates a Reconciler over a transaction-scoped stock ledger
func NewReconciler(ledger sales.StockLedger) *Reconciler {
	return &Reconciler{ledger: ledger}
}

// Reconcile replaces doc's line set with the submitted entries and applies
// the matching stock movements. lineTVARate is the per-line TVA percentage
// for document types with per-line VAT, zero otherwise. For types that do
// not move stock (quotations) only the line rows are replaced.
//
// All product rows touched by either the old or the new set are locked up
// front, in sorted ID order, before any mutation.
func (r *Reconciler) Reconcile(ctx context.Context, doc *sales.Document, entries []sales.LineEntry, lineTVARate decimal.Decimal) error {
	if err := sales.ValidateEntries(entries); err != nil {
		return err
	}

	movesStock := doc.Type.Describe().MovesStock
	if movesStock {
		if err := r.ledger.LockProducts(ctx, touchedProducts(doc.Lines, entries)); err != nil {
			return err
		}
		// Revert everything currently persisted before taking stock for
		// the new set, so a line whose quantity merely changed nets out
		// to exactly the new quantity.
		for _, line := range doc.Lines {
			if err := r.ledger.Increment(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
	}

	lines := make([]sales.LineItem, 0, len(entries))
	for _, entry := range entries {
		line, err := sales.NewLineItem(doc.ID, entry.ProductID, entry.Quantity, entry.UnitPrice, lineTVARate)
		if err != nil {
			return err
		}
		if movesStock {
			if err := r.ledger.Decrement(ctx, entry.ProductID, entry.Quantity); err != nil {
				return err
			}
		}
		lines = append(lines, *line)
	}

	doc.ReplaceLines(lines)
	return nil
}

// Revert returns all of doc's line stock to the shelf, used when a document
// is deleted outright.
func (r *Reconciler) Revert(ctx context.Context, doc *sales.Document) error {
	if !doc.Type.Describe().MovesStock {
		return nil
	}
	if err := r.ledger.LockProducts(ctx, touchedProducts(doc.Lines, nil)); err != nil {
		return err
	}
	for _, line := range doc.Lines {
		if err := r.ledger.Increment(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// touchedProducts returns the deduplicated union of product IDs across the
// old line set and the submitted entries, sorted for stable lock order.
func touchedProducts(old []sales.LineItem, entries []sales.LineEntry) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(old)+len(entries))
	ids := make([]uuid.UUID, 0, len(old)+len(entries))
	for _, line := range old {
		if _, ok := seen[line.ProductID]; !ok {
			seen[line.ProductID] = struct{}{}
			ids = append(ids, line.ProductID)
		}
	}
	for _, entry := range entries {
		if _, ok := seen[entry.ProductID]; !ok {
			seen[entry.ProductID] = struct{}{}
			ids = append(ids, entry.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
