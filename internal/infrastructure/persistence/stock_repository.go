package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sobitas/backend/internal/domain/catalog"
	"github.com/sobitas/backend/internal/domain/sales"
	"github.com/sobitas/backend/internal/domain/shared"
)

// GormStockLedger implements StockLedger over the products table. It is the
// only code path that writes qty_on_hand. allowNegative mirrors the
// back-office policy of issuing documents even when the shelf count is
// stale; with it off a decrement below zero fails the transaction.
type GormStockLedger struct {
	db            *gorm.DB
	logger        *zap.Logger
	allowNegative bool
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB, logger *zap.Logger, allowNegative bool) *GormStockLedger {
	return &GormStockLedger{
		db:            db,
		logger:        logger,
		allowNegative: allowNegative,
	}
}

// LockProducts acquires FOR UPDATE row locks on the given products for the
// rest of the transaction. IDs are expected pre-sorted by the caller; the
// single IN query locks rows in index order either way.
func (l *GormStockLedger) LockProducts(ctx context.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	var locked []uuid.UUID
	if err := l.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", productIDs).
		Pluck("id", &locked).Error; err != nil {
		return err
	}
	if len(locked) != len(productIDs) {
		return shared.NewDomainError("UNKNOWN_PRODUCT", "Line references an unknown product")
	}
	return nil
}

// Decrement removes qty units from the product's on-hand stock
func (l *GormStockLedger) Decrement(ctx context.Context, productID uuid.UUID, qty int64) error {
	return l.adjust(ctx, productID, -qty)
}

// Increment returns qty units to the product's on-hand stock
func (l *GormStockLedger) Increment(ctx context.Context, productID uuid.UUID, qty int64) error {
	return l.adjust(ctx, productID, qty)
}

func (l *GormStockLedger) adjust(ctx context.Context, productID uuid.UUID, delta int64) error {
	if delta == 0 {
		return nil
	}

	query := l.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", productID)
	if delta < 0 && !l.allowNegative {
		query = query.Where("qty_on_hand >= ?", -delta)
	}

	result := query.Update("qty_on_hand", gorm.Expr("qty_on_hand + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if delta < 0 && !l.allowNegative {
			return shared.ErrInsufficientStock
		}
		return shared.NewDomainError("UNKNOWN_PRODUCT",
			fmt.Sprintf("Product %s does not exist", productID))
	}

	if delta < 0 && l.allowNegative {
		// Surface likely oversells without blocking them.
		var qty int64
		if err := l.db.WithContext(ctx).
			Model(&catalog.Product{}).
			Where("id = ?", productID).
			Pluck("qty_on_hand", &qty).Error; err == nil && qty < 0 {
			l.logger.Warn("product stock went negative",
				zap.String("product_id", productID.String()),
				zap.Int64("qty_on_hand", qty),
			)
		}
	}

	return nil
}

// Ensure GormStockLedger implements StockLedger
var _ sales.StockLedger = (*GormStockLedger)(nil)
