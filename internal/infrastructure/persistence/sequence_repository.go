package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sobitas/backend/internal/domain/sales"
)

// GormSequenceCounter implements SequenceCounter with an upsert on the
// per-(type, year) counter row. The increment and read happen in a single
// statement, so two transactions can never be handed the same value; the
// loser of a row conflict simply waits for the winner's commit.
type GormSequenceCounter struct {
	db *gorm.DB
}

// NewGormSequenceCounter creates a new GormSequenceCounter
func NewGormSequenceCounter(db *gorm.DB) *GormSequenceCounter {
	return &GormSequenceCounter{db: db}
}

// Next returns the next document number for the (type, year) pair,
// formatted "YYYY/NNNN". Numbers taken by transactions that later roll
// back leave gaps; that is acceptable, duplicates are not.
func (c *GormSequenceCounter) Next(ctx context.Context, docType sales.DocumentType, year int) (string, error) {
	var lastValue int64
	err := c.db.WithContext(ctx).Raw(`
		INSERT INTO document_sequences (doc_type, year, last_value, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (doc_type, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1,
		              updated_at = CURRENT_TIMESTAMP
		RETURNING last_value`,
		docType, year,
	).Scan(&lastValue).Error
	if err != nil {
		return "", fmt.Errorf("failed to advance sequence for %s/%d: %w", docType, year, err)
	}

	return fmt.Sprintf("%d/%04d", year, lastValue), nil
}

// Ensure GormSequenceCounter implements SequenceCounter
var _ sales.SequenceCounter = (*GormSequenceCounter)(nil)
