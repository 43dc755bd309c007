package sales

import (
	"context"

	"github.com/sobitas/backend/internal/domain/catalog"
	"github.com/sobitas/backend/internal/domain/partner"
	"github.com/sobitas/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories the
// document engine touches. Everything a single create/update request does —
// number assignment, line reconciliation, stock mutation, header persistence
// — runs inside one Execute call and commits or rolls back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// Documents returns the document repository scoped to the current transaction
	Documents() sales.DocumentRepository
	// Sequences returns the sequence counter scoped to the current transaction
	Sequences() sales.SequenceCounter
	// Stock returns the stock ledger scoped to the current transaction
	Stock() sales.StockLedger
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Customers returns the client repository scoped to the current transaction
	Customers() partner.CustomerRepository
}
