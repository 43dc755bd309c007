package persistence

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	appsales "github.com/sobitas/backend/internal/application/sales"
	"github.com/sobitas/backend/internal/domain/catalog"
	"github.com/sobitas/backend/internal/domain/partner"
	"github.com/sobitas/backend/internal/domain/sales"
)

// GormTransactionScope implements the sales TransactionScope using GORM
// transactions. Number assignment, stock movement and document persistence
// for one request all run on the same tx and commit or roll back together.
type GormTransactionScope struct {
	db            *gorm.DB
	logger        *zap.Logger
	allowNegative bool
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB, logger *zap.Logger, allowNegative bool) *GormTransactionScope {
	return &GormTransactionScope{
		db:            db,
		logger:        logger,
		allowNegative: allowNegative,
	}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{
			tx:            tx,
			logger:        s.logger,
			allowNegative: s.allowNegative,
		}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx            *gorm.DB
	logger        *zap.Logger
	allowNegative bool
}

// Documents returns the document repository scoped to the current transaction
func (r *gormTransactionalRepositories) Documents() sales.DocumentRepository {
	return NewGormDocumentRepository(r.tx)
}

// Sequences returns the sequence counter scoped to the current transaction
func (r *gormTransactionalRepositories) Sequences() sales.SequenceCounter {
	return NewGormSequenceCounter(r.tx)
}

// Stock returns the stock ledger scoped to the current transaction
func (r *gormTransactionalRepositories) Stock() sales.StockLedger {
	return NewGormStockLedger(r.tx, r.logger, r.allowNegative)
}

// Products returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Customers returns the client repository scoped to the current transaction
func (r *gormTransactionalRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appsales.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appsales.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
