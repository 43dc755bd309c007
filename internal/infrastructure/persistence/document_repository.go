package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sobitas/backend/internal/domain/sales"
	"github.com/sobitas/backend/internal/domain/shared"
	"github.com/sobitas/backend/internal/infrastructure/persistence/models"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID, with lines and history loaded
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a document by type and assigned number
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, docType sales.DocumentType, number string) (*sales.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC")
		}).
		Where("type = ? AND number = ?", docType, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists documents of a type with filtering and pagination
func (r *GormDocumentRepository) FindAll(ctx context.Context, docType sales.DocumentType, filter shared.Filter) ([]sales.Document, error) {
	var documentModels []models.DocumentModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DocumentModel{}).Where("type = ?", docType),
		filter,
	)

	if err := query.Preload("Lines").Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]sales.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// Count counts documents of a type matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, docType sales.DocumentType, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.DocumentModel{}).Where("type = ?", docType),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new document with its lines and initial history.
// A unique-constraint violation on (type, number) is reported as
// shared.ErrDuplicateNumber so the caller can retry with a fresh number.
func (r *GormDocumentRepository) Create(ctx context.Context, doc *sales.Document) error {
	model := models.DocumentModelFromDomain(doc)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateNumber
		}
		return err
	}
	return nil
}

// Update persists header changes, the current line set and any new status
// history entries. History rows are only ever inserted; existing entries
// are untouched.
func (r *GormDocumentRepository) Update(ctx context.Context, doc *sales.Document) error {
	model := models.DocumentModelFromDomain(doc)

	if err := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("id = ?", doc.ID).
		Select("customer_id", "last_name", "first_name", "phone", "email",
			"delivery_address", "note", "lines_total_ht", "discount_amount",
			"delivery_fee", "stamp_duty", "tva_rate_percent", "tva_amount",
			"total_ttc", "status", "updated_at").
		Updates(model).Error; err != nil {
		return err
	}

	// Full line replacement: the reconciler already computed the stock
	// effect of dropping the old set.
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", doc.ID).
		Delete(&models.DocumentLineModel{}).Error; err != nil {
		return err
	}
	if len(model.Lines) > 0 {
		if err := r.db.WithContext(ctx).Create(&model.Lines).Error; err != nil {
			return err
		}
	}

	if len(model.History) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.History).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a document and cascades to its lines and history
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", id).
		Delete(&models.DocumentLineModel{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", id).
		Delete(&models.StatusHistoryModel{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("number LIKE ? OR last_name LIKE ? OR first_name LIKE ? OR phone LIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}

	return query
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ sales.DocumentRepository = (*GormDocumentRepository)(nil)
