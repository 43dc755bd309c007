package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sobitas/backend/internal/domain/messaging"
	"github.com/sobitas/backend/internal/domain/shared"
	"github.com/sobitas/backend/internal/infrastructure/persistence/models"
)

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByKind loads the configured template for a kind
func (r *GormTemplateRepository) FindByKind(ctx context.Context, kind messaging.TemplateKind) (*messaging.Template, error) {
	var model models.MessageTemplateModel
	if err := r.db.WithContext(ctx).First(&model, "kind = ?", kind).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a template body for its kind
func (r *GormTemplateRepository) Save(ctx context.Context, template *messaging.Template) error {
	model := models.MessageTemplateModelFromDomain(template)
	model.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(model).Error
}

// Ensure GormTemplateRepository implements TemplateRepository
var _ messaging.TemplateRepository = (*GormTemplateRepository)(nil)
