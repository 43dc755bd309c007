package models

import (
	"time"

	"github.com/sobitas/backend/internal/domain/messaging"
)

// MessageTemplateModel is the persistence model for configured message
// bodies. One row per template kind.
type MessageTemplateModel struct {
	Kind      messaging.TemplateKind `gorm:"type:varchar(30);primaryKey"`
	Body      string                 `gorm:"type:text;not null"`
	UpdatedAt time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MessageTemplateModel) TableName() string {
	return "message_templates"
}

// ToDomain converts the persistence model to a domain Template.
func (m *MessageTemplateModel) ToDomain() *messaging.Template {
	return &messaging.Template{
		Kind: m.Kind,
		Body: m.Body,
	}
}

// MessageTemplateModelFromDomain creates a new persistence model from a domain Template.
func MessageTemplateModelFromDomain(t *messaging.Template) *MessageTemplateModel {
	return &MessageTemplateModel{
		Kind: t.Kind,
		Body: t.Body,
	}
}
