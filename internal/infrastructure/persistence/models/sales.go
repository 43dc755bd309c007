package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sobitas/backend/internal/domain/sales"
)

// DocumentModel is the persistence model for the Document aggregate root.
// All five document types share this table, discriminated by Type.
type DocumentModel struct {
	AggregateModel
	Type   sales.DocumentType `gorm:"type:varchar(20);not null;uniqueIndex:idx_documents_type_number,priority:1;index:idx_documents_type_created,priority:1"`
	Number string             `gorm:"type:varchar(20);not null;uniqueIndex:idx_documents_type_number,priority:2"`

	CustomerID      *uuid.UUID `gorm:"type:uuid;index"`
	LastName        string     `gorm:"type:varchar(255)"`
	FirstName       string     `gorm:"type:varchar(255)"`
	Phone           string     `gorm:"type:varchar(50)"`
	Email           string     `gorm:"type:varchar(255)"`
	DeliveryAddress string     `gorm:"type:text"`
	Note            string     `gorm:"type:text"`

	Lines   []DocumentLineModel  `gorm:"foreignKey:DocumentID;references:ID;constraint:OnDelete:CASCADE"`
	History []StatusHistoryModel `gorm:"foreignKey:DocumentID;references:ID;constraint:OnDelete:CASCADE"`

	LinesTotalHT   decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	StampDuty      decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	TVARatePercent decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`
	TVAAmount      decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	TotalTTC       decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`

	Status sales.OrderStatus `gorm:"type:varchar(20);index:idx_documents_type_created,priority:2"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document aggregate.
func (m *DocumentModel) ToDomain() *sales.Document {
	doc := &sales.Document{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Type:              m.Type,
		Number:            m.Number,
		CustomerID:        m.CustomerID,
		LastName:          m.LastName,
		FirstName:         m.FirstName,
		Phone:             m.Phone,
		Email:             m.Email,
		DeliveryAddress:   m.DeliveryAddress,
		Note:              m.Note,
		LinesTotalHT:      m.LinesTotalHT,
		DiscountAmount:    m.DiscountAmount,
		DeliveryFee:       m.DeliveryFee,
		StampDuty:         m.StampDuty,
		TVARatePercent:    m.TVARatePercent,
		TVAAmount:         m.TVAAmount,
		TotalTTC:          m.TotalTTC,
		Status:            m.Status,
		Lines:             make([]sales.LineItem, len(m.Lines)),
		History:           make([]sales.StatusEntry, len(m.History)),
	}
	for i, line := range m.Lines {
		doc.Lines[i] = *line.ToDomain()
	}
	for i, entry := range m.History {
		doc.History[i] = *entry.ToDomain()
	}
	return doc
}

// FromDomain populates the persistence model from a domain Document.
func (m *DocumentModel) FromDomain(doc *sales.Document) {
	m.FromDomainAggregateRoot(doc.BaseAggregateRoot)
	m.Type = doc.Type
	m.Number = doc.Number
	m.CustomerID = doc.CustomerID
	m.LastName = doc.LastName
	m.FirstName = doc.FirstName
	m.Phone = doc.Phone
	m.Email = doc.Email
	m.DeliveryAddress = doc.DeliveryAddress
	m.Note = doc.Note
	m.LinesTotalHT = doc.LinesTotalHT
	m.DiscountAmount = doc.DiscountAmount
	m.DeliveryFee = doc.DeliveryFee
	m.StampDuty = doc.StampDuty
	m.TVARatePercent = doc.TVARatePercent
	m.TVAAmount = doc.TVAAmount
	m.TotalTTC = doc.TotalTTC
	m.Status = doc.Status
	m.Lines = make([]DocumentLineModel, len(doc.Lines))
	for i, line := range doc.Lines {
		m.Lines[i] = *DocumentLineModelFromDomain(&line)
	}
	m.History = make([]StatusHistoryModel, len(doc.History))
	for i, entry := range doc.History {
		m.History[i] = *StatusHistoryModelFromDomain(&entry)
	}
}

// DocumentModelFromDomain creates a new persistence model from a domain Document.
func DocumentModelFromDomain(doc *sales.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(doc)
	return m
}

// DocumentLineModel is the persistence model for the LineItem entity.
type DocumentLineModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	DocumentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int64           `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	LineHT     decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	TVARate    decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`
	LineTTC    decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentLineModel) TableName() string {
	return "document_lines"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *DocumentLineModel) ToDomain() *sales.LineItem {
	return &sales.LineItem{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		LineHT:     m.LineHT,
		TVARate:    m.TVARate,
		LineTTC:    m.LineTTC,
		CreatedAt:  m.CreatedAt,
	}
}

// DocumentLineModelFromDomain creates a new persistence model from a domain LineItem.
func DocumentLineModelFromDomain(line *sales.LineItem) *DocumentLineModel {
	return &DocumentLineModel{
		ID:         line.ID,
		DocumentID: line.DocumentID,
		ProductID:  line.ProductID,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		LineHT:     line.LineHT,
		TVARate:    line.TVARate,
		LineTTC:    line.LineTTC,
		CreatedAt:  line.CreatedAt,
	}
}

// StatusHistoryModel is the persistence model for the append-only status
// history. Rows are only ever inserted.
type StatusHistoryModel struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key"`
	DocumentID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status     sales.OrderStatus `gorm:"type:varchar(20);not null"`
	ChangedAt  time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StatusHistoryModel) TableName() string {
	return "document_status_history"
}

// ToDomain converts the persistence model to a domain StatusEntry.
func (m *StatusHistoryModel) ToDomain() *sales.StatusEntry {
	return &sales.StatusEntry{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		Status:     m.Status,
		ChangedAt:  m.ChangedAt,
	}
}

// StatusHistoryModelFromDomain creates a new persistence model from a domain StatusEntry.
func StatusHistoryModelFromDomain(entry *sales.StatusEntry) *StatusHistoryModel {
	return &StatusHistoryModel{
		ID:         entry.ID,
		DocumentID: entry.DocumentID,
		Status:     entry.Status,
		ChangedAt:  entry.ChangedAt,
	}
}

// SequenceModel is the per-(type, year) document number counter.
// LastValue is advanced atomically with an upsert.
type SequenceModel struct {
	DocType   sales.DocumentType `gorm:"type:varchar(20);primaryKey"`
	Year      int                `gorm:"primaryKey"`
	LastValue int64              `gorm:"not null;default:0"`
	UpdatedAt time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SequenceModel) TableName() string {
	return "document_sequences"
}
