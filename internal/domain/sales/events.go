package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sobitas/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeDocument = "Document"

// Event type constants
const (
	EventTypeDocumentCreated       = "DocumentCreated"
	EventTypeDocumentStatusChanged = "DocumentStatusChanged"
)

// DocumentCreatedEvent is raised when a new selling document is issued
type DocumentCreatedEvent struct {
	shared.BaseDomainEvent
	DocumentID   uuid.UUID       `json:"document_id"`
	DocumentType DocumentType    `json:"document_type"`
	Number       string          `json:"number"`
	Phone        string          `json:"phone"`
	LastName     string          `json:"last_name"`
	FirstName    string          `json:"first_name"`
	TotalTTC     decimal.Decimal `json:"total_ttc"`
}

// NewDocumentCreatedEvent creates a new DocumentCreatedEvent
func NewDocumentCreatedEvent(doc *Document) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCreated, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		DocumentType:    doc.Type,
		Number:          doc.Number,
		Phone:           doc.Phone,
		LastName:        doc.LastName,
		FirstName:       doc.FirstName,
		TotalTTC:        doc.TotalTTC,
	}
}

// EventType returns the event type name
func (e *DocumentCreatedEvent) EventType() string {
	return EventTypeDocumentCreated
}

// DocumentStatusChangedEvent is raised when an order moves through the
// fulfilment pipeline. Notify carries the submitter's opt-in flag; the
// notification itself is dispatched only after the transaction commits.
type DocumentStatusChangedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID   `json:"document_id"`
	Number     string      `json:"number"`
	Status     OrderStatus `json:"status"`
	Notify     bool        `json:"notify"`
	Phone      string      `json:"phone"`
	LastName   string      `json:"last_name"`
	FirstName  string      `json:"first_name"`
}

// NewDocumentStatusChangedEvent creates a new DocumentStatusChangedEvent
func NewDocumentStatusChangedEvent(doc *Document, status OrderStatus, notify bool) *DocumentStatusChangedEvent {
	return &DocumentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentStatusChanged, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Number:          doc.Number,
		Status:          status,
		Notify:          notify,
		Phone:           doc.Phone,
		LastName:        doc.LastName,
		FirstName:       doc.FirstName,
	}
}

// EventType returns the event type name
func (e *DocumentStatusChangedEvent) EventType() string {
	return EventTypeDocumentStatusChanged
}
