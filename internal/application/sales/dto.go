package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sobitas/backend/internal/domain/sales"
)

// LineEntryInput represents one submitted line in a create/update request.
// The legacy numbered-field wire format is normalized to this shape at the
// HTTP boundary before it reaches the engine.
type LineEntryInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// NewCustomerInput carries the fields for a client created inline with an
// invoice-type document.
type NewCustomerInput struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Address string `json:"address"`
	Phone1  string `json:"phone_1"`
	Phone2  string `json:"phone_2"`
	TaxID   string `json:"tax_id"`
}

// CreateDocumentRequest represents a request to issue a new document
type CreateDocumentRequest struct {
	CustomerID  *uuid.UUID        `json:"customer_id"`
	NewCustomer *NewCustomerInput `json:"new_customer"`

	LastName        string `json:"last_name" binding:"max=255"`
	FirstName       string `json:"first_name" binding:"max=255"`
	Phone           string `json:"phone" binding:"max=50"`
	Email           string `json:"email" binding:"omitempty,email"`
	DeliveryAddress string `json:"delivery_address"`
	Note            string `json:"note"`

	Lines          []LineEntryInput `json:"lines" binding:"required,min=1"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	DeliveryFee    decimal.Decimal  `json:"delivery_fee"`
	StampDuty      decimal.Decimal  `json:"stamp_duty"`
}

// UpdateDocumentRequest represents a request to update an existing document
type UpdateDocumentRequest struct {
	DeliveryAddress *string `json:"delivery_address"`
	Note            *string `json:"note"`

	Lines          []LineEntryInput `json:"lines" binding:"required,min=1"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	DeliveryFee    decimal.Decimal  `json:"delivery_fee"`
	StampDuty      decimal.Decimal  `json:"stamp_duty"`

	// Status requests a pipeline transition (orders only).
	Status *sales.OrderStatus `json:"status" binding:"omitempty,order_status"`
	// NotifyCustomer opts in to the status-change message.
	NotifyCustomer bool `json:"notify_customer"`
}

// DocumentListFilter represents filter options for document lists
type DocumentListFilter struct {
	Search     string             `form:"search"`
	CustomerID *uuid.UUID         `form:"customer_id"`
	Status     *sales.OrderStatus `form:"status" binding:"omitempty,order_status"`
	Page       int                `form:"page" binding:"min=1"`
	PageSize   int                `form:"page_size" binding:"min=1,max=100"`
	OrderBy    string             `form:"order_by"`
	OrderDir   string             `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LineItemResponse represents a persisted line in responses
type LineItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineHT    decimal.Decimal `json:"line_ht"`
	LineTTC   decimal.Decimal `json:"line_ttc"`
}

// StatusEntryResponse represents one status history record
type StatusEntryResponse struct {
	Status    sales.OrderStatus `json:"status"`
	Label     string            `json:"label"`
	ChangedAt time.Time         `json:"changed_at"`
}

// DocumentResponse represents a document in responses
type DocumentResponse struct {
	ID              uuid.UUID             `json:"id"`
	Type            sales.DocumentType    `json:"type"`
	Number          string                `json:"number"`
	CustomerID      *uuid.UUID            `json:"customer_id,omitempty"`
	LastName        string                `json:"last_name,omitempty"`
	FirstName       string                `json:"first_name,omitempty"`
	Phone           string                `json:"phone,omitempty"`
	Email           string                `json:"email,omitempty"`
	DeliveryAddress string                `json:"delivery_address,omitempty"`
	Note            string                `json:"note,omitempty"`
	Lines           []LineItemResponse    `json:"lines"`
	TotalQuantity   int64                 `json:"total_quantity"`
	LinesTotalHT    decimal.Decimal       `json:"lines_total_ht"`
	DiscountAmount  decimal.Decimal       `json:"discount_amount"`
	DeliveryFee     decimal.Decimal       `json:"delivery_fee"`
	StampDuty       decimal.Decimal       `json:"stamp_duty"`
	TVARatePercent  decimal.Decimal       `json:"tva_rate_percent"`
	TVAAmount       decimal.Decimal       `json:"tva_amount"`
	TotalTTC        decimal.Decimal       `json:"total_ttc"`
	Status          sales.OrderStatus     `json:"status,omitempty"`
	History         []StatusEntryResponse `json:"history,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// DocumentListItemResponse represents a document in list responses
type DocumentListItemResponse struct {
	ID        uuid.UUID          `json:"id"`
	Type      sales.DocumentType `json:"type"`
	Number    string             `json:"number"`
	LastName  string             `json:"last_name,omitempty"`
	FirstName string             `json:"first_name,omitempty"`
	TotalTTC  decimal.Decimal    `json:"total_ttc"`
	Status    sales.OrderStatus  `json:"status,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// ToDocumentResponse converts a domain Document to a DocumentResponse
func ToDocumentResponse(doc *sales.Document) DocumentResponse {
	lines := make([]LineItemResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = LineItemResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineHT:    line.LineHT,
			LineTTC:   line.LineTTC,
		}
	}
	history := make([]StatusEntryResponse, len(doc.History))
	for i, entry := range doc.History {
		history[i] = StatusEntryResponse{
			Status:    entry.Status,
			Label:     entry.Status.Label(),
			ChangedAt: entry.ChangedAt,
		}
	}
	return DocumentResponse{
		ID:              doc.ID,
		Type:            doc.Type,
		Number:          doc.Number,
		CustomerID:      doc.CustomerID,
		LastName:        doc.LastName,
		FirstName:       doc.FirstName,
		Phone:           doc.Phone,
		Email:           doc.Email,
		DeliveryAddress: doc.DeliveryAddress,
		Note:            doc.Note,
		Lines:           lines,
		TotalQuantity:   doc.TotalQuantity(),
		LinesTotalHT:    doc.LinesTotalHT,
		DiscountAmount:  doc.DiscountAmount,
		DeliveryFee:     doc.DeliveryFee,
		StampDuty:       doc.StampDuty,
		TVARatePercent:  doc.TVARatePercent,
		TVAAmount:       doc.TVAAmount,
		TotalTTC:        doc.TotalTTC,
		Status:          doc.Status,
		History:         history,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

// ToDocumentListItemResponse converts a domain Document to a list item
func ToDocumentListItemResponse(doc *sales.Document) DocumentListItemResponse {
	return DocumentListItemResponse{
		ID:        doc.ID,
		Type:      doc.Type,
		Number:    doc.Number,
		LastName:  doc.LastName,
		FirstName: doc.FirstName,
		TotalTTC:  doc.TotalTTC,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
	}
}

// toEntries converts submitted line inputs to domain line entries
func toEntries(inputs []LineEntryInput) []sales.LineEntry {
	entries := make([]sales.LineEntry, len(inputs))
	for i, in := range inputs {
		entries[i] = sales.LineEntry{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		}
	}
	return entries
}
