package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sobitas/backend/internal/domain/shared"
)

// LineItem is one product line persisted against a document.
// It is fully owned by its document: created when the submitted line set
// contains the product, deleted (and its stock effect reversed) when it
// disappears from a later submission.
type LineItem struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	ProductID  uuid.UUID
	Quantity   int64
	UnitPrice  decimal.Decimal
	LineHT     decimal.Decimal // Quantity × UnitPrice
	TVARate    decimal.Decimal // zero for types without per-line TVA
	LineTTC    decimal.Decimal // equals LineHT when TVARate is zero
	CreatedAt  time.Time
}

// NewLineItem creates a line item for a document. tvaRate is the per-line
// TVA percentage; pass zero for document types without per-line VAT.
func NewLineItem(documentID, productID uuid.UUID, quantity int64, unitPrice, tvaRate decimal.Decimal) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	lineHT := unitPrice.Mul(decimal.NewFromInt(quantity))
	lineTTC := lineHT
	if tvaRate.IsPositive() {
		lineTTC = lineHT.Add(lineHT.Mul(tvaRate).Div(hundred))
	}

	return &LineItem{
		ID:         uuid.New(),
		DocumentID: documentID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		LineHT:     lineHT,
		TVARate:    tvaRate,
		LineTTC:    lineTTC,
		CreatedAt:  time.Now(),
	}, nil
}

// StatusEntry is one record of the append-only status history.
// Entries are never edited or removed once written.
type StatusEntry struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Status     OrderStatus
	ChangedAt  time.Time
}

// LineEntry is a submitted line in a create/update request, after the
// transport layer has normalized whatever wire format the form used.
type LineEntry struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice decimal.Decimal
}

// ValidateEntries rejects a submission whose entries are missing a product
// reference or a usable quantity. The error names the first offending entry
// by its 1-based position so the caller can surface it directly.
func ValidateEntries(entries []LineEntry) error {
	for i, e := range entries {
		if e.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("line %d: missing product", i+1))
		}
		if e.Quantity <= 0 {
			return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("line %d: missing quantity", i+1))
		}
		if e.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("line %d: negative unit price", i+1))
		}
	}
	return nil
}

// Document is the header record for one selling document: a customer order,
// a POS ticket, a delivery note, a VAT invoice or a quotation. All five run
// the same issuance pipeline, parameterized by the type's Descriptor.
type Document struct {
	shared.BaseAggregateRoot
	Type   DocumentType
	Number string

	// CustomerID is nil for walk-in ticket sales.
	CustomerID *uuid.UUID
	// Contact fields captured on the header itself (orders carry the
	// customer identity inline, invoice types reference a client record).
	LastName        string
	FirstName       string
	Phone           string
	Email           string
	DeliveryAddress string
	Note            string

	Lines []LineItem

	LinesTotalHT   decimal.Decimal
	DiscountAmount decimal.Decimal
	DeliveryFee    decimal.Decimal
	StampDuty      decimal.Decimal
	TVARatePercent decimal.Decimal
	TVAAmount      decimal.Decimal
	TotalTTC       decimal.Decimal

	Status  OrderStatus
	History []StatusEntry
}

// NewDocument creates a document header of the given type with its assigned
// number. Lines and totals are filled in by the issuance pipeline.
func NewDocument(docType DocumentType, number string) (*Document, error) {
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown document type")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}

	doc := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              docType,
		Number:            number,
		Lines:             make([]LineItem, 0),
		LinesTotalHT:      decimal.Zero,
		DiscountAmount:    decimal.Zero,
		DeliveryFee:       decimal.Zero,
		StampDuty:         decimal.Zero,
		TVARatePercent:    decimal.Zero,
		TVAAmount:         decimal.Zero,
		TotalTTC:          decimal.Zero,
	}
	if docType.Describe().HasStatusFlow {
		doc.Status = StatusNew
		doc.History = []StatusEntry{{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			Status:     StatusNew,
			ChangedAt:  doc.CreatedAt,
		}}
	}

	return doc, nil
}

// MarkIssued records the creation event. Called once the header, lines and
// totals are final, so the event carries the contact and amount actually
// persisted.
func (d *Document) MarkIssued() {
	d.AddDomainEvent(NewDocumentCreatedEvent(d))
}

// SetCustomer attaches a client record reference to the document
func (d *Document) SetCustomer(customerID uuid.UUID) {
	d.CustomerID = &customerID
	d.UpdatedAt = time.Now()
}

// ReplaceLines installs a freshly built line set. The reconciler is
// responsible for the matching stock movements; the document only keeps
// whatever is currently persisted.
func (d *Document) ReplaceLines(lines []LineItem) {
	d.Lines = lines
	d.UpdatedAt = time.Now()
}

// ApplyPricing stores a computed price breakdown on the header.
// TotalTTC is derived state: it is never written from anywhere else.
func (d *Document) ApplyPricing(b PriceBreakdown, in PricingInput) {
	d.LinesTotalHT = b.LinesTotalHT
	d.DiscountAmount = in.DiscountAmount
	d.DeliveryFee = in.DeliveryFee
	d.StampDuty = in.StampDuty
	d.TVARatePercent = in.TVARatePercent
	d.TVAAmount = b.TVAAmount
	d.TotalTTC = b.TotalTTC
	d.UpdatedAt = time.Now()
}

// ChangeStatus transitions the order pipeline and appends to the status
// history. notify requests a customer notification once the change commits.
func (d *Document) ChangeStatus(target OrderStatus, notify bool) error {
	if !d.Type.Describe().HasStatusFlow {
		return shared.NewDomainError("NO_STATUS_FLOW", "Document type has no status pipeline")
	}
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown status")
	}
	if d.Status == target {
		return nil
	}
	if !d.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", d.Status, target))
	}

	now := time.Now()
	d.Status = target
	d.History = append(d.History, StatusEntry{
		ID:         uuid.New(),
		DocumentID: d.ID,
		Status:     target,
		ChangedAt:  now,
	})
	d.UpdatedAt = now

	d.AddDomainEvent(NewDocumentStatusChangedEvent(d, target, notify))
	return nil
}

// TotalQuantity returns the sum of all line quantities
func (d *Document) TotalQuantity() int64 {
	var total int64
	for _, line := range d.Lines {
		total += line.Quantity
	}
	return total
}

// LineFor returns the persisted line for a product, or nil
func (d *Document) LineFor(productID uuid.UUID) *LineItem {
	for i := range d.Lines {
		if d.Lines[i].ProductID == productID {
			return &d.Lines[i]
		}
	}
	return nil
}
