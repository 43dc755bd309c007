package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sobitas/backend/internal/domain/partner"
	"github.com/sobitas/backend/internal/domain/sales"
	"github.com/sobitas/backend/internal/domain/shared"
)

// Config carries the pricing policy the engine applies to types with VAT.
type Config struct {
	// TVARatePercent is the company-wide TVA rate (19 unless configured).
	TVARatePercent decimal.Decimal
	// VATBase selects whether TVA is computed on the discounted or the raw
	// lines total. The legacy system did both depending on the code path;
	// the owner's choice is taken from configuration.
	VATBase sales.VATBase
}

// DocumentService is the issuance engine shared by all five document types.
// Create assigns a number, reconciles lines (stock taken), computes totals
// and persists — all in one transaction. Update reverts the old line set,
// applies the new one, recomputes and optionally moves the order status.
// Domain events are published only after the transaction commits.
type DocumentService struct {
	readRepo  sales.DocumentRepository
	scope     TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
	cfg       Config
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(readRepo sales.DocumentRepository, scope TransactionScope, logger *zap.Logger, cfg Config) *DocumentService {
	if !cfg.VATBase.IsValid() {
		cfg.VATBase = sales.VATBaseNet
	}
	return &DocumentService{
		readRepo: readRepo,
		scope:    scope,
		logger:   logger,
		cfg:      cfg,
	}
}

// SetEventPublisher sets the publisher used for post-commit events
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create issues a new document of the given type
func (s *DocumentService) Create(ctx context.Context, docType sales.DocumentType, req CreateDocumentRequest) (*DocumentResponse, error) {
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown document type")
	}
	if err := validateAdjustments(req.DiscountAmount, req.DeliveryFee, req.StampDuty); err != nil {
		return nil, err
	}
	entries := toEntries(req.Lines)
	if err := sales.ValidateEntries(entries); err != nil {
		return nil, err
	}

	doc, events, err := s.createOnce(ctx, docType, req, entries)
	if errors.Is(err, shared.ErrDuplicateNumber) {
		// Lost a number race; take a fresh number and try exactly once more.
		s.logger.Warn("document number conflict, retrying",
			zap.String("type", docType.String()))
		doc, events, err = s.createOnce(ctx, docType, req, entries)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

func (s *DocumentService) createOnce(ctx context.Context, docType sales.DocumentType, req CreateDocumentRequest, entries []sales.LineEntry) (*sales.Document, []shared.DomainEvent, error) {
	var doc *sales.Document
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.Sequences().Next(ctx, docType, time.Now().Year())
		if err != nil {
			return err
		}

		d, err := sales.NewDocument(docType, number)
		if err != nil {
			return err
		}
		d.LastName = req.LastName
		d.FirstName = req.FirstName
		d.Phone = req.Phone
		d.Email = req.Email
		d.DeliveryAddress = req.DeliveryAddress
		d.Note = req.Note

		switch {
		case req.NewCustomer != nil:
			customer, err := partner.NewCustomer(
				req.NewCustomer.Name,
				req.NewCustomer.Address,
				req.NewCustomer.Phone1,
				req.NewCustomer.Phone2,
				req.NewCustomer.TaxID,
			)
			if err != nil {
				return err
			}
			if err := repos.Customers().Save(ctx, customer); err != nil {
				return err
			}
			d.SetCustomer(customer.ID)
			events = append(events, customer.GetDomainEvents()...)
			customer.ClearDomainEvents()
		case req.CustomerID != nil:
			d.SetCustomer(*req.CustomerID)
		}

		reconciler := NewReconciler(repos.Stock())
		if err := reconciler.Reconcile(ctx, d, entries, s.lineTVARate(docType)); err != nil {
			return err
		}

		in := s.pricingInput(docType, req.DiscountAmount, req.DeliveryFee, req.StampDuty)
		d.ApplyPricing(sales.ComputeTotals(d.Lines, in), in)
		d.MarkIssued()

		if err := repos.Documents().Create(ctx, d); err != nil {
			return err
		}

		doc = d
		events = append(events, d.GetDomainEvents()...)
		d.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, events, nil
}

// Update replaces the line set of an existing document, recomputes its
// totals and optionally moves the order status
func (s *DocumentService) Update(ctx context.Context, docType sales.DocumentType, id uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	if err := validateAdjustments(req.DiscountAmount, req.DeliveryFee, req.StampDuty); err != nil {
		return nil, err
	}
	entries := toEntries(req.Lines)
	if err := sales.ValidateEntries(entries); err != nil {
		return nil, err
	}

	var doc *sales.Document
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := repos.Documents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if d.Type != docType {
			return shared.ErrNotFound
		}

		reconciler := NewReconciler(repos.Stock())
		if err := reconciler.Reconcile(ctx, d, entries, s.lineTVARate(docType)); err != nil {
			return err
		}

		if req.DeliveryAddress != nil {
			d.DeliveryAddress = *req.DeliveryAddress
		}
		if req.Note != nil {
			d.Note = *req.Note
		}

		in := s.pricingInput(docType, req.DiscountAmount, req.DeliveryFee, req.StampDuty)
		d.ApplyPricing(sales.ComputeTotals(d.Lines, in), in)

		if req.Status != nil {
			if err := d.ChangeStatus(*req.Status, req.NotifyCustomer); err != nil {
				return err
			}
		}

		if err := repos.Documents().Update(ctx, d); err != nil {
			return err
		}

		doc = d
		events = append(events, d.GetDomainEvents()...)
		d.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// GetByID retrieves a document by ID
func (s *DocumentService) GetByID(ctx context.Context, docType sales.DocumentType, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.readRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Type != docType {
		return nil, shared.ErrNotFound
	}
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// GetByNumber retrieves a document by its assigned number
func (s *DocumentService) GetByNumber(ctx context.Context, docType sales.DocumentType, number string) (*DocumentResponse, error) {
	doc, err := s.readRepo.FindByNumber(ctx, docType, number)
	if err != nil {
		return nil, err
	}
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// List retrieves documents of a type with filtering and pagination
func (s *DocumentService) List(ctx context.Context, docType sales.DocumentType, filter DocumentListFilter) ([]DocumentListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}

	docs, err := s.readRepo.FindAll(ctx, docType, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.readRepo.Count(ctx, docType, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]DocumentListItemResponse, len(docs))
	for i := range docs {
		items[i] = ToDocumentListItemResponse(&docs[i])
	}
	return items, total, nil
}

// Delete removes a document, returning its line stock to the shelf
func (s *DocumentService) Delete(ctx context.Context, docType sales.DocumentType, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.Documents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if doc.Type != docType {
			return shared.ErrNotFound
		}

		reconciler := NewReconciler(repos.Stock())
		if err := reconciler.Revert(ctx, doc); err != nil {
			return err
		}
		return repos.Documents().Delete(ctx, id)
	})
}

// lineTVARate returns the per-line TVA rate for the type. Only VAT invoices
// carry TVA at line level; quotations apply it at the header only.
func (s *DocumentService) lineTVARate(docType sales.DocumentType) decimal.Decimal {
	if docType == sales.DocTypeVatInvoice {
		return s.cfg.TVARatePercent
	}
	return decimal.Zero
}

// pricingInput assembles the pricing input, zeroing out adjustments the
// type's descriptor does not carry
func (s *DocumentService) pricingInput(docType sales.DocumentType, discount, deliveryFee, stampDuty decimal.Decimal) sales.PricingInput {
	desc := docType.Describe()
	in := sales.PricingInput{
		DiscountAmount: discount,
		VATBase:        s.cfg.VATBase,
	}
	if desc.HasVAT {
		in.TVARatePercent = s.cfg.TVARatePercent
	}
	if desc.HasDeliveryFee {
		in.DeliveryFee = deliveryFee
	}
	if desc.HasStampDuty {
		in.StampDuty = stampDuty
	}
	return in
}

// publish delivers post-commit events; delivery failures never fail the
// request that produced them
func (s *DocumentService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}

func validateAdjustments(discount, deliveryFee, stampDuty decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if deliveryFee.IsNegative() {
		return shared.NewDomainError("INVALID_DELIVERY_FEE", "Delivery fee cannot be negative")
	}
	if stampDuty.IsNegative() {
		return shared.NewDomainError("INVALID_STAMP_DUTY", "Stamp duty cannot be negative")
	}
	return nil
}
