package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sobitas/backend/internal/domain/partner"
	"github.com/sobitas/backend/internal/domain/shared"
)

// CustomerService handles client record use cases
type CustomerService struct {
	repo      partner.CustomerRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:   repo,
		logger: logger,
	}
}

// SetEventPublisher sets the publisher used for post-commit events
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create registers a new client. The created event triggers the welcome
// message after the record is persisted.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Address, req.Phone1, req.Phone2, req.TaxID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("name", customer.Name),
	)

	if s.publisher != nil {
		events := customer.GetDomainEvents()
		customer.ClearDomainEvents()
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish domain events", zap.Error(err))
		}
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update updates a client's contact information
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	customer.UpdateContact(
		stringOr(req.Address, customer.Address),
		stringOr(req.Phone1, customer.Phone1),
		stringOr(req.Phone2, customer.Phone2),
	)
	if req.TaxID != nil {
		customer.TaxID = *req.TaxID
	}

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID retrieves a client by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List retrieves clients with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	customers, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes a client record
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func stringOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
