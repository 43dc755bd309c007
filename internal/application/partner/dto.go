package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/sobitas/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to register a client
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Address string `json:"address"`
	Phone1  string `json:"phone_1" binding:"max=50"`
	Phone2  string `json:"phone_2" binding:"max=50"`
	TaxID   string `json:"tax_id" binding:"max=100"`
}

// UpdateCustomerRequest represents a request to update a client
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address *string `json:"address"`
	Phone1  *string `json:"phone_1" binding:"omitempty,max=50"`
	Phone2  *string `json:"phone_2" binding:"omitempty,max=50"`
	TaxID   *string `json:"tax_id" binding:"omitempty,max=100"`
}

// CustomerResponse represents a client in responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone1    string    `json:"phone_1,omitempty"`
	Phone2    string    `json:"phone_2,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to a CustomerResponse
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Address:   customer.Address,
		Phone1:    customer.Phone1,
		Phone2:    customer.Phone2,
		TaxID:     customer.TaxID,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
