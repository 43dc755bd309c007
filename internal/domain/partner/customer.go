package partner

import (
	"strings"
	"time"

	"github.com/sobitas/backend/internal/domain/shared"
)

// Customer represents a registered client. Invoice-type documents reference
// a client record; orders and walk-in ticket sales may carry identity fields
// inline on the document instead.
type Customer struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(255);not null"`
	Address string `gorm:"type:text"`
	Phone1  string `gorm:"type:varchar(50);index"`
	Phone2  string `gorm:"type:varchar(50)"`
	// TaxID is the fiscal registration number ("matricule fiscale").
	TaxID string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "clients"
}

// NewCustomer creates a new customer
func NewCustomer(name, address, phone1, phone2, taxID string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           address,
		Phone1:            strings.TrimSpace(phone1),
		Phone2:            strings.TrimSpace(phone2),
		TaxID:             taxID,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))
	return customer, nil
}

// UpdateContact updates the customer's contact information
func (c *Customer) UpdateContact(address, phone1, phone2 string) {
	c.Address = address
	c.Phone1 = strings.TrimSpace(phone1)
	c.Phone2 = strings.TrimSpace(phone2)
	c.UpdatedAt = time.Now()
}
