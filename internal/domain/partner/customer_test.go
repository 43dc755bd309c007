package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobitas/backend/internal/domain/shared"
)

func TestNewCustomer(t *testing.T) {
	customer, err := NewCustomer("  STE EXEMPLE ", "Tunis", " 71123456 ", "", "1234567/A")
	require.NoError(t, err)

	assert.Equal(t, "STE EXEMPLE", customer.Name)
	assert.Equal(t, "71123456", customer.Phone1)

	events := customer.GetDomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*CustomerCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, customer.ID, created.CustomerID)
	assert.Equal(t, "71123456", created.Phone)
}

func TestNewCustomer_EmptyName(t *testing.T) {
	_, err := NewCustomer("   ", "", "", "", "")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NAME", domainErr.Code)
}

func TestUpdateContact(t *testing.T) {
	customer, err := NewCustomer("STE EXEMPLE", "Tunis", "71123456", "", "")
	require.NoError(t, err)

	customer.UpdateContact("Sousse", " 73555000 ", "98111222")

	assert.Equal(t, "Sousse", customer.Address)
	assert.Equal(t, "73555000", customer.Phone1)
	assert.Equal(t, "98111222", customer.Phone2)
}
