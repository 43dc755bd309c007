package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(10), TND)
	require.NoError(t, err)
	assert.Equal(t, TND, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(10)))

	_, err = NewMoney(decimal.NewFromInt(10), "")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyTND(decimal.NewFromFloat(25.5))
	b := NewMoneyTND(decimal.NewFromFloat(7.25))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(NewMoneyTND(decimal.NewFromFloat(32.75))))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equals(NewMoneyTND(decimal.NewFromFloat(18.25))))

	other, err := NewMoney(decimal.NewFromInt(1), "EUR")
	require.NoError(t, err)
	_, err = a.Add(other)
	assert.Error(t, err)
	_, err = a.Subtract(other)
	assert.Error(t, err)
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, ZeroTND().IsZero())
	assert.False(t, ZeroTND().IsNegative())
	assert.True(t, NewMoneyTND(decimal.NewFromInt(-3)).IsNegative())
}

func TestMoneyRound(t *testing.T) {
	m := NewMoneyTND(decimal.NewFromFloat(1.23456)).Round(TNDScale)
	assert.Equal(t, "1.235", m.Amount().String())
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "72.000 TND", NewMoneyTND(decimal.NewFromInt(72)).String())
	assert.Equal(t, "4761.500 TND", NewMoneyTND(decimal.NewFromFloat(4761.5)).String())
}
