package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLine(t *testing.T, quantity int64, unitPrice float64) LineItem {
	t.Helper()
	line, err := NewLineItem(uuid.New(), uuid.New(), quantity, decimal.NewFromFloat(unitPrice), decimal.Zero)
	require.NoError(t, err)
	return *line
}

func TestComputeTotals_LinesOnly(t *testing.T) {
	lines := []LineItem{
		makeLine(t, 3, 25),  // 75
		makeLine(t, 2, 4.5), // 9
	}

	b := ComputeTotals(lines, PricingInput{VATBase: VATBaseNet})

	assert.Equal(t, "84", b.LinesTotalHT.String())
	assert.Equal(t, "84", b.NetHT.String())
	assert.True(t, b.TVAAmount.IsZero())
	assert.Equal(t, "84", b.TotalTTC.String())
}

func TestComputeTotals_DiscountAppliesBeforeVATOnNetBase(t *testing.T) {
	lines := []LineItem{makeLine(t, 1, 100)}

	b := ComputeTotals(lines, PricingInput{
		DiscountAmount: decimal.NewFromInt(20),
		TVARatePercent: decimal.NewFromInt(19),
		VATBase:        VATBaseNet,
	})

	assert.Equal(t, "100", b.LinesTotalHT.String())
	assert.Equal(t, "80", b.NetHT.String())
	assert.Equal(t, "15.2", b.TVAAmount.String())
	assert.Equal(t, "95.2", b.TotalTTC.String())
}

func TestComputeTotals_GrossBaseIgnoresDiscountForVAT(t *testing.T) {
	lines := []LineItem{makeLine(t, 1, 100)}

	b := ComputeTotals(lines, PricingInput{
		DiscountAmount: decimal.NewFromInt(20),
		TVARatePercent: decimal.NewFromInt(19),
		VATBase:        VATBaseGross,
	})

	// TVA on the raw lines total, discount still reduces the net.
	assert.Equal(t, "80", b.NetHT.String())
	assert.Equal(t, "19", b.TVAAmount.String())
	assert.Equal(t, "99", b.TotalTTC.String())
}

func TestComputeTotals_NegativeDiscountIgnored(t *testing.T) {
	lines := []LineItem{makeLine(t, 1, 50)}

	b := ComputeTotals(lines, PricingInput{
		DiscountAmount: decimal.NewFromInt(-10),
		VATBase:        VATBaseNet,
	})

	assert.Equal(t, "50", b.NetHT.String())
	assert.Equal(t, "50", b.TotalTTC.String())
}

func TestComputeTotals_StampAndDeliveryFee(t *testing.T) {
	lines := []LineItem{makeLine(t, 1, 40)}

	b := ComputeTotals(lines, PricingInput{
		StampDuty:   decimal.NewFromInt(1),
		DeliveryFee: decimal.NewFromInt(7),
		VATBase:     VATBaseNet,
	})
	assert.Equal(t, "48", b.TotalTTC.String())

	// Non-positive delivery fee never enters the total.
	b = ComputeTotals(lines, PricingInput{
		DeliveryFee: decimal.NewFromInt(-7),
		VATBase:     VATBaseNet,
	})
	assert.Equal(t, "40", b.TotalTTC.String())
}

func TestComputeTotals_ClampedAtZero(t *testing.T) {
	lines := []LineItem{makeLine(t, 1, 10)}

	b := ComputeTotals(lines, PricingInput{
		DiscountAmount: decimal.NewFromInt(50),
		VATBase:        VATBaseNet,
	})

	// Net goes negative but the charged amount never does.
	assert.Equal(t, "-40", b.NetHT.String())
	assert.True(t, b.TotalTTC.IsZero())
}

func TestComputeTotals_RoundsOnce(t *testing.T) {
	lines := []LineItem{makeLine(t, 3, 3.333)} // 9.999

	b := ComputeTotals(lines, PricingInput{
		TVARatePercent: decimal.NewFromInt(19),
		VATBase:        VATBaseNet,
	})

	// 9.999 × 1.19 = 11.89881, rounded to millimes only at the end.
	assert.Equal(t, "11.899", b.TotalTTC.String())
	assert.Equal(t, "1.89981", b.TVAAmount.String())
}

func TestComputeTotals_EmptyLines(t *testing.T) {
	b := ComputeTotals(nil, PricingInput{
		TVARatePercent: decimal.NewFromInt(19),
		StampDuty:      decimal.NewFromInt(1),
		VATBase:        VATBaseNet,
	})

	assert.True(t, b.LinesTotalHT.IsZero())
	assert.Equal(t, "1", b.TotalTTC.String())
}

func TestVATBaseIsValid(t *testing.T) {
	assert.True(t, VATBaseNet.IsValid())
	assert.True(t, VATBaseGross.IsValid())
	assert.False(t, VATBase("both").IsValid())
}
