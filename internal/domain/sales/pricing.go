package sales

import (
	"github.com/shopspring/decimal"

	"github.com/sobitas/backend/internal/domain/shared/valueobject"
)

// VATBase selects which HT amount the TVA is computed on. The legacy system
// did both, depending on the code path, so the choice is left to
// configuration instead of being hardcoded.
type VATBase string

const (
	// VATBaseNet computes TVA on the discounted HT (lines total minus discount).
	VATBaseNet VATBase = "net"
	// VATBaseGross computes TVA on the raw lines total, before discount.
	VATBaseGross VATBase = "gross"
)

// IsValid checks if the value is a known VATBase
func (b VATBase) IsValid() bool {
	return b == VATBaseNet || b == VATBaseGross
}

var hundred = decimal.NewFromInt(100)

// PricingInput carries the header adjustments applied on top of line totals.
type PricingInput struct {
	DiscountAmount decimal.Decimal
	DeliveryFee    decimal.Decimal
	StampDuty      decimal.Decimal
	TVARatePercent decimal.Decimal
	VATBase        VATBase
}

// PriceBreakdown is the result of a total computation. All amounts are HT
// except TotalTTC; only TotalTTC is rounded (once, to the persisted scale)
// so intermediate amounts carry full precision and never drift.
type PriceBreakdown struct {
	LinesTotalHT decimal.Decimal
	NetHT        decimal.Decimal
	TVAAmount    decimal.Decimal
	TotalTTC     decimal.Decimal
}

// ComputeTotals derives the document totals from its line items and header
// adjustments. It is a pure function: same inputs, same breakdown.
//
//	lines_total_ht = Σ line_ht
//	net_ht         = lines_total_ht − discount      (discount > 0 only)
//	tva            = base × rate / 100
//	total_ttc      = net_ht + tva + stamp + delivery fee, clamped at zero
func ComputeTotals(lines []LineItem, in PricingInput) PriceBreakdown {
	linesTotal := decimal.Zero
	for _, line := range lines {
		linesTotal = linesTotal.Add(line.LineHT)
	}

	netHT := linesTotal
	if in.DiscountAmount.IsPositive() {
		netHT = linesTotal.Sub(in.DiscountAmount)
	}

	vatBase := netHT
	if in.VATBase == VATBaseGross {
		vatBase = linesTotal
	}
	tva := decimal.Zero
	if in.TVARatePercent.IsPositive() {
		tva = vatBase.Mul(in.TVARatePercent).Div(hundred)
	}

	total := netHT.Add(tva).Add(in.StampDuty)
	if in.DeliveryFee.IsPositive() {
		total = total.Add(in.DeliveryFee)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}

	return PriceBreakdown{
		LinesTotalHT: linesTotal,
		NetHT:        netHT,
		TVAAmount:    tva,
		TotalTTC:     total.Round(valueobject.TNDScale),
	}
}
