// Package Pricing holds the monetary arithmetic shared by order entry,
// invoice entry, collections and bulk upload. Everything here is pure: no
// database, no rounding beyond what decimal arithmetic carries, recomputed in
// full whenever an input changes.
package Pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineBreakdown is the monetary breakdown of one document line.
type LineBreakdown struct {
	Base           decimal.Decimal `json:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// HeaderTotals are the document-level aggregates.
type HeaderTotals struct {
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
}

// ComputeLine converts a line's raw inputs into its breakdown, in fixed order:
//
//	base     = quantity * unitPrice
//	discount = base * discountPct / 100
//	taxable  = base - discount
//	tax      = taxable * taxPct / 100
//	total    = taxable + tax
//
// Inputs are taken as given; callers coerce blank or negative form values to
// zero before calling (see CoerceNonNegative).
func ComputeLine(quantity, unitPrice, discountPct, taxPct decimal.Decimal) LineBreakdown {
	base := quantity.Mul(unitPrice)
	discount := base.Mul(discountPct).Div(hundred)
	taxable := base.Sub(discount)
	tax := taxable.Mul(taxPct).Div(hundred)
	return LineBreakdown{
		Base:           base,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      tax,
		LineTotal:      taxable.Add(tax),
	}
}

// Aggregate reduces line breakdowns into header totals. The identity
// net = gross - discount + tax holds for every document.
func Aggregate(lines []LineBreakdown) HeaderTotals {
	var t HeaderTotals
	for _, line := range lines {
		t.GrossAmount = t.GrossAmount.Add(line.Base)
		t.DiscountAmount = t.DiscountAmount.Add(line.DiscountAmount)
		t.TaxAmount = t.TaxAmount.Add(line.TaxAmount)
		t.NetAmount = t.NetAmount.Add(line.LineTotal)
	}
	return t
}

// Balance is the per-line collection balance: invoice amount minus what was
// received against it. Not cumulative across collections.
func Balance(invoiceAmount, receivedAmount decimal.Decimal) decimal.Decimal {
	return invoiceAmount.Sub(receivedAmount)
}

// CoerceNonNegative maps negative input to zero. It never rejects.
func CoerceNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
