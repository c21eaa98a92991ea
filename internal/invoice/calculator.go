package invoice

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat VAT rate (TVA) applied when tax is included
var DefaultTaxRate = decimal.NewFromFloat(0.20)

// Totals is the derived-aggregate snapshot of a record
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	TaxRate    decimal.Decimal `json:"taxRate"`
	IncludeTax bool            `json:"includeTax"`
}

// Calculator derives invoice aggregates using one canonical tax rate
type Calculator struct {
	taxRate decimal.Decimal
}

// NewCalculator creates a calculator for the given tax rate
func NewCalculator(taxRate decimal.Decimal) *Calculator {
	return &Calculator{taxRate: taxRate}
}

// TaxRate returns the rate applied by ComputeTax
func (c *Calculator) TaxRate() decimal.Decimal {
	return c.taxRate
}

// ComputeLineTotal returns quantity * unitPrice.
// Negative factors are not rejected here; input constraints belong to the caller.
func ComputeLineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// ComputeSubtotal sums the item totals in order
func ComputeSubtotal(items []LineItem) decimal.Decimal {
	return lo.Reduce(items, func(sum decimal.Decimal, li LineItem, _ int) decimal.Decimal {
		return sum.Add(li.Total())
	}, decimal.Zero)
}

// ComputeTotal returns subtotal + tax
func ComputeTotal(subtotal, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax)
}

// ComputeTax returns subtotal * rate when tax is included, zero otherwise
func (c *Calculator) ComputeTax(subtotal decimal.Decimal, includeTax bool) decimal.Decimal {
	if !includeTax {
		return decimal.Zero
	}
	return subtotal.Mul(c.taxRate)
}

// Totals computes the aggregates of a record from scratch
func (c *Calculator) Totals(r *Record) Totals {
	subtotal := ComputeSubtotal(r.Items.Items())
	tax := c.ComputeTax(subtotal, r.IncludeTax)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      ComputeTotal(subtotal, tax),
		TaxRate:    c.taxRate,
		IncludeTax: r.IncludeTax,
	}
}
