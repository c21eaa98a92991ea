package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		want      string
	}{
		{name: "whole numbers", quantity: "2", unitPrice: "50", want: "100"},
		{name: "zero quantity", quantity: "0", unitPrice: "99.99", want: "0"},
		{name: "fractional quantity", quantity: "1.5", unitPrice: "10.10", want: "15.15"},
		{name: "cents do not drift", quantity: "3", unitPrice: "0.1", want: "0.3"},
		{name: "negative is not clamped", quantity: "-1", unitPrice: "10", want: "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLineTotal(dec(tt.quantity), dec(tt.unitPrice))
			assert.True(t, dec(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeSubtotal(t *testing.T) {
	t.Run("empty sequence is zero", func(t *testing.T) {
		assert.True(t, ComputeSubtotal(nil).IsZero())
	})

	t.Run("sums every item once", func(t *testing.T) {
		items := []LineItem{
			NewLineItem("A", dec("2"), dec("50")),
			NewLineItem("B", dec("1"), dec("0.10")),
			NewLineItem("C", dec("3"), dec("0.20")),
		}
		assert.Equal(t, "100.7", ComputeSubtotal(items).String())
	})
}

func TestCalculator_ComputeTax(t *testing.T) {
	calc := NewCalculator(DefaultTaxRate)

	assert.True(t, calc.ComputeTax(dec("100"), false).IsZero())
	assert.Equal(t, "20", calc.ComputeTax(dec("100"), true).String())
	assert.True(t, calc.ComputeTax(decimal.Zero, true).IsZero())
}

func TestCalculator_Totals(t *testing.T) {
	calc := NewCalculator(DefaultTaxRate)

	t.Run("consulting scenario with tax", func(t *testing.T) {
		r := &Record{
			Items:      NewItemList(NewLineItem("Conseil", dec("2"), dec("50"))),
			IncludeTax: true,
		}

		totals := calc.Totals(r)

		assert.Equal(t, "100.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "20.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "120.00", totals.Total.StringFixed(2))
		assert.True(t, totals.IncludeTax)
	})

	t.Run("without tax total equals subtotal", func(t *testing.T) {
		r := &Record{
			Items:      NewItemList(NewLineItem("Conseil", dec("2"), dec("50"))),
			IncludeTax: false,
		}

		totals := calc.Totals(r)

		assert.True(t, totals.Tax.IsZero())
		assert.True(t, totals.Total.Equal(totals.Subtotal))
	})

	t.Run("empty items give zero totals", func(t *testing.T) {
		for _, includeTax := range []bool{true, false} {
			totals := calc.Totals(&Record{IncludeTax: includeTax})
			assert.Equal(t, "0.00", totals.Subtotal.StringFixed(2))
			assert.Equal(t, "0.00", totals.Tax.StringFixed(2))
			assert.Equal(t, "0.00", totals.Total.StringFixed(2))
		}
	})

	t.Run("configured rate applies uniformly", func(t *testing.T) {
		calc18 := NewCalculator(dec("0.18"))
		r := &Record{
			Items:      NewItemList(NewLineItem("", dec("1"), dec("200"))),
			IncludeTax: true,
		}

		totals := calc18.Totals(r)

		assert.Equal(t, "36.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "236.00", totals.Total.StringFixed(2))
		assert.True(t, dec("0.18").Equal(totals.TaxRate))
	})

	t.Run("recomputed after every mutation", func(t *testing.T) {
		r := NewRecord(NewDate(2024, 1, 2))
		first := r.Items.Items()[0]
		price := dec("10")

		_, err := r.Items.UpdateByID(first.ID, ItemUpdate{UnitPrice: &price})
		require.NoError(t, err)
		assert.Equal(t, "12.00", calc.Totals(r).Total.StringFixed(2))

		qty := dec("3")
		_, err = r.Items.UpdateByID(first.ID, ItemUpdate{Quantity: &qty})
		require.NoError(t, err)
		assert.Equal(t, "36.00", calc.Totals(r).Total.StringFixed(2))
	})
}
