package render

import (
	"fmt"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/shopspring/decimal"
)

// Shared formatting helpers. Every template formats through these so the
// displayed values cannot differ from one skin to another.

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// MissingDate is displayed for an unset date
const MissingDate = "-"

// PaymentTermsText maps a payment terms code to its display text
func PaymentTermsText(terms string) string {
	switch terms {
	case invoice.TermsImmediate:
		return "Paiement immédiat"
	case invoice.Terms15:
		return "15 jours"
	case invoice.Terms30:
		return "30 jours"
	case invoice.Terms45:
		return "45 jours"
	case invoice.Terms60:
		return "60 jours"
	default:
		return terms + " jours"
	}
}

// FormatAmount renders an amount with two decimals and the currency suffix
func FormatAmount(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}

// FormatQuantity renders a quantity without trailing zeros
func FormatQuantity(q decimal.Decimal) string {
	return q.String()
}

// FormatLongDate renders a date as "2 janvier 2024"
func FormatLongDate(d invoice.Date) string {
	if d.IsZero() {
		return MissingDate
	}
	return fmt.Sprintf("%d %s %d", d.Day(), frenchMonths[d.Month()-1], d.Year())
}

// FormatShortDate renders a date as "02/01/2024"
func FormatShortDate(d invoice.Date) string {
	if d.IsZero() {
		return MissingDate
	}
	return fmt.Sprintf("%02d/%02d/%d", d.Day(), int(d.Month()), d.Year())
}

// ItemLabel returns the description, or "Article N" (1-based) when it is empty
func ItemLabel(description string, index int) string {
	if description == "" {
		return fmt.Sprintf("Article %d", index+1)
	}
	return description
}

// TaxLabel renders the VAT line label for a rate, e.g. "TVA (20%)"
func TaxLabel(rate decimal.Decimal) string {
	return fmt.Sprintf("TVA (%s%%)", rate.Shift(2).String())
}
