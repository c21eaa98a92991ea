package invoice

import "strconv"

// Payment terms offered by the form
const (
	TermsImmediate = "immediate"
	Terms15        = "15"
	Terms30        = "30"
	Terms45        = "45"
	Terms60        = "60"
)

// ValidatePaymentTerms accepts the immediate code or any non-negative whole number of days
func ValidatePaymentTerms(terms string) error {
	if terms == TermsImmediate {
		return nil
	}
	days, err := strconv.Atoi(terms)
	if err != nil || days < 0 {
		return ErrInvalidPaymentTerms
	}
	return nil
}
