package utils

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Case-insensitive, same shape the invoice form accepts
var emailRegex = regexp.MustCompile(`(?i)^[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateOptionalEmail accepts an empty string or a valid email
func ValidateOptionalEmail(email string) error {
	if email == "" {
		return nil
	}
	return ValidateEmail(email)
}

// ValidateAmount rejects negative quantities and prices
func ValidateAmount(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%s must not be negative: %s", name, amount.String())
	}
	return nil
}
