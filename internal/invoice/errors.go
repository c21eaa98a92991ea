package invoice

import "errors"

var (
	// Item errors
	ErrItemNotFound = errors.New("line item not found")
	ErrDuplicateID  = errors.New("line item id already present")

	// Field errors
	ErrInvalidPaymentTerms = errors.New("payment terms must be 'immediate' or a number of days")
)
