package session

import "errors"

var (
	ErrDraftNotFound = errors.New("draft not found")
	// ErrLastItem is returned when removing the only remaining line item
	ErrLastItem = errors.New("a draft keeps at least one item")
)
