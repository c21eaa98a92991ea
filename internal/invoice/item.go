package invoice

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one billable row of an invoice.
// The total is derived from quantity and unit price and is recomputed by every
// constructor and mutation; it cannot be set directly.
type LineItem struct {
	ID          string
	Description string
	quantity    decimal.Decimal
	unitPrice   decimal.Decimal
	total       decimal.Decimal
}

// ItemUpdate carries a partial change to a line item. Nil fields are left untouched.
type ItemUpdate struct {
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// NewLineItem creates a line item with a fresh id
func NewLineItem(description string, quantity, unitPrice decimal.Decimal) LineItem {
	return NewLineItemWithID(uuid.NewString(), description, quantity, unitPrice)
}

// NewLineItemWithID creates a line item keeping a caller-supplied id.
// An empty id is replaced by a fresh one.
func NewLineItemWithID(id, description string, quantity, unitPrice decimal.Decimal) LineItem {
	if id == "" {
		id = uuid.NewString()
	}
	return LineItem{
		ID:          id,
		Description: description,
		quantity:    quantity,
		unitPrice:   unitPrice,
		total:       ComputeLineTotal(quantity, unitPrice),
	}
}

// BlankLineItem is the row a new form starts with: quantity 1, price 0
func BlankLineItem() LineItem {
	return NewLineItem("", decimal.NewFromInt(1), decimal.Zero)
}

func (li LineItem) Quantity() decimal.Decimal  { return li.quantity }
func (li LineItem) UnitPrice() decimal.Decimal { return li.unitPrice }
func (li LineItem) Total() decimal.Decimal     { return li.total }

// apply returns a copy with the update applied and the total recomputed
func (li LineItem) apply(u ItemUpdate) LineItem {
	if u.Description != nil {
		li.Description = *u.Description
	}
	if u.Quantity != nil {
		li.quantity = *u.Quantity
	}
	if u.UnitPrice != nil {
		li.unitPrice = *u.UnitPrice
	}
	li.total = ComputeLineTotal(li.quantity, li.unitPrice)
	return li
}

type lineItemJSON struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// MarshalJSON implements json.Marshaler
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		ID:          li.ID,
		Description: li.Description,
		Quantity:    li.quantity,
		UnitPrice:   li.unitPrice,
		Total:       li.total,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Any incoming total is ignored.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw lineItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid line item: %w", err)
	}
	*li = NewLineItemWithID(raw.ID, raw.Description, raw.Quantity, raw.UnitPrice)
	return nil
}
