package invoice

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// ItemList is the ordered collection of line items of one invoice.
// Insertion order is display order and is never changed.
type ItemList struct {
	items []LineItem
}

// NewItemList creates a list holding the given items in order
func NewItemList(items ...LineItem) ItemList {
	return ItemList{items: append([]LineItem(nil), items...)}
}

// Len returns the number of items
func (l *ItemList) Len() int {
	return len(l.items)
}

// Items returns a copy of the items in display order
func (l *ItemList) Items() []LineItem {
	return append([]LineItem(nil), l.items...)
}

// Get returns the item with the given id
func (l *ItemList) Get(id string) (LineItem, error) {
	item, ok := lo.Find(l.items, func(li LineItem) bool { return li.ID == id })
	if !ok {
		return LineItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return item, nil
}

// Add appends an item at the end of the list
func (l *ItemList) Add(item LineItem) (LineItem, error) {
	if lo.ContainsBy(l.items, func(li LineItem) bool { return li.ID == item.ID }) {
		return LineItem{}, fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
	}
	l.items = append(l.items, item)
	return item, nil
}

// RemoveByID removes the item with the given id, keeping the others in order
func (l *ItemList) RemoveByID(id string) error {
	_, idx, ok := lo.FindIndexOf(l.items, func(li LineItem) bool { return li.ID == id })
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	l.items = append(l.items[:idx:idx], l.items[idx+1:]...)
	return nil
}

// UpdateByID applies the update to the item with the given id in place
func (l *ItemList) UpdateByID(id string, u ItemUpdate) (LineItem, error) {
	_, idx, ok := lo.FindIndexOf(l.items, func(li LineItem) bool { return li.ID == id })
	if !ok {
		return LineItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	l.items[idx] = l.items[idx].apply(u)
	return l.items[idx], nil
}

// Clone returns an independent copy of the list
func (l *ItemList) Clone() ItemList {
	return NewItemList(l.items...)
}

// MarshalJSON implements json.Marshaler
func (l ItemList) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// UnmarshalJSON implements json.Unmarshaler. Duplicate ids are rejected.
func (l *ItemList) UnmarshalJSON(data []byte) error {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	decoded := NewItemList()
	for _, item := range items {
		if _, err := decoded.Add(item); err != nil {
			return err
		}
	}
	*l = decoded
	return nil
}
