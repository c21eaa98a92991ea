package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/garyjia/facturly/internal/invoice"
)

// HeaderUpdate carries the non-item fields of a draft; nil fields are left unchanged
type HeaderUpdate struct {
	ClientName    *string
	ClientEmail   *string
	ClientAddress *string
	InvoiceNumber *string
	IssueDate     *invoice.Date
	DueDate       *invoice.Date
	PaymentTerms  *string
	Notes         *string
	IncludeTax    *bool
}

// Snapshot is a consistent copy of a draft and its totals
type Snapshot struct {
	ID        string          `json:"id"`
	Record    *invoice.Record `json:"invoice"`
	Totals    invoice.Totals  `json:"totals"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Draft is one form session being edited. All access goes through its mutex;
// every mutation is followed by a fresh totals computation.
type Draft struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	record    *invoice.Record
	updatedAt time.Time
	calc      *invoice.Calculator
	now       func() time.Time
}

func newDraft(id string, record *invoice.Record, calc *invoice.Calculator, now func() time.Time) *Draft {
	created := now()
	return &Draft{
		ID:        id,
		CreatedAt: created,
		record:    record,
		updatedAt: created,
		calc:      calc,
		now:       now,
	}
}

// Snapshot returns a deep copy of the current state
func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Record returns a deep copy of the record
func (d *Draft) Record() *invoice.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record.Clone()
}

// Totals recomputes the derived amounts
func (d *Draft) Totals() invoice.Totals {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calc.Totals(d.record)
}

// Update applies header changes
func (d *Draft) Update(u HeaderUpdate) (Snapshot, error) {
	if u.PaymentTerms != nil {
		if err := invoice.ValidatePaymentTerms(*u.PaymentTerms); err != nil {
			return Snapshot{}, err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	r := d.record
	setString(&r.ClientName, u.ClientName)
	setString(&r.ClientEmail, u.ClientEmail)
	setString(&r.ClientAddress, u.ClientAddress)
	setString(&r.InvoiceNumber, u.InvoiceNumber)
	setString(&r.PaymentTerms, u.PaymentTerms)
	setString(&r.Notes, u.Notes)
	if u.IssueDate != nil {
		r.IssueDate = *u.IssueDate
	}
	if u.DueDate != nil {
		r.DueDate = *u.DueDate
	}
	if u.IncludeTax != nil {
		r.IncludeTax = *u.IncludeTax
	}

	d.touch()
	return d.snapshotLocked(), nil
}

// AddItem appends a line item; a zero item becomes the blank default
func (d *Draft) AddItem(item *invoice.LineItem) (invoice.LineItem, Snapshot, error) {
	next := invoice.BlankLineItem()
	if item != nil {
		next = *item
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	added, err := d.record.Items.Add(next)
	if err != nil {
		return invoice.LineItem{}, Snapshot{}, fmt.Errorf("failed to add item: %w", err)
	}
	d.touch()
	return added, d.snapshotLocked(), nil
}

// UpdateItem changes one item and recomputes its total
func (d *Draft) UpdateItem(itemID string, u invoice.ItemUpdate) (invoice.LineItem, Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	updated, err := d.record.Items.UpdateByID(itemID, u)
	if err != nil {
		return invoice.LineItem{}, Snapshot{}, err
	}
	d.touch()
	return updated, d.snapshotLocked(), nil
}

// RemoveItem deletes one item, refusing to empty the list
func (d *Draft) RemoveItem(itemID string) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.record.Items.Get(itemID); err != nil {
		return Snapshot{}, err
	}
	if d.record.Items.Len() <= 1 {
		return Snapshot{}, ErrLastItem
	}
	if err := d.record.Items.RemoveByID(itemID); err != nil {
		return Snapshot{}, err
	}
	d.touch()
	return d.snapshotLocked(), nil
}

func (d *Draft) touch() {
	d.updatedAt = d.now()
}

func (d *Draft) snapshotLocked() Snapshot {
	return Snapshot{
		ID:        d.ID,
		Record:    d.record.Clone(),
		Totals:    d.calc.Totals(d.record),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.updatedAt,
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
