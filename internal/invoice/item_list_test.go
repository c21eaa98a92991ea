package invoice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemList_Add(t *testing.T) {
	l := NewItemList()

	a, err := l.Add(NewLineItem("A", dec("1"), dec("1")))
	require.NoError(t, err)
	b, err := l.Add(NewLineItem("B", dec("1"), dec("1")))
	require.NoError(t, err)

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, b.ID, items[1].ID)

	_, err = l.Add(NewLineItemWithID(a.ID, "dup", dec("1"), dec("1")))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 2, l.Len())
}

func TestItemList_RemoveByID(t *testing.T) {
	a := NewLineItem("A", dec("1"), dec("1"))
	b := NewLineItem("B", dec("1"), dec("1"))
	c := NewLineItem("C", dec("1"), dec("1"))
	l := NewItemList(a, b, c)

	require.NoError(t, l.RemoveByID(b.ID))

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Description)
	assert.Equal(t, "C", items[1].Description)

	err := l.RemoveByID("missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemList_UpdateByID(t *testing.T) {
	item := NewLineItem("Conseil", dec("2"), dec("50"))
	l := NewItemList(item)

	t.Run("description change keeps total", func(t *testing.T) {
		desc := "Audit"
		updated, err := l.UpdateByID(item.ID, ItemUpdate{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Audit", updated.Description)
		assert.Equal(t, "100", updated.Total().String())
	})

	t.Run("price change recomputes total", func(t *testing.T) {
		price := dec("75.5")
		updated, err := l.UpdateByID(item.ID, ItemUpdate{UnitPrice: &price})
		require.NoError(t, err)
		assert.Equal(t, "151", updated.Total().String())

		stored, err := l.Get(item.ID)
		require.NoError(t, err)
		assert.True(t, stored.Total().Equal(stored.Quantity().Mul(stored.UnitPrice())))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := l.UpdateByID("nope", ItemUpdate{})
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestItemList_CloneIsIndependent(t *testing.T) {
	item := NewLineItem("A", dec("1"), dec("1"))
	l := NewItemList(item)
	c := l.Clone()

	require.NoError(t, c.RemoveByID(item.ID))

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, c.Len())
}

func TestLineItem_JSONIgnoresIncomingTotal(t *testing.T) {
	var li LineItem
	err := json.Unmarshal([]byte(`{"id":"x1","description":"Conseil","quantity":2,"unitPrice":"50","total":"999"}`), &li)
	require.NoError(t, err)

	assert.Equal(t, "x1", li.ID)
	assert.Equal(t, "100", li.Total().String())

	out, err := json.Marshal(li)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x1","description":"Conseil","quantity":"2","unitPrice":"50","total":"100"}`, string(out))
}

func TestItemList_UnmarshalJSON(t *testing.T) {
	t.Run("keeps order and assigns missing ids", func(t *testing.T) {
		var l ItemList
		err := json.Unmarshal([]byte(`[{"id":"a","quantity":1,"unitPrice":"5"},{"quantity":2,"unitPrice":"3"},{"quantity":1,"unitPrice":"1"}]`), &l)
		require.NoError(t, err)

		items := l.Items()
		require.Len(t, items, 3)
		assert.Equal(t, "a", items[0].ID)
		assert.NotEmpty(t, items[1].ID)
		assert.NotEqual(t, items[1].ID, items[2].ID)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		var l ItemList
		err := json.Unmarshal([]byte(`[{"id":"a","quantity":1,"unitPrice":"5"},{"id":"a","quantity":2,"unitPrice":"3"}]`), &l)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})
}

func TestRecord_JSON(t *testing.T) {
	payload := `{
		"clientName":"Awa Diallo",
		"clientEmail":"awa@example.com",
		"clientAddress":"Kaloum\nConakry",
		"invoiceNumber":"FAC-2024-001",
		"issueDate":"2024-01-02",
		"dueDate":"2024-02-01",
		"paymentTerms":"30",
		"notes":"",
		"items":[{"id":"1","description":"","quantity":1,"unitPrice":0}],
		"includeTax":true
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	assert.Equal(t, NewDate(2024, 1, 2), r.IssueDate)
	assert.Equal(t, 1, r.Items.Len())
	assert.True(t, r.IncludeTax)

	var empty Record
	out, err := json.Marshal(&empty)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"items":[]`)
	assert.Contains(t, string(out), `"issueDate":""`)
}

func TestNewRecord_Defaults(t *testing.T) {
	today := NewDate(2024, 3, 15)
	r := NewRecord(today)

	assert.Equal(t, today, r.IssueDate)
	assert.True(t, r.DueDate.IsZero())
	assert.Equal(t, Terms30, r.PaymentTerms)
	assert.True(t, r.IncludeTax)
	require.Equal(t, 1, r.Items.Len())

	first := r.Items.Items()[0]
	assert.Empty(t, first.Description)
	assert.Equal(t, "1", first.Quantity().String())
	assert.True(t, first.Total().IsZero())
}

func TestValidatePaymentTerms(t *testing.T) {
	for _, ok := range []string{"immediate", "15", "30", "45", "60", "90", "0"} {
		assert.NoError(t, ValidatePaymentTerms(ok), ok)
	}
	for _, bad := range []string{"", "soon", "-5", "30d"} {
		assert.ErrorIs(t, ValidatePaymentTerms(bad), ErrInvalidPaymentTerms, bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", d.String())

	zero, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = ParseDate("31/12/2024")
	assert.Error(t, err)
}
