package invoice

// Record is the structured data of one invoice as collected by the form.
// Derived aggregates are not stored; they come from Calculator.Totals.
type Record struct {
	ClientName    string   `json:"clientName"`
	ClientEmail   string   `json:"clientEmail"`
	ClientAddress string   `json:"clientAddress"`
	InvoiceNumber string   `json:"invoiceNumber"`
	IssueDate     Date     `json:"issueDate"`
	DueDate       Date     `json:"dueDate"`
	PaymentTerms  string   `json:"paymentTerms"`
	Notes         string   `json:"notes"`
	Items         ItemList `json:"items"`
	IncludeTax    bool     `json:"includeTax"`
}

// NewRecord creates the record a fresh form session starts with:
// one blank item, 30 day terms, tax included and the issue date set to today.
func NewRecord(today Date) *Record {
	return &Record{
		IssueDate:    today,
		PaymentTerms: Terms30,
		Items:        NewItemList(BlankLineItem()),
		IncludeTax:   true,
	}
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	c := *r
	c.Items = r.Items.Clone()
	return &c
}
