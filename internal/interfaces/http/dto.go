package http

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
	"github.com/garyjia/facturly/internal/session"
	"github.com/garyjia/facturly/pkg/utils"
)

var registerOnce sync.Once

// registerValidations adds the invoice rules to gin's validator
func registerValidations(logger *zap.Logger) {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.Warn("Binding validator is not go-playground, custom rules disabled")
			return
		}
		if err := v.RegisterValidation("payment_terms", func(fl validator.FieldLevel) bool {
			return invoice.ValidatePaymentTerms(fl.Field().String()) == nil
		}); err != nil {
			logger.Error("Failed to register payment_terms rule", zap.Error(err))
		}
		if err := v.RegisterValidation("invoice_email", func(fl validator.FieldLevel) bool {
			return utils.ValidateOptionalEmail(fl.Field().String()) == nil
		}); err != nil {
			logger.Error("Failed to register invoice_email rule", zap.Error(err))
		}
	})
}

// ItemRequest is a line item as sent by the form
type ItemRequest struct {
	ID          string           `json:"id"`
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
}

// RecordRequest is a full invoice record
type RecordRequest struct {
	ClientName    string        `json:"clientName"`
	ClientEmail   string        `json:"clientEmail" binding:"invoice_email"`
	ClientAddress string        `json:"clientAddress"`
	InvoiceNumber string        `json:"invoiceNumber"`
	IssueDate     invoice.Date  `json:"issueDate"`
	DueDate       invoice.Date  `json:"dueDate"`
	PaymentTerms  string        `json:"paymentTerms" binding:"omitempty,payment_terms"`
	Notes         string        `json:"notes"`
	Items         []ItemRequest `json:"items"`
	IncludeTax    *bool         `json:"includeTax"`
}

// HeaderRequest is a partial update of the non-item fields
type HeaderRequest struct {
	ClientName    *string       `json:"clientName"`
	ClientEmail   *string       `json:"clientEmail" binding:"omitempty,invoice_email"`
	ClientAddress *string       `json:"clientAddress"`
	InvoiceNumber *string       `json:"invoiceNumber"`
	IssueDate     *invoice.Date `json:"issueDate"`
	DueDate       *invoice.Date `json:"dueDate"`
	PaymentTerms  *string       `json:"paymentTerms" binding:"omitempty,payment_terms"`
	Notes         *string       `json:"notes"`
	IncludeTax    *bool         `json:"includeTax"`
}

// ItemPayload is returned by item mutations
type ItemPayload struct {
	Item    invoice.LineItem `json:"item"`
	Invoice session.Snapshot `json:"invoice"`
}

// TemplatesPayload is returned by the catalog listing
type TemplatesPayload struct {
	Default   string        `json:"default"`
	Templates []render.Meta `json:"templates"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Drafts    int    `json:"drafts"`
}

// toLineItem builds a line item, defaulting a missing quantity to 1 and price to 0
func (r ItemRequest) toLineItem() (invoice.LineItem, error) {
	quantity := decimal.NewFromInt(1)
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	unitPrice := decimal.Zero
	if r.UnitPrice != nil {
		unitPrice = *r.UnitPrice
	}
	if err := utils.ValidateAmount("quantity", quantity); err != nil {
		return invoice.LineItem{}, err
	}
	if err := utils.ValidateAmount("unitPrice", unitPrice); err != nil {
		return invoice.LineItem{}, err
	}

	description := ""
	if r.Description != nil {
		description = *r.Description
	}
	return invoice.NewLineItemWithID(r.ID, description, quantity, unitPrice), nil
}

// toUpdate converts the request to a partial item update
func (r ItemRequest) toUpdate() (invoice.ItemUpdate, error) {
	if r.Quantity != nil {
		if err := utils.ValidateAmount("quantity", *r.Quantity); err != nil {
			return invoice.ItemUpdate{}, err
		}
	}
	if r.UnitPrice != nil {
		if err := utils.ValidateAmount("unitPrice", *r.UnitPrice); err != nil {
			return invoice.ItemUpdate{}, err
		}
	}
	return invoice.ItemUpdate{
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
	}, nil
}

// toRecord converts the request to a record. Tax defaults to included.
func (r RecordRequest) toRecord() (*invoice.Record, error) {
	items := invoice.NewItemList()
	for _, req := range r.Items {
		item, err := req.toLineItem()
		if err != nil {
			return nil, err
		}
		if _, err := items.Add(item); err != nil {
			return nil, err
		}
	}

	includeTax := true
	if r.IncludeTax != nil {
		includeTax = *r.IncludeTax
	}
	terms := r.PaymentTerms
	if terms == "" {
		terms = invoice.Terms30
	}

	return &invoice.Record{
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientAddress: r.ClientAddress,
		InvoiceNumber: r.InvoiceNumber,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDate,
		PaymentTerms:  terms,
		Notes:         r.Notes,
		Items:         items,
		IncludeTax:    includeTax,
	}, nil
}

func (r HeaderRequest) toUpdate() session.HeaderUpdate {
	return session.HeaderUpdate{
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientAddress: r.ClientAddress,
		InvoiceNumber: r.InvoiceNumber,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDate,
		PaymentTerms:  r.PaymentTerms,
		Notes:         r.Notes,
		IncludeTax:    r.IncludeTax,
	}
}
