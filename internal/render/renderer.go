package render

import (
	"bytes"
	"fmt"

	"github.com/garyjia/facturly/internal/invoice"
	"go.uber.org/zap"
)

// Config holds renderer settings
type Config struct {
	Currency string
	Issuer   Issuer
}

// Renderer computes a record's totals once and hands the same view to the selected template
type Renderer struct {
	catalog    *Catalog
	calculator *invoice.Calculator
	config     Config
	logger     *zap.Logger
}

// NewRenderer creates a new Renderer
func NewRenderer(catalog *Catalog, calculator *invoice.Calculator, config Config, logger *zap.Logger) *Renderer {
	return &Renderer{
		catalog:    catalog,
		calculator: calculator,
		config:     config,
		logger:     logger,
	}
}

// Catalog returns the template catalog
func (r *Renderer) Catalog() *Catalog {
	return r.catalog
}

// View builds the render input for a record
func (r *Renderer) View(record *invoice.Record) View {
	return View{
		Record:   record,
		Totals:   r.calculator.Totals(record),
		Currency: r.config.Currency,
		Issuer:   r.config.Issuer,
	}
}

// Render renders a record with the given template, falling back to the default template
func (r *Renderer) Render(record *invoice.Record, id TemplateID) *Document {
	if !r.catalog.Has(id) {
		r.logger.Debug("Unknown template, using fallback",
			zap.String("requested", string(id)),
			zap.String("fallback", string(r.catalog.Fallback())))
	}
	return r.catalog.Lookup(id).Render(r.View(record))
}

// RenderHTML renders a record to a standalone HTML page
func (r *Renderer) RenderHTML(record *invoice.Record, id TemplateID, opts PageOptions) ([]byte, error) {
	doc := r.Render(record, id)
	if opts.Title == "" {
		opts.Title = "Facture " + record.InvoiceNumber
	}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc, opts); err != nil {
		return nil, fmt.Errorf("failed to write invoice html: %w", err)
	}
	return buf.Bytes(), nil
}
