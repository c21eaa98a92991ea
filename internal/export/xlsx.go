// Package export produces downloadable files from an invoice record.
package export

import (
	"errors"
	"fmt"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetName is the worksheet holding the invoice
const SheetName = "Facture"

// First row of the item table; header sits one row above
const itemsStartRow = 12

var (
	ErrNothingToExport = errors.New("no invoice to export")
	// ErrPDFNotImplemented is returned by the PDF download, which is not built yet
	ErrPDFNotImplemented = errors.New("pdf download is not implemented")
)

// PDFNotImplementedMessage is shown to users asking for a PDF
const PDFNotImplementedMessage = "Fonctionnalité de téléchargement PDF en cours de développement"

// XLSXExporter writes an invoice into a spreadsheet
type XLSXExporter struct {
	currency string
	issuer   render.Issuer
	logger   *zap.Logger
}

// NewXLSXExporter creates a new XLSXExporter
func NewXLSXExporter(currency string, issuer render.Issuer, logger *zap.Logger) *XLSXExporter {
	return &XLSXExporter{
		currency: currency,
		issuer:   issuer,
		logger:   logger,
	}
}

// FileName returns the download name for a record
func FileName(r *invoice.Record) string {
	return "facture-" + r.InvoiceNumber + ".xlsx"
}

// Export builds the workbook and returns its bytes
func (e *XLSXExporter) Export(r *invoice.Record, totals invoice.Totals) ([]byte, error) {
	if r == nil {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	// Header block
	e.setCell(f, "A1", e.issuer.Name)
	e.setCell(f, "A2", e.issuer.Tagline)
	e.setCell(f, "D1", "FACTURE")
	e.setCell(f, "D2", "N° "+r.InvoiceNumber)

	// Client and dates
	e.setCell(f, "A4", "Facturé à")
	e.setCell(f, "A5", r.ClientName)
	e.setCell(f, "A6", r.ClientEmail)
	e.setCell(f, "A7", r.ClientAddress)
	e.setCell(f, "C4", "Date d'émission:")
	e.setCell(f, "D4", render.FormatLongDate(r.IssueDate))
	e.setCell(f, "C5", "Date d'échéance:")
	e.setCell(f, "D5", render.FormatLongDate(r.DueDate))
	e.setCell(f, "C6", "Conditions:")
	e.setCell(f, "D6", render.PaymentTermsText(r.PaymentTerms))

	// Item table
	header := []string{"Description", "Qté", "Prix unit. (" + e.currency + ")", "Total (" + e.currency + ")"}
	if err := f.SetSheetRow(SheetName, cellName(1, itemsStartRow-1), &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	row := itemsStartRow
	for i, item := range r.Items.Items() {
		values := []interface{}{
			render.ItemLabel(item.Description, i),
			item.Quantity().InexactFloat64(),
			item.UnitPrice().Round(2).InexactFloat64(),
			item.Total().Round(2).InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cellName(1, row), &values); err != nil {
			return nil, fmt.Errorf("failed to write item row %d: %w", i+1, err)
		}
		row++
	}

	// Totals come from the calculator, never from spreadsheet formulas
	row++
	e.setCell(f, cellName(3, row), "Sous-total:")
	e.setAmount(f, cellName(4, row), totals.Subtotal.Round(2).InexactFloat64())
	if totals.IncludeTax {
		row++
		e.setCell(f, cellName(3, row), render.TaxLabel(totals.TaxRate)+":")
		e.setAmount(f, cellName(4, row), totals.Tax.Round(2).InexactFloat64())
	}
	row++
	e.setCell(f, cellName(3, row), "Total:")
	e.setAmount(f, cellName(4, row), totals.Total.Round(2).InexactFloat64())

	if r.Notes != "" {
		row += 2
		e.setCell(f, cellName(1, row), "Notes")
		e.setCell(f, cellName(1, row+1), r.Notes)
	}

	if err := e.applyStyles(f, row); err != nil {
		e.logger.Warn("Failed to style invoice sheet", zap.Error(err))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Invoice exported",
		zap.String("invoice_number", r.InvoiceNumber),
		zap.Int("items", r.Items.Len()),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

func (e *XLSXExporter) applyStyles(f *excelize.File, lastRow int) error {
	if err := f.SetColWidth(SheetName, "A", "A", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "D", 18); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, cellName(1, itemsStartRow-1), cellName(4, itemsStartRow-1), bold); err != nil {
		return err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, cellName(3, itemsStartRow), cellName(4, lastRow), amount)
}

// setCell sets a cell value, logging instead of failing
func (e *XLSXExporter) setCell(f *excelize.File, cell, value string) {
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func (e *XLSXExporter) setAmount(f *excelize.File, cell string, value float64) {
	if err := f.SetCellFloat(SheetName, cell, value, -1, 64); err != nil {
		e.logger.Warn("Failed to set amount",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
