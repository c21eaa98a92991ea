package export

import (
	"bytes"
	"testing"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func exportRecord() *invoice.Record {
	return &invoice.Record{
		ClientName:    "Awa Diallo",
		ClientEmail:   "awa@example.com",
		InvoiceNumber: "FAC-2024-001",
		IssueDate:     invoice.NewDate(2024, 1, 2),
		PaymentTerms:  "45",
		Items: invoice.NewItemList(
			invoice.NewLineItem("Conseil", decimal.NewFromInt(2), decimal.NewFromInt(50)),
			invoice.NewLineItem("", decimal.NewFromInt(1), decimal.RequireFromString("12.5")),
		),
		Notes:      "Merci",
		IncludeTax: true,
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, cell)
	require.NoError(t, err)
	return v
}

func TestXLSXExporter_Export(t *testing.T) {
	exporter := NewXLSXExporter("GNF", render.Issuer{Name: "FACTURly", Tagline: "Votre partenaire facturation"}, zap.NewNop())
	calc := invoice.NewCalculator(invoice.DefaultTaxRate)

	t.Run("writes record and calculator totals", func(t *testing.T) {
		rec := exportRecord()

		data, err := exporter.Export(rec, calc.Totals(rec))
		require.NoError(t, err)

		f := openWorkbook(t, data)
		assert.Equal(t, []string{SheetName}, f.GetSheetList())
		assert.Equal(t, "FACTURly", cellValue(t, f, "A1"))
		assert.Equal(t, "N° FAC-2024-001", cellValue(t, f, "D2"))
		assert.Equal(t, "2 janvier 2024", cellValue(t, f, "D4"))
		assert.Equal(t, "45 jours", cellValue(t, f, "D6"))

		assert.Equal(t, "Conseil", cellValue(t, f, "A12"))
		assert.Equal(t, "100", cellValue(t, f, "D12"))
		assert.Equal(t, "Article 2", cellValue(t, f, "A13"))
		assert.Equal(t, "12.5", cellValue(t, f, "D13"))

		assert.Equal(t, "Sous-total:", cellValue(t, f, "C15"))
		assert.Equal(t, "112.5", cellValue(t, f, "D15"))
		assert.Equal(t, "TVA (20%):", cellValue(t, f, "C16"))
		assert.Equal(t, "22.5", cellValue(t, f, "D16"))
		assert.Equal(t, "Total:", cellValue(t, f, "C17"))
		assert.Equal(t, "135", cellValue(t, f, "D17"))
		assert.Equal(t, "Merci", cellValue(t, f, "A20"))
	})

	t.Run("no tax row without tax", func(t *testing.T) {
		rec := exportRecord()
		rec.IncludeTax = false
		rec.Notes = ""

		data, err := exporter.Export(rec, calc.Totals(rec))
		require.NoError(t, err)

		f := openWorkbook(t, data)
		assert.Equal(t, "Total:", cellValue(t, f, "C16"))
		assert.Equal(t, "112.5", cellValue(t, f, "D16"))
	})

	t.Run("empty items", func(t *testing.T) {
		rec := exportRecord()
		rec.Items = invoice.NewItemList()

		data, err := exporter.Export(rec, calc.Totals(rec))
		require.NoError(t, err)

		f := openWorkbook(t, data)
		assert.Equal(t, "Sous-total:", cellValue(t, f, "C13"))
		assert.Equal(t, "0", cellValue(t, f, "D13"))
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := exporter.Export(nil, invoice.Totals{})
		assert.ErrorIs(t, err, ErrNothingToExport)
	})
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "facture-FAC-7.xlsx", FileName(&invoice.Record{InvoiceNumber: "FAC-7"}))
}
