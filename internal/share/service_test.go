package share

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCapturer struct {
	captureFunc func(ctx context.Context, doc *render.Document) (*Image, error)
	calls       int
}

func (m *mockCapturer) Capture(ctx context.Context, doc *render.Document) (*Image, error) {
	m.calls++
	if m.captureFunc != nil {
		return m.captureFunc(ctx, doc)
	}
	return &Image{Data: []byte("png"), ContentType: "image/png", Width: 10, Height: 10}, nil
}

func shareRequest() Request {
	rec := &invoice.Record{
		ClientName:    "Awa Diallo",
		ClientEmail:   "awa@example.com",
		InvoiceNumber: "FAC-2024-001",
		IssueDate:     invoice.NewDate(2024, 1, 2),
		DueDate:       invoice.NewDate(2024, 2, 1),
		PaymentTerms:  "30",
		Items: invoice.NewItemList(
			invoice.NewLineItem("Conseil", decimal.NewFromInt(2), decimal.NewFromInt(50)),
		),
		IncludeTax: true,
	}
	calc := invoice.NewCalculator(invoice.DefaultTaxRate)
	renderer := render.NewRenderer(render.NewCatalog(render.Classic), calc,
		render.Config{Currency: "GNF", Issuer: render.Issuer{Name: "FACTURly"}}, zap.NewNop())

	return Request{
		Record:   rec,
		Totals:   calc.Totals(rec),
		Document: renderer.Render(rec, render.Classic),
	}
}

func newTestService(c Capturer) *Service {
	return NewService(c, NewComposer("GNF", "https://wa.me/", "Facturly"), zap.NewNop())
}

func decodedQuery(t *testing.T, raw, key string) string {
	t.Helper()
	idx := strings.Index(raw, "?")
	require.GreaterOrEqual(t, idx, 0)
	values, err := url.ParseQuery(raw[idx+1:])
	require.NoError(t, err)
	return values.Get(key)
}

func TestComposer_Texts(t *testing.T) {
	req := shareRequest()
	c := NewComposer("GNF", "https://wa.me/", "Facturly")

	assert.Equal(t,
		"Bonjour Awa Diallo,\n\nVeuillez trouver ci-joint votre facture n°FAC-2024-001 d'un montant de 120.00 GNF.\n\nMerci pour votre confiance !\n\nCordialement,\nL'équipe Facturly",
		c.ChatMessage(req.Record, req.Totals))

	assert.Equal(t, "Facture n°FAC-2024-001 - Awa Diallo", c.EmailSubject(req.Record))

	body := c.EmailBody(req.Record, req.Totals)
	assert.Contains(t, body, "- Date d'émission : 02/01/2024\n")
	assert.Contains(t, body, "- Date d'échéance : 01/02/2024\n")
	assert.Contains(t, body, "- Montant total : 120.00 GNF\n")
}

func TestComposer_URLsEncodeSpacesAsPercent20(t *testing.T) {
	c := NewComposer("GNF", "https://wa.me/", "Facturly")

	link := c.WhatsAppURL("a b&c")
	assert.Equal(t, "https://wa.me/?text=a%20b%26c", link)

	mail := c.MailtoURL("awa@example.com", "Sujet 1", "x+y")
	assert.Equal(t, "mailto:awa@example.com?subject=Sujet%201&body=x%2By", mail)
}

func TestService_ShareWhatsApp(t *testing.T) {
	t.Run("with captured image", func(t *testing.T) {
		capturer := &mockCapturer{}
		svc := newTestService(capturer)

		res := svc.ShareWhatsApp(context.Background(), shareRequest())

		assert.Equal(t, 1, capturer.calls)
		assert.False(t, res.Fallback)
		require.NotNil(t, res.Image)
		assert.Equal(t, "facture-FAC-2024-001.png", res.Image.FileName)
		assert.Equal(t, "data:image/png;base64,cG5n", res.ImageDataURL)
		assert.Equal(t, "facture-FAC-2024-001.png", res.ImageFileName)
		assert.True(t, strings.HasSuffix(res.Message, "[Image de la facture à ajouter]"))
		assert.Equal(t, res.Message, decodedQuery(t, res.URL, "text"))
	})

	t.Run("capture failure falls back to text", func(t *testing.T) {
		capturer := &mockCapturer{captureFunc: func(context.Context, *render.Document) (*Image, error) {
			return nil, errors.New("boom")
		}}
		svc := newTestService(capturer)

		res := svc.ShareWhatsApp(context.Background(), shareRequest())

		assert.True(t, res.Fallback)
		assert.Nil(t, res.Image)
		assert.Empty(t, res.ImageDataURL)
		assert.Equal(t, "boom", res.CaptureError)
		assert.NotContains(t, res.Message, "[Image")
		assert.Contains(t, decodedQuery(t, res.URL, "text"), "120.00 GNF")
	})

	t.Run("missing document falls back without calling capturer", func(t *testing.T) {
		capturer := &mockCapturer{}
		svc := newTestService(capturer)
		req := shareRequest()
		req.Document = nil

		res := svc.ShareWhatsApp(context.Background(), req)

		assert.Equal(t, 0, capturer.calls)
		assert.True(t, res.Fallback)
		assert.Equal(t, ErrCaptureTargetMissing.Error(), res.CaptureError)
	})
}

func TestService_ShareEmail(t *testing.T) {
	t.Run("with captured image", func(t *testing.T) {
		svc := newTestService(&mockCapturer{})

		res := svc.ShareEmail(context.Background(), shareRequest())

		assert.False(t, res.Fallback)
		assert.Equal(t, "data:image/png;base64,cG5n", res.ImageDataURL)
		assert.Equal(t, "awa@example.com", res.Recipient)
		assert.True(t, strings.HasPrefix(res.URL, "mailto:awa@example.com?"))
		assert.Equal(t, "Facture n°FAC-2024-001 - Awa Diallo", decodedQuery(t, res.URL, "subject"))
		assert.True(t, strings.HasSuffix(decodedQuery(t, res.URL, "body"), "[Image de la facture téléchargée]"))
	})

	t.Run("unavailable capture degrades to text", func(t *testing.T) {
		svc := newTestService(UnavailableCapturer{})

		res := svc.ShareEmail(context.Background(), shareRequest())

		assert.True(t, res.Fallback)
		assert.Nil(t, res.Image)
		assert.Empty(t, res.ImageDataURL)
		assert.Empty(t, res.ImageFileName)
		assert.Equal(t, ErrCaptureUnavailable.Error(), res.CaptureError)
		assert.Equal(t, res.Message, decodedQuery(t, res.URL, "body"))
		assert.NotContains(t, res.Message, "[Image")
	})
}

func TestNewService_NilCapturer(t *testing.T) {
	svc := NewService(nil, NewComposer("GNF", "https://wa.me/", "Facturly"), zap.NewNop())

	_, err := svc.Capture(context.Background(), shareRequest())

	assert.ErrorIs(t, err, ErrCaptureUnavailable)
}
