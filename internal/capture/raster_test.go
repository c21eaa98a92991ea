package capture

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"testing"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
	"github.com/garyjia/facturly/internal/share"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func renderDoc(t *testing.T, id render.TemplateID) *render.Document {
	t.Helper()
	rec := invoice.NewRecord(invoice.NewDate(2024, 1, 2))
	rec.ClientName = "Awa Diallo"
	rec.InvoiceNumber = "FAC-2024-001"
	_, err := rec.Items.Add(invoice.NewLineItem("Conseil", decimal.NewFromInt(2), decimal.NewFromInt(50)))
	require.NoError(t, err)

	r := render.NewRenderer(render.NewCatalog(render.Classic),
		invoice.NewCalculator(invoice.DefaultTaxRate),
		render.Config{Currency: "GNF", Issuer: render.Issuer{Name: "FACTURly"}},
		zap.NewNop())
	return r.Render(rec, id)
}

func TestRasterCapturer_Capture(t *testing.T) {
	c := NewRasterCapturer(DefaultConfig(), zap.NewNop())

	img, err := c.Capture(context.Background(), renderDoc(t, render.Classic))
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.ContentType)
	decoded, err := png.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, img.Width, decoded.Bounds().Dx())
	assert.Equal(t, img.Height, decoded.Bounds().Dy())
	assert.Greater(t, img.Height, 2*DefaultConfig().Padding)

	// top-left corner is paper colored
	r, g, b, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestRasterCapturer_Deterministic(t *testing.T) {
	c := NewRasterCapturer(DefaultConfig(), zap.NewNop())
	doc := renderDoc(t, render.Dark)

	first, err := c.Capture(context.Background(), doc)
	require.NoError(t, err)
	second, err := c.Capture(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestRasterCapturer_Errors(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		c := NewRasterCapturer(DefaultConfig(), zap.NewNop())
		_, err := c.Capture(context.Background(), &render.Document{})
		assert.ErrorIs(t, err, share.ErrCaptureTargetMissing)
	})

	t.Run("line budget exceeded", func(t *testing.T) {
		c := NewRasterCapturer(Config{Padding: 4, MaxLines: 3}, zap.NewNop())
		_, err := c.Capture(context.Background(), renderDoc(t, render.Classic))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("cancelled context", func(t *testing.T) {
		c := NewRasterCapturer(DefaultConfig(), zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Capture(ctx, renderDoc(t, render.Classic))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseHex(t *testing.T) {
	c, ok := parseHex("#1d4ed8")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0x1d, G: 0x4e, B: 0xd8, A: 0xff}, c)

	c, ok = parseHex("#fff")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, ok = parseHex("navy")
	assert.False(t, ok)
}
