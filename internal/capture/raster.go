// Package capture renders an invoice document into a PNG snapshot.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/garyjia/facturly/internal/render"
	"github.com/garyjia/facturly/internal/share"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrTooLarge is returned when the document exceeds the configured line budget
var ErrTooLarge = errors.New("document too large to capture")

// Config holds capture settings
type Config struct {
	Padding  int
	MaxLines int
}

// DefaultConfig returns default capture configuration
func DefaultConfig() Config {
	return Config{
		Padding:  24,
		MaxLines: 2000,
	}
}

// RasterCapturer draws the document's text lines onto a bitmap
type RasterCapturer struct {
	config Config
	face   font.Face
	logger *zap.Logger
}

// NewRasterCapturer creates a new RasterCapturer
func NewRasterCapturer(config Config, logger *zap.Logger) *RasterCapturer {
	return &RasterCapturer{
		config: config,
		face:   basicfont.Face7x13,
		logger: logger,
	}
}

// Capture implements share.Capturer
func (c *RasterCapturer) Capture(ctx context.Context, doc *render.Document) (*share.Image, error) {
	if doc == nil || doc.Root == nil {
		return nil, share.ErrCaptureTargetMissing
	}

	lines := doc.Lines()
	if c.config.MaxLines > 0 && len(lines) > c.config.MaxLines {
		return nil, fmt.Errorf("%w: %d lines", ErrTooLarge, len(lines))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := c.face.Metrics()
	lineHeight := metrics.Height.Ceil() + 4
	width := 0
	for _, l := range lines {
		if w := font.MeasureString(c.face, l).Ceil(); w > width {
			width = w
		}
	}
	width += 2 * c.config.Padding
	height := len(lines)*lineHeight + 2*c.config.Padding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg, ink := themeColors(doc.Theme)
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(ink), Face: c.face}
	baseline := c.config.Padding + metrics.Ascent.Ceil()
	for i, l := range lines {
		drawer.Dot = fixed.P(c.config.Padding, baseline+i*lineHeight)
		drawer.DrawString(l)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	c.logger.Debug("Invoice captured",
		zap.String("template", string(doc.Template)),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("bytes", buf.Len()))

	return &share.Image{
		Data:        buf.Bytes(),
		ContentType: "image/png",
		Width:       width,
		Height:      height,
	}, nil
}

// themeColors picks paper and ink from the theme, white on black when unparsable
func themeColors(t render.Theme) (color.Color, color.Color) {
	bg, okBg := parseHex(t.Paper)
	ink, okInk := parseHex(t.Ink)
	if !okBg || !okInk {
		return color.White, color.Black
	}
	return bg, ink
}

// parseHex parses #rgb and #rrggbb colors
func parseHex(s string) (color.RGBA, bool) {
	var r, g, b uint8
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, false
		}
	case 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, false
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
}
