package share

import (
	"context"
	"errors"

	"github.com/garyjia/facturly/internal/render"
)

var (
	// ErrCaptureUnavailable is returned by capturers that cannot produce an image on this host
	ErrCaptureUnavailable = errors.New("image capture is not available")
	// ErrCaptureTargetMissing is returned when there is no document root to capture
	ErrCaptureTargetMissing = errors.New("invoice element not found")
)

// Image is a captured bitmap of a rendered document
type Image struct {
	Data        []byte
	ContentType string
	FileName    string
	Width       int
	Height      int
}

// Capturer turns a rendered document into an image
type Capturer interface {
	Capture(ctx context.Context, doc *render.Document) (*Image, error)
}

// UnavailableCapturer is the capturer used when capture is disabled; it always fails
type UnavailableCapturer struct{}

// Capture implements Capturer
func (UnavailableCapturer) Capture(context.Context, *render.Document) (*Image, error) {
	return nil, ErrCaptureUnavailable
}
