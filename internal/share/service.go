package share

import (
	"context"
	"encoding/base64"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
	"go.uber.org/zap"
)

// Channel is a share destination
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// Result is the outcome of a share action. When capture failed, Fallback is
// set, Image is nil and the texts carry no attachment hint. On success the
// image travels inline as a data URL so the client can attach it.
type Result struct {
	Channel       Channel `json:"channel"`
	URL           string  `json:"url"`
	Recipient     string  `json:"recipient,omitempty"`
	Subject       string  `json:"subject,omitempty"`
	Message       string  `json:"message"`
	Image         *Image  `json:"-"`
	ImageDataURL  string  `json:"imageDataUrl,omitempty"`
	ImageFileName string  `json:"imageFileName,omitempty"`
	Fallback      bool    `json:"fallback"`
	CaptureError  string  `json:"captureError,omitempty"`
}

// DataURL encodes the image as a base64 data URL
func (img *Image) DataURL() string {
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func (r *Result) attach(img *Image) {
	r.Image = img
	r.ImageDataURL = img.DataURL()
	r.ImageFileName = img.FileName
}

// Request is the snapshot a share action works from
type Request struct {
	Record   *invoice.Record
	Totals   invoice.Totals
	Document *render.Document
}

// Service runs share actions: capture the document, then compose text and link
type Service struct {
	capturer Capturer
	composer *Composer
	logger   *zap.Logger
}

// NewService creates a new share Service
func NewService(capturer Capturer, composer *Composer, logger *zap.Logger) *Service {
	if capturer == nil {
		capturer = UnavailableCapturer{}
	}
	return &Service{
		capturer: capturer,
		composer: composer,
		logger:   logger,
	}
}

// Composer returns the text composer
func (s *Service) Composer() *Composer {
	return s.composer
}

// Capture captures the document of a request as an image
func (s *Service) Capture(ctx context.Context, req Request) (*Image, error) {
	if req.Document == nil || req.Document.Root == nil {
		return nil, ErrCaptureTargetMissing
	}
	img, err := s.capturer.Capture(ctx, req.Document)
	if err != nil {
		return nil, err
	}
	img.FileName = ImageFileName(req.Record)
	return img, nil
}

// ShareWhatsApp prepares the chat share: message link plus, when capture works, the image to attach
func (s *Service) ShareWhatsApp(ctx context.Context, req Request) Result {
	message := s.composer.ChatMessage(req.Record, req.Totals)
	res := Result{Channel: ChannelWhatsApp}

	img, err := s.Capture(ctx, req)
	if err != nil {
		s.logCaptureFallback(ChannelWhatsApp, req.Record, err)
		res.Fallback = true
		res.CaptureError = err.Error()
		res.Message = message
		res.URL = s.composer.WhatsAppURL(message)
		return res
	}

	res.attach(img)
	res.Message = withHint(message, whatsappImageHint)
	res.URL = s.composer.WhatsAppURL(res.Message)
	return res
}

// ShareEmail prepares the email share: mailto link plus, when capture works, the image to attach
func (s *Service) ShareEmail(ctx context.Context, req Request) Result {
	subject := s.composer.EmailSubject(req.Record)
	body := s.composer.EmailBody(req.Record, req.Totals)
	res := Result{
		Channel:   ChannelEmail,
		Recipient: req.Record.ClientEmail,
		Subject:   subject,
	}

	img, err := s.Capture(ctx, req)
	if err != nil {
		s.logCaptureFallback(ChannelEmail, req.Record, err)
		res.Fallback = true
		res.CaptureError = err.Error()
		res.Message = body
		res.URL = s.composer.MailtoURL(req.Record.ClientEmail, subject, body)
		return res
	}

	res.attach(img)
	res.Message = withHint(body, emailImageHint)
	res.URL = s.composer.MailtoURL(req.Record.ClientEmail, subject, res.Message)
	return res
}

func (s *Service) logCaptureFallback(ch Channel, r *invoice.Record, err error) {
	s.logger.Warn("Invoice capture failed, sharing text only",
		zap.String("channel", string(ch)),
		zap.String("invoice_number", r.InvoiceNumber),
		zap.Error(err))
}
