package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/facturly/internal/capture"
	"github.com/garyjia/facturly/internal/export"
	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
	"github.com/garyjia/facturly/internal/session"
	"github.com/garyjia/facturly/internal/share"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	store    *session.Store
	renderer *render.Renderer
	shares   *share.Service
	exporter *export.XLSXExporter
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(deps Dependencies, logger *zap.Logger) *Handlers {
	return &Handlers{
		store:    deps.Store,
		renderer: deps.Renderer,
		shares:   deps.Shares,
		exporter: deps.Exporter,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
			Drafts:    h.store.Count(),
		},
	})
}

// ListTemplates handles GET /api/templates
func (h *Handlers) ListTemplates(c *gin.Context) {
	catalog := h.renderer.Catalog()
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: TemplatesPayload{
			Default:   string(catalog.Fallback()),
			Templates: catalog.List(),
		},
	})
}

// RenderRecord handles POST /api/render; the record is not stored
func (h *Handlers) RenderRecord(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid invoice", err)
		return
	}
	record, err := req.toRecord()
	if err != nil {
		h.badRequest(c, "invalid invoice", err)
		return
	}

	h.writeHTML(c, record, render.PageOptions{Print: c.Query("print") == "true"})
}

// CreateInvoice handles POST /api/invoices. An empty body starts from the form defaults.
func (h *Handlers) CreateInvoice(c *gin.Context) {
	var init *invoice.Record

	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if !errors.Is(err, io.EOF) {
			h.badRequest(c, "invalid invoice", err)
			return
		}
	} else {
		record, err := req.toRecord()
		if err != nil {
			h.badRequest(c, "invalid invoice", err)
			return
		}
		init = record
	}

	draft := h.store.Create(init)
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    draft.Snapshot(),
	})
}

// GetInvoice handles GET /api/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: draft.Snapshot()})
}

// UpdateInvoice handles PATCH /api/invoices/:id
func (h *Handlers) UpdateInvoice(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}

	var req HeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid invoice fields", err)
		return
	}

	snap, err := draft.Update(req.toUpdate())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: snap})
}

// DeleteInvoice handles DELETE /api/invoices/:id
func (h *Handlers) DeleteInvoice(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// AddItem handles POST /api/invoices/:id/items. An empty body adds a blank row.
func (h *Handlers) AddItem(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}

	var item *invoice.LineItem
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if !errors.Is(err, io.EOF) {
			h.badRequest(c, "invalid item", err)
			return
		}
	} else {
		li, err := req.toLineItem()
		if err != nil {
			h.badRequest(c, "invalid item", err)
			return
		}
		item = &li
	}

	added, snap, err := draft.AddItem(item)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    ItemPayload{Item: added, Invoice: snap},
	})
}

// UpdateItem handles PATCH /api/invoices/:id/items/:itemId
func (h *Handlers) UpdateItem(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid item", err)
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		h.badRequest(c, "invalid item", err)
		return
	}

	updated, snap, err := draft.UpdateItem(c.Param("itemId"), update)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ItemPayload{Item: updated, Invoice: snap},
	})
}

// RemoveItem handles DELETE /api/invoices/:id/items/:itemId
func (h *Handlers) RemoveItem(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}

	snap, err := draft.RemoveItem(c.Param("itemId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: snap})
}

// Preview handles GET /api/invoices/:id/preview
func (h *Handlers) Preview(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}
	h.writeHTML(c, draft.Record(), render.PageOptions{})
}

// Print handles GET /api/invoices/:id/print
func (h *Handlers) Print(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}
	h.writeHTML(c, draft.Record(), render.PageOptions{Print: true})
}

// CaptureImage handles GET /api/invoices/:id/capture.png
func (h *Handlers) CaptureImage(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}

	img, err := h.shares.Capture(c.Request.Context(), h.shareRequest(c, draft))
	if err != nil {
		h.fail(c, err)
		return
	}

	setAttachment(c, img.FileName)
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// ExportXLSX handles GET /api/invoices/:id/export.xlsx
func (h *Handlers) ExportXLSX(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}

	snap := draft.Snapshot()
	data, err := h.exporter.Export(snap.Record, snap.Totals)
	if err != nil {
		h.fail(c, err)
		return
	}

	setAttachment(c, export.FileName(snap.Record))
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

// DownloadPDF handles GET /api/invoices/:id/pdf
func (h *Handlers) DownloadPDF(c *gin.Context) {
	if _, ok := h.draft(c); !ok {
		return
	}
	h.fail(c, export.ErrPDFNotImplemented)
}

// ShareWhatsApp handles POST /api/invoices/:id/share/whatsapp
func (h *Handlers) ShareWhatsApp(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}
	res := h.shares.ShareWhatsApp(c.Request.Context(), h.shareRequest(c, draft))
	c.JSON(http.StatusOK, Response{Success: true, Data: res})
}

// ShareEmail handles POST /api/invoices/:id/share/email
func (h *Handlers) ShareEmail(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		return
	}
	res := h.shares.ShareEmail(c.Request.Context(), h.shareRequest(c, draft))
	c.JSON(http.StatusOK, Response{Success: true, Data: res})
}

// draft loads the draft named by the :id path parameter, writing a 404 when missing
func (h *Handlers) draft(c *gin.Context) (*session.Draft, bool) {
	draft, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return draft, true
}

// shareRequest renders the draft with the requested template
func (h *Handlers) shareRequest(c *gin.Context, draft *session.Draft) share.Request {
	snap := draft.Snapshot()
	return share.Request{
		Record:   snap.Record,
		Totals:   snap.Totals,
		Document: h.renderer.Render(snap.Record, templateParam(c)),
	}
}

func (h *Handlers) writeHTML(c *gin.Context, record *invoice.Record, opts render.PageOptions) {
	page, err := h.renderer.RenderHTML(record, templateParam(c), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, page)
}

// setAttachment writes a Content-Disposition header with the file name quoted
// or RFC 2231 encoded as needed, so user text cannot inject parameters
func setAttachment(c *gin.Context, name string) {
	value := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	if value == "" {
		value = "attachment"
	}
	c.Header("Content-Disposition", value)
}

func templateParam(c *gin.Context) render.TemplateID {
	return render.TemplateID(c.Query("template"))
}

func (h *Handlers) badRequest(c *gin.Context, msg string, err error) {
	h.logger.Warn("Invalid request",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   msg + ": " + err.Error(),
	})
}

// fail maps domain errors to status codes
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, session.ErrDraftNotFound):
		status, msg = http.StatusNotFound, "invoice not found"
	case errors.Is(err, invoice.ErrItemNotFound):
		status, msg = http.StatusNotFound, "item not found"
	case errors.Is(err, session.ErrLastItem):
		status = http.StatusConflict
	case errors.Is(err, invoice.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, invoice.ErrInvalidPaymentTerms):
		status = http.StatusBadRequest
	case errors.Is(err, export.ErrNothingToExport):
		status = http.StatusBadRequest
	case errors.Is(err, capture.ErrTooLarge):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, share.ErrCaptureUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, export.ErrPDFNotImplemented):
		status, msg = http.StatusNotImplemented, export.PDFNotImplementedMessage
	}

	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented && status != http.StatusServiceUnavailable {
		_ = c.Error(err)
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}

	c.JSON(status, Response{Success: false, Error: msg})
}
