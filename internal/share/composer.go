package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
)

const (
	whatsappImageHint = "[Image de la facture à ajouter]"
	emailImageHint    = "[Image de la facture téléchargée]"
)

// Composer builds share texts and deep links from an invoice record and its totals
type Composer struct {
	currency        string
	whatsappBaseURL string
	senderName      string
}

// NewComposer creates a new Composer
func NewComposer(currency, whatsappBaseURL, senderName string) *Composer {
	return &Composer{
		currency:        currency,
		whatsappBaseURL: whatsappBaseURL,
		senderName:      senderName,
	}
}

func (c *Composer) signature() string {
	return "Merci pour votre confiance !\n\nCordialement,\nL'équipe " + c.senderName
}

// ChatMessage composes the chat message text
func (c *Composer) ChatMessage(r *invoice.Record, totals invoice.Totals) string {
	return fmt.Sprintf("Bonjour %s,\n\nVeuillez trouver ci-joint votre facture n°%s d'un montant de %s.\n\n%s",
		r.ClientName, r.InvoiceNumber, render.FormatAmount(totals.Total, c.currency), c.signature())
}

// EmailSubject composes the email subject
func (c *Composer) EmailSubject(r *invoice.Record) string {
	return fmt.Sprintf("Facture n°%s - %s", r.InvoiceNumber, r.ClientName)
}

// EmailBody composes the email body text
func (c *Composer) EmailBody(r *invoice.Record, totals invoice.Totals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\nVeuillez trouver ci-joint votre facture n°%s.\n\n", r.ClientName, r.InvoiceNumber)
	b.WriteString("Détails de la facture :\n")
	fmt.Fprintf(&b, "- Date d'émission : %s\n", render.FormatShortDate(r.IssueDate))
	fmt.Fprintf(&b, "- Date d'échéance : %s\n", render.FormatShortDate(r.DueDate))
	fmt.Fprintf(&b, "- Montant total : %s\n\n", render.FormatAmount(totals.Total, c.currency))
	b.WriteString(c.signature())
	return b.String()
}

// WhatsAppURL builds the chat deep link for a message
func (c *Composer) WhatsAppURL(message string) string {
	return c.whatsappBaseURL + "?text=" + encodeComponent(message)
}

// MailtoURL builds the mailto link for a recipient, subject and body
func (c *Composer) MailtoURL(to, subject, body string) string {
	return "mailto:" + url.PathEscape(to) + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

// ImageFileName is the download name of a captured invoice image
func ImageFileName(r *invoice.Record) string {
	return "facture-" + r.InvoiceNumber + ".png"
}

// encodeComponent percent-encodes s for use in a URL query value, spaces as %20
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func withHint(text, hint string) string {
	return text + "\n\n" + hint
}
