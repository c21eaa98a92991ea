package render

import (
	"github.com/garyjia/facturly/internal/invoice"
)

// TemplateID identifies one visual template
type TemplateID string

// Meta is the presentation metadata shown in the template picker
type Meta struct {
	ID          TemplateID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Preview     string     `json:"preview"`
}

// Issuer is the identity printed in the header and closing blocks
type Issuer struct {
	Name    string
	Tagline string
	Email   string
	Phone   string
	Address string
}

// View is what a template renders: the record plus the calculator's totals.
// Templates read aggregates from Totals only and never recompute them.
type View struct {
	Record   *invoice.Record
	Totals   invoice.Totals
	Currency string
	Issuer   Issuer
}

// Template renders a View into a Document
type Template interface {
	ID() TemplateID
	Meta() Meta
	Render(v View) *Document
}

// Theme is the purely visual part of a template
type Theme struct {
	Layout     string
	Font       string
	Background string
	Paper      string
	Ink        string
	Muted      string
	Accent     string
	AccentInk  string
	Border     string
	Radius     string
	Ornament   string
}

// closing variants of the contact block
type contactStyle int

const (
	contactSentence contactStyle = iota
	contactCompact
	contactFull
)

// labels holds the wording a skin uses around the data
type labels struct {
	title     string
	billedTo  string
	details   string
	issueDate string
	dueDate   string
	terms     string
	colDesc   string
	colQty    string
	colPrice  string
	colTotal  string
	subtotal  string
	total     string
	notes     string
	thanks    string
	contact   contactStyle
}

func defaultLabels() labels {
	return labels{
		title:     "FACTURE",
		billedTo:  "Facturé à",
		details:   "Détails de la facture",
		issueDate: "Date d'émission:",
		dueDate:   "Date d'échéance:",
		terms:     "Conditions:",
		colDesc:   "Description",
		colQty:    "Qté",
		colPrice:  "Prix unit.",
		colTotal:  "Total",
		subtotal:  "Sous-total:",
		total:     "Total:",
		notes:     "Notes",
		thanks:    "Merci pour votre confiance !",
		contact:   contactSentence,
	}
}

// skin is the single Template implementation; the fourteen catalog entries
// differ only by metadata, theme and wording.
type skin struct {
	meta   Meta
	theme  Theme
	labels labels
}

func (s *skin) ID() TemplateID { return s.meta.ID }
func (s *skin) Meta() Meta     { return s.meta }

// Render builds the document tree in the fixed section order
func (s *skin) Render(v View) *Document {
	r := v.Record
	l := s.labels

	root := &Node{
		Kind:  KindRoot,
		Class: "invoice invoice--" + string(s.meta.ID) + " layout-" + s.theme.Layout,
	}

	root.Children = append(root.Children,
		section(RoleIssuer,
			&Node{Kind: KindHeading, Class: "brand", Text: v.Issuer.Name},
			text("tagline", v.Issuer.Tagline),
		),
		section(RoleTitle,
			&Node{Kind: KindHeading, Class: "doc-title", Text: l.title},
			text("doc-number", "N° "+r.InvoiceNumber),
		),
		section(RoleClient,
			&Node{Kind: KindHeading, Text: l.billedTo},
			text("client-name", r.ClientName),
			text("client-email", r.ClientEmail),
			text("client-address", r.ClientAddress),
		),
		section(RoleDates,
			&Node{Kind: KindHeading, Text: l.details},
			field(l.issueDate, FormatLongDate(r.IssueDate)),
			field(l.dueDate, FormatLongDate(r.DueDate)),
		),
		section(RoleTerms,
			field(l.terms, PaymentTermsText(r.PaymentTerms)),
		),
		section(RoleItems, s.itemsTable(v)),
		section(RoleTotals, s.totalRows(v)...),
	)

	if r.Notes != "" {
		root.Children = append(root.Children, section(RoleNotes,
			&Node{Kind: KindHeading, Text: l.notes},
			text("notes", r.Notes),
		))
	}

	root.Children = append(root.Children, section(RoleClosing,
		text("thanks", l.thanks),
		text("contact", s.contactLine(v.Issuer)),
	))

	return &Document{Template: s.meta.ID, Theme: s.theme, Root: root}
}

func (s *skin) itemsTable(v View) *Node {
	l := s.labels
	table := &Node{Kind: KindTable, Class: "items"}
	table.Children = append(table.Children, &Node{
		Kind:   KindRow,
		Header: true,
		Children: []*Node{
			cell("col-desc", l.colDesc),
			cell("col-qty", l.colQty),
			cell("col-price", l.colPrice),
			cell("col-total", l.colTotal),
		},
	})
	for i, item := range v.Record.Items.Items() {
		table.Children = append(table.Children, &Node{
			Kind: KindRow,
			Children: []*Node{
				cell("col-desc", ItemLabel(item.Description, i)),
				cell("col-qty", FormatQuantity(item.Quantity())),
				cell("col-price", FormatAmount(item.UnitPrice(), v.Currency)),
				cell("col-total", FormatAmount(item.Total(), v.Currency)),
			},
		})
	}
	return table
}

func (s *skin) totalRows(v View) []*Node {
	rows := []*Node{
		{Kind: KindField, Role: RoleSubtotal, Label: s.labels.subtotal, Text: FormatAmount(v.Totals.Subtotal, v.Currency)},
	}
	if v.Totals.IncludeTax {
		rows = append(rows, &Node{
			Kind:  KindField,
			Role:  RoleTax,
			Label: TaxLabel(v.Totals.TaxRate) + ":",
			Text:  FormatAmount(v.Totals.Tax, v.Currency),
		})
	}
	rows = append(rows,
		&Node{Kind: KindSeparator},
		&Node{
			Kind:     KindField,
			Role:     RoleGrandTotal,
			Class:    "grand-total",
			Label:    s.labels.total,
			Text:     FormatAmount(v.Totals.Total, v.Currency),
			Emphasis: true,
		},
	)
	return rows
}

func (s *skin) contactLine(is Issuer) string {
	switch s.labels.contact {
	case contactCompact:
		return is.Email + " | " + is.Phone
	case contactFull:
		return is.Address + " | Tél: " + is.Phone + " | Email: " + is.Email
	default:
		return "Pour toute question, contactez-nous à " + is.Email
	}
}

func section(role Role, children ...*Node) *Node {
	return &Node{Kind: KindSection, Role: role, Class: "section-" + string(role), Children: children}
}

func text(class, value string) *Node {
	return &Node{Kind: KindText, Class: class, Text: value}
}

func field(label, value string) *Node {
	return &Node{Kind: KindField, Label: label, Text: value}
}

func cell(class, value string) *Node {
	return &Node{Kind: KindCell, Class: class, Text: value}
}
