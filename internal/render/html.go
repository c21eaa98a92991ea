package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// PageOptions controls the HTML page wrapping a document
type PageOptions struct {
	Title string
	// Print makes the page open the platform print dialog once loaded
	Print bool
}

const baseCSS = `
*{box-sizing:border-box}
body{margin:0;padding:24px;background:var(--bg);font-family:var(--font);color:var(--ink)}
.invoice{max-width:880px;margin:0 auto;padding:32px;background:var(--paper);border:1px solid var(--border);border-radius:var(--radius);display:grid;gap:20px}
.invoice h2{margin:0 0 6px;font-size:1rem}
.invoice p{margin:2px 0;white-space:pre-line}
.brand{font-size:1.6rem !important;color:var(--accent)}
.tagline,.field .label,.doc-number{color:var(--muted)}
.doc-title{font-size:1.6rem !important;letter-spacing:.08em}
.field{display:flex;justify-content:space-between;gap:12px}
table.items{width:100%;border-collapse:collapse}
table.items th{background:var(--accent);color:var(--accent-ink);text-align:left;padding:8px}
table.items td{border-bottom:1px solid var(--border);padding:8px}
.col-qty{text-align:center !important}
.col-price,.col-total{text-align:right !important}
.section-totals{justify-self:end;min-width:280px}
.section-totals hr{border:0;border-top:1px solid var(--border)}
.grand-total{font-size:1.2rem;font-weight:700;color:var(--accent)}
.section-closing{text-align:center;color:var(--muted)}
.layout-split{grid-template-columns:1fr 1fr}
.layout-split>.section-items,.layout-split>.section-totals,.layout-split>.section-notes,.layout-split>.section-closing{grid-column:1/-1}
.layout-banner>.section-issuer,.layout-banner>.section-title{background:var(--accent);color:var(--accent-ink);padding:16px;border-radius:var(--radius)}
.layout-banner>.section-issuer .brand,.layout-banner>.section-issuer .tagline{color:var(--accent-ink)}
.layout-sidebar{grid-template-columns:220px 1fr}
.layout-sidebar>.section-issuer,.layout-sidebar>.section-client,.layout-sidebar>.section-dates,.layout-sidebar>.section-terms{grid-column:1;border-left:4px solid var(--accent);padding-left:12px}
.layout-sidebar>.section-title,.layout-sidebar>.section-items,.layout-sidebar>.section-totals,.layout-sidebar>.section-notes,.layout-sidebar>.section-closing{grid-column:2}
@media print{body{background:#fff;padding:0}.invoice{border:0}}
`

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<div id="{{.RootID}}" data-invoice-content data-template="{{.Doc.Template}}" class="{{.Doc.Root.Class}}">
{{- range .Doc.Root.Children}}{{template "node" .}}{{end}}
</div>
{{- if .Print}}
<script>window.addEventListener("load", function () { window.print(); });</script>
{{- end}}
</body>
</html>
{{define "node" -}}
{{- if eq .Kind "section"}}
<section class="{{.Class}}" data-role="{{.Role}}">{{range .Children}}{{template "node" .}}{{end}}</section>
{{- else if eq .Kind "heading"}}
<h2 class="{{.Class}}">{{.Text}}</h2>
{{- else if eq .Kind "text"}}
<p class="{{.Class}}">{{.Text}}</p>
{{- else if eq .Kind "field"}}
<div class="field {{.Class}}"{{if .Role}} data-role="{{.Role}}"{{end}}><span class="label">{{.Label}}</span> <span class="value">{{if .Emphasis}}<strong>{{.Text}}</strong>{{else}}{{.Text}}{{end}}</span></div>
{{- else if eq .Kind "separator"}}
<hr>
{{- else if eq .Kind "table"}}
<table class="{{.Class}}"><tbody>{{range .Children}}{{template "node" .}}{{end}}</tbody></table>
{{- else if eq .Kind "row"}}
<tr>{{if .Header}}{{range .Children}}<th class="{{.Class}}">{{.Text}}</th>{{end}}{{else}}{{range .Children}}<td class="{{.Class}}">{{.Text}}</td>{{end}}{{end}}</tr>
{{- end}}
{{- end}}`))

type pageData struct {
	Title  string
	CSS    template.CSS
	RootID string
	Doc    *Document
	Print  bool
}

// WriteHTML writes the document as a standalone HTML page
func WriteHTML(w io.Writer, doc *Document, opts PageOptions) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("document has no root")
	}
	return pageTemplate.Execute(w, pageData{
		Title:  opts.Title,
		CSS:    themeCSS(doc.Theme),
		RootID: RootID,
		Doc:    doc,
		Print:  opts.Print,
	})
}

// themeCSS builds the stylesheet from built-in theme constants
func themeCSS(t Theme) template.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, ":root{--bg:%s;--paper:%s;--ink:%s;--muted:%s;--accent:%s;--accent-ink:%s;--border:%s;--radius:%s;--font:%s}",
		t.Background, t.Paper, t.Ink, t.Muted, t.Accent, t.AccentInk, t.Border, t.Radius, t.Font)
	b.WriteString(baseCSS)
	if t.Ornament != "" {
		fmt.Fprintf(&b, ".brand::before{content:%q;margin-right:.4em}\n", t.Ornament)
	}
	return template.CSS(b.String())
}
