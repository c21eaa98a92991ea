package render

import (
	"github.com/samber/lo"
)

// Template identifiers
const (
	Classic    TemplateID = "classic"
	Modern     TemplateID = "modern"
	Minimal    TemplateID = "minimal"
	Corporate  TemplateID = "corporate"
	Elegant    TemplateID = "elegant"
	Colorful   TemplateID = "colorful"
	Dark       TemplateID = "dark"
	Vintage    TemplateID = "vintage"
	Tech       TemplateID = "tech"
	Creative   TemplateID = "creative"
	Luxury     TemplateID = "luxury"
	Nature     TemplateID = "nature"
	Futuristic TemplateID = "futuristic"
	Artistic   TemplateID = "artistic"
)

// DefaultTemplate is used when a requested id is unknown
const DefaultTemplate = Classic

// Catalog is the closed set of templates, keyed by id
type Catalog struct {
	order     []TemplateID
	templates map[TemplateID]Template
	fallback  TemplateID
}

// NewCatalog creates the catalog of all built-in templates.
// An unknown fallback id is replaced by DefaultTemplate.
func NewCatalog(fallback TemplateID) *Catalog {
	skins := builtinSkins()
	c := &Catalog{
		order:     make([]TemplateID, 0, len(skins)),
		templates: make(map[TemplateID]Template, len(skins)),
		fallback:  DefaultTemplate,
	}
	for _, s := range skins {
		c.order = append(c.order, s.ID())
		c.templates[s.ID()] = s
	}
	if c.Has(fallback) {
		c.fallback = fallback
	}
	return c
}

// Has reports whether id names a template of the catalog
func (c *Catalog) Has(id TemplateID) bool {
	_, ok := c.templates[id]
	return ok
}

// Lookup returns the template for id, or the fallback template when id is unknown
func (c *Catalog) Lookup(id TemplateID) Template {
	if t, ok := c.templates[id]; ok {
		return t
	}
	return c.templates[c.fallback]
}

// Fallback returns the id used for unknown lookups
func (c *Catalog) Fallback() TemplateID {
	return c.fallback
}

// IDs returns every template id in catalog order
func (c *Catalog) IDs() []TemplateID {
	return append([]TemplateID(nil), c.order...)
}

// List returns the metadata of every template in catalog order
func (c *Catalog) List() []Meta {
	return lo.Map(c.order, func(id TemplateID, _ int) Meta {
		return c.templates[id].Meta()
	})
}

func withLabels(mutate func(l *labels)) labels {
	l := defaultLabels()
	if mutate != nil {
		mutate(&l)
	}
	return l
}

func builtinSkins() []*skin {
	return []*skin{
		{
			meta: Meta{ID: Classic, Name: "Classique", Description: "Design traditionnel et professionnel", Preview: "📄"},
			theme: Theme{
				Layout: "split", Font: "Georgia, serif",
				Background: "#f4f4f5", Paper: "#ffffff", Ink: "#18181b", Muted: "#71717a",
				Accent: "#1d4ed8", AccentInk: "#ffffff", Border: "#e4e4e7", Radius: "6px",
			},
			labels: defaultLabels(),
		},
		{
			meta: Meta{ID: Modern, Name: "Moderne", Description: "Design contemporain avec couleurs vives", Preview: "✨"},
			theme: Theme{
				Layout: "banner", Font: "Inter, Helvetica, sans-serif",
				Background: "#eef2ff", Paper: "#ffffff", Ink: "#111827", Muted: "#6b7280",
				Accent: "#7c3aed", AccentInk: "#ffffff", Border: "#ddd6fe", Radius: "14px",
			},
			labels: withLabels(func(l *labels) { l.billedTo = "Client" }),
		},
		{
			meta: Meta{ID: Minimal, Name: "Minimaliste", Description: "Design épuré et simple", Preview: "⚪"},
			theme: Theme{
				Layout: "stacked", Font: "Helvetica, Arial, sans-serif",
				Background: "#ffffff", Paper: "#ffffff", Ink: "#111111", Muted: "#9ca3af",
				Accent: "#111111", AccentInk: "#ffffff", Border: "#f3f4f6", Radius: "0",
			},
			labels: withLabels(func(l *labels) {
				l.title = "Facture"
				l.thanks = "Merci pour votre confiance"
			}),
		},
		{
			meta: Meta{ID: Corporate, Name: "Corporate", Description: "Design d'entreprise formel", Preview: "🏢"},
			theme: Theme{
				Layout: "banner", Font: "Arial, sans-serif",
				Background: "#e5e7eb", Paper: "#ffffff", Ink: "#1f2937", Muted: "#4b5563",
				Accent: "#1e3a8a", AccentInk: "#ffffff", Border: "#cbd5e1", Radius: "2px",
			},
			labels: withLabels(func(l *labels) {
				l.billedTo = "Destinataire"
				l.contact = contactFull
			}),
		},
		{
			meta: Meta{ID: Elegant, Name: "Élégant", Description: "Design raffiné et sophistiqué", Preview: "💎"},
			theme: Theme{
				Layout: "split", Font: "'Playfair Display', Georgia, serif",
				Background: "#faf7f2", Paper: "#fffdf8", Ink: "#292524", Muted: "#78716c",
				Accent: "#a16207", AccentInk: "#fffdf8", Border: "#e7e5e4", Radius: "4px", Ornament: "❦",
			},
			labels: withLabels(func(l *labels) {
				l.thanks = "Merci pour votre confiance"
				l.contact = contactCompact
			}),
		},
		{
			meta: Meta{ID: Colorful, Name: "Coloré", Description: "Design vibrant et joyeux", Preview: "🌈"},
			theme: Theme{
				Layout: "banner", Font: "'Nunito', sans-serif",
				Background: "#fdf2f8", Paper: "#ffffff", Ink: "#4c1d95", Muted: "#1e40af",
				Accent: "#db2777", AccentInk: "#ffffff", Border: "#fbcfe8", Radius: "18px",
			},
			labels: withLabels(func(l *labels) { l.thanks = "Merci pour votre confiance ! 🎉" }),
		},
		{
			meta: Meta{ID: Dark, Name: "Sombre", Description: "Design sombre et mystérieux", Preview: "🌙"},
			theme: Theme{
				Layout: "split", Font: "Inter, sans-serif",
				Background: "#030712", Paper: "#111827", Ink: "#f9fafb", Muted: "#9ca3af",
				Accent: "#f59e0b", AccentInk: "#111827", Border: "#374151", Radius: "10px",
			},
			labels: defaultLabels(),
		},
		{
			meta: Meta{ID: Vintage, Name: "Vintage", Description: "Design rétro et nostalgique", Preview: "📻"},
			theme: Theme{
				Layout: "stacked", Font: "'Courier New', monospace",
				Background: "#fef3c7", Paper: "#fffbeb", Ink: "#78350f", Muted: "#92400e",
				Accent: "#b45309", AccentInk: "#fffbeb", Border: "#d97706", Radius: "0", Ornament: "✶",
			},
			labels: defaultLabels(),
		},
		{
			meta: Meta{ID: Tech, Name: "Tech", Description: "Design technologique et futuriste", Preview: "💻"},
			theme: Theme{
				Layout: "sidebar", Font: "'Fira Code', monospace",
				Background: "#000000", Paper: "#0a0a0a", Ink: "#4ade80", Muted: "#86efac",
				Accent: "#22c55e", AccentInk: "#000000", Border: "#14532d", Radius: "0",
			},
			labels: withLabels(func(l *labels) { l.billedTo = "> Client" }),
		},
		{
			meta: Meta{ID: Creative, Name: "Créatif", Description: "Design artistique et original", Preview: "🎨"},
			theme: Theme{
				Layout: "sidebar", Font: "'Poppins', sans-serif",
				Background: "#eef2ff", Paper: "#ffffff", Ink: "#312e81", Muted: "#6366f1",
				Accent: "#9333ea", AccentInk: "#ffffff", Border: "#c7d2fe", Radius: "24px",
			},
			labels: withLabels(func(l *labels) { l.thanks = "Merci pour votre confiance ! 🎉" }),
		},
		{
			meta: Meta{ID: Luxury, Name: "Luxe", Description: "Design premium et exclusif", Preview: "👑"},
			theme: Theme{
				Layout: "split", Font: "'Cormorant Garamond', serif",
				Background: "#1c1917", Paper: "#0c0a09", Ink: "#fde68a", Muted: "#ca8a04",
				Accent: "#eab308", AccentInk: "#0c0a09", Border: "#a16207", Radius: "2px", Ornament: "♛",
			},
			labels: withLabels(func(l *labels) {
				l.thanks = "Merci pour votre confiance"
				l.contact = contactCompact
			}),
		},
		{
			meta: Meta{ID: Nature, Name: "Nature", Description: "Design naturel et organique", Preview: "🌿"},
			theme: Theme{
				Layout: "stacked", Font: "'Lora', serif",
				Background: "#f0fdf4", Paper: "#ffffff", Ink: "#14532d", Muted: "#166534",
				Accent: "#15803d", AccentInk: "#ffffff", Border: "#bbf7d0", Radius: "16px", Ornament: "❧",
			},
			labels: withLabels(func(l *labels) { l.thanks = "Merci pour votre confiance ! 🌱" }),
		},
		{
			meta: Meta{ID: Futuristic, Name: "Futuriste", Description: "Design avant-gardiste et innovant", Preview: "🚀"},
			theme: Theme{
				Layout: "banner", Font: "'Orbitron', sans-serif",
				Background: "#020617", Paper: "#0f172a", Ink: "#e0f2fe", Muted: "#67e8f9",
				Accent: "#06b6d4", AccentInk: "#020617", Border: "#155e75", Radius: "12px",
			},
			labels: defaultLabels(),
		},
		{
			meta: Meta{ID: Artistic, Name: "Artistique", Description: "Design expressif et créatif", Preview: "🎭"},
			theme: Theme{
				Layout: "sidebar", Font: "'Caveat', cursive",
				Background: "#fff7ed", Paper: "#ffffff", Ink: "#374151", Muted: "#6b7280",
				Accent: "#ea580c", AccentInk: "#ffffff", Border: "#fed7aa", Radius: "30px", Ornament: "✺",
			},
			labels: withLabels(func(l *labels) { l.thanks = "Merci" }),
		},
	}
}
