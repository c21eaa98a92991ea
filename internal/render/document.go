package render

import "strings"

// RootID identifies the single capturable region of a rendered invoice
const RootID = "invoice-content"

// Role names the semantic part of the invoice a node carries
type Role string

// Section roles, in the order every template emits them
const (
	RoleIssuer  Role = "issuer"
	RoleTitle   Role = "title"
	RoleClient  Role = "client"
	RoleDates   Role = "dates"
	RoleTerms   Role = "terms"
	RoleItems   Role = "items"
	RoleTotals  Role = "totals"
	RoleNotes   Role = "notes"
	RoleClosing Role = "closing"
)

// Row roles inside the totals section
const (
	RoleSubtotal   Role = "subtotal"
	RoleTax        Role = "tax"
	RoleGrandTotal Role = "grand-total"
)

// NodeKind is the structural kind of a node
type NodeKind string

const (
	KindRoot      NodeKind = "root"
	KindSection   NodeKind = "section"
	KindHeading   NodeKind = "heading"
	KindText      NodeKind = "text"
	KindField     NodeKind = "field"
	KindTable     NodeKind = "table"
	KindRow       NodeKind = "row"
	KindCell      NodeKind = "cell"
	KindSeparator NodeKind = "separator"
)

// Node is one element of the rendered document tree
type Node struct {
	Kind     NodeKind
	Role     Role
	Class    string
	Label    string
	Text     string
	Header   bool
	Emphasis bool
	Children []*Node
}

// Document is the render output: one root node plus the theme it is styled with
type Document struct {
	Template TemplateID
	Theme    Theme
	Root     *Node
}

// Sections returns the roles of the top-level sections in document order
func (d *Document) Sections() []Role {
	if d == nil || d.Root == nil {
		return nil
	}
	roles := make([]Role, 0, len(d.Root.Children))
	for _, child := range d.Root.Children {
		if child.Kind == KindSection {
			roles = append(roles, child.Role)
		}
	}
	return roles
}

// Find returns the first node with the given role, depth first
func (d *Document) Find(role Role) *Node {
	if d == nil {
		return nil
	}
	return d.Root.find(role)
}

func (n *Node) find(role Role) *Node {
	if n == nil {
		return nil
	}
	if n.Role == role {
		return n
	}
	for _, child := range n.Children {
		if found := child.find(role); found != nil {
			return found
		}
	}
	return nil
}

// Rows returns the non-header rows of a table node
func (n *Node) Rows() []*Node {
	var rows []*Node
	for _, child := range n.Children {
		if child.Kind == KindRow && !child.Header {
			rows = append(rows, child)
		}
	}
	return rows
}

// Cells returns the texts of a row's cells
func (n *Node) Cells() []string {
	cells := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		cells = append(cells, child.Text)
	}
	return cells
}

// Lines flattens the document into plain text lines, one per leaf element.
// Used by image capture and text exports.
func (d *Document) Lines() []string {
	if d == nil || d.Root == nil {
		return nil
	}
	var lines []string
	d.Root.appendLines(&lines)
	return lines
}

func (n *Node) appendLines(lines *[]string) {
	switch n.Kind {
	case KindSeparator:
		*lines = append(*lines, "")
	case KindHeading, KindText:
		for _, l := range strings.Split(n.Text, "\n") {
			*lines = append(*lines, l)
		}
	case KindField:
		*lines = append(*lines, n.Label+" "+n.Text)
	case KindRow:
		*lines = append(*lines, strings.Join(n.Cells(), " | "))
	default:
		for _, child := range n.Children {
			child.appendLines(lines)
		}
	}
}
