package document

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ava12/exprdoc/ast"
)

var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorMuted     = lipgloss.Color("#6B7280")

	sourceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	operatorStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	leafStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	branchStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Render returns human-readable tree view of the document for a terminal.
func Render(d *Document) string {
	blocks := make([]string, len(d.Statements))
	for i, st := range d.Statements {
		var sb strings.Builder
		sb.WriteString(sourceStyle.Render(strings.TrimSpace(st.Source)))
		renderNode(&sb, st.Tree, "", true)
		blocks[i] = sb.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderNode(sb *strings.Builder, n ast.Node, indent string, last bool) {
	connector, next := "├── ", "│   "
	if last {
		connector, next = "└── ", "    "
	}

	sb.WriteByte('\n')
	sb.WriteString(branchStyle.Render(indent + connector))
	sb.WriteString(nodeLabel(n))
	children := ast.Children(n)
	for i, c := range children {
		renderNode(sb, c, indent+next, i == len(children)-1)
	}
}

func nodeLabel(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Leaf:
		return leafStyle.Render(Tag(n) + " " + n.Value)
	case *ast.UnaryOp:
		return operatorStyle.Render(TagUnary + " " + n.Symbol)
	case *ast.BinaryOp:
		return operatorStyle.Render(TagBinary + " " + n.Symbol)
	}
	return ""
}
