package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/san-kum/mbsim/internal/modeling"
)

// RenderTree draws f and everything below it with box-drawing guides,
// one node per line, colored by kind.
func RenderTree(f modeling.Feature) string {
	return buildTree(modeling.Snapshot(f)).String() + "\n"
}

// buildTree nests a depth-first node list into a lipgloss tree.
func buildTree(nodes []modeling.NodeInfo) *tree.Tree {
	root := branch(NodeLine(nodes[0]))
	stack := []*tree.Tree{root}
	for i := 1; i < len(nodes); i++ {
		n := nodes[i]
		stack = stack[:n.Depth]
		parent := stack[n.Depth-1]
		if i+1 < len(nodes) && nodes[i+1].Depth > n.Depth {
			t := branch(NodeLine(n))
			parent.Child(t)
			stack = append(stack, t)
			continue
		}
		parent.Child(NodeLine(n))
	}
	return root
}

func branch(label string) *tree.Tree {
	return tree.New().
		Root(label).
		Enumerator(tree.DefaultEnumerator).
		Indenter(tree.DefaultIndenter).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(CurrentTheme.Muted).PaddingRight(1))
}

// NodeLine formats a single node without indentation.
func NodeLine(n modeling.NodeInfo) string {
	th := CurrentTheme
	var b strings.Builder

	b.WriteString(KindStyle(n.Kind).Render(n.Kind))
	b.WriteString(" ")
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Value)
	if n.Detail == "ground" {
		nameStyle = nameStyle.Foreground(th.Ground)
	}
	b.WriteString(nameStyle.Render(n.Name))

	if n.Detail != "" {
		b.WriteString(" " + Subtle.Render("["+n.Detail+"]"))
	}
	if n.Placement != "" {
		b.WriteString(" " + Subtle.Render(":= "+n.Placement))
	}
	switch n.Value {
	case "":
	case "unresolved":
		b.WriteString(" " + lipgloss.NewStyle().Foreground(th.Error).Render("= "+n.Value))
	default:
		b.WriteString(" " + lipgloss.NewStyle().Foreground(th.Value).Render("= "+n.Value))
	}
	return b.String()
}
