// Package tui is an interactive terminal browser for model trees.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mbsim/internal/modeling"
	"github.com/san-kum/mbsim/internal/viz"
)

var (
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

const detailLines = 7

type model struct {
	title string
	nodes []modeling.NodeInfo

	cursor      int // index into visible()
	offset      int
	collapsed   map[int]bool
	hideDerived bool

	width  int
	height int
}

// newBrowser returns a browser over f and its descendants.
func newBrowser(f modeling.Feature) *model {
	nodes := modeling.Snapshot(f)
	return &model{
		title:     nodes[0].Path,
		nodes:     nodes,
		collapsed: make(map[int]bool),
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	vis := m.visible()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(vis)-1 {
			m.cursor++
		}
	case "pgup":
		m.cursor = max(m.cursor-m.listHeight(), 0)
	case "pgdown":
		m.cursor = min(m.cursor+m.listHeight(), len(vis)-1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(vis) - 1
	case "enter", " ":
		idx := vis[m.cursor]
		if m.hasChildren(idx) {
			m.collapsed[idx] = !m.collapsed[idx]
		}
	case "m":
		sel := vis[m.cursor]
		m.hideDerived = !m.hideDerived
		m.cursor = m.positionOf(sel)
	}
	m.scroll()
	return m, nil
}

// visible lists the node indices shown, skipping collapsed subtrees and,
// when requested, derived measures.
func (m model) visible() []int {
	out := make([]int, 0, len(m.nodes))
	skipBelow := -1
	for i, n := range m.nodes {
		if skipBelow >= 0 {
			if n.Depth > skipBelow {
				continue
			}
			skipBelow = -1
		}
		if m.hideDerived && n.Derived && i > 0 {
			continue
		}
		out = append(out, i)
		if m.collapsed[i] {
			skipBelow = n.Depth
		}
	}
	return out
}

func (m model) hasChildren(idx int) bool {
	return idx+1 < len(m.nodes) && m.nodes[idx+1].Depth > m.nodes[idx].Depth
}

// positionOf finds idx, or the nearest visible node before it.
func (m model) positionOf(idx int) int {
	pos := 0
	for i, v := range m.visible() {
		if v > idx {
			break
		}
		pos = i
	}
	return pos
}

func (m model) listHeight() int {
	return max(m.height-detailLines-4, 3)
}

func (m *model) scroll() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m model) selected() modeling.NodeInfo {
	return m.nodes[m.visible()[m.cursor]]
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(" " + viz.GradientText(m.title, viz.CurrentTheme.Title, viz.CurrentTheme.Accent) + "\n")
	b.WriteString(dimmer.Render(strings.Repeat("━", max(min(m.width, 60), 10))) + "\n")

	vis := m.visible()
	end := min(m.offset+m.listHeight(), len(vis))
	for pos := m.offset; pos < end; pos++ {
		idx := vis[pos]
		n := m.nodes[idx]

		marker := "  "
		if m.hasChildren(idx) {
			marker = "▾ "
			if m.collapsed[idx] {
				marker = "▸ "
			}
		}
		line := strings.Repeat("  ", n.Depth) + marker + viz.NodeLine(n)
		if pos == m.cursor {
			b.WriteString(cyan.Render("│") + viz.Selected.Render(strings.Repeat("  ", n.Depth)+marker+n.Kind+" "+n.Name) + "\n")
			continue
		}
		b.WriteString(" " + line + "\n")
	}

	b.WriteString("\n" + m.viewDetail())
	b.WriteString(viz.KeyHint.Render(" ↑↓ move   enter fold   m measures   q quit") + "\n")
	return b.String()
}

func (m model) viewDetail() string {
	n := m.selected()
	row := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return dim.Render(fmt.Sprintf(" %-10s", label)) + white.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("path", n.Path))
	b.WriteString(row("kind", n.Kind))
	b.WriteString(row("detail", n.Detail))
	b.WriteString(row("placement", n.Placement))
	b.WriteString(row("value", n.Value))
	if n.Derived {
		b.WriteString(row("derived", "yes"))
	}
	return b.String()
}

// Browse runs the browser full screen until the user quits.
func Browse(f modeling.Feature) error {
	p := tea.NewProgram(newBrowser(f), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
