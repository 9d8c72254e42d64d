package viz

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/mbsim/internal/storage"
)

// SummaryTable renders a summary as a boxed table of bodies in base-to-tip
// order followed by totals.
func SummaryTable(title string, s storage.Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Subtle).
		Headers("body", "kind", "level", "mass", "centroid", "joint")

	masses := make([]float64, 0, len(s.Rows))
	for _, r := range s.Rows {
		joint := "-"
		if r.Joint != "" {
			joint = r.Joint + " (" + r.JointType + ")"
		}
		t.Row(r.Name, r.Kind, strconv.Itoa(r.Level), strconv.FormatFloat(r.Mass, 'g', 6, 64), r.Centroid.String(), joint)
		masses = append(masses, r.Mass)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return MetricLabel.Bold(true).Padding(0, 1)
		}
		if col == 0 {
			return KindStyle("RigidBody").Padding(0, 1)
		}
		return lipgloss.NewStyle().Padding(0, 1)
	})

	body := t.String()
	totals := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		MetricLabel.Render("bodies"), MetricValue.Render(strconv.Itoa(s.Bodies)),
		MetricLabel.Render("joints"), MetricValue.Render(strconv.Itoa(s.Joints)),
		MetricLabel.Render("dof"), MetricValue.Render(strconv.Itoa(s.Mobilities)),
		MetricLabel.Render("mass"), MetricValue.Render(strconv.FormatFloat(s.TotalMass, 'g', 6, 64)),
	)
	if len(masses) > 0 {
		totals += "   " + SparklineChart(masses, len(masses))
	}

	return BoxWithTitle(title, body+"\n"+totals, lipgloss.Width(body)+2)
}
