package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/mbsim/internal/modeling"
)

type svgBox struct {
	x, y  float64
	label string
	fill  string
}

// TopologySVG draws each multibody as a tree of body boxes, base on the
// left and tips to the right, with joints labelled on the connecting lines.
func TopologySVG(sys modeling.MultibodySystem, boxW, boxH int) string {
	w, h := float64(boxW), float64(boxH)
	gapX, gapY := w*0.6, h*0.5

	var boxes []svgBox
	var edges strings.Builder
	var titles strings.Builder

	top := gapY
	maxLevel := 0
	for _, mb := range sys.Multibodies() {
		titles.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#888888">%s</text>
`, gapX/2, top, html.EscapeString(mb.Name())))
		top += gapY / 2

		links, err := mb.Topology()
		if err != nil {
			titles.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ff5555">%s</text>
`, gapX/2, top+h/2, html.EscapeString(err.Error())))
			top += h + gapY
			continue
		}

		// Rows are assigned per level in base-to-tip order.
		rowsAt := make(map[int]int)
		pos := make(map[string][2]float64)
		rows := 1
		for _, l := range links {
			row := rowsAt[l.Level]
			rowsAt[l.Level]++
			if row+1 > rows {
				rows = row + 1
			}
			if l.Level > maxLevel {
				maxLevel = l.Level
			}

			x := gapX/2 + float64(l.Level)*(w+gapX)
			y := top + float64(row)*(h+gapY)
			pos[l.Body.Path()] = [2]float64{x, y}

			fill := "#1e3a5f"
			if l.Body.IsGround() {
				fill = "#3a3a3a"
			} else if l.Body.Kind() == modeling.KindDeformableBody {
				fill = "#5f3a1e"
			}
			boxes = append(boxes, svgBox{x: x, y: y, label: l.Body.Name(), fill: fill})

			if !l.Inboard.Valid() {
				continue
			}
			p := pos[l.Parent.Path()]
			x1, y1 := p[0]+w, p[1]+h/2
			x2, y2 := x, y+h/2
			edges.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#00ff00" stroke-width="1.5"/>
`, x1, y1, x2, y2))
			edges.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#00ff00" font-size="10" text-anchor="middle">%s (%s)</text>
`, (x1+x2)/2, (y1+y2)/2-4, html.EscapeString(l.Inboard.Name()), l.Inboard.Type()))
		}
		top += float64(rows)*(h+gapY) + gapY/2
	}

	width := gapX + float64(maxLevel+1)*(w+gapX)
	height := top

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="monospace">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(titles.String())
	sb.WriteString(edges.String())

	for _, b := range boxes {
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="6" fill="%s" stroke="#cccccc"/>
`, b.x, b.y, w, h, b.fill))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ffffff" text-anchor="middle">%s</text>
`, b.x+w/2, b.y+h/2+4, html.EscapeString(b.label)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
