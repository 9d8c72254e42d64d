package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mbsim/internal/storage"
)

const (
	plotHeight = 10
	plotWidth  = 60
)

// MassProfile plots body masses in base-to-tip order.
func MassProfile(rows []storage.BodyRow) string {
	if len(rows) == 0 {
		return ""
	}
	data := make([]float64, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		data[i] = r.Mass
		names[i] = r.Name
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("mass: "+strings.Join(names, " → ")),
	)
}

// CentroidProfile plots the x, y and z centroid coordinates of each body.
func CentroidProfile(rows []storage.BodyRow) string {
	if len(rows) == 0 {
		return ""
	}
	series := make([][]float64, 3)
	for _, r := range rows {
		for axis := range series {
			series[axis] = append(series[axis], r.Centroid[axis])
		}
	}
	if len(rows) == 1 {
		for axis := range series {
			series[axis] = append(series[axis], series[axis][0])
		}
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("centroid x (red) y (green) z (blue)"),
	)
}
