package storage

import (
	"github.com/san-kum/mbsim/internal/modeling"
	"github.com/san-kum/mbsim/internal/spatial"
)

// Summary is the digest of a model kept alongside it.
type Summary struct {
	Bodies     int       `json:"bodies"`
	Joints     int       `json:"joints"`
	Mobilities int       `json:"mobilities"`
	TotalMass  float64   `json:"total_mass"`
	Rows       []BodyRow `json:"-"`
}

// BodyRow describes one body in base-to-tip order.
type BodyRow struct {
	Name      string
	Kind      string
	Level     int
	Mass      float64
	Centroid  spatial.Vec3
	Joint     string
	JointType string
}

// Summarize validates the multibody's topology and tabulates its bodies.
func Summarize(mb modeling.Multibody) (Summary, error) {
	links, err := mb.Topology()
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Bodies:     len(links),
		Joints:     len(mb.Joints()),
		Mobilities: mb.Mobilities(),
		Rows:       make([]BodyRow, 0, len(links)),
	}
	for _, l := range links {
		mass, err := l.Body.Mass().Real()
		if err != nil {
			return Summary{}, err
		}
		centroid, err := l.Body.Centroid().Station()
		if err != nil {
			return Summary{}, err
		}
		row := BodyRow{
			Name:     l.Body.Name(),
			Kind:     l.Body.Kind().String(),
			Level:    l.Level,
			Mass:     mass,
			Centroid: centroid,
		}
		if l.Inboard.Valid() {
			row.Joint = l.Inboard.Name()
			row.JointType = l.Inboard.Type().String()
		}
		s.TotalMass += mass
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}
