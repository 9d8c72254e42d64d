package modeling

import (
	"math"

	"github.com/san-kum/mbsim/internal/spatial"
)

// Shape selects the mass distribution of a MassElement.
type Shape int

const (
	ShapePoint Shape = iota
	ShapeCylinder
	ShapeBrick
)

func (s Shape) String() string {
	switch s {
	case ShapePoint:
		return "point"
	case ShapeCylinder:
		return "cylinder"
	case ShapeBrick:
		return "brick"
	default:
		return "unknown"
	}
}

type massElementData struct {
	shape       Shape
	radius      float64      // cylinder
	halfLength  float64      // cylinder, along z
	halfLengths spatial.Vec3 // brick
}

func (d *massElementData) kind() Kind { return KindMassElement }
func (d *massElementData) copyWith(*rebinder) (payload, error) {
	c := *d
	return &c, nil
}

// MassElement is a lump of mass attached to a body. Its placement is the
// station of its centroid in the body frame; its "mass" child holds the mass.
type MassElement struct {
	Subsystem
}

func IsMassElement(f Feature) bool {
	_, ok := AsMassElement(f)
	return ok
}

func AsMassElement(f Feature) (MassElement, bool) {
	return as(f, kindIs(KindMassElement), func(s Subsystem) MassElement { return MassElement{s} })
}

func ToMassElement(f Feature) (MassElement, error) {
	return to(f, kindIs(KindMassElement), func(s Subsystem) MassElement { return MassElement{s} }, "MassElement")
}

func NewPointMass(name string, mass float64) (MassElement, error) {
	return newMassElement(name, mass, &massElementData{shape: ShapePoint})
}

// NewCylinderMass is a solid cylinder whose axis is z.
func NewCylinderMass(name string, mass, radius, halfLength float64) (MassElement, error) {
	return newMassElement(name, mass, &massElementData{
		shape:      ShapeCylinder,
		radius:     radius,
		halfLength: halfLength,
	})
}

func NewBrickMass(name string, mass float64, halfLengths spatial.Vec3) (MassElement, error) {
	return newMassElement(name, mass, &massElementData{
		shape:       ShapeBrick,
		halfLengths: halfLengths,
	})
}

func newMassElement(name string, mass float64, data *massElementData) (MassElement, error) {
	if !validMass(mass) {
		return MassElement{}, ErrNegativeMass
	}
	t, err := newTree(name, data)
	if err != nil {
		return MassElement{}, err
	}
	t.nodes[0].place = Vector(spatial.Vec3{})
	if _, err := t.add(0, MassMeasureName, &featureData{k: KindReal}, Real(mass)); err != nil {
		return MassElement{}, err
	}
	return MassElement{Subsystem{tree: t, id: 0}}, nil
}

func validMass(m float64) bool {
	return m >= 0 && !math.IsInf(m, 0)
}

func (m MassElement) data() *massElementData {
	return m.tree.nodes[m.id].data.(*massElementData)
}

func (m MassElement) Shape() Shape { return m.data().shape }

// MassFeature is the Real feature holding the element's mass. It can be
// re-placed with any real valued placement; negative constants are refused.
func (m MassElement) MassFeature() Subsystem {
	return Subsystem{tree: m.tree, id: m.tree.nodes[m.id].index[MassMeasureName]}
}

func (m MassElement) Mass() (float64, error) {
	v, err := m.MassFeature().Value()
	if err != nil {
		return 0, err
	}
	return v.Real, nil
}

func (m MassElement) SetMass(mass float64) error {
	if !validMass(mass) {
		return featureErr("set mass", m.Subsystem, ErrNegativeMass)
	}
	return m.MassFeature().SetPlacement(Real(mass))
}

// Station is the element's centroid in the body frame.
func (m MassElement) Station() (spatial.Vec3, error) {
	v, err := m.Value()
	if err != nil {
		return spatial.Vec3{}, err
	}
	return v.Vec, nil
}

// CentralInertia returns the principal moments of inertia about the
// element's centroid, along the element's own axes.
func (m MassElement) CentralInertia() (spatial.Vec3, error) {
	mass, err := m.Mass()
	if err != nil {
		return spatial.Vec3{}, err
	}
	d := m.data()
	switch d.shape {
	case ShapeCylinder:
		r2 := d.radius * d.radius
		h2 := d.halfLength * d.halfLength
		transverse := mass * (3*r2 + 4*h2) / 12
		return spatial.Vec3{transverse, transverse, mass * r2 / 2}, nil
	case ShapeBrick:
		a2 := d.halfLengths[0] * d.halfLengths[0]
		b2 := d.halfLengths[1] * d.halfLengths[1]
		c2 := d.halfLengths[2] * d.halfLengths[2]
		return spatial.Vec3{mass * (b2 + c2) / 3, mass * (a2 + c2) / 3, mass * (a2 + b2) / 3}, nil
	default:
		return spatial.Vec3{}, nil
	}
}

// Clone returns an independent copy of the element in a tree of its own.
func (m MassElement) Clone() (MassElement, error) {
	t, err := cloneTree(m.tree, m.id)
	if err != nil {
		return MassElement{}, err
	}
	return MassElement{Subsystem{tree: t, id: 0}}, nil
}
