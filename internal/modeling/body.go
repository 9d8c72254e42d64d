package modeling

import (
	"github.com/san-kum/mbsim/internal/spatial"
)

// Names of the derived measures every body carries.
const (
	MassMeasureName     = "mass"
	CentroidMeasureName = "centroid"
)

// Body is a frame feature with a mass and a centroid. It is either a
// RigidBody or a DeformableBody.
type Body struct {
	Subsystem
}

func IsBody(f Feature) bool {
	_, ok := AsBody(f)
	return ok
}

func AsBody(f Feature) (Body, bool) {
	return as(f, Kind.IsBody, func(s Subsystem) Body { return Body{s} })
}

func ToBody(f Feature) (Body, error) {
	return to(f, Kind.IsBody, func(s Subsystem) Body { return Body{s} }, "Body")
}

// RealMeasure is a derived scalar such as a body's total mass.
type RealMeasure struct {
	Subsystem
}

func (m RealMeasure) Real() (float64, error) {
	v, err := m.Value()
	if err != nil {
		return 0, err
	}
	return v.Real, nil
}

// StationMeasure is a derived point such as a body's centroid.
type StationMeasure struct {
	Subsystem
}

func (m StationMeasure) Station() (spatial.Vec3, error) {
	v, err := m.Value()
	if err != nil {
		return spatial.Vec3{}, err
	}
	return v.Vec, nil
}

// Mass is the sum of the masses of the body's mass elements.
func (b Body) Mass() RealMeasure {
	return RealMeasure{b.measure(MassMeasureName)}
}

// Centroid is the mass weighted mean of the mass element stations, or the
// body origin while the body is massless.
func (b Body) Centroid() StationMeasure {
	return StationMeasure{b.measure(CentroidMeasureName)}
}

func (b Body) measure(name string) Subsystem {
	return Subsystem{tree: b.tree, id: b.tree.nodes[b.id].index[name]}
}

// Frame evaluates the body's placement in its parent.
func (b Body) Frame() (spatial.Transform, error) {
	v, err := b.Value()
	if err != nil {
		return spatial.Transform{}, err
	}
	return v.Frame, nil
}

func (b Body) MassElements() []MassElement {
	var out []MassElement
	for _, ch := range b.Children() {
		if me, ok := AsMassElement(ch); ok {
			out = append(out, me)
		}
	}
	return out
}

// IsGround reports whether b is the ground body of its multibody.
func (b Body) IsGround() bool {
	p := b.tree.nodes[b.id].parent
	if p == noID {
		return false
	}
	d, ok := b.tree.nodes[p].data.(*multibodyData)
	return ok && d.ground == b.id
}

// PlacementBody starts at f, which must carry a placement, and walks up
// the tree to the first body. f itself counts.
func PlacementBody(f Feature) (Body, error) {
	s := f.Base()
	if s.tree == nil {
		return Body{}, ErrUnplaced
	}
	if s.Placement() == nil {
		return Body{}, featureErr("placement body", s, ErrUnplaced)
	}
	for cur := s.id; cur != noID; cur = s.tree.nodes[cur].parent {
		if s.tree.kind(cur).IsBody() {
			return Body{Subsystem{tree: s.tree, id: cur}}, nil
		}
	}
	return Body{}, featureErr("placement body", s, ErrNoEnclosingBody)
}

// addBody creates a body node under parent (or a new tree root when the
// tree is nil) with an identity frame and its derived measures.
func addBody(t *Tree, parent ID, name string, data payload) (*Tree, ID, error) {
	var id ID
	if t == nil {
		nt, err := newTree(name, data)
		if err != nil {
			return nil, noID, err
		}
		t, id = nt, 0
		t.nodes[0].place = FrameAt(spatial.IdentityTransform())
	} else {
		var err error
		id, err = t.add(parent, name, data, FrameAt(spatial.IdentityTransform()))
		if err != nil {
			return nil, noID, err
		}
	}
	if _, err := t.add(id, MassMeasureName, &featureData{k: KindReal, derived: true}, Real(0)); err != nil {
		return nil, noID, err
	}
	if _, err := t.add(id, CentroidMeasureName, &featureData{k: KindStation, derived: true}, Vector(spatial.Vec3{})); err != nil {
		return nil, noID, err
	}
	return t, id, nil
}

// rebuildMeasures points a body's mass and centroid at its current mass elements.
func rebuildMeasures(t *Tree, body ID) {
	var masses, pairs []Placement
	for _, ch := range t.nodes[body].children {
		if t.kind(ch) != KindMassElement {
			continue
		}
		m, ok := t.nodes[ch].index[MassMeasureName]
		if !ok {
			continue
		}
		mref := featureRef{tree: t, id: m}
		masses = append(masses, mref)
		pairs = append(pairs, mref, featureRef{tree: t, id: ch})
	}

	n := t.nodes[body]
	massID, centroidID := n.index[MassMeasureName], n.index[CentroidMeasureName]
	if len(masses) == 0 {
		t.nodes[massID].place = Real(0)
		t.nodes[centroidID].place = Vector(spatial.Vec3{})
		return
	}
	t.nodes[massID].place = Sum(masses...)
	t.nodes[centroidID].place = centroidOf(pairs...)
}

// measuresCyclic reports whether a body's mass or centroid now depends on itself.
func measuresCyclic(t *Tree, body ID) bool {
	n := t.nodes[body]
	for _, name := range []string{MassMeasureName, CentroidMeasureName} {
		id := n.index[name]
		if t.dependsOn(t.nodes[id].place, id, map[ID]bool{}) {
			return true
		}
	}
	return false
}
