package modeling

import "fmt"

type jointData struct {
	typ       JointType
	reference Placement
	moving    Placement
}

func (d *jointData) kind() Kind { return KindJoint }
func (d *jointData) copyWith(r *rebinder) (payload, error) {
	c := &jointData{typ: d.typ}
	if d.reference == nil {
		return c, nil
	}
	var err error
	if c.reference, err = r.placement(d.reference); err != nil {
		return nil, err
	}
	if c.moving, err = r.placement(d.moving); err != nil {
		return nil, err
	}
	return c, nil
}

// Joint connects a reference placement on one body to a moving placement
// on another and restricts their relative motion according to its type.
type Joint struct {
	Subsystem
}

// NewJoint creates a standalone, unconnected joint.
func NewJoint(typ JointType, name string) (Joint, error) {
	if !typ.Connectable() {
		return Joint{}, fmt.Errorf("%w: %s", ErrInvalidJointType, typ)
	}
	t, err := newTree(name, &jointData{typ: typ})
	if err != nil {
		return Joint{}, err
	}
	return Joint{Subsystem{tree: t, id: 0}}, nil
}

func IsJoint(f Feature) bool {
	_, ok := AsJoint(f)
	return ok
}

func AsJoint(f Feature) (Joint, bool) {
	return as(f, kindIs(KindJoint), func(s Subsystem) Joint { return Joint{s} })
}

func ToJoint(f Feature) (Joint, error) {
	return to(f, kindIs(KindJoint), func(s Subsystem) Joint { return Joint{s} }, "Joint")
}

func (j Joint) data() *jointData {
	return j.tree.nodes[j.id].data.(*jointData)
}

func (j Joint) Type() JointType { return j.data().typ }

// Reference is nil until the joint is connected.
func (j Joint) Reference() Placement { return j.data().reference }

func (j Joint) Moving() Placement { return j.data().moving }

func (j Joint) Connected() bool { return j.data().reference != nil }

func (j Joint) ReferenceBody() (Body, error) {
	if !j.Connected() {
		return Body{}, featureErr("reference body", j.Subsystem, ErrUnresolvedPlacement)
	}
	return placementTarget(j.tree, j.data().reference)
}

func (j Joint) MovingBody() (Body, error) {
	if !j.Connected() {
		return Body{}, featureErr("moving body", j.Subsystem, ErrUnresolvedPlacement)
	}
	return placementTarget(j.tree, j.data().moving)
}

// Connect attaches an unconnected joint. Both placements must be feature
// references that resolve to distinct bodies of the enclosing multibody.
func (j Joint) Connect(reference, moving Placement) error {
	if j.Connected() {
		return featureErr("connect", j.Subsystem, ErrAlreadyConnected)
	}
	mb, ok := j.enclosingMultibody()
	if !ok {
		return featureErr("connect", j.Subsystem, fmt.Errorf("%w: joint is not part of a multibody", ErrUnresolvedPlacement))
	}
	if err := mb.checkConnection(reference, moving); err != nil {
		return featureErr("connect", j.Subsystem, err)
	}
	d := j.data()
	d.reference, d.moving = reference, moving
	return nil
}

func (j Joint) enclosingMultibody() (Multibody, bool) {
	for cur := j.tree.nodes[j.id].parent; cur != noID; cur = j.tree.nodes[cur].parent {
		if j.tree.kind(cur) == KindMultibody {
			return Multibody{Subsystem{tree: j.tree, id: cur}}, true
		}
	}
	return Multibody{}, false
}

// Clone copies the joint into a tree of its own. A connected joint refers
// to bodies outside itself, so only unconnected joints can be cloned.
func (j Joint) Clone() (Joint, error) {
	t, err := cloneTree(j.tree, j.id)
	if err != nil {
		return Joint{}, err
	}
	return Joint{Subsystem{tree: t, id: 0}}, nil
}

// placementTarget resolves a feature reference to the body enclosing its target.
func placementTarget(t *Tree, p Placement) (Body, error) {
	if p == nil {
		return Body{}, ErrUnresolvedPlacement
	}
	ref, ok := p.(featureRef)
	if !ok {
		return Body{}, fmt.Errorf("%w: %s is not a feature reference", ErrUnresolvedPlacement, p)
	}
	if ref.tree != t {
		return Body{}, fmt.Errorf("%w: %w", ErrUnresolvedPlacement, ErrForeignPlacement)
	}
	b, err := PlacementBody(Subsystem{tree: t, id: ref.id})
	if err != nil {
		return Body{}, fmt.Errorf("%w: %w", ErrUnresolvedPlacement, err)
	}
	return b, nil
}
