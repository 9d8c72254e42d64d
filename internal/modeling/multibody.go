package modeling

import "fmt"

// GroundName is the name AddGroundBody gives the ground body.
const GroundName = "Ground"

// Multibody owns a ground body, further bodies and the joints between them.
type Multibody struct {
	Subsystem
}

func NewMultibody(name string) (Multibody, error) {
	t, err := newTree(name, &multibodyData{ground: noID})
	if err != nil {
		return Multibody{}, err
	}
	return Multibody{Subsystem{tree: t, id: 0}}, nil
}

func IsMultibody(f Feature) bool {
	_, ok := AsMultibody(f)
	return ok
}

func AsMultibody(f Feature) (Multibody, bool) {
	return as(f, kindIs(KindMultibody), func(s Subsystem) Multibody { return Multibody{s} })
}

func ToMultibody(f Feature) (Multibody, error) {
	return to(f, kindIs(KindMultibody), func(s Subsystem) Multibody { return Multibody{s} }, "Multibody")
}

func (m Multibody) data() *multibodyData {
	return m.tree.nodes[m.id].data.(*multibodyData)
}

// AddGroundBody adds the fixed reference body. A multibody has at most one.
func (m Multibody) AddGroundBody() (RigidBody, error) {
	d := m.data()
	if d.ground != noID {
		return RigidBody{}, featureErr("add ground", m.Subsystem, ErrGroundExists)
	}
	_, id, err := addBody(m.tree, m.id, GroundName, &rigidBodyData{})
	if err != nil {
		return RigidBody{}, featureErr("add ground", m.Subsystem, err)
	}
	d.ground = id
	return wrapRigidBody(Subsystem{tree: m.tree, id: id}), nil
}

// GroundFrame returns the ground body, whose frame is the model's inertial frame.
func (m Multibody) GroundFrame() (Body, error) {
	g := m.data().ground
	if g == noID {
		return Body{}, featureErr("ground frame", m.Subsystem, ErrNoGround)
	}
	return Body{Subsystem{tree: m.tree, id: g}}, nil
}

func (m Multibody) AddRigidBody(name string) (RigidBody, error) {
	_, id, err := addBody(m.tree, m.id, name, &rigidBodyData{})
	if err != nil {
		return RigidBody{}, featureErr("add "+name, m.Subsystem, err)
	}
	return wrapRigidBody(Subsystem{tree: m.tree, id: id}), nil
}

func (m Multibody) AddRigidBodyLike(proto RigidBody, name string) (RigidBody, error) {
	b, err := m.AddBodyLike(proto.Body, name)
	if err != nil {
		return RigidBody{}, err
	}
	return wrapRigidBody(b.Subsystem), nil
}

// AddBodyLike adds a deep copy of proto under name. The copy is never
// ground, even when proto is.
func (m Multibody) AddBodyLike(proto Body, name string) (Body, error) {
	if !proto.Valid() || !proto.Kind().IsBody() {
		return Body{}, featureErr("add "+name, m.Subsystem, ErrWrongKind)
	}
	id, err := copySubtree(m.tree, m.id, name, proto.tree, proto.id)
	if err != nil {
		return Body{}, featureErr("add "+name, m.Subsystem, err)
	}
	return Body{Subsystem{tree: m.tree, id: id}}, nil
}

// AddJoint adds an unconnected joint; see Joint.Connect.
func (m Multibody) AddJoint(typ JointType, name string) (Joint, error) {
	if !typ.Connectable() {
		return Joint{}, featureErr("add "+name, m.Subsystem, fmt.Errorf("%w: %s", ErrInvalidJointType, typ))
	}
	id, err := m.tree.add(m.id, name, &jointData{typ: typ}, nil)
	if err != nil {
		return Joint{}, featureErr("add "+name, m.Subsystem, err)
	}
	return Joint{Subsystem{tree: m.tree, id: id}}, nil
}

// AddJointBetween adds a joint connecting reference to moving. Both must be
// references to features of bodies in this multibody.
func (m Multibody) AddJointBetween(typ JointType, name string, reference, moving Placement) (Joint, error) {
	if !typ.Connectable() {
		return Joint{}, featureErr("add "+name, m.Subsystem, fmt.Errorf("%w: %s", ErrInvalidJointType, typ))
	}
	if err := m.checkConnection(reference, moving); err != nil {
		return Joint{}, featureErr("add "+name, m.Subsystem, err)
	}
	id, err := m.tree.add(m.id, name, &jointData{typ: typ, reference: reference, moving: moving}, nil)
	if err != nil {
		return Joint{}, featureErr("add "+name, m.Subsystem, err)
	}
	return Joint{Subsystem{tree: m.tree, id: id}}, nil
}

func (m Multibody) checkConnection(reference, moving Placement) error {
	rb, err := m.ownBody(reference)
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	mb, err := m.ownBody(moving)
	if err != nil {
		return fmt.Errorf("moving: %w", err)
	}
	if rb.Same(mb) {
		return ErrSelfJoint
	}
	return nil
}

func (m Multibody) ownBody(p Placement) (Body, error) {
	b, err := placementTarget(m.tree, p)
	if err != nil {
		return Body{}, err
	}
	if !m.tree.contains(m.id, b.id) {
		return Body{}, fmt.Errorf("%w: %s is outside %s", ErrUnresolvedPlacement, b.Path(), m.Path())
	}
	return b, nil
}

func (m Multibody) Bodies() []Body {
	var out []Body
	for _, ch := range m.Children() {
		if b, ok := AsBody(ch); ok {
			out = append(out, b)
		}
	}
	return out
}

func (m Multibody) Joints() []Joint {
	var out []Joint
	for _, ch := range m.Children() {
		if j, ok := AsJoint(ch); ok {
			out = append(out, j)
		}
	}
	return out
}

func (m Multibody) Body(name string) (Body, error) {
	ch, err := m.Child(name)
	if err != nil {
		return Body{}, err
	}
	return ToBody(ch)
}

func (m Multibody) Joint(name string) (Joint, error) {
	ch, err := m.Child(name)
	if err != nil {
		return Joint{}, err
	}
	return ToJoint(ch)
}

// Mobilities is the total number of degrees of freedom granted by the joints.
func (m Multibody) Mobilities() int {
	n := 0
	for _, j := range m.Joints() {
		n += j.Type().DOF()
	}
	return n
}

// Clone returns a deep copy of the multibody in a tree of its own.
func (m Multibody) Clone() (Multibody, error) {
	t, err := cloneTree(m.tree, m.id)
	if err != nil {
		return Multibody{}, err
	}
	return Multibody{Subsystem{tree: t, id: 0}}, nil
}
