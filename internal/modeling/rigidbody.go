package modeling

// RigidBody is a body whose mass comes from attached mass elements.
type RigidBody struct {
	Body
}

// NewRigidBody creates a standalone rigid body, typically used as a
// prototype for Multibody.AddRigidBodyLike.
func NewRigidBody(name string) (RigidBody, error) {
	t, id, err := addBody(nil, noID, name, &rigidBodyData{})
	if err != nil {
		return RigidBody{}, err
	}
	return RigidBody{Body{Subsystem{tree: t, id: id}}}, nil
}

func IsRigidBody(f Feature) bool {
	_, ok := AsRigidBody(f)
	return ok
}

func AsRigidBody(f Feature) (RigidBody, bool) {
	return as(f, kindIs(KindRigidBody), wrapRigidBody)
}

func ToRigidBody(f Feature) (RigidBody, error) {
	return to(f, kindIs(KindRigidBody), wrapRigidBody, "RigidBody")
}

func wrapRigidBody(s Subsystem) RigidBody { return RigidBody{Body{s}} }

// AddMassElementLike attaches a copy of proto under name, keeping the
// prototype's own station.
func (b RigidBody) AddMassElementLike(proto MassElement, name string) (MassElement, error) {
	return b.addMassElement(proto, name, nil)
}

// AddMassElementLikeAt attaches a copy of proto under name with its
// centroid placed at p. p may refer to other features of this body's tree.
func (b RigidBody) AddMassElementLikeAt(proto MassElement, name string, p Placement) (MassElement, error) {
	if p == nil {
		return MassElement{}, featureErr("add "+name, b.Subsystem, ErrUnplaced)
	}
	return b.addMassElement(proto, name, p)
}

func (b RigidBody) addMassElement(proto MassElement, name string, p Placement) (MassElement, error) {
	if !proto.Valid() || proto.Kind() != KindMassElement {
		return MassElement{}, featureErr("add "+name, b.Subsystem, ErrWrongKind)
	}
	if p != nil {
		vk, err := b.tree.kindOf(p)
		if err != nil {
			return MassElement{}, featureErr("add "+name, b.Subsystem, err)
		}
		if vk != ValueVec3 {
			return MassElement{}, featureErr("add "+name, b.Subsystem, ErrPlacementKind)
		}
	}

	id, err := copySubtree(b.tree, b.id, name, proto.tree, proto.id)
	if err != nil {
		return MassElement{}, featureErr("add "+name, b.Subsystem, err)
	}
	if p != nil {
		b.tree.nodes[id].place = p
	}
	rebuildMeasures(b.tree, b.id)
	if measuresCyclic(b.tree, b.id) {
		b.tree.unlink(b.id, id)
		rebuildMeasures(b.tree, b.id)
		return MassElement{}, featureErr("add "+name, b.Subsystem, ErrPlacementCycle)
	}
	return MassElement{Subsystem{tree: b.tree, id: id}}, nil
}

// Clone returns a deep copy of the body in a tree of its own. It fails
// with ErrForeignPlacement when a placement inside the body refers to a
// feature outside it.
func (b RigidBody) Clone() (RigidBody, error) {
	t, err := cloneTree(b.tree, b.id)
	if err != nil {
		return RigidBody{}, err
	}
	return wrapRigidBody(Subsystem{tree: t, id: 0}), nil
}
