package modeling

// DeformableBody is a non-rigid body. It shares the Body capabilities but
// has no operations of its own yet.
type DeformableBody struct {
	Body
}

func NewDeformableBody(name string) (DeformableBody, error) {
	t, id, err := addBody(nil, noID, name, &deformableBodyData{})
	if err != nil {
		return DeformableBody{}, err
	}
	return DeformableBody{Body{Subsystem{tree: t, id: id}}}, nil
}

func IsDeformableBody(f Feature) bool {
	_, ok := AsDeformableBody(f)
	return ok
}

func AsDeformableBody(f Feature) (DeformableBody, bool) {
	return as(f, kindIs(KindDeformableBody), wrapDeformableBody)
}

func ToDeformableBody(f Feature) (DeformableBody, error) {
	return to(f, kindIs(KindDeformableBody), wrapDeformableBody, "DeformableBody")
}

func wrapDeformableBody(s Subsystem) DeformableBody { return DeformableBody{Body{s}} }

func (b DeformableBody) Clone() (DeformableBody, error) {
	t, err := cloneTree(b.tree, b.id)
	if err != nil {
		return DeformableBody{}, err
	}
	return wrapDeformableBody(Subsystem{tree: t, id: 0}), nil
}
