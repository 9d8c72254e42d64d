package modeling

import (
	"strings"
)

// ID addresses a node inside a Tree. IDs are stable for the life of the
// tree: nodes are only ever appended.
type ID int

const noID ID = -1

// Kind enumerates the variants a node can take.
type Kind int

const (
	KindSubsystem Kind = iota
	KindReal
	KindStation
	KindDirection
	KindOrientation
	KindFrame
	KindMassElement
	KindRigidBody
	KindDeformableBody
	KindJoint
	KindMultibody
	KindMultibodySystem
)

func (k Kind) String() string {
	switch k {
	case KindSubsystem:
		return "Subsystem"
	case KindReal:
		return "Real"
	case KindStation:
		return "Station"
	case KindDirection:
		return "Direction"
	case KindOrientation:
		return "Orientation"
	case KindFrame:
		return "Frame"
	case KindMassElement:
		return "MassElement"
	case KindRigidBody:
		return "RigidBody"
	case KindDeformableBody:
		return "DeformableBody"
	case KindJoint:
		return "Joint"
	case KindMultibody:
		return "Multibody"
	case KindMultibodySystem:
		return "MultibodySystem"
	default:
		return "Unknown"
	}
}

// IsBody reports whether k is one of the body variants.
func (k Kind) IsBody() bool {
	return k == KindRigidBody || k == KindDeformableBody
}

// payload is the kind-specific part of a node. The set of implementations
// is closed to this package.
type payload interface {
	kind() Kind
	copyWith(r *rebinder) (payload, error)
}

type featureData struct {
	k       Kind
	derived bool
}

func (d *featureData) kind() Kind { return d.k }
func (d *featureData) copyWith(*rebinder) (payload, error) {
	c := *d
	return &c, nil
}

type rigidBodyData struct{}

func (d *rigidBodyData) kind() Kind                          { return KindRigidBody }
func (d *rigidBodyData) copyWith(*rebinder) (payload, error) { return &rigidBodyData{}, nil }

type deformableBodyData struct{}

func (d *deformableBodyData) kind() Kind { return KindDeformableBody }
func (d *deformableBodyData) copyWith(*rebinder) (payload, error) {
	return &deformableBodyData{}, nil
}

type multibodyData struct {
	ground ID
}

func (d *multibodyData) kind() Kind { return KindMultibody }
func (d *multibodyData) copyWith(r *rebinder) (payload, error) {
	if d.ground == noID {
		return &multibodyData{ground: noID}, nil
	}
	g, err := r.id(d.ground)
	if err != nil {
		return nil, err
	}
	return &multibodyData{ground: g}, nil
}

type systemData struct{}

func (d *systemData) kind() Kind                          { return KindMultibodySystem }
func (d *systemData) copyWith(*rebinder) (payload, error) { return &systemData{}, nil }

type node struct {
	name     string
	parent   ID
	children []ID
	index    map[string]ID
	place    Placement
	data     payload
}

// Tree is the arena holding one model. Views such as Subsystem, RigidBody
// and Multibody are (tree, id) pairs into it; they never own nodes.
//
// A Tree is not safe for concurrent mutation.
type Tree struct {
	nodes []node
}

func checkName(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return ErrEmptyName
	}
	return nil
}

func newTree(name string, data payload) (*Tree, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	t := &Tree{}
	t.nodes = append(t.nodes, node{
		name:   name,
		parent: noID,
		index:  make(map[string]ID),
		data:   data,
	})
	return t, nil
}

func (t *Tree) add(parent ID, name string, data payload, p Placement) (ID, error) {
	if err := checkName(name); err != nil {
		return noID, err
	}
	if _, exists := t.nodes[parent].index[name]; exists {
		return noID, ErrDuplicateName
	}
	id := ID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		name:   name,
		parent: parent,
		index:  make(map[string]ID),
		place:  p,
		data:   data,
	})
	t.link(parent, id)
	return id, nil
}

func (t *Tree) link(parent, id ID) {
	pn := &t.nodes[parent]
	pn.children = append(pn.children, id)
	pn.index[t.nodes[id].name] = id
}

// unlink detaches id from parent. The node stays in the arena, unreachable.
func (t *Tree) unlink(parent, id ID) {
	pn := &t.nodes[parent]
	for i, ch := range pn.children {
		if ch == id {
			pn.children = append(pn.children[:i], pn.children[i+1:]...)
			break
		}
	}
	delete(pn.index, t.nodes[id].name)
	t.nodes[id].parent = noID
}

func (t *Tree) kind(id ID) Kind {
	return t.nodes[id].data.kind()
}

func (t *Tree) path(id ID) string {
	var parts []string
	for cur := id; cur != noID; cur = t.nodes[cur].parent {
		parts = append(parts, t.nodes[cur].name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// lookup resolves a slash separated path relative to from.
func (t *Tree) lookup(from ID, path string) (ID, error) {
	cur := from
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			if t.nodes[cur].parent == noID {
				return noID, ErrNotFound
			}
			cur = t.nodes[cur].parent
			continue
		}
		next, ok := t.nodes[cur].index[part]
		if !ok {
			return noID, ErrNotFound
		}
		cur = next
	}
	return cur, nil
}

// contains reports whether id is anc or one of its descendants.
func (t *Tree) contains(anc, id ID) bool {
	for cur := id; cur != noID; cur = t.nodes[cur].parent {
		if cur == anc {
			return true
		}
	}
	return false
}

func (t *Tree) depth(id ID) int {
	d := 0
	for cur := t.nodes[id].parent; cur != noID; cur = t.nodes[cur].parent {
		d++
	}
	return d
}

func (t *Tree) preorder(root ID) []ID {
	var order []ID
	var visit func(id ID)
	visit = func(id ID) {
		order = append(order, id)
		for _, ch := range t.nodes[id].children {
			visit(ch)
		}
	}
	visit(root)
	return order
}

// rebinder maps IDs of a subtree being copied from src into dst.
type rebinder struct {
	src, dst *Tree
	ids      map[ID]ID
}

// id maps old to its copy. References that leave the copied subtree stay
// valid only when copying within the same tree.
func (r *rebinder) id(old ID) (ID, error) {
	if n, ok := r.ids[old]; ok {
		return n, nil
	}
	if r.src == r.dst {
		return old, nil
	}
	return noID, ErrForeignPlacement
}

// copySubtree deep-copies the subtree of src rooted at root into dst under
// parent, renaming its root to name. Nothing is added to dst on error.
// A parent of noID makes the copy the root of an empty dst.
func copySubtree(dst *Tree, parent ID, name string, src *Tree, root ID) (ID, error) {
	if err := checkName(name); err != nil {
		return noID, err
	}
	if parent != noID {
		if _, exists := dst.nodes[parent].index[name]; exists {
			return noID, ErrDuplicateName
		}
	}

	order := src.preorder(root)
	base := ID(len(dst.nodes))
	r := &rebinder{src: src, dst: dst, ids: make(map[ID]ID, len(order))}
	for i, old := range order {
		r.ids[old] = base + ID(i)
	}

	fresh := make([]node, 0, len(order))
	for _, old := range order {
		n := src.nodes[old]
		c := node{
			name:  n.name,
			index: make(map[string]ID, len(n.children)),
		}
		if old == root {
			c.name = name
			c.parent = parent
		} else {
			c.parent = r.ids[n.parent]
		}
		for _, ch := range n.children {
			nid := r.ids[ch]
			c.children = append(c.children, nid)
			c.index[src.nodes[ch].name] = nid
		}
		if n.place != nil {
			p, err := r.placement(n.place)
			if err != nil {
				return noID, &FeatureError{Op: "copy", Path: src.path(old), Err: err}
			}
			c.place = p
		}
		d, err := n.data.copyWith(r)
		if err != nil {
			return noID, &FeatureError{Op: "copy", Path: src.path(old), Err: err}
		}
		c.data = d
		fresh = append(fresh, c)
	}

	dst.nodes = append(dst.nodes, fresh...)
	if parent != noID {
		dst.link(parent, base)
	}
	return base, nil
}

func cloneTree(src *Tree, root ID) (*Tree, error) {
	dst := &Tree{}
	if _, err := copySubtree(dst, noID, src.nodes[root].name, src, root); err != nil {
		return nil, err
	}
	return dst, nil
}
