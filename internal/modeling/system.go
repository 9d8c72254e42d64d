package modeling

import (
	"io"
	"strings"
)

// MultibodySystem is the top-level container handed to output and export.
type MultibodySystem struct {
	Subsystem
}

func NewMultibodySystem(name string) (MultibodySystem, error) {
	t, err := newTree(name, &systemData{})
	if err != nil {
		return MultibodySystem{}, err
	}
	return MultibodySystem{Subsystem{tree: t, id: 0}}, nil
}

func IsMultibodySystem(f Feature) bool {
	_, ok := AsMultibodySystem(f)
	return ok
}

func AsMultibodySystem(f Feature) (MultibodySystem, bool) {
	return as(f, kindIs(KindMultibodySystem), func(s Subsystem) MultibodySystem { return MultibodySystem{s} })
}

func ToMultibodySystem(f Feature) (MultibodySystem, error) {
	return to(f, kindIs(KindMultibodySystem), func(s Subsystem) MultibodySystem { return MultibodySystem{s} }, "MultibodySystem")
}

func (s MultibodySystem) AddMultibody(name string) (Multibody, error) {
	id, err := s.tree.add(s.id, name, &multibodyData{ground: noID}, nil)
	if err != nil {
		return Multibody{}, featureErr("add "+name, s.Subsystem, err)
	}
	return Multibody{Subsystem{tree: s.tree, id: id}}, nil
}

// AddMultibodyLike adds a deep copy of proto under name.
func (s MultibodySystem) AddMultibodyLike(proto Multibody, name string) (Multibody, error) {
	if !proto.Valid() || proto.Kind() != KindMultibody {
		return Multibody{}, featureErr("add "+name, s.Subsystem, ErrWrongKind)
	}
	id, err := copySubtree(s.tree, s.id, name, proto.tree, proto.id)
	if err != nil {
		return Multibody{}, featureErr("add "+name, s.Subsystem, err)
	}
	return Multibody{Subsystem{tree: s.tree, id: id}}, nil
}

func (s MultibodySystem) Multibodies() []Multibody {
	var out []Multibody
	for _, ch := range s.Children() {
		if mb, ok := AsMultibody(ch); ok {
			out = append(out, mb)
		}
	}
	return out
}

func (s MultibodySystem) Clone() (MultibodySystem, error) {
	t, err := cloneTree(s.tree, s.id)
	if err != nil {
		return MultibodySystem{}, err
	}
	return MultibodySystem{Subsystem{tree: t, id: 0}}, nil
}

// String renders the whole system as an indented outline.
func (s MultibodySystem) String() string {
	var b strings.Builder
	_ = Render(&b, s)
	return b.String()
}

func (s MultibodySystem) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
