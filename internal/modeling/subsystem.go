package modeling

// Feature is satisfied by every view into a model tree.
type Feature interface {
	Base() Subsystem
}

// Subsystem is a non-owning view of one node of a model tree. The zero
// value refers to nothing.
type Subsystem struct {
	tree *Tree
	id   ID
}

func (s Subsystem) Base() Subsystem { return s }

func (s Subsystem) Valid() bool { return s.tree != nil }

func (s Subsystem) Name() string { return s.tree.nodes[s.id].name }

// Path is the slash separated name chain from the model root.
func (s Subsystem) Path() string { return s.tree.path(s.id) }

func (s Subsystem) Kind() Kind { return s.tree.kind(s.id) }

// Same reports whether s and f view the same node of the same tree.
func (s Subsystem) Same(f Feature) bool {
	o := f.Base()
	return s.tree == o.tree && s.id == o.id
}

func (s Subsystem) Parent() (Subsystem, bool) {
	p := s.tree.nodes[s.id].parent
	if p == noID {
		return Subsystem{}, false
	}
	return Subsystem{tree: s.tree, id: p}, true
}

// Root returns the top of the tree s belongs to.
func (s Subsystem) Root() Subsystem {
	return Subsystem{tree: s.tree, id: 0}
}

func (s Subsystem) Children() []Subsystem {
	kids := s.tree.nodes[s.id].children
	out := make([]Subsystem, len(kids))
	for i, id := range kids {
		out[i] = Subsystem{tree: s.tree, id: id}
	}
	return out
}

func (s Subsystem) Child(name string) (Subsystem, error) {
	id, ok := s.tree.nodes[s.id].index[name]
	if !ok {
		return Subsystem{}, featureErr("child "+name, s, ErrNotFound)
	}
	return Subsystem{tree: s.tree, id: id}, nil
}

// Lookup resolves a path relative to s. A leading "/" does not change the
// starting point; ".." steps to the parent.
func (s Subsystem) Lookup(path string) (Subsystem, error) {
	id, err := s.tree.lookup(s.id, path)
	if err != nil {
		return Subsystem{}, featureErr("lookup "+path, s, err)
	}
	return Subsystem{tree: s.tree, id: id}, nil
}

// Placement returns the feature's placement, or nil when unplaced.
func (s Subsystem) Placement() Placement {
	return s.tree.nodes[s.id].place
}

func (s Subsystem) SetPlacement(p Placement) error {
	if err := s.tree.setPlacement(s.id, p); err != nil {
		return featureErr("place", s, err)
	}
	return nil
}

// Value evaluates the feature's placement.
func (s Subsystem) Value() (Value, error) {
	if s.tree.nodes[s.id].place == nil {
		return Value{}, featureErr("evaluate", s, ErrUnplaced)
	}
	return s.tree.evaluate(featureRef{tree: s.tree, id: s.id}, map[ID]bool{})
}

// Derived reports whether the feature is a measure computed by the model.
func (s Subsystem) Derived() bool {
	fd, ok := s.tree.nodes[s.id].data.(*featureData)
	return ok && fd.derived
}

func (s Subsystem) addFeature(k Kind, name string, p Placement) (Subsystem, error) {
	if p != nil {
		want := valueKindFor(k)
		got, err := s.tree.kindOf(p)
		if err != nil {
			return Subsystem{}, featureErr("add "+name, s, err)
		}
		if got != want {
			return Subsystem{}, featureErr("add "+name, s, ErrPlacementKind)
		}
	}
	id, err := s.tree.add(s.id, name, &featureData{k: k}, p)
	if err != nil {
		return Subsystem{}, featureErr("add "+name, s, err)
	}
	return Subsystem{tree: s.tree, id: id}, nil
}

// AddSubsystem adds an empty grouping node.
func (s Subsystem) AddSubsystem(name string) (Subsystem, error) {
	id, err := s.tree.add(s.id, name, &featureData{k: KindSubsystem}, nil)
	if err != nil {
		return Subsystem{}, featureErr("add "+name, s, err)
	}
	return Subsystem{tree: s.tree, id: id}, nil
}

// AddReal adds a scalar parameter. p may be nil to leave it unplaced.
func (s Subsystem) AddReal(name string, p Placement) (Subsystem, error) {
	return s.addFeature(KindReal, name, p)
}

func (s Subsystem) AddStation(name string, p Placement) (Subsystem, error) {
	return s.addFeature(KindStation, name, p)
}

func (s Subsystem) AddDirection(name string, p Placement) (Subsystem, error) {
	return s.addFeature(KindDirection, name, p)
}

func (s Subsystem) AddOrientation(name string, p Placement) (Subsystem, error) {
	return s.addFeature(KindOrientation, name, p)
}

func (s Subsystem) AddFrame(name string, p Placement) (Subsystem, error) {
	return s.addFeature(KindFrame, name, p)
}

// as converts f to a typed view when its kind is accepted by match.
func as[T any](f Feature, match func(Kind) bool, wrap func(Subsystem) T) (T, bool) {
	s := f.Base()
	if s.tree == nil || !match(s.Kind()) {
		var zero T
		return zero, false
	}
	return wrap(s), true
}

func to[T any](f Feature, match func(Kind) bool, wrap func(Subsystem) T, want string) (T, error) {
	v, ok := as(f, match, wrap)
	if !ok {
		s := f.Base()
		if s.tree == nil {
			return v, ErrWrongKind
		}
		return v, &FeatureError{Op: "as " + want, Path: s.Path(), Err: ErrWrongKind}
	}
	return v, nil
}

func kindIs(k Kind) func(Kind) bool {
	return func(got Kind) bool { return got == k }
}
