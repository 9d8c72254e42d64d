package modeling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/mbsim/internal/spatial"
)

// Placement gives a feature its value: a constant, a reference to another
// feature of the same model, or an expression over other placements.
type Placement interface {
	String() string
	placement()
}

type realPlacement float64
type vecPlacement spatial.Vec3
type rotPlacement spatial.Rotation
type framePlacement spatial.Transform

type featureRef struct {
	tree *Tree
	id   ID
}

type op int

const (
	opAdd op = iota
	opSub
	opScale
	opDiv
	opNeg
	opSum
	opCentroid
)

type expr struct {
	op   op
	args []Placement
}

func (realPlacement) placement()  {}
func (vecPlacement) placement()   {}
func (rotPlacement) placement()   {}
func (framePlacement) placement() {}
func (featureRef) placement()     {}
func (expr) placement()           {}

func Real(v float64) Placement                { return realPlacement(v) }
func Vector(v spatial.Vec3) Placement         { return vecPlacement(v) }
func Orient(r spatial.Rotation) Placement     { return rotPlacement(r) }
func FrameAt(tr spatial.Transform) Placement  { return framePlacement(tr) }
func Add(a, b Placement) Placement            { return expr{op: opAdd, args: []Placement{a, b}} }
func Sub(a, b Placement) Placement            { return expr{op: opSub, args: []Placement{a, b}} }
func Scale(a, b Placement) Placement          { return expr{op: opScale, args: []Placement{a, b}} }
func Div(a, b Placement) Placement            { return expr{op: opDiv, args: []Placement{a, b}} }
func Neg(a Placement) Placement               { return expr{op: opNeg, args: []Placement{a}} }
func Sum(ps ...Placement) Placement           { return expr{op: opSum, args: ps} }
func centroidOf(pairs ...Placement) Placement { return expr{op: opCentroid, args: pairs} }

// Ref places a feature at the value of f.
func Ref(f Feature) Placement {
	s := f.Base()
	return featureRef{tree: s.tree, id: s.id}
}

func (p realPlacement) String() string  { return strconv.FormatFloat(float64(p), 'g', -1, 64) }
func (p vecPlacement) String() string   { return spatial.Vec3(p).String() }
func (p rotPlacement) String() string   { return spatial.Rotation(p).String() }
func (p framePlacement) String() string { return spatial.Transform(p).String() }
func (p featureRef) String() string     { return "@" + p.tree.path(p.id) }

func (e expr) String() string {
	args := make([]string, len(e.args))
	for i, a := range e.args {
		args[i] = a.String()
	}
	switch e.op {
	case opAdd:
		return "(" + strings.Join(args, " + ") + ")"
	case opSub:
		return "(" + strings.Join(args, " - ") + ")"
	case opScale:
		return "(" + strings.Join(args, " * ") + ")"
	case opDiv:
		return "(" + strings.Join(args, " / ") + ")"
	case opNeg:
		return "-" + args[0]
	case opSum:
		return "sum(" + strings.Join(args, ", ") + ")"
	case opCentroid:
		return "centroid(" + strings.Join(args, ", ") + ")"
	}
	return "?"
}

// ValueKind classifies evaluated placements.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueReal
	ValueVec3
	ValueRotation
	ValueFrame
)

func (k ValueKind) String() string {
	switch k {
	case ValueReal:
		return "real"
	case ValueVec3:
		return "vec3"
	case ValueRotation:
		return "rotation"
	case ValueFrame:
		return "frame"
	default:
		return "none"
	}
}

// Value is an evaluated placement. Only the field selected by Kind is meaningful.
type Value struct {
	Kind     ValueKind
	Real     float64
	Vec      spatial.Vec3
	Rotation spatial.Rotation
	Frame    spatial.Transform
}

func (v Value) String() string {
	switch v.Kind {
	case ValueReal:
		return strconv.FormatFloat(v.Real, 'g', 6, 64)
	case ValueVec3:
		return v.Vec.String()
	case ValueRotation:
		return v.Rotation.String()
	case ValueFrame:
		return v.Frame.String()
	default:
		return "<none>"
	}
}

// valueKindFor is the kind of value a feature of kind k holds.
func valueKindFor(k Kind) ValueKind {
	switch k {
	case KindReal:
		return ValueReal
	case KindStation, KindDirection, KindMassElement:
		return ValueVec3
	case KindOrientation:
		return ValueRotation
	case KindFrame, KindRigidBody, KindDeformableBody:
		return ValueFrame
	default:
		return ValueNone
	}
}

// kindOf infers the value kind of p without evaluating it.
func (t *Tree) kindOf(p Placement) (ValueKind, error) {
	switch p := p.(type) {
	case realPlacement:
		return ValueReal, nil
	case vecPlacement:
		return ValueVec3, nil
	case rotPlacement:
		return ValueRotation, nil
	case framePlacement:
		return ValueFrame, nil
	case featureRef:
		if p.tree != t {
			return ValueNone, ErrForeignPlacement
		}
		vk := valueKindFor(t.kind(p.id))
		if vk == ValueNone {
			return ValueNone, fmt.Errorf("%w: %s has no value", ErrPlacementKind, t.path(p.id))
		}
		return vk, nil
	case expr:
		kinds := make([]ValueKind, len(p.args))
		for i, a := range p.args {
			k, err := t.kindOf(a)
			if err != nil {
				return ValueNone, err
			}
			kinds[i] = k
		}
		return combineKinds(p.op, kinds)
	case nil:
		return ValueNone, ErrUnplaced
	}
	return ValueNone, ErrBadExpression
}

func combineKinds(o op, kinds []ValueKind) (ValueKind, error) {
	arith := func(k ValueKind) bool { return k == ValueReal || k == ValueVec3 }
	switch o {
	case opAdd, opSub, opSum:
		if len(kinds) == 0 || !arith(kinds[0]) {
			return ValueNone, ErrBadExpression
		}
		for _, k := range kinds[1:] {
			if k != kinds[0] {
				return ValueNone, ErrBadExpression
			}
		}
		return kinds[0], nil
	case opScale:
		if len(kinds) == 2 {
			switch {
			case kinds[0] == ValueReal && arith(kinds[1]):
				return kinds[1], nil
			case kinds[0] == ValueVec3 && kinds[1] == ValueReal:
				return ValueVec3, nil
			}
		}
	case opDiv:
		if len(kinds) == 2 && arith(kinds[0]) && kinds[1] == ValueReal {
			return kinds[0], nil
		}
	case opNeg:
		if len(kinds) == 1 && arith(kinds[0]) {
			return kinds[0], nil
		}
	case opCentroid:
		if len(kinds) == 0 || len(kinds)%2 != 0 {
			return ValueNone, ErrBadExpression
		}
		for i := 0; i < len(kinds); i += 2 {
			if kinds[i] != ValueReal || kinds[i+1] != ValueVec3 {
				return ValueNone, ErrBadExpression
			}
		}
		return ValueVec3, nil
	}
	return ValueNone, ErrBadExpression
}

func (t *Tree) evaluate(p Placement, visiting map[ID]bool) (Value, error) {
	switch p := p.(type) {
	case realPlacement:
		return Value{Kind: ValueReal, Real: float64(p)}, nil
	case vecPlacement:
		return Value{Kind: ValueVec3, Vec: spatial.Vec3(p)}, nil
	case rotPlacement:
		return Value{Kind: ValueRotation, Rotation: spatial.Rotation(p)}, nil
	case framePlacement:
		return Value{Kind: ValueFrame, Frame: spatial.Transform(p)}, nil
	case featureRef:
		if p.tree != t {
			return Value{}, ErrForeignPlacement
		}
		if visiting[p.id] {
			return Value{}, &FeatureError{Op: "evaluate", Path: t.path(p.id), Err: ErrPlacementCycle}
		}
		n := t.nodes[p.id]
		if n.place == nil {
			return Value{}, &FeatureError{Op: "evaluate", Path: t.path(p.id), Err: ErrUnplaced}
		}
		visiting[p.id] = true
		defer delete(visiting, p.id)
		return t.evaluate(n.place, visiting)
	case expr:
		vals := make([]Value, len(p.args))
		for i, a := range p.args {
			v, err := t.evaluate(a, visiting)
			if err != nil {
				return Value{}, err
			}
			vals[i] = v
		}
		return applyOp(p.op, vals)
	case nil:
		return Value{}, ErrUnplaced
	}
	return Value{}, ErrBadExpression
}

func applyOp(o op, vals []Value) (Value, error) {
	kinds := make([]ValueKind, len(vals))
	for i, v := range vals {
		kinds[i] = v.Kind
	}
	k, err := combineKinds(o, kinds)
	if err != nil {
		return Value{}, err
	}

	out := Value{Kind: k}
	switch o {
	case opAdd, opSum:
		for _, v := range vals {
			out.Real += v.Real
			out.Vec = out.Vec.Add(v.Vec)
		}
	case opSub:
		out.Real = vals[0].Real - vals[1].Real
		out.Vec = vals[0].Vec.Sub(vals[1].Vec)
	case opNeg:
		out.Real = -vals[0].Real
		out.Vec = vals[0].Vec.Scale(-1)
	case opScale:
		if vals[0].Kind == ValueReal {
			out.Real = vals[0].Real * vals[1].Real
			out.Vec = vals[1].Vec.Scale(vals[0].Real)
		} else {
			out.Vec = vals[0].Vec.Scale(vals[1].Real)
		}
	case opDiv:
		if vals[1].Real == 0 {
			return Value{}, fmt.Errorf("%w: division by zero", ErrBadExpression)
		}
		out.Real = vals[0].Real / vals[1].Real
		out.Vec = vals[0].Vec.Scale(1 / vals[1].Real)
	case opCentroid:
		total := 0.0
		for i := 0; i < len(vals); i += 2 {
			total += vals[i].Real
			out.Vec = out.Vec.Add(vals[i+1].Vec.Scale(vals[i].Real))
		}
		if total == 0 {
			out.Vec = spatial.Vec3{}
		} else {
			out.Vec = out.Vec.Scale(1 / total)
		}
	}
	return out, nil
}

// dependsOn reports whether evaluating p would read the placement of id.
func (t *Tree) dependsOn(p Placement, id ID, seen map[ID]bool) bool {
	switch p := p.(type) {
	case featureRef:
		if p.tree != t {
			return false
		}
		if p.id == id {
			return true
		}
		if seen[p.id] {
			return false
		}
		seen[p.id] = true
		if n := t.nodes[p.id]; n.place != nil {
			return t.dependsOn(n.place, id, seen)
		}
	case expr:
		for _, a := range p.args {
			if t.dependsOn(a, id, seen) {
				return true
			}
		}
	}
	return false
}

// setPlacement checks p against the feature at id and installs it.
func (t *Tree) setPlacement(id ID, p Placement) error {
	if fd, ok := t.nodes[id].data.(*featureData); ok && fd.derived {
		return ErrReadOnly
	}
	want := valueKindFor(t.kind(id))
	if want == ValueNone {
		return fmt.Errorf("%w: %s features cannot be placed", ErrPlacementKind, t.kind(id))
	}
	got, err := t.kindOf(p)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: want %s, got %s", ErrPlacementKind, want, got)
	}
	if t.dependsOn(p, id, map[ID]bool{}) {
		return ErrPlacementCycle
	}
	if r, ok := p.(realPlacement); ok && t.isElementMass(id) && !validMass(float64(r)) {
		return ErrNegativeMass
	}
	t.nodes[id].place = p
	return nil
}

func (t *Tree) isElementMass(id ID) bool {
	n := t.nodes[id]
	return n.name == MassMeasureName && n.parent != noID && t.kind(n.parent) == KindMassElement
}

func (r *rebinder) placement(p Placement) (Placement, error) {
	switch p := p.(type) {
	case featureRef:
		if p.tree != r.src {
			return nil, ErrForeignPlacement
		}
		id, err := r.id(p.id)
		if err != nil {
			return nil, err
		}
		return featureRef{tree: r.dst, id: id}, nil
	case expr:
		args := make([]Placement, len(p.args))
		for i, a := range p.args {
			na, err := r.placement(a)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		return expr{op: p.op, args: args}, nil
	}
	return p, nil
}
