package modeling

import (
	"errors"
	"testing"

	"github.com/san-kum/mbsim/internal/spatial"
)

func mustPendulum(t *testing.T) (Multibody, RigidBody, RigidBody) {
	t.Helper()
	mb, err := NewMultibody("pendulum")
	if err != nil {
		t.Fatalf("NewMultibody: %v", err)
	}
	ground, err := mb.AddGroundBody()
	if err != nil {
		t.Fatalf("AddGroundBody: %v", err)
	}
	link, err := mb.AddRigidBody("link1")
	if err != nil {
		t.Fatalf("AddRigidBody: %v", err)
	}
	return mb, ground, link
}

func TestNewMultibody_Names(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"plain", "pendulum", nil},
		{"empty", "", ErrEmptyName},
		{"separator", "a/b", ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMultibody(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewMultibody(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestAddGroundBody_Singular(t *testing.T) {
	mb, err := NewMultibody("m")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mb.GroundFrame(); !errors.Is(err, ErrNoGround) {
		t.Errorf("GroundFrame before ground: got %v, want ErrNoGround", err)
	}

	g, err := mb.AddGroundBody()
	if err != nil {
		t.Fatalf("first AddGroundBody: %v", err)
	}
	if !g.IsGround() {
		t.Error("ground body should report IsGround")
	}
	if g.Name() != GroundName {
		t.Errorf("ground name = %q, want %q", g.Name(), GroundName)
	}

	if _, err := mb.AddGroundBody(); !errors.Is(err, ErrGroundExists) {
		t.Errorf("second AddGroundBody: got %v, want ErrGroundExists", err)
	}

	frame, err := mb.GroundFrame()
	if err != nil {
		t.Fatalf("GroundFrame: %v", err)
	}
	if !frame.Same(g) {
		t.Error("GroundFrame should return the ground body")
	}
}

func TestAddRigidBody_UniqueNames(t *testing.T) {
	mb, _, link := mustPendulum(t)

	other, err := mb.AddRigidBody("link2")
	if err != nil {
		t.Fatalf("AddRigidBody: %v", err)
	}
	if other.Same(link) {
		t.Error("distinct names should give distinct bodies")
	}

	if _, err := mb.AddRigidBody("link1"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate body: got %v, want ErrDuplicateName", err)
	}

	got, err := mb.Body("link2")
	if err != nil {
		t.Fatalf("Body(link2): %v", err)
	}
	if !got.Same(other) {
		t.Error("Body lookup returned the wrong body")
	}
	if len(mb.Bodies()) != 3 {
		t.Errorf("expected 3 bodies, got %d", len(mb.Bodies()))
	}
}

func TestDowncast(t *testing.T) {
	mb, ground, link := mustPendulum(t)
	deformable, err := NewDeformableBody("skin")
	if err != nil {
		t.Fatal(err)
	}
	soft, err := mb.AddBodyLike(deformable.Body, "skin")
	if err != nil {
		t.Fatal(err)
	}
	joint, err := mb.AddJointBetween(PinJoint, "hinge", Ref(ground), Ref(link))
	if err != nil {
		t.Fatal(err)
	}
	station, err := link.AddStation("tip", Vector(spatial.Vec3{0, -1, 0}))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		f          Feature
		body       bool
		rigid      bool
		deformable bool
		joint      bool
		multibody  bool
	}{
		{"rigid body", link, true, true, false, false, false},
		{"ground", ground, true, true, false, false, false},
		{"deformable body", soft, true, false, true, false, false},
		{"joint", joint, false, false, false, true, false},
		{"multibody", mb, false, false, false, false, true},
		{"station", station, false, false, false, false, false},
		{"zero view", Subsystem{}, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBody(tt.f); got != tt.body {
				t.Errorf("IsBody = %v, want %v", got, tt.body)
			}
			if got := IsRigidBody(tt.f); got != tt.rigid {
				t.Errorf("IsRigidBody = %v, want %v", got, tt.rigid)
			}
			if got := IsDeformableBody(tt.f); got != tt.deformable {
				t.Errorf("IsDeformableBody = %v, want %v", got, tt.deformable)
			}
			if got := IsJoint(tt.f); got != tt.joint {
				t.Errorf("IsJoint = %v, want %v", got, tt.joint)
			}
			if got := IsMultibody(tt.f); got != tt.multibody {
				t.Errorf("IsMultibody = %v, want %v", got, tt.multibody)
			}
		})
	}

	_, err = ToRigidBody(joint)
	if !errors.Is(err, ErrWrongKind) {
		t.Fatalf("ToRigidBody(joint) = %v, want ErrWrongKind", err)
	}
	var fe *FeatureError
	if !errors.As(err, &fe) || fe.Path != "pendulum/hinge" {
		t.Errorf("expected FeatureError for pendulum/hinge, got %v", err)
	}
}

func TestPlacementBody(t *testing.T) {
	mb, _, link := mustPendulum(t)
	tip, err := link.AddStation("tip", Vector(spatial.Vec3{0, -1, 0}))
	if err != nil {
		t.Fatal(err)
	}
	bob, _ := NewPointMass("bob", 1)
	me, err := link.AddMassElementLike(bob, "bob")
	if err != nil {
		t.Fatal(err)
	}
	loose, err := mb.AddStation("loose", Vector(spatial.Vec3{1, 0, 0}))
	if err != nil {
		t.Fatal(err)
	}
	unplaced, err := link.AddReal("spare", nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		f       Feature
		want    Feature
		wantErr error
	}{
		{"body itself", link, link, nil},
		{"station on body", tip, link, nil},
		{"nested in mass element", me.MassFeature(), link, nil},
		{"outside any body", loose, nil, ErrNoEnclosingBody},
		{"no placement", unplaced, nil, ErrUnplaced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlacementBody(tt.f)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("PlacementBody error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PlacementBody: %v", err)
			}
			if !got.Same(tt.want) {
				t.Errorf("PlacementBody = %s, want %s", got.Path(), tt.want.Base().Path())
			}
		})
	}
}

func TestAddJointBetween_Errors(t *testing.T) {
	mb, ground, link := mustPendulum(t)
	_, _, otherLink := mustPendulum(t)
	loose, _ := mb.AddStation("loose", Vector(spatial.Vec3{}))

	tests := []struct {
		name    string
		typ     JointType
		jname   string
		ref     Placement
		mov     Placement
		wantErr error
	}{
		{"constant placement", PinJoint, "j1", Vector(spatial.Vec3{}), Ref(link), ErrUnresolvedPlacement},
		{"other model", PinJoint, "j2", Ref(ground), Ref(otherLink), ErrForeignPlacement},
		{"not on a body", PinJoint, "j3", Ref(loose), Ref(link), ErrUnresolvedPlacement},
		{"self joint", PinJoint, "j4", Ref(link), Ref(link), ErrSelfJoint},
		{"ground type", ThisIsGround, "j5", Ref(ground), Ref(link), ErrInvalidJointType},
		{"unknown type", UnknownJointType, "j6", Ref(ground), Ref(link), ErrInvalidJointType},
		{"nil placement", PinJoint, "j7", nil, Ref(link), ErrUnresolvedPlacement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mb.AddJointBetween(tt.typ, tt.jname, tt.ref, tt.mov)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddJointBetween error = %v, want %v", err, tt.wantErr)
			}
			if _, err := mb.Child(tt.jname); err == nil {
				t.Error("failed AddJointBetween must not leave a joint behind")
			}
		})
	}

	if _, err := mb.AddJointBetween(PinJoint, "hinge", Ref(ground), Ref(link)); err != nil {
		t.Fatalf("AddJointBetween: %v", err)
	}
	if _, err := mb.AddJointBetween(SlidingJoint, "hinge", Ref(ground), Ref(link)); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate joint: got %v, want ErrDuplicateName", err)
	}
}

func TestJointConnect(t *testing.T) {
	mb, ground, link := mustPendulum(t)
	pivot, err := link.AddStation("pivot", Vector(spatial.Vec3{}))
	if err != nil {
		t.Fatal(err)
	}

	j, err := mb.AddJoint(BallJoint, "shoulder")
	if err != nil {
		t.Fatalf("AddJoint: %v", err)
	}
	if j.Connected() {
		t.Fatal("new joint should be unconnected")
	}
	if _, err := j.ReferenceBody(); !errors.Is(err, ErrUnresolvedPlacement) {
		t.Errorf("ReferenceBody before connect: got %v", err)
	}

	if err := j.Connect(Ref(ground), Ref(pivot)); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	rb, err := j.ReferenceBody()
	if err != nil || !rb.Same(ground) {
		t.Errorf("ReferenceBody = %v, %v; want ground", rb, err)
	}
	mvb, err := j.MovingBody()
	if err != nil || !mvb.Same(link) {
		t.Errorf("MovingBody = %v, %v; want link1", mvb, err)
	}
	if j.Type() != OrientationJoint {
		t.Errorf("Type = %s, want orientation", j.Type())
	}

	if err := j.Connect(Ref(ground), Ref(link)); !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("second Connect: got %v, want ErrAlreadyConnected", err)
	}

	standalone, err := NewJoint(PinJoint, "loose")
	if err != nil {
		t.Fatal(err)
	}
	if err := standalone.Connect(Ref(ground), Ref(link)); !errors.Is(err, ErrUnresolvedPlacement) {
		t.Errorf("standalone Connect: got %v, want ErrUnresolvedPlacement", err)
	}
	if _, err := NewJoint(ThisIsGround, "g"); !errors.Is(err, ErrInvalidJointType) {
		t.Errorf("NewJoint(ThisIsGround): got %v", err)
	}
}

func TestMultibodyClone_Independent(t *testing.T) {
	mb, ground, link := mustPendulum(t)
	if _, err := mb.AddJointBetween(PinJoint, "hinge", Ref(ground), Ref(link)); err != nil {
		t.Fatal(err)
	}

	cp, err := mb.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if _, err := cp.AddRigidBody("link2"); err != nil {
		t.Fatal(err)
	}
	if len(mb.Bodies()) != 2 || len(cp.Bodies()) != 3 {
		t.Errorf("bodies: original %d, copy %d; want 2 and 3", len(mb.Bodies()), len(cp.Bodies()))
	}

	g, err := cp.GroundFrame()
	if err != nil {
		t.Fatalf("copy GroundFrame: %v", err)
	}
	if g.Same(ground) {
		t.Error("copy ground must be a new node")
	}

	j, err := cp.Joint("hinge")
	if err != nil {
		t.Fatal(err)
	}
	mvb, err := j.MovingBody()
	if err != nil {
		t.Fatalf("copy joint MovingBody: %v", err)
	}
	copyLink, _ := cp.Body("link1")
	if !mvb.Same(copyLink) {
		t.Error("copied joint should point into the copy")
	}
}

func TestMobilities(t *testing.T) {
	mb, ground, link := mustPendulum(t)
	link2, _ := mb.AddRigidBody("link2")
	mb.AddJointBetween(PinJoint, "j1", Ref(ground), Ref(link))
	mb.AddJointBetween(FreeJoint, "j2", Ref(link), Ref(link2))

	if got := mb.Mobilities(); got != 7 {
		t.Errorf("Mobilities = %d, want 7", got)
	}
}
