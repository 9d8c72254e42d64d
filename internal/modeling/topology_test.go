package modeling

import (
	"errors"
	"strings"
	"testing"
)

func TestTopology(t *testing.T) {
	tests := []struct {
		name    string
		build   func(t *testing.T) Multibody
		order   []string
		wantErr string
	}{
		{
			name: "double pendulum",
			build: func(t *testing.T) Multibody {
				mb, g, l1 := mustPendulum(t)
				l2, _ := mb.AddRigidBody("link2")
				mb.AddJointBetween(PinJoint, "j2", Ref(l1), Ref(l2))
				mb.AddJointBetween(PinJoint, "j1", Ref(g), Ref(l1))
				return mb
			},
			order: []string{"Ground", "link1", "link2"},
		},
		{
			name: "branching",
			build: func(t *testing.T) Multibody {
				mb, g, l1 := mustPendulum(t)
				l2, _ := mb.AddRigidBody("link2")
				mb.AddJointBetween(PinJoint, "j1", Ref(g), Ref(l1))
				mb.AddJointBetween(SlidingJoint, "j2", Ref(g), Ref(l2))
				return mb
			},
			order: []string{"Ground", "link1", "link2"},
		},
		{
			name: "unconnected joint",
			build: func(t *testing.T) Multibody {
				mb, g, l1 := mustPendulum(t)
				mb.AddJointBetween(PinJoint, "j1", Ref(g), Ref(l1))
				mb.AddJoint(BallJoint, "loose")
				return mb
			},
			wantErr: `joint "loose" is not connected`,
		},
		{
			name: "moves ground",
			build: func(t *testing.T) Multibody {
				mb, g, l1 := mustPendulum(t)
				mb.AddJointBetween(PinJoint, "j1", Ref(l1), Ref(g))
				return mb
			},
			wantErr: `joint "j1" moves ground`,
		},
		{
			name: "two inboard joints",
			build: func(t *testing.T) Multibody {
				mb, g, l1 := mustPendulum(t)
				l2, _ := mb.AddRigidBody("link2")
				mb.AddJointBetween(PinJoint, "j1", Ref(g), Ref(l1))
				mb.AddJointBetween(PinJoint, "j2", Ref(g), Ref(l2))
				mb.AddJointBetween(PinJoint, "j3", Ref(l1), Ref(l2))
				return mb
			},
			wantErr: `body "link2" has two inboard joints`,
		},
		{
			name: "floating body",
			build: func(t *testing.T) Multibody {
				mb, _, _ := mustPendulum(t)
				return mb
			},
			wantErr: `body "link1" is not connected to ground`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, err := tt.build(t).Topology()
			if tt.wantErr != "" {
				if !errors.Is(err, ErrInvalidTopology) {
					t.Fatalf("Topology error = %v, want ErrInvalidTopology", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Topology error = %q, want it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Topology: %v", err)
			}
			var got []string
			for _, l := range links {
				got = append(got, l.Body.Name())
			}
			if strings.Join(got, ",") != strings.Join(tt.order, ",") {
				t.Errorf("order = %v, want %v", got, tt.order)
			}
			if links[0].Level != 0 || links[0].Inboard.Valid() {
				t.Error("ground link should be level 0 without an inboard joint")
			}
		})
	}
}

func TestTopology_NoGround(t *testing.T) {
	mb, _ := NewMultibody("m")
	if _, err := mb.Topology(); !errors.Is(err, ErrNoGround) {
		t.Errorf("Topology without ground: got %v, want ErrNoGround", err)
	}
}

func TestJointType(t *testing.T) {
	tests := []struct {
		in   string
		want JointType
		dof  int
	}{
		{"weld", WeldJoint, 0},
		{"pin", TorsionJoint, 1},
		{"Revolute", TorsionJoint, 1},
		{"torsion", PinJoint, 1},
		{"sliding", SlidingJoint, 1},
		{"prismatic", SlidingJoint, 1},
		{"ujoint", UJoint, 2},
		{"universal", UJoint, 2},
		{"cylinder", CylinderJoint, 2},
		{"planar", PlanarJoint, 3},
		{"gimbal", GimbalJoint, 3},
		{"ball", OrientationJoint, 3},
		{"orientation", BallJoint, 3},
		{"cartesian", CartesianJoint, 3},
		{"freeline", FreeLineJoint, 5},
		{" FREE ", FreeJoint, 6},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseJointType(tt.in)
			if err != nil {
				t.Fatalf("ParseJointType(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseJointType(%q) = %s, want %s", tt.in, got, tt.want)
			}
			if got.DOF() != tt.dof {
				t.Errorf("%s.DOF() = %d, want %d", got, got.DOF(), tt.dof)
			}
			if !got.Connectable() {
				t.Errorf("%s should be connectable", got)
			}
		})
	}

	for _, in := range []string{"hinge", "ground", "unknown", ""} {
		if _, err := ParseJointType(in); !errors.Is(err, ErrInvalidJointType) {
			t.Errorf("ParseJointType(%q): got %v, want ErrInvalidJointType", in, err)
		}
	}
	if ThisIsGround.Connectable() || UnknownJointType.Connectable() {
		t.Error("ground and unknown joints must not be connectable")
	}
	if int(TorsionJoint) != 3 || int(FreeJoint) != 12 {
		t.Error("joint type values changed")
	}
	if got := JointType(42).String(); got != "JointType(42)" {
		t.Errorf("String() = %q", got)
	}
}
