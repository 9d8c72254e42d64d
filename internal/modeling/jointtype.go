package modeling

import (
	"fmt"
	"strings"
)

// JointType names the relative motion a joint permits between its
// reference and moving placements.
type JointType int

const (
	UnknownJointType JointType = 0
	ThisIsGround     JointType = 1 // ground's inboard joint
	WeldJoint        JointType = 2
	TorsionJoint     JointType = 3
	PinJoint                   = TorsionJoint
	SlidingJoint     JointType = 4
	UJoint           JointType = 5
	CylinderJoint    JointType = 6
	PlanarJoint      JointType = 7
	GimbalJoint      JointType = 8
	OrientationJoint JointType = 9
	BallJoint                  = OrientationJoint
	CartesianJoint   JointType = 10
	FreeLineJoint    JointType = 11
	FreeJoint        JointType = 12
)

var jointTypeNames = map[JointType]string{
	UnknownJointType: "unknown",
	ThisIsGround:     "ground",
	WeldJoint:        "weld",
	TorsionJoint:     "torsion",
	SlidingJoint:     "sliding",
	UJoint:           "ujoint",
	CylinderJoint:    "cylinder",
	PlanarJoint:      "planar",
	GimbalJoint:      "gimbal",
	OrientationJoint: "orientation",
	CartesianJoint:   "cartesian",
	FreeLineJoint:    "freeline",
	FreeJoint:        "free",
}

var jointTypeAliases = map[string]JointType{
	"pin":       PinJoint,
	"revolute":  PinJoint,
	"ball":      BallJoint,
	"universal": UJoint,
	"slider":    SlidingJoint,
	"prismatic": SlidingJoint,
}

var jointDOF = map[JointType]int{
	WeldJoint:        0,
	TorsionJoint:     1,
	SlidingJoint:     1,
	UJoint:           2,
	CylinderJoint:    2,
	PlanarJoint:      3,
	GimbalJoint:      3,
	OrientationJoint: 3,
	CartesianJoint:   3,
	FreeLineJoint:    5,
	FreeJoint:        6,
}

func (j JointType) String() string {
	if name, ok := jointTypeNames[j]; ok {
		return name
	}
	return fmt.Sprintf("JointType(%d)", int(j))
}

// DOF is the number of mobilities the joint grants the moving body.
// Ground and unknown joints grant none.
func (j JointType) DOF() int {
	return jointDOF[j]
}

// Connectable reports whether a joint of this type may link two bodies.
func (j JointType) Connectable() bool {
	_, ok := jointDOF[j]
	return ok
}

// ParseJointType accepts canonical names and common aliases of connectable
// joint types, case-insensitively. "ground" and "unknown" are rejected.
func ParseJointType(s string) (JointType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if j, ok := jointTypeAliases[key]; ok {
		return j, nil
	}
	for j, name := range jointTypeNames {
		if name == key && j.Connectable() {
			return j, nil
		}
	}
	return UnknownJointType, fmt.Errorf("%w: %q", ErrInvalidJointType, s)
}
