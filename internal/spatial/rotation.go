package spatial

import (
	"fmt"
	"math"
)

// Rotation is a 3x3 direction cosine matrix, row major.
type Rotation [3][3]float64

func Identity() Rotation {
	return Rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// AxisAngle builds the rotation of angle radians about axis (Rodrigues).
// A zero axis yields the identity.
func AxisAngle(axis Vec3, angle float64) Rotation {
	k := axis.Unit()
	if k.Norm() == 0 || angle == 0 {
		return Identity()
	}
	s, c := math.Sincos(angle)
	t := 1 - c
	x, y, z := k[0], k[1], k[2]
	return Rotation{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}
}

func (r Rotation) Mul(o Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += r[i][k] * o[k][j]
			}
		}
	}
	return out
}

func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		r[0][0]*v[0] + r[0][1]*v[1] + r[0][2]*v[2],
		r[1][0]*v[0] + r[1][1]*v[1] + r[1][2]*v[2],
		r[2][0]*v[0] + r[2][1]*v[1] + r[2][2]*v[2],
	}
}

func (r Rotation) Transpose() Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[j][i]
		}
	}
	return out
}

// IsOrthonormal reports whether r*r^T is within tol of the identity.
func (r Rotation) IsOrthonormal(tol float64) bool {
	p := r.Mul(r.Transpose())
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(p[i][j]-id[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func (r Rotation) String() string {
	return fmt.Sprintf("[%v %v %v]", Vec3(r[0]), Vec3(r[1]), Vec3(r[2]))
}

// Transform locates a frame: its origin and orientation in a parent frame.
type Transform struct {
	Origin   Vec3
	Rotation Rotation
}

func IdentityTransform() Transform {
	return Transform{Rotation: Identity()}
}

// Apply maps a station measured in this frame into the parent frame.
func (t Transform) Apply(v Vec3) Vec3 {
	return t.Rotation.Apply(v).Add(t.Origin)
}

// Compose returns the transform of a frame located by o inside t.
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		Origin:   t.Apply(o.Origin),
		Rotation: t.Rotation.Mul(o.Rotation),
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("{origin %v, rotation %v}", t.Origin, t.Rotation)
}
