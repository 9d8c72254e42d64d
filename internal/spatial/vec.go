package spatial

import (
	"fmt"
	"math"
)

// Vec3 is a point or direction measured in some frame.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{v[0] * factor, v[1] * factor, v[2] * factor}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to length one. The zero vector is returned unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

func (v Vec3) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("[%g %g %g]", v[0], v[1], v[2])
}

// ParseVec3 converts a loosely typed coordinate list (as read from a model
// file) into a Vec3. A nil or empty slice is the origin.
func ParseVec3(vals []float64) (Vec3, error) {
	if len(vals) == 0 {
		return Vec3{}, nil
	}
	if len(vals) != 3 {
		return Vec3{}, fmt.Errorf("spatial: expected 3 coordinates, got %d", len(vals))
	}
	v := Vec3{vals[0], vals[1], vals[2]}
	if !v.IsValid() {
		return Vec3{}, fmt.Errorf("spatial: non-finite coordinate in %v", vals)
	}
	return v, nil
}
