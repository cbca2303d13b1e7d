package math

import "math"

// Vec4 is a homogeneous 4-component vector.
//
// W=1 marks a position and W=0 a direction. Nothing enforces this; callers
// track which one they hold. Rotation keeps W as is.
type Vec4 struct {
	X, Y, Z, W float32
}

// Point returns a position vector (W=1).
func Point(x, y, z float32) Vec4 {
	return Vec4{x, y, z, 1}
}

// Direction returns a direction vector (W=0).
func Direction(x, y, z float32) Vec4 {
	return Vec4{x, y, z, 0}
}

// Add returns v + other, component-wise.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub returns v - other, component-wise.
func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// Mul returns v * other, component-wise.
func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{v.X * other.X, v.Y * other.Y, v.Z * other.Z, v.W * other.W}
}

// Div returns v / other, component-wise.
func (v Vec4) Div(other Vec4) Vec4 {
	return Vec4{v.X / other.X, v.Y / other.Y, v.Z / other.Z, v.W / other.W}
}

// AddScalar adds s to every component.
func (v Vec4) AddScalar(s float32) Vec4 {
	return Vec4{v.X + s, v.Y + s, v.Z + s, v.W + s}
}

// SubScalar subtracts s from every component.
func (v Vec4) SubScalar(s float32) Vec4 {
	return Vec4{v.X - s, v.Y - s, v.Z - s, v.W - s}
}

// Scale multiplies every component by s.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// DivScalar divides every component by s.
func (v Vec4) DivScalar(s float32) Vec4 {
	return Vec4{v.X / s, v.Y / s, v.Z / s, v.W / s}
}

// Negate returns -v.
func (v Vec4) Negate() Vec4 {
	return Vec4{-v.X, -v.Y, -v.Z, -v.W}
}

// Dot returns the dot product of the xyz parts. W is ignored.
func (v Vec4) Dot(other Vec4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of the xyz parts.
// The result carries the receiver's W.
func (v Vec4) Cross(other Vec4) Vec4 {
	return Vec4{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
		v.W,
	}
}

// MagnitudeSq returns the squared length of the xyz part.
func (v Vec4) MagnitudeSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Magnitude returns the length of the xyz part.
func (v Vec4) Magnitude() float32 {
	return float32(math.Sqrt(float64(v.MagnitudeSq())))
}

// Normal returns v with its xyz part scaled to unit length.
// A zero vector is returned unchanged.
func (v Vec4) Normal() Vec4 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return Vec4{v.X / m, v.Y / m, v.Z / m, v.W}
}

// IsZero reports whether x, y and z are all zero. W is not checked.
func (v Vec4) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Lerp returns (1-t)*v + t*other, W included.
// t=0 yields v and t=1 yields other exactly.
func (v Vec4) Lerp(other Vec4, t float32) Vec4 {
	s := 1 - t
	return Vec4{
		s*v.X + t*other.X,
		s*v.Y + t*other.Y,
		s*v.Z + t*other.Z,
		s*v.W + t*other.W,
	}
}

// Rotate returns v rotated by q, computed as q * [v,0] * q⁻¹.
// W is preserved. q is assumed to be unit length; a non-unit q also
// scales the result by |q|².
func (v Vec4) Rotate(q Quat) Vec4 {
	p := Quat{X: v.X, Y: v.Y, Z: v.Z, W: 0}
	r := q.Mul(p).Mul(q.Inverse())
	return Vec4{r.X, r.Y, r.Z, v.W}
}

// Transform returns m * v.
func (v Vec4) Transform(m Mat4) Vec4 {
	return m.MulVec4(v)
}

// XYZ drops the homogeneous component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
