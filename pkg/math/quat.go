package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
//
// A Quat is a rotation only when it has unit length. Nothing here asserts
// that; Inverse uses the conjugate, so a non-unit value quietly produces a
// wrong rotation.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// The axis is normalized here, angle is in degrees.
func QuatFromAxisAngle(axis Vec3, degrees float32) Quat {
	half := float64(Radians(degrees)) / 2
	s := float32(math.Sin(half))
	a := axis.Normalize()
	return Quat{
		X: a.X * s,
		Y: a.Y * s,
		Z: a.Z * s,
		W: float32(math.Cos(half)),
	}
}

// QuatFromEuler creates a quaternion from Euler angles in degrees.
// The rotations are composed as rotZ * rotY * rotX, so X is applied first.
// Existing content depends on this order.
func QuatFromEuler(x, y, z float32) Quat {
	rx := QuatFromAxisAngle(Vec3{X: 1}, x)
	ry := QuatFromAxisAngle(Vec3{Y: 1}, y)
	rz := QuatFromAxisAngle(Vec3{Z: 1}, z)
	return rz.Mul(ry).Mul(rx)
}

// Magnitude returns the quaternion's length.
func (q Quat) Magnitude() float32 {
	return float32(math.Sqrt(float64(q.Dot(q))))
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := q.Magnitude()
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Conjugate negates the vector part.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Inverse returns the conjugate. This is the true inverse only for unit
// quaternions; q is never renormalized.
func (q Quat) Inverse() Quat {
	return q.Conjugate()
}

// AngleBetween returns acos(q·other) in degrees.
// A zero-length operand yields 0.
func (q Quat) AngleBetween(other Quat) float32 {
	if q.Dot(q) == 0 || other.Dot(other) == 0 {
		return 0
	}
	d := float64(q.Dot(other))
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return Degrees(float32(math.Acos(d)))
}

// Lerp blends the raw components as (1-t)*q + t*other.
//
// The result is not renormalized. This is the blend law of the animation
// engine; over wide blends the result shrinks below unit length, which
// Vec4.Rotate turns into a uniform scale. Use Slerp for a true rotation
// interpolation.
func (q Quat) Lerp(other Quat, t float32) Quat {
	s := 1 - t
	return Quat{
		X: s*q.X + t*other.X,
		Y: s*q.Y + t*other.Y,
		Z: s*q.Z + t*other.Z,
		W: s*q.W + t*other.W,
	}
}

// Slerp performs spherical linear interpolation between two quaternions.
// t should be in range [0, 1].
func (q Quat) Slerp(other Quat, t float32) Quat {
	dot := q.Dot(other)

	// Take the shorter path
	if dot < 0 {
		other = Quat{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		dot = -dot
	}

	// Nearly parallel: sin(theta0) would vanish
	if dot > 0.9995 {
		return q.Lerp(other, t).Normalize()
	}

	theta0 := float32(math.Acos(float64(dot)))
	theta := theta0 * t
	sinTheta := float32(math.Sin(float64(theta)))
	sinTheta0 := float32(math.Sin(float64(theta0)))

	s0 := float32(math.Cos(float64(theta))) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// Mul multiplies two quaternions (Hamilton product). The rotation of
// other is applied first.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// ToMat4 returns the rotation as a row-major 4x4 matrix.
// q is used as given, without normalizing.
func (q Quat) ToMat4() Mat4 {
	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy - zw), 2 * (xz + yw), 0,
		2 * (xy + zw), 1 - 2*(xx+zz), 2 * (yz - xw), 0,
		2 * (xz - yw), 2 * (yz + xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / math.Pi
}
