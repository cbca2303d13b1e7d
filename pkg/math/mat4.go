package math

import "math"

// Mat4 is a 4x4 matrix in row-major order, applied to column vectors.
// Layout: [m0  m1  m2  m3 ]
//
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
//
// Translation lives in m3, m7 and m11.
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[r*4+c]
}

// Add returns m + other.
func (m Mat4) Add(other Mat4) Mat4 {
	var result Mat4
	for i := range m {
		result[i] = m[i] + other[i]
	}
	return result
}

// Sub returns m - other.
func (m Mat4) Sub(other Mat4) Mat4 {
	var result Mat4
	for i := range m {
		result[i] = m[i] - other[i]
	}
	return result
}

// MulScalar returns m with every element multiplied by s.
func (m Mat4) MulScalar(s float32) Mat4 {
	var result Mat4
	for i := range m {
		result[i] = m[i] * s
	}
	return result
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row*4+col] =
				m[row*4+0]*other[0*4+col] +
					m[row*4+1]*other[1*4+col] +
					m[row*4+2]*other[2*4+col] +
					m[row*4+3]*other[3*4+col]
		}
	}
	return result
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[col*4+row] = m[row*4+col]
		}
	}
	return result
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	r := m.MulVec4(p.Point())
	if r.W != 0 && r.W != 1 {
		return Vec3{r.X / r.W, r.Y / r.W, r.Z / r.W}
	}
	return r.XYZ()
}

// adjugate returns the transposed cofactor matrix. The expansion is the
// same for either storage order because inversion commutes with transpose.
func (m Mat4) adjugate() Mat4 {
	var a Mat4
	a[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	a[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	a[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	a[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]

	a[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	a[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	a[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	a[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]

	a[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	a[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	a[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	a[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]

	a[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	a[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	a[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	a[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]
	return a
}

// Determinant returns the determinant by cofactor expansion.
func (m Mat4) Determinant() float32 {
	a := m.adjugate()
	return m[0]*a[0] + m[4]*a[1] + m[8]*a[2] + m[12]*a[3]
}

// Inverse returns the inverse of the matrix.
// Returns identity if the matrix is singular.
func (m Mat4) Inverse() Mat4 {
	a := m.adjugate()
	det := m[0]*a[0] + m[4]*a[1] + m[8]*a[2] + m[12]*a[3]
	if det == 0 {
		return Identity()
	}
	return a.MulScalar(1 / det)
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// RotationQuat extracts the rotation of the upper 3x3 block.
// The block is assumed to be a pure rotation.
func (m Mat4) RotationQuat() Quat {
	m00, m01, m02 := m[0], m[1], m[2]
	m10, m11, m12 := m[4], m[5], m[6]
	m20, m21, m22 := m[8], m[9], m[10]

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := sqrtf(trace+1) * 2
		return Quat{X: (m21 - m12) / s, Y: (m02 - m20) / s, Z: (m10 - m01) / s, W: 0.25 * s}
	case m00 > m11 && m00 > m22:
		s := sqrtf(1+m00-m11-m22) * 2
		return Quat{X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s, W: (m21 - m12) / s}
	case m11 > m22:
		s := sqrtf(1+m11-m00-m22) * 2
		return Quat{X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s, W: (m02 - m20) / s}
	default:
		s := sqrtf(1+m22-m00-m11) * 2
		return Quat{X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s, W: (m10 - m01) / s}
	}
}

// RotationEuler extracts Euler angles in degrees matching QuatFromEuler's
// Z*Y*X order. At gimbal lock the Z angle is reported as 0.
func (m Mat4) RotationEuler() (x, y, z float32) {
	r20 := float64(m[8])
	if r20 > 1 {
		r20 = 1
	} else if r20 < -1 {
		r20 = -1
	}
	y = Degrees(float32(math.Asin(-r20)))
	if math.Abs(r20) < 0.99999 {
		x = Degrees(float32(math.Atan2(float64(m[9]), float64(m[10]))))
		z = Degrees(float32(math.Atan2(float64(m[4]), float64(m[0]))))
		return x, y, z
	}
	x = Degrees(float32(math.Atan2(float64(-m[6]), float64(m[5]))))
	return x, y, 0
}

// SetRotation left-multiplies the rotation of q into m (m = R * m).
// It does not overwrite; call it on a matrix in a known state, usually
// after scale and before translation.
func (m *Mat4) SetRotation(q Quat) {
	*m = q.ToMat4().Mul(*m)
}

// SetRotationAxisAngle is SetRotation for an axis and an angle in degrees.
func (m *Mat4) SetRotationAxisAngle(axis Vec3, degrees float32) {
	m.SetRotation(QuatFromAxisAngle(axis, degrees))
}

// SetRotationEuler is SetRotation for Euler angles in degrees.
func (m *Mat4) SetRotationEuler(x, y, z float32) {
	m.SetRotation(QuatFromEuler(x, y, z))
}

// SetScale overwrites the three spatial diagonal entries.
func (m *Mat4) SetScale(s Vec3) {
	m[0], m[5], m[10] = s.X, s.Y, s.Z
}

// AddScale adds s onto the three spatial diagonal entries.
func (m *Mat4) AddScale(s float32) {
	m[0] += s
	m[5] += s
	m[10] += s
}

// SetTranslation overwrites the translation column.
func (m *Mat4) SetTranslation(t Vec3) {
	m[3], m[7], m[11] = t.X, t.Y, t.Z
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
