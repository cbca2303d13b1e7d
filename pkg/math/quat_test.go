package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func nearQuat(a, b Quat) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) && near(a.W, b.W)
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around an unnormalized Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 5, Z: 0}, 90)

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if !near(q.W, expectedW) {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if !near(q.Y, expectedY) {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatMulMatchesMathgl(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{1, 2, 3}, 40)
	b := QuatFromAxisAngle(Vec3{-1, 0, 2}, 110)

	ga := mgl32.QuatRotate(mgl32.DegToRad(40), mgl32.Vec3{1, 2, 3}.Normalize())
	gb := mgl32.QuatRotate(mgl32.DegToRad(110), mgl32.Vec3{-1, 0, 2}.Normalize())
	ref := ga.Mul(gb)

	got := a.Mul(b)
	want := Quat{X: ref.V[0], Y: ref.V[1], Z: ref.V[2], W: ref.W}
	if !nearQuat(got, want) {
		t.Errorf("Mul() = %v, want %v", got, want)
	}
}

func TestQuatEulerOrderZYX(t *testing.T) {
	tests := []struct {
		x, y, z float32
		v       Vec3
	}{
		{30, 45, 60, Vec3{1, 2, 3}},
		{90, 0, 0, Vec3{0, 1, 0}},
		{0, 90, 90, Vec3{1, 0, 0}},
		{-120, 10, 200, Vec3{0.5, -1, 2}},
	}
	for _, tt := range tests {
		q := QuatFromEuler(tt.x, tt.y, tt.z)
		got := tt.v.Direction().Rotate(q)

		m := mgl32.Rotate3DZ(mgl32.DegToRad(tt.z)).
			Mul3(mgl32.Rotate3DY(mgl32.DegToRad(tt.y))).
			Mul3(mgl32.Rotate3DX(mgl32.DegToRad(tt.x)))
		ref := m.Mul3x1(mgl32.Vec3{tt.v.X, tt.v.Y, tt.v.Z})

		want := Direction(ref[0], ref[1], ref[2])
		if !nearVec4(got, want) {
			t.Errorf("Euler(%v,%v,%v) rotating %v = %v, want %v", tt.x, tt.y, tt.z, tt.v, got, want)
		}
	}
}

func TestQuatEulerIsProductOfAxisRotations(t *testing.T) {
	q := QuatFromEuler(10, 20, 30)
	want := QuatFromAxisAngle(Vec3{Z: 1}, 30).
		Mul(QuatFromAxisAngle(Vec3{Y: 1}, 20)).
		Mul(QuatFromAxisAngle(Vec3{X: 1}, 10))
	if q != want {
		t.Errorf("QuatFromEuler() = %v, want %v", q, want)
	}
}

func TestQuatInverseIsConjugate(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	if q.Inverse() != q.Conjugate() {
		t.Errorf("Inverse() = %v, want conjugate %v", q.Inverse(), q.Conjugate())
	}
	if q.Conjugate() != (Quat{X: -1, Y: -2, Z: -3, W: 4}) {
		t.Errorf("Conjugate() = %v", q.Conjugate())
	}

	u := QuatFromEuler(20, 30, 40)
	if !nearQuat(u.Mul(u.Inverse()), QuatIdentity()) {
		t.Errorf("q * q.Inverse() = %v, want identity", u.Mul(u.Inverse()))
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()
	if !near(n.Magnitude(), 1) {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Magnitude())
	}
	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("Normalize of zero quaternion should be identity")
	}
}

func TestQuatLerpIsNotRenormalized(t *testing.T) {
	a := QuatIdentity()
	b := QuatFromAxisAngle(Vec3{Z: 1}, 90)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}

	mid := a.Lerp(b, 0.5)
	want := Quat{Z: b.Z / 2, W: (1 + b.W) / 2}
	if !nearQuat(mid, want) {
		t.Errorf("Lerp(0.5) = %v, want %v", mid, want)
	}
	if near(mid.Magnitude(), 1) {
		t.Errorf("Lerp(0.5) should not be unit length, got %v", mid.Magnitude())
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, 90)

	if r := q1.Slerp(q2, 0); math.Abs(float64(r.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}
	if r := q1.Slerp(q2, 1); math.Abs(float64(r.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// Halfway between 0 and 90 degrees is 45
	r := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(math.Pi / 8))
	if math.Abs(float64(r.W-expectedW)) > 0.001 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, r.W)
	}
}

func TestQuatAngleBetween(t *testing.T) {
	a := QuatIdentity()
	b := QuatFromAxisAngle(Vec3{X: 1}, 90)

	// acos(cos(45deg)) in degrees
	if got := a.AngleBetween(b); math.Abs(float64(got-45)) > 0.01 {
		t.Errorf("AngleBetween() = %v, want 45", got)
	}
	if got := a.AngleBetween(a); got != 0 {
		t.Errorf("AngleBetween(self) = %v, want 0", got)
	}
	if got := a.AngleBetween(Quat{}); got != 0 {
		t.Errorf("AngleBetween(zero) = %v, want 0", got)
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := QuatFromEuler(25, -60, 135)
	v := Point(1, -2, 0.5)

	got := q.ToMat4().MulVec4(v)
	want := v.Rotate(q)
	if !nearVec4(got, want) {
		t.Errorf("ToMat4()*v = %v, want %v", got, want)
	}

	if QuatIdentity().ToMat4() != Identity() {
		t.Error("identity quaternion should produce identity matrix")
	}
}
