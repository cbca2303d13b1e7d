package animation

import (
	"errors"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/skelanim/internal/engine/mesh"
	"github.com/Faultbox/skelanim/pkg/math"
)

func twoJointKeyframe(frame float32, rootDeg float32, loc math.Vec4) Keyframe {
	return Keyframe{
		Frame: frame,
		Modifiers: []JointModifier{
			{Joint: 0, Location: loc, Rotation: math.QuatFromAxisAngle(math.Vec3{Z: 1}, rootDeg)},
			Rest(1),
		},
	}
}

func mustNew(t *testing.T, fps float32, kfs ...Keyframe) *Animation {
	t.Helper()
	a, err := New("test", fps, kfs)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return a
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		fps     float32
		kfs     []Keyframe
		wantErr error
	}{
		{"no keyframes", 10, nil, ErrNoKeyframes},
		{"zero fps", 0, []Keyframe{{Frame: 0}}, ErrInvalidFPS},
		{"negative fps", -5, []Keyframe{{Frame: 0}}, ErrInvalidFPS},
		{"unordered", 10, []Keyframe{{Frame: 5}, {Frame: 2}}, ErrUnorderedKeyframes},
		{"equal frames allowed", 10, []Keyframe{{Frame: 2}, {Frame: 2}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("a", tt.fps, tt.kfs)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLength(t *testing.T) {
	a := mustNew(t, 10, Keyframe{Frame: 0}, Keyframe{Frame: 10})
	if a.Length() != 1 {
		t.Errorf("Length() = %v, want 1", a.Length())
	}
	if a.LastFrame() != 10 {
		t.Errorf("LastFrame() = %v, want 10", a.LastFrame())
	}
}

func TestWrap(t *testing.T) {
	a := mustNew(t, 4, Keyframe{Frame: 0}, Keyframe{Frame: 8}) // 2 seconds

	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{0.5, 0.5},
		{2, 0},
		{2.5, 0.5},
		{6.5, 0.5}, // several loops at once
		{-0.5, 1.5},
	}
	for _, tt := range tests {
		if got := a.Wrap(tt.in); got != tt.want {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	still := mustNew(t, 10, Keyframe{Frame: 0})
	if got := still.Wrap(3); got != 0 {
		t.Errorf("Wrap on zero-length animation = %v, want 0", got)
	}
}

func TestBracket(t *testing.T) {
	a := mustNew(t, 10, Keyframe{Frame: 0}, Keyframe{Frame: 5}, Keyframe{Frame: 10})

	tests := []struct {
		frame      float32
		prev, next int
	}{
		{0, 0, 1},
		{2.5, 0, 1},
		{5, 1, 2},
		{9.99, 1, 2},
		{10, 2, 2},
		{12, 2, 2},
	}
	for _, tt := range tests {
		prev, next := a.Bracket(tt.frame)
		if prev != tt.prev || next != tt.next {
			t.Errorf("Bracket(%v) = (%d, %d), want (%d, %d)", tt.frame, prev, next, tt.prev, tt.next)
		}
	}

	late := mustNew(t, 10, Keyframe{Frame: 3}, Keyframe{Frame: 6})
	prev, next := late.Bracket(1)
	if prev != 0 || next != 0 {
		t.Errorf("Bracket before first keyframe = (%d, %d), want (0, 0)", prev, next)
	}
	if f := late.BlendFactor(1, prev, next); f != 0 {
		t.Errorf("BlendFactor over zero span = %v, want 0", f)
	}
}

func TestBlendFactor(t *testing.T) {
	a := mustNew(t, 10, Keyframe{Frame: 0}, Keyframe{Frame: 10})
	if f := a.BlendFactor(5, 0, 1); f != 0.5 {
		t.Errorf("BlendFactor(5) = %v, want 0.5", f)
	}
	if f := a.BlendFactor(0, 0, 1); f != 0 {
		t.Errorf("BlendFactor(0) = %v, want 0", f)
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := twoJointKeyframe(0, 10, math.Direction(0.3, -1.7, 2.9))
	b := twoJointKeyframe(10, 75, math.Direction(4.1, 0.2, -0.6))
	out := make([]JointModifier, 2)

	Blend(&a, &b, 0, out)
	for i := range out {
		if out[i] != a.Modifiers[i] {
			t.Errorf("factor 0 joint %d = %+v, want %+v", i, out[i], a.Modifiers[i])
		}
	}

	Blend(&a, &b, 1, out)
	for i := range out {
		if out[i] != b.Modifiers[i] {
			t.Errorf("factor 1 joint %d = %+v, want %+v", i, out[i], b.Modifiers[i])
		}
	}
}

func TestSample(t *testing.T) {
	a := mustNew(t, 10,
		twoJointKeyframe(0, 0, math.Vec4{}),
		twoJointKeyframe(10, 90, math.Direction(2, 0, 0)),
	)
	out := make([]JointModifier, 2)
	prev, next, f := a.Sample(a.FrameAt(0.5), out)
	if prev != 0 || next != 1 || f != 0.5 {
		t.Fatalf("Sample() = (%d, %d, %v), want (0, 1, 0.5)", prev, next, f)
	}
	if out[0].Location != math.Direction(1, 0, 0) {
		t.Errorf("blended location = %v, want (1, 0, 0, 0)", out[0].Location)
	}
	q90 := math.QuatFromAxisAngle(math.Vec3{Z: 1}, 90)
	want := math.QuatIdentity().Lerp(q90, 0.5)
	if out[0].Rotation != want {
		t.Errorf("blended rotation = %v, want %v", out[0].Rotation, want)
	}
}

func TestValidate(t *testing.T) {
	good := mustNew(t, 10, twoJointKeyframe(0, 0, math.Vec4{}), twoJointKeyframe(5, 30, math.Vec4{}))
	if err := good.Validate(2); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	err := good.Validate(3)
	errs := multierr.Errors(errors.Unwrap(err))
	if len(errs) != 2 {
		t.Fatalf("Validate(3) returned %d errors, want 2: %v", len(errs), err)
	}
	var se *mesh.StructuralError
	if !errors.As(err, &se) || se.Kind != mesh.KindJointCount {
		t.Errorf("Validate(3) error = %v, want joint count StructuralError", err)
	}

	swapped := mustNew(t, 10, Keyframe{Frame: 0, Modifiers: []JointModifier{Rest(1), Rest(0)}})
	err = swapped.Validate(2)
	if !errors.As(err, &se) || se.Kind != mesh.KindJointIndex {
		t.Errorf("Validate() of out-of-order modifiers = %v, want joint index StructuralError", err)
	}
}

func TestDensify(t *testing.T) {
	sparse := []JointModifier{
		{Joint: 2, Location: math.Direction(1, 0, 0), Rotation: math.QuatFromEuler(0, 0, 45)},
		{Joint: 7, Location: math.Direction(9, 9, 9)},
	}
	dense := Densify(sparse, 3)
	if len(dense) != 3 {
		t.Fatalf("len = %d, want 3", len(dense))
	}
	for i := 0; i < 2; i++ {
		if dense[i] != Rest(i) {
			t.Errorf("joint %d = %+v, want rest", i, dense[i])
		}
	}
	if dense[2] != sparse[0] {
		t.Errorf("joint 2 = %+v, want %+v", dense[2], sparse[0])
	}
}
