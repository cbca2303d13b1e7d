package model

import (
	"errors"
	"testing"

	"github.com/Faultbox/skelanim/internal/engine/mesh"
	"github.com/Faultbox/skelanim/pkg/math"
)

func swordModel(t *testing.T) *Model {
	t.Helper()
	m, err := mesh.New("sword", []mesh.Joint{{Name: "grip", Parent: -1, Rot: math.QuatIdentity()}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	mdl, err := New(m)
	if err != nil {
		t.Fatal(err)
	}
	return mdl
}

func TestAttachModelFollowsJoint(t *testing.T) {
	body := newModel(t, armMesh(t), swing(t))
	sword := swordModel(t)
	sword.SetTransform(math.Transform{Scale: 1, Rotation: math.QuatIdentity(), Translation: math.Vec3{Z: 0.5}})

	if err := body.AttachModel(sword, "hand"); err != nil {
		t.Fatalf("AttachModel() error: %v", err)
	}
	if p, joint := sword.Parent(); p != body || joint != 1 {
		t.Fatalf("Parent() = (%v, %d), want (body, 1)", p, joint)
	}

	got := sword.WorldTransform().Translation
	if got != (math.Vec3{X: 0, Y: 1, Z: 0.5}) {
		t.Errorf("bind pose world translation = %v, want (0, 1, 0.5)", got)
	}

	if err := body.BeginAnimation("swing"); err != nil {
		t.Fatal(err)
	}
	body.SetLooping(false)
	body.IncrementAnimationTime(1)

	got = sword.WorldTransform().Translation
	want := math.Vec4{X: -1, Y: 0, Z: 0.5, W: 0}
	if !nearVec(math.Vec4{X: got.X, Y: got.Y, Z: got.Z}, want) {
		t.Errorf("animated world translation = %v, want (-1, 0, 0.5)", got)
	}
}

func TestAttachModelErrors(t *testing.T) {
	body := newModel(t, armMesh(t))
	sword := swordModel(t)

	if err := body.AttachModel(sword, "tail"); !errors.Is(err, ErrUnknownJoint) {
		t.Errorf("unknown joint error = %v, want ErrUnknownJoint", err)
	}
	if err := body.AttachModel(body, "hand"); !errors.Is(err, ErrAttachCycle) {
		t.Errorf("self attach error = %v, want ErrAttachCycle", err)
	}
	if err := body.AttachModel(sword, "hand"); err != nil {
		t.Fatal(err)
	}
	if err := sword.AttachModel(body, "grip"); !errors.Is(err, ErrAttachCycle) {
		t.Errorf("cycle error = %v, want ErrAttachCycle", err)
	}
}

func TestReattachMovesModel(t *testing.T) {
	body := newModel(t, armMesh(t))
	sword := swordModel(t)

	if err := body.AttachModel(sword, "hand"); err != nil {
		t.Fatal(err)
	}
	if err := body.AttachModel(sword, "root"); err != nil {
		t.Fatal(err)
	}
	if n := len(body.Attachments()); n != 1 {
		t.Errorf("Attachments() has %d entries, want 1", n)
	}
	if _, joint := sword.Parent(); joint != 0 {
		t.Errorf("joint = %d, want 0", joint)
	}
	if !body.DetachModel(sword) {
		t.Error("DetachModel() = false, want true")
	}
	if p, _ := sword.Parent(); p != nil {
		t.Error("detached model still has a parent")
	}
	if body.DetachModel(sword) {
		t.Error("second DetachModel() = true, want false")
	}
}
