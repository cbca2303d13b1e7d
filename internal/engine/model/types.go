// Package model plays skeletal animations on a mesh: it advances playback
// time, blends keyframes, rebuilds the joint hierarchy and re-skins the
// vertices.
package model

import (
	"errors"

	"github.com/Faultbox/skelanim/internal/engine/mesh"
)

var (
	// ErrUnknownAnimation is returned when a name has no bound animation.
	ErrUnknownAnimation = errors.New("unknown animation")
	// ErrDuplicateAnimation is returned when a name is bound twice.
	ErrDuplicateAnimation = errors.New("animation already bound")
	// ErrUnknownJoint is returned when an attachment names a missing joint.
	ErrUnknownJoint = errors.New("unknown joint")
	// ErrAttachCycle is returned when an attachment would make a model its
	// own ancestor.
	ErrAttachCycle = errors.New("attachment cycle")
	// ErrNilMesh is returned by New without a mesh.
	ErrNilMesh = errors.New("model needs a mesh")
)

// State is the playback state of a model.
type State int

const (
	// Stopped means no animation is selected.
	Stopped State = iota
	// Playing means time advances on IncrementAnimationTime.
	Playing
	// Paused means an animation is selected but time is frozen.
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Pose is a model's private, mutable copy of its mesh's joints and
// vertices. Animation writes here; the mesh itself is never touched.
type Pose struct {
	Joints   []mesh.Joint
	Vertices []mesh.Vertex
}
