// Package mesh holds the bind-pose skeleton and skinned vertices of a model.
package mesh

import "github.com/Faultbox/skelanim/pkg/math"

// Joint is a node of the skeleton hierarchy.
type Joint struct {
	Name   string
	Parent int // index of the parent joint, negative for a root

	Start math.Vec4 // position of the joint
	End   math.Vec4 // position of the bone tip, for visualization only
	Rot   math.Quat // orientation

	// Derived once by New.
	StartRel math.Vec4 // Start relative to the parent, in the parent's frame
	EndRel   math.Vec4 // End relative to Start, in the joint's own frame
}

// HasParent reports whether the joint is attached to another joint.
func (j Joint) HasParent() bool {
	return j.Parent >= 0
}

// Weight binds a vertex to a joint with an influence factor.
type Weight struct {
	Joint     int
	Influence float32
}

// Vertex is a skinned mesh vertex.
//
// Influences are not required to sum to 1. Skinning sums weighted
// positions without dividing by the total, so content that wants a plain
// weighted average must normalize its weights itself.
type Vertex struct {
	Pos  math.Vec4
	Norm math.Vec4
	UV   math.Vec2

	// Bind-pose values, never overwritten.
	OriginalPos  math.Vec4
	OriginalNorm math.Vec4

	Weights []Weight
}
