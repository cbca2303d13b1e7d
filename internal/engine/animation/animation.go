// Package animation provides keyframe data and the interpolation steps of
// skeletal playback: time wrapping, keyframe bracketing and joint blending.
package animation

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/multierr"

	"github.com/Faultbox/skelanim/internal/engine/mesh"
	"github.com/Faultbox/skelanim/pkg/math"
)

var (
	// ErrNoKeyframes is returned for an animation without keyframes.
	ErrNoKeyframes = errors.New("animation has no keyframes")
	// ErrInvalidFPS is returned for a non-positive playback rate.
	ErrInvalidFPS = errors.New("animation fps must be positive")
	// ErrUnorderedKeyframes is returned when frame indices decrease.
	ErrUnorderedKeyframes = errors.New("keyframes are not in ascending frame order")
)

// JointModifier is the translation and rotation of one joint at a keyframe.
// Rotation replaces the joint's orientation; Location is added to the
// joint's reconstructed position.
type JointModifier struct {
	Joint    int
	Location math.Vec4
	Rotation math.Quat
}

// Rest returns a modifier that leaves the joint in its bind position with
// no rotation.
func Rest(joint int) JointModifier {
	return JointModifier{Joint: joint, Rotation: math.QuatIdentity()}
}

// Keyframe is a pose at a frame index. Frame is in frames, not seconds.
type Keyframe struct {
	Frame     float32
	Modifiers []JointModifier
}

// Animation is an ordered list of keyframes played at FPS frames per
// second. It is immutable once built and may be shared between models.
type Animation struct {
	name      string
	fps       float32
	keyframes []Keyframe
	length    float32
}

// New builds an animation. Keyframes must be in ascending frame order.
func New(name string, fps float32, keyframes []Keyframe) (*Animation, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("animation %q: %w (got %v)", name, ErrInvalidFPS, fps)
	}
	if len(keyframes) == 0 {
		return nil, fmt.Errorf("animation %q: %w", name, ErrNoKeyframes)
	}
	for i := 1; i < len(keyframes); i++ {
		if keyframes[i].Frame < keyframes[i-1].Frame {
			return nil, fmt.Errorf("animation %q: keyframe %d: %w", name, i, ErrUnorderedKeyframes)
		}
	}
	return &Animation{
		name:      name,
		fps:       fps,
		keyframes: keyframes,
		length:    keyframes[len(keyframes)-1].Frame / fps,
	}, nil
}

// Name returns the animation name.
func (a *Animation) Name() string { return a.name }

// FPS returns the playback rate in frames per second.
func (a *Animation) FPS() float32 { return a.fps }

// Keyframes returns the keyframes. The slice is shared; do not modify it.
func (a *Animation) Keyframes() []Keyframe { return a.keyframes }

// Length returns the duration in seconds: the last keyframe's frame / fps.
func (a *Animation) Length() float32 { return a.length }

// LastFrame returns the frame index of the last keyframe.
func (a *Animation) LastFrame() float32 {
	return a.keyframes[len(a.keyframes)-1].Frame
}

// Wrap maps t seconds into [0, Length). Any number of whole loops is
// removed, and negative times wrap forward. A zero-length animation
// always yields 0.
func (a *Animation) Wrap(t float32) float32 {
	if a.length <= 0 {
		return 0
	}
	w := float32(gomath.Mod(float64(t), float64(a.length)))
	if w < 0 {
		w += a.length
	}
	if w >= a.length {
		// Mod of a value just below a multiple can round up to length
		w = 0
	}
	return w
}

// FrameAt converts seconds to a fractional frame number.
func (a *Animation) FrameAt(t float32) float32 {
	return t * a.fps
}

// Bracket finds the keyframes around frameNum. next is the first keyframe
// whose frame exceeds frameNum and prev the one before it. When the first
// keyframe already exceeds frameNum both are 0; when none does both are
// the last keyframe.
func (a *Animation) Bracket(frameNum float32) (prev, next int) {
	for i := range a.keyframes {
		if a.keyframes[i].Frame > frameNum {
			if i == 0 {
				return 0, 0
			}
			return i - 1, i
		}
	}
	last := len(a.keyframes) - 1
	return last, last
}

// BlendFactor returns how far frameNum lies between keyframes prev and
// next. A zero-length span yields 0.
func (a *Animation) BlendFactor(frameNum float32, prev, next int) float32 {
	p := a.keyframes[prev].Frame
	span := a.keyframes[next].Frame - p
	if span == 0 {
		return 0
	}
	return (frameNum - p) / span
}

// Sample writes the blended per-joint modifiers at frameNum into out,
// which must be at least as long as each keyframe's modifier list. It
// returns the bracketing keyframes and the blend factor used.
func (a *Animation) Sample(frameNum float32, out []JointModifier) (prev, next int, factor float32) {
	prev, next = a.Bracket(frameNum)
	factor = a.BlendFactor(frameNum, prev, next)
	Blend(&a.keyframes[prev], &a.keyframes[next], factor, out)
	return prev, next, factor
}

// Validate checks that every keyframe carries exactly one modifier per
// joint of a skeleton with jointCount joints, stored at the joint's own
// index. Blending pairs modifiers by position, so anything else would mix
// different joints.
func (a *Animation) Validate(jointCount int) error {
	var errs error
	for k := range a.keyframes {
		mods := a.keyframes[k].Modifiers
		if len(mods) != jointCount {
			errs = multierr.Append(errs, &mesh.StructuralError{
				Kind:   mesh.KindJointCount,
				Index:  k,
				Detail: fmt.Sprintf("keyframe has %d modifiers, skeleton has %d joints", len(mods), jointCount),
			})
			continue
		}
		for i := range mods {
			if mods[i].Joint != i {
				errs = multierr.Append(errs, &mesh.StructuralError{
					Kind:   mesh.KindJointIndex,
					Index:  k,
					Detail: fmt.Sprintf("modifier %d is for joint %d", i, mods[i].Joint),
				})
				break
			}
		}
	}
	if errs != nil {
		return fmt.Errorf("animation %q: %w", a.name, errs)
	}
	return nil
}

// Blend interpolates the modifiers of two keyframes by t, pairing them by
// position. Locations use Vec4.Lerp and rotations the unnormalized
// Quat.Lerp.
func Blend(a, b *Keyframe, t float32, out []JointModifier) {
	for i := range a.Modifiers {
		ma := &a.Modifiers[i]
		mb := &b.Modifiers[i]
		out[i] = JointModifier{
			Joint:    ma.Joint,
			Location: ma.Location.Lerp(mb.Location, t),
			Rotation: ma.Rotation.Lerp(mb.Rotation, t),
		}
	}
}

// Densify returns a copy of mods with one modifier per joint in joint
// order. Joints missing from mods get a Rest modifier; entries naming a
// joint outside [0, jointCount) are dropped.
func Densify(mods []JointModifier, jointCount int) []JointModifier {
	out := make([]JointModifier, jointCount)
	for i := range out {
		out[i] = Rest(i)
	}
	for _, m := range mods {
		if m.Joint >= 0 && m.Joint < jointCount {
			out[m.Joint] = m
		}
	}
	return out
}
