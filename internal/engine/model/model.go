package model

import (
	"fmt"
	"sort"

	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/internal/engine/animation"
	"github.com/Faultbox/skelanim/internal/engine/mesh"
	"github.com/Faultbox/skelanim/pkg/math"
)

// Model is an animated instance of a mesh.
//
// The mesh and the animations are shared, read-only assets. Each model
// keeps its own Pose, so any number of models can play different
// animations on the same mesh. A Model is not safe for concurrent use.
type Model struct {
	name string
	mesh *mesh.Mesh
	pose Pose
	mods []animation.JointModifier

	animations map[string]*animation.Animation

	current     *animation.Animation
	currentName string
	animTime    float32
	timeScale   float32
	looping     bool
	paused      bool

	transform   math.Transform
	parent      *Model
	parentJoint int
	children    []*Model

	log *zap.Logger
}

// New creates a model for m in its bind pose.
func New(m *mesh.Mesh, opts ...Option) (*Model, error) {
	if m == nil {
		return nil, ErrNilMesh
	}
	mdl := &Model{
		name:        m.Name(),
		mesh:        m,
		mods:        make([]animation.JointModifier, m.JointCount()),
		animations:  make(map[string]*animation.Animation),
		timeScale:   1,
		looping:     true,
		transform:   math.IdentityTransform(),
		parentJoint: -1,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(mdl)
	}
	if err := mdl.resetPose(); err != nil {
		return nil, err
	}
	mdl.log = mdl.log.With(zap.String("model", mdl.name))
	return mdl, nil
}

// resetPose copies the mesh's bind pose into the model's private pose.
func (m *Model) resetPose() error {
	m.pose = Pose{}
	if joints := m.mesh.Joints(); len(joints) > 0 {
		if err := deepcopy.Copy(&m.pose.Joints, joints); err != nil {
			return fmt.Errorf("copying joints of %q: %w", m.mesh.Name(), err)
		}
	}
	if verts := m.mesh.Vertices(); len(verts) > 0 {
		if err := deepcopy.Copy(&m.pose.Vertices, verts); err != nil {
			return fmt.Errorf("copying vertices of %q: %w", m.mesh.Name(), err)
		}
	}
	return nil
}

// ResetPose stops playback and returns the model to the bind pose.
func (m *Model) ResetPose() error {
	m.StopAnimation()
	return m.resetPose()
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Mesh returns the shared mesh.
func (m *Model) Mesh() *mesh.Mesh { return m.mesh }

// AddAnimation binds a under its name after checking that its keyframes
// match the mesh's skeleton. Structural problems are returned here so the
// per-frame path never has to check them.
func (m *Model) AddAnimation(a *animation.Animation) error {
	if _, ok := m.animations[a.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateAnimation, a.Name())
	}
	if err := a.Validate(m.mesh.JointCount()); err != nil {
		m.log.Warn("rejected animation", zap.String("animation", a.Name()), zap.Error(err))
		return err
	}
	m.animations[a.Name()] = a
	m.log.Debug("bound animation",
		zap.String("animation", a.Name()),
		zap.Int("keyframes", len(a.Keyframes())),
		zap.Float32("length", a.Length()))
	return nil
}

// Animations returns the bound animation names in sorted order.
func (m *Model) Animations() []string {
	names := make([]string, 0, len(m.animations))
	for name := range m.animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BeginAnimation selects the named animation, rewinds to time 0, resumes
// playback and applies the first frame.
func (m *Model) BeginAnimation(name string) error {
	a, ok := m.animations[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	m.current = a
	m.currentName = name
	m.animTime = 0
	m.paused = false
	m.log.Debug("begin animation", zap.String("animation", name))
	m.ApplyAnimation()
	return nil
}

// StopAnimation clears the current animation. The pose is left as it was.
func (m *Model) StopAnimation() {
	m.current = nil
	m.currentName = ""
	m.animTime = 0
	m.paused = false
}

// PauseAnimation freezes playback time.
func (m *Model) PauseAnimation() {
	m.paused = true
}

// ContinueAnimation resumes playback time.
func (m *Model) ContinueAnimation() {
	m.paused = false
}

// IncrementAnimationTime advances playback by dt seconds scaled by the
// time scale, then re-applies the animation. It does nothing while paused.
//
// Without looping, time is clamped to [0, Length]; reaching either end
// holds that keyframe and pauses.
func (m *Model) IncrementAnimationTime(dt float32) {
	if m.current == nil {
		m.misuse("IncrementAnimationTime")
		return
	}
	if m.paused {
		return
	}
	m.animTime += dt * m.timeScale
	if !m.looping {
		length := m.current.Length()
		if m.animTime >= length || m.animTime < 0 {
			m.animTime = clamp(m.animTime, 0, length)
			m.paused = true
			m.log.Debug("animation finished",
				zap.String("animation", m.currentName),
				zap.Float32("time", m.animTime))
		}
	}
	m.ApplyAnimation()
}

// SetFrame sets playback time from an absolute frame number, wrapped into
// the animation's length, or clamped to it without looping. It does not
// re-apply; call ApplyAnimation.
func (m *Model) SetFrame(frame float32) {
	if m.current == nil {
		m.misuse("SetFrame")
		return
	}
	t := frame / m.current.FPS()
	if m.looping {
		m.animTime = m.current.Wrap(t)
	} else {
		m.animTime = clamp(t, 0, m.current.Length())
	}
}

// SetTimeScale sets the playback speed multiplier.
func (m *Model) SetTimeScale(scale float32) { m.timeScale = scale }

// TimeScale returns the playback speed multiplier.
func (m *Model) TimeScale() float32 { return m.timeScale }

// SetLooping sets whether playback wraps at the end.
func (m *Model) SetLooping(looping bool) { m.looping = looping }

// Looping reports whether playback wraps at the end.
func (m *Model) Looping() bool { return m.looping }

// AnimationTime returns the elapsed seconds within the current animation.
func (m *Model) AnimationTime() float32 { return m.animTime }

// CurrentAnimation returns the name of the current animation, or "".
func (m *Model) CurrentAnimation() string { return m.currentName }

// State returns the playback state.
func (m *Model) State() State {
	switch {
	case m.current == nil:
		return Stopped
	case m.paused:
		return Paused
	default:
		return Playing
	}
}

// Joints returns the current joint pose. Do not modify it.
func (m *Model) Joints() []mesh.Joint { return m.pose.Joints }

// Vertices returns the current skinned vertices. Do not modify them.
func (m *Model) Vertices() []mesh.Vertex { return m.pose.Vertices }

// JointTransform returns joint i's current transform in model space.
func (m *Model) JointTransform(i int) math.Transform {
	j := &m.pose.Joints[i]
	return math.Transform{Scale: 1, Rotation: j.Rot, Translation: j.Start.XYZ()}
}

// SetTransform sets the model's own transform, relative to its parent
// joint when attached.
func (m *Model) SetTransform(t math.Transform) { m.transform = t }

// Transform returns the model's own transform.
func (m *Model) Transform() math.Transform { return m.transform }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Model) misuse(op string) {
	if debugAssertions {
		panic(fmt.Sprintf("model %q: %s called with no current animation", m.name, op))
	}
	m.log.Debug("no current animation", zap.String("op", op))
}
