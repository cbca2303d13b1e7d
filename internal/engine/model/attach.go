package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/pkg/math"
)

// AttachModel parents child to the named joint of m, e.g. a weapon to a
// hand. child only reads the joint's current transform. A child already
// attached elsewhere is moved.
func (m *Model) AttachModel(child *Model, jointName string) error {
	joint, ok := m.mesh.JointIndex(jointName)
	if !ok {
		return fmt.Errorf("%w: %q on %q", ErrUnknownJoint, jointName, m.name)
	}
	for p := m; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("%w: %q under %q", ErrAttachCycle, child.name, m.name)
		}
	}
	if child.parent != nil {
		child.parent.DetachModel(child)
	}
	child.parent = m
	child.parentJoint = joint
	m.children = append(m.children, child)
	m.log.Debug("attached model", zap.String("child", child.name), zap.String("joint", jointName))
	return nil
}

// DetachModel removes child from m's attachments. It reports whether
// child was attached to m.
func (m *Model) DetachModel(child *Model) bool {
	for i, c := range m.children {
		if c == child {
			m.children = append(m.children[:i], m.children[i+1:]...)
			child.parent = nil
			child.parentJoint = -1
			return true
		}
	}
	return false
}

// Attachments returns the models attached to m.
func (m *Model) Attachments() []*Model {
	return m.children
}

// Parent returns the model m is attached to and the joint index, or nil.
func (m *Model) Parent() (*Model, int) {
	return m.parent, m.parentJoint
}

// WorldTransform composes the parent's joint transform, if attached, with
// the model's own transform.
func (m *Model) WorldTransform() math.Transform {
	if m.parent == nil {
		return m.transform
	}
	return m.parent.JointWorldTransform(m.parentJoint).Mul(m.transform)
}

// JointWorldTransform composes the model's world transform with joint i's
// current transform.
func (m *Model) JointWorldTransform(i int) math.Transform {
	return m.WorldTransform().Mul(m.JointTransform(i))
}
