package model

import "github.com/Faultbox/skelanim/pkg/math"

// ApplyAnimation poses the joints and re-skins the vertices for the
// current playback time. Without a current animation, or on a mesh
// with no joints, it does nothing.
func (m *Model) ApplyAnimation() {
	a := m.current
	if a == nil || len(m.pose.Joints) == 0 {
		return
	}

	var frameNum float32
	switch {
	case m.looping:
		m.animTime = a.Wrap(m.animTime)
		frameNum = a.FrameAt(m.animTime)
	case m.animTime >= a.Length():
		m.animTime = a.Length()
		frameNum = a.LastFrame()
	default:
		m.animTime = clamp(m.animTime, 0, a.Length())
		frameNum = a.FrameAt(m.animTime)
	}

	a.Sample(frameNum, m.mods)
	m.poseJoints()
	m.skin()
}

// poseJoints rebuilds world joint positions from the bind-pose offsets.
// Parents precede children, so every parent is already posed when its
// children read it.
func (m *Model) poseJoints() {
	joints := m.pose.Joints
	for i := range joints {
		j := &joints[i]
		mod := &m.mods[i]

		j.Rot = mod.Rotation
		j.Start = j.StartRel
		if j.HasParent() {
			p := &joints[j.Parent]
			j.Start = j.Start.Rotate(p.Rot).Add(p.Start)
		}
		j.Start = j.Start.Add(mod.Location)
		j.End = j.EndRel.Rotate(j.Rot).Add(j.Start)
	}
}

// skin recomputes each vertex from its bind-pose position and normal.
//
// Positions are the influence-weighted sum over the vertex's joints and
// are not divided by the total influence. Normals are summed unweighted
// and divided by the number of weights. Vertices without weights keep
// their bind pose.
func (m *Model) skin() {
	bind := m.mesh.Joints()
	joints := m.pose.Joints
	verts := m.pose.Vertices

	for vi := range verts {
		v := &verts[vi]
		if len(v.Weights) == 0 {
			v.Pos = v.OriginalPos
			v.Norm = v.OriginalNorm
			continue
		}

		var pos, norm math.Vec4
		for _, w := range v.Weights {
			b := &bind[w.Joint]
			c := &joints[w.Joint]
			undo := b.Rot.Inverse()

			local := v.OriginalPos.Sub(b.Start).Rotate(undo)
			pos = pos.Add(local.Rotate(c.Rot).Add(c.Start).Scale(w.Influence))
			norm = norm.Add(v.OriginalNorm.Rotate(undo).Rotate(c.Rot))
		}
		pos.W = 1
		norm = norm.DivScalar(float32(len(v.Weights)))
		norm.W = 0

		v.Pos = pos
		v.Norm = norm
	}
}
