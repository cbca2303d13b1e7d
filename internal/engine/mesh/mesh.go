package mesh

import (
	"fmt"

	"go.uber.org/multierr"
)

// Mesh is a bind-pose skeleton with its skinned vertices.
// It is read-only once built and can be shared by any number of models.
type Mesh struct {
	name     string
	joints   []Joint
	vertices []Vertex
	byName   map[string]int
}

// New validates the skeleton and vertices and derives the per-joint local
// offsets. Joints must be ordered so that every parent precedes its
// children. All problems found are returned together as StructuralErrors.
//
// New takes ownership of the slices.
func New(name string, joints []Joint, vertices []Vertex) (*Mesh, error) {
	if err := Validate(joints, vertices); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}

	m := &Mesh{
		name:     name,
		joints:   joints,
		vertices: vertices,
		byName:   make(map[string]int, len(joints)),
	}
	for i := range joints {
		joints[i].Start.W = 1
		joints[i].End.W = 1
		if joints[i].Name != "" {
			m.byName[joints[i].Name] = i
		}
	}
	for i := range vertices {
		v := &vertices[i]
		v.Pos.W = 1
		v.Norm.W = 0
		v.OriginalPos = v.Pos
		v.OriginalNorm = v.Norm
	}
	derive(joints)
	return m, nil
}

// Validate checks parent ordering, weight joint ranges and name
// uniqueness. It returns nil or a multierr combination of
// *StructuralError values.
func Validate(joints []Joint, vertices []Vertex) error {
	var errs error
	seen := make(map[string]int, len(joints))
	for i := range joints {
		j := &joints[i]
		if j.Parent >= i {
			errs = multierr.Append(errs, &StructuralError{
				Kind:   KindParentOrder,
				Index:  i,
				Detail: fmt.Sprintf("parent %d does not precede joint", j.Parent),
			})
		}
		if j.Name == "" {
			continue
		}
		if prev, ok := seen[j.Name]; ok {
			errs = multierr.Append(errs, &StructuralError{
				Kind:   KindDuplicateName,
				Index:  i,
				Detail: fmt.Sprintf("name %q already used by joint %d", j.Name, prev),
			})
			continue
		}
		seen[j.Name] = i
	}
	for i := range vertices {
		for _, w := range vertices[i].Weights {
			if w.Joint < 0 || w.Joint >= len(joints) {
				errs = multierr.Append(errs, &StructuralError{
					Kind:   KindWeightJoint,
					Index:  i,
					Detail: fmt.Sprintf("weight references joint %d of %d", w.Joint, len(joints)),
				})
			}
		}
	}
	return errs
}

// derive computes StartRel and EndRel. Parents are resolved before their
// children, so the parent's bind values are always final here.
func derive(joints []Joint) {
	for i := range joints {
		j := &joints[i]
		if j.HasParent() {
			p := &joints[j.Parent]
			j.StartRel = j.Start.Sub(p.Start).Rotate(p.Rot.Inverse())
		} else {
			j.StartRel = j.Start
		}
		j.EndRel = j.End.Sub(j.Start).Rotate(j.Rot.Inverse())
	}
}

// Name returns the mesh name.
func (m *Mesh) Name() string {
	return m.name
}

// JointCount returns the number of joints.
func (m *Mesh) JointCount() int {
	return len(m.joints)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// Joint returns the bind-pose joint at index i.
func (m *Mesh) Joint(i int) Joint {
	return m.joints[i]
}

// JointIndex returns the index of the named joint.
func (m *Mesh) JointIndex(name string) (int, bool) {
	i, ok := m.byName[name]
	return i, ok
}

// Joints returns the bind-pose skeleton. The slice is shared; do not
// modify it.
func (m *Mesh) Joints() []Joint {
	return m.joints
}

// Vertices returns the bind-pose vertices. The slice is shared; do not
// modify it.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}
