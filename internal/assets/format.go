package assets

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/skelanim/internal/engine/animation"
	"github.com/Faultbox/skelanim/internal/engine/mesh"
	"github.com/Faultbox/skelanim/pkg/math"
)

// meshFile is the YAML layout of a mesh description.
type meshFile struct {
	Name     string       `yaml:"name"`
	Joints   []jointDesc  `yaml:"joints"`
	Vertices []vertexDesc `yaml:"vertices"`
}

type jointDesc struct {
	Name     string      `yaml:"name"`
	Parent   *int        `yaml:"parent"` // omitted means root
	Start    [3]float32  `yaml:"start"`
	End      [3]float32  `yaml:"end"`
	Rotation *[3]float32 `yaml:"rotation"` // Euler degrees
	Quat     *[4]float32 `yaml:"quat"`     // x, y, z, w
}

type vertexDesc struct {
	Pos     [3]float32   `yaml:"pos"`
	Normal  [3]float32   `yaml:"normal"`
	UV      [2]float32   `yaml:"uv"`
	Weights []weightDesc `yaml:"weights"`
}

type weightDesc struct {
	Joint  int     `yaml:"joint"`
	Weight float32 `yaml:"weight"`
}

// animFile is the YAML layout of an animation description.
type animFile struct {
	Name      string         `yaml:"name"`
	FPS       float32        `yaml:"fps"`
	Joints    int            `yaml:"joints"` // skeleton size; inferred when 0
	Keyframes []keyframeDesc `yaml:"keyframes"`
}

type keyframeDesc struct {
	Frame  float32        `yaml:"frame"`
	Joints []modifierDesc `yaml:"joints"`
}

type modifierDesc struct {
	Joint    int         `yaml:"joint"`
	Location [3]float32  `yaml:"location"`
	Rotation *[3]float32 `yaml:"rotation"`
	Quat     *[4]float32 `yaml:"quat"`
}

func rotation(euler *[3]float32, quat *[4]float32) math.Quat {
	switch {
	case quat != nil:
		return math.Quat{X: quat[0], Y: quat[1], Z: quat[2], W: quat[3]}
	case euler != nil:
		return math.QuatFromEuler(euler[0], euler[1], euler[2])
	default:
		return math.QuatIdentity()
	}
}

// ParseMesh decodes a YAML mesh description.
func ParseMesh(data []byte) (*mesh.Mesh, error) {
	var f meshFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding mesh: %w", err)
	}

	joints := make([]mesh.Joint, len(f.Joints))
	for i, jd := range f.Joints {
		parent := -1
		if jd.Parent != nil {
			parent = *jd.Parent
		}
		joints[i] = mesh.Joint{
			Name:   jd.Name,
			Parent: parent,
			Start:  math.Point(jd.Start[0], jd.Start[1], jd.Start[2]),
			End:    math.Point(jd.End[0], jd.End[1], jd.End[2]),
			Rot:    rotation(jd.Rotation, jd.Quat),
		}
	}

	verts := make([]mesh.Vertex, len(f.Vertices))
	for i, vd := range f.Vertices {
		weights := make([]mesh.Weight, len(vd.Weights))
		for k, w := range vd.Weights {
			weights[k] = mesh.Weight{Joint: w.Joint, Influence: w.Weight}
		}
		verts[i] = mesh.Vertex{
			Pos:     math.Point(vd.Pos[0], vd.Pos[1], vd.Pos[2]),
			Norm:    math.Direction(vd.Normal[0], vd.Normal[1], vd.Normal[2]),
			UV:      math.Vec2{X: vd.UV[0], Y: vd.UV[1]},
			Weights: weights,
		}
	}

	return mesh.New(f.Name, joints, verts)
}

// ParseAnimation decodes a YAML animation description. Keyframes may list
// only the joints they move; the rest are filled with rest modifiers.
func ParseAnimation(data []byte) (*animation.Animation, error) {
	var f animFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding animation: %w", err)
	}

	count := f.Joints
	if count == 0 {
		for _, kd := range f.Keyframes {
			for _, md := range kd.Joints {
				if md.Joint+1 > count {
					count = md.Joint + 1
				}
			}
		}
	}

	keyframes := make([]animation.Keyframe, len(f.Keyframes))
	for i, kd := range f.Keyframes {
		sparse := make([]animation.JointModifier, 0, len(kd.Joints))
		for _, md := range kd.Joints {
			if md.Joint < 0 || md.Joint >= count {
				return nil, fmt.Errorf("animation %q keyframe %d: %w", f.Name, i, &mesh.StructuralError{
					Kind:   mesh.KindJointIndex,
					Index:  i,
					Detail: fmt.Sprintf("joint %d outside skeleton of %d", md.Joint, count),
				})
			}
			sparse = append(sparse, animation.JointModifier{
				Joint:    md.Joint,
				Location: math.Direction(md.Location[0], md.Location[1], md.Location[2]),
				Rotation: rotation(md.Rotation, md.Quat),
			})
		}
		keyframes[i] = animation.Keyframe{
			Frame:     kd.Frame,
			Modifiers: animation.Densify(sparse, count),
		}
	}

	return animation.New(f.Name, f.FPS, keyframes)
}
