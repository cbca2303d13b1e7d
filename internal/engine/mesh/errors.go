package mesh

import "fmt"

// Kind classifies a structural problem in skeleton or animation data.
type Kind int

const (
	// KindParentOrder: a joint's parent is itself or comes after it.
	KindParentOrder Kind = iota
	// KindWeightJoint: a vertex weight names a joint that does not exist.
	KindWeightJoint
	// KindDuplicateName: two joints share a name.
	KindDuplicateName
	// KindJointCount: a keyframe does not carry one modifier per joint.
	KindJointCount
	// KindJointIndex: a keyframe modifier is out of positional order.
	KindJointIndex
)

func (k Kind) String() string {
	switch k {
	case KindParentOrder:
		return "parent order"
	case KindWeightJoint:
		return "weight joint"
	case KindDuplicateName:
		return "duplicate name"
	case KindJointCount:
		return "joint count"
	case KindJointIndex:
		return "joint index"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// StructuralError reports skeleton or keyframe data the engine cannot
// animate. These are raised when data is built or bound, never per frame.
type StructuralError struct {
	Kind   Kind
	Index  int // joint, vertex or keyframe index the problem was found at
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error (%s) at %d: %s", e.Kind, e.Index, e.Detail)
}
