package math

// Transform is a uniform-scale rigid transform (SQT): scale, then rotation,
// then translation.
type Transform struct {
	Scale       float32
	Rotation    Quat
	Translation Vec3
}

// IdentityTransform returns a transform with unit scale, no rotation and
// no translation.
func IdentityTransform() Transform {
	return Transform{Scale: 1, Rotation: QuatIdentity()}
}

// Mul composes t with other. Rotations and scales multiply; translations
// are added without being rotated or scaled by t. This is not a full SQT
// composition and the joint hierarchy code depends on it staying that way.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Scale:       t.Scale * other.Scale,
		Rotation:    t.Rotation.Mul(other.Rotation),
		Translation: t.Translation.Add(other.Translation),
	}
}

// Lerp blends scale and translation linearly and rotation with Quat.Lerp.
func (t Transform) Lerp(other Transform, f float32) Transform {
	return Transform{
		Scale:       (1-f)*t.Scale + f*other.Scale,
		Rotation:    t.Rotation.Lerp(other.Rotation, f),
		Translation: t.Translation.Lerp(other.Translation, f),
	}
}

// ToMatrix builds identity, adds Scale onto the diagonal, applies the
// rotation and then sets the translation.
//
// The scale is added to the identity diagonal rather than replacing it, so
// Scale=1 yields a diagonal of 2.
func (t Transform) ToMatrix() Mat4 {
	m := Identity()
	m.AddScale(t.Scale)
	m.SetRotation(t.Rotation)
	m.SetTranslation(t.Translation)
	return m
}

// Apply maps a position through the transform: scale, rotate, translate.
// W is preserved; translation is only added to positions (W != 0).
func (t Transform) Apply(p Vec4) Vec4 {
	r := Vec4{p.X * t.Scale, p.Y * t.Scale, p.Z * t.Scale, p.W}.Rotate(t.Rotation)
	if p.W != 0 {
		r.X += t.Translation.X
		r.Y += t.Translation.Y
		r.Z += t.Translation.Z
	}
	return r
}
