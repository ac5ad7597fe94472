package math4

// Transform4D composes a uniform scale, a rotation, and a translation.
// Identity is the origin, identity rotor, and unit scale.
type Transform4D struct {
	Position Vec4
	Rotation Rotor4
	Scale    float32
}

func IdentityTransform() Transform4D {
	return Transform4D{Rotation: Identity(), Scale: 1}
}

// Apply transforms a point: scale, then rotate, then translate.
func (t Transform4D) Apply(p Vec4) Vec4 {
	return t.Rotation.Rotate(p.Scale(t.Scale)).Add(t.Position)
}

// ApplyDirection rotates and scales a direction but does not translate it.
func (t Transform4D) ApplyDirection(d Vec4) Vec4 {
	return t.Rotation.Rotate(d.Scale(t.Scale))
}

// Compose returns the transform equivalent to applying other first, then t.
func (t Transform4D) Compose(other Transform4D) Transform4D {
	return Transform4D{
		Position: t.Apply(other.Position),
		Rotation: t.Rotation.Compose(other.Rotation),
		Scale:    t.Scale * other.Scale,
	}
}
