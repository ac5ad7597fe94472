// Package camera implements the 4D camera/orientation model: a position,
// a 4D rotor confined to the XZW hyperplane, and a standalone pitch that
// composes last so it can never leak into the 4D rotor.
package camera

import "github.com/fourslice/engine/math4"

const defaultPitchLimit = 89.0 * 3.14159265358979323846 / 180.0

// Camera4D holds the orientation state the slicing pipeline consumes.
// Rotation4D is built only from the Bxz, Bxw, Bzw bivectors of Rotor4 —
// never Bxy, Byz, Byw — which by construction leaves any vector's Y
// component untouched under the sandwich product, the same guarantee
// SkipY enforces structurally for an abstract 3-axis rotor.
type Camera4D struct {
	Position math4.Vec4
	Rotation4D math4.Rotor4
	Pitch      float32
	PitchLimit float32

	SliceOffset float32
}

// NewCamera4D returns a camera at the origin, looking along -Z with no
// pitch and the default ±89° pitch clamp.
func NewCamera4D() Camera4D {
	return Camera4D{
		Rotation4D: math4.Identity(),
		PitchLimit: float32(defaultPitchLimit),
	}
}

func (c Camera4D) clampedPitch() float32 {
	limit := c.PitchLimit
	if limit <= 0 {
		limit = float32(defaultPitchLimit)
	}
	if c.Pitch > limit {
		return limit
	}
	if c.Pitch < -limit {
		return -limit
	}
	return c.Pitch
}

// ViewRotation composes the camera's final orientation matrix:
// rotation_4d · PlaneRotation(pitch, Y, Z). rotation_4d is already confined
// to the Bxz/Bxw/Bzw bivectors, so it acts on X/Z/W exactly like SkipY's
// output would — applying SkipY to it here would remap native Z onto the
// abstract W slot it expects and discard the real W row/col entirely.
func (c Camera4D) ViewRotation() math4.Matrix4 {
	pitchRotor := math4.FromPlaneAngle(math4.PlaneYZ, float64(c.clampedPitch()))
	return c.Rotation4D.ToMatrix().Mul(pitchRotor.ToMatrix())
}

func (c Camera4D) basis(v math4.Vec4) math4.Vec4 {
	return c.ViewRotation().MulVec4(v)
}

func (c Camera4D) Forward() math4.Vec4 { return c.basis(math4.Vec4{Z: -1}) }
func (c Camera4D) Right() math4.Vec4   { return c.basis(math4.Vec4{X: 1}) }
func (c Camera4D) Up() math4.Vec4      { return c.basis(math4.Vec4{Y: 1}) }
func (c Camera4D) Ana() math4.Vec4     { return c.basis(math4.Vec4{W: 1}) }

// MoveCamera maps a camera-local displacement (forward, right components;
// y and w are independent axes here, not used for the WASD case) into
// world space via rotation_4d alone and applies it to Position. Pitch is
// left out, so the motion never changes Position.Y.
func (c *Camera4D) MoveCamera(forwardAmount, rightAmount float32) {
	forward := c.Rotation4D.Rotate(math4.Vec4{Z: -1})
	right := c.Rotation4D.Rotate(math4.Vec4{X: 1})
	delta := forward.Scale(forwardAmount).Add(right.Scale(rightAmount))
	c.Position = c.Position.Add(delta)
}

// MoveY writes directly to the world Y position, bypassing orientation.
func (c *Camera4D) MoveY(delta float32) {
	c.Position.Y += delta
}

// MoveAna moves along the camera's ana/kata direction — its current 4D
// orientation's W axis, not world W.
func (c *Camera4D) MoveAna(delta float32) {
	c.Position = c.Position.Add(c.Ana().Scale(delta))
}

// Rotate3D folds yaw into rotation_4d via an XZ-plane rotor and adds pitch
// to the standalone scalar, clamped to PitchLimit.
func (c *Camera4D) Rotate3D(deltaYaw, deltaPitch float32) {
	yawRotor := math4.FromPlaneAngle(math4.PlaneXZ, float64(deltaYaw))
	c.Rotation4D = c.Rotation4D.Compose(yawRotor).Normalize()
	c.Pitch = c.clampedPitch() + deltaPitch
	c.Pitch = c.clampedPitch()
}

// Rotate4DLook folds both axes into rotation_4d, steering the 4D
// hyperplane directly — used while a modifier key is held.
func (c *Camera4D) Rotate4DLook(dx, dy float32) {
	rx := math4.FromPlaneAngle(math4.PlaneXZ, float64(dx))
	ry := math4.FromPlaneAngle(math4.PlaneZW, float64(dy))
	c.Rotation4D = c.Rotation4D.Compose(rx).Compose(ry).Normalize()
}

// RotateZW applies a discrete ZW-plane rotation.
func (c *Camera4D) RotateZW(delta float32) {
	c.Rotation4D = c.Rotation4D.Compose(math4.FromPlaneAngle(math4.PlaneZW, float64(delta))).Normalize()
}

// RotateXW applies a discrete XW-plane rotation.
func (c *Camera4D) RotateXW(delta float32) {
	c.Rotation4D = c.Rotation4D.Compose(math4.FromPlaneAngle(math4.PlaneXW, float64(delta))).Normalize()
}
