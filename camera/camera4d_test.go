package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fourslice/engine/math4"
)

func TestNewCamera4DLooksDownNegativeZ(t *testing.T) {
	c := NewCamera4D()
	fwd := c.Forward()
	assert.InDelta(t, float32(-1), fwd.Z, 1e-5)
}

func TestRotate3DYawDoesNotTiltUp(t *testing.T) {
	c := NewCamera4D()
	c.Rotate3D(0.7, 0)
	up := c.Up()
	assert.InDelta(t, float32(1), up.Y, 1e-5)
}

func TestRotate3DYawChangesForward(t *testing.T) {
	c := NewCamera4D()
	c.Rotate3D(0.7, 0)
	fwd := c.Forward()
	assert.NotInDelta(t, float32(0), fwd.X, 1e-5)
}

func TestRotate3DPitchIsClamped(t *testing.T) {
	c := NewCamera4D()
	c.PitchLimit = float32(math.Pi / 4)
	c.Rotate3D(0, 10)
	assert.LessOrEqual(t, c.Pitch, c.PitchLimit+1e-5)
}

func TestMoveCameraIndependentOfPitch(t *testing.T) {
	c := NewCamera4D()
	c.Pitch = 1.0
	before := c.Position
	c.MoveCamera(1, 0)
	after := c.Position
	// Horizontal motion should not depend on pitch: Y must stay unchanged.
	assert.InDelta(t, before.Y, after.Y, 1e-5)
}

func TestMoveYWritesDirectly(t *testing.T) {
	c := NewCamera4D()
	c.MoveY(3)
	assert.Equal(t, float32(3), c.Position.Y)
}

func TestRotateZWComposesIntoRotation4D(t *testing.T) {
	c := NewCamera4D()
	c.RotateZW(0.5)
	assert.NotEqual(t, math4.Identity(), c.Rotation4D)
}
