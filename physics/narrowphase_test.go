package physics

import (
	"testing"

	"github.com/fourslice/engine/math4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollideSphereSphereOverlap(t *testing.T) {
	a := Sphere(math4.Vec4{Y: 0}, 1)
	b := Sphere(math4.Vec4{Y: 1.5}, 1)
	c, ok := collide(a, b)
	require.True(t, ok)
	assert.InDelta(t, float32(0.5), c.Penetration, 1e-5)
	assert.InDelta(t, float32(-1), c.Normal.Y, 1e-5)
}

func TestCollideSphereSphereSeparated(t *testing.T) {
	a := Sphere(math4.Vec4{}, 1)
	b := Sphere(math4.Vec4{Y: 3}, 1)
	_, ok := collide(a, b)
	assert.False(t, ok)
}

func TestCollideAABBAABBMinimumOverlapAxis(t *testing.T) {
	a := AABB(math4.Vec4{X: -1, Y: -1, Z: -1, W: -1}, math4.Vec4{X: 1, Y: 1, Z: 1, W: 1})
	b := AABB(math4.Vec4{X: -1, Y: 0.5, Z: -1, W: -1}, math4.Vec4{X: 1, Y: 2.5, Z: 1, W: 1})
	c, ok := collide(a, b)
	require.True(t, ok)
	assert.InDelta(t, float32(0.5), c.Penetration, 1e-5)
	assert.InDelta(t, float32(-1), c.Normal.Y, 1e-5)
}

func TestCollideSphereBoundedFloorOutsideRectangleMisses(t *testing.T) {
	floor := BoundedFloor(-2, math4.Vec4{X: -1, Z: -1, W: -1}, math4.Vec4{X: 1, Z: 1, W: 1})
	sphere := Sphere(math4.Vec4{X: 5, Y: -2, Z: 5}, 0.5)
	_, ok := collide(sphere, floor)
	assert.False(t, ok)
}

func TestCollideSphereBoundedFloorInsideRectangleHits(t *testing.T) {
	floor := BoundedFloor(-2, math4.Vec4{X: -1, Z: -1, W: -1}, math4.Vec4{X: 1, Z: 1, W: 1})
	sphere := Sphere(math4.Vec4{Y: -1.7}, 0.5)
	c, ok := collide(sphere, floor)
	require.True(t, ok)
	assert.InDelta(t, float32(1), c.Normal.Y, 1e-5)
}

func TestPhysicsMaterialCombine(t *testing.T) {
	a := PhysicsMaterial{Friction: 0.25, Restitution: 0.2}
	b := PhysicsMaterial{Friction: 1, Restitution: 0.8}
	combined := a.Combine(b)
	assert.InDelta(t, float32(0.5), combined.Friction, 1e-5)
	assert.InDelta(t, float32(0.8), combined.Restitution, 1e-5)
}

func TestCollisionFilterCollidesWith(t *testing.T) {
	a := CollisionFilter{Layer: 1, Mask: 2}
	b := CollisionFilter{Layer: 2, Mask: 1}
	assert.True(t, a.CollidesWith(b))

	c := CollisionFilter{Layer: 4, Mask: 1}
	assert.False(t, a.CollidesWith(c))
}
