package physics

import (
	"testing"

	"github.com/fourslice/engine/math4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldFallAndRest(t *testing.T) {
	w := NewWorld(Config{Gravity: -20, MaxSubsteps: 1, MaxDt: 1})
	w.InsertStatic(StaticCollider{
		Collider: BoundedFloor(-2, math4.Vec4{X: -50, Z: -50, W: -50}, math4.Vec4{X: 50, Z: 50, W: 50}),
		Material: PhysicsMaterial{Friction: 0.5, Restitution: 0},
		Filter:   DefaultFilter(),
	})

	body := NewRigidBody(math4.Vec4{Y: 0},
		AABB(math4.Vec4{X: -1, Y: -1, Z: -1, W: -1}, math4.Vec4{X: 1, Y: 1, Z: 1, W: 1}),
		PhysicsMaterial{Friction: 0.5, Restitution: 0})

	w.InsertBody(body)

	const dt = 1.0 / 60.0
	var k BodyKey
	w.bodies.each(func(key BodyKey, _ *RigidBody4D) { k = key })

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	got, ok := w.Body(k)
	require.True(t, ok)
	assert.InDelta(t, float32(-1), got.Position.Y, 0.011)
	assert.InDelta(t, float32(0), got.Velocity.Y, 0.011)
}

func TestWorldPlayerJump(t *testing.T) {
	w := NewWorld(Config{Gravity: -20, JumpVelocity: 8, MaxSubsteps: 1, MaxDt: 1})
	w.InsertStatic(StaticCollider{
		Collider: BoundedFloor(-0.5, math4.Vec4{X: -50, Z: -50, W: -50}, math4.Vec4{X: 50, Z: 50, W: 50}),
		Material: PhysicsMaterial{Friction: 0, Restitution: 0},
		Filter:   DefaultFilter(),
	})

	player := NewRigidBody(math4.Vec4{Y: 0}, Sphere(math4.Vec4{}, 0.5), PhysicsMaterial{})
	player.BodyType = Kinematic
	key := w.InsertBody(player)
	w.SetPlayerBody(key)

	const dt = 1.0 / 60.0
	w.Step(dt)
	assert.True(t, w.PlayerIsGrounded())

	w.PlayerJump()
	assert.False(t, w.PlayerIsGrounded())

	maxY := float32(0)
	for i := 0; i < 60; i++ {
		w.Step(dt)
		body, _ := w.Body(key)
		if body.Position.Y > maxY {
			maxY = body.Position.Y
		}
	}

	assert.Greater(t, maxY, float32(1.4))
	assert.Less(t, maxY, float32(1.8))
}

func TestWorldKinematicVsStaticBody(t *testing.T) {
	w := NewWorld(Config{Gravity: 0, MaxSubsteps: 1, MaxDt: 1})

	static := NewRigidBody(math4.Vec4{}, Sphere(math4.Vec4{}, 1), PhysicsMaterial{})
	static.BodyType = Static
	w.InsertBody(static)

	kinematic := NewRigidBody(math4.Vec4{X: 0.5}, Sphere(math4.Vec4{}, 1), PhysicsMaterial{})
	kinematic.BodyType = Kinematic
	key := w.InsertBody(kinematic)

	w.Step(1.0 / 60.0)

	got, ok := w.Body(key)
	require.True(t, ok)
	dist := got.Position.Sub(math4.Vec4{}).Length()
	assert.GreaterOrEqual(t, dist, float32(2)-1e-3)
}

func TestWorldEdgeFall(t *testing.T) {
	w := NewWorld(Config{Gravity: -20, MaxSubsteps: 1, MaxDt: 1})
	w.InsertStatic(StaticCollider{
		Collider: BoundedFloor(-2, math4.Vec4{X: -1, Z: -1, W: -1}, math4.Vec4{X: 1, Z: 1, W: 1}),
		Material: PhysicsMaterial{},
		Filter:   DefaultFilter(),
	})

	player := NewRigidBody(math4.Vec4{X: 5, Y: 0, Z: 5},
		AABB(math4.Vec4{X: -0.5, Y: -0.5, Z: -0.5, W: -0.5}, math4.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5}),
		PhysicsMaterial{})
	player.BodyType = Kinematic
	key := w.InsertBody(player)
	w.SetPlayerBody(key)

	const dt = 1.0 / 60.0
	prevY := float32(0)
	for i := 0; i < 30; i++ {
		w.Step(dt)
		body, _ := w.Body(key)
		assert.Less(t, body.Position.Y, prevY-1e-9)
		prevY = body.Position.Y
		assert.False(t, w.PlayerIsGrounded())
	}

	for _, ev := range w.Events() {
		assert.NotEqual(t, key, ev.BodyA)
	}
}
