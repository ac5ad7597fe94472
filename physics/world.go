package physics

import (
	"github.com/fourslice/engine/math4"
)

// Config holds the tunable parameters of a PhysicsWorld.
type Config struct {
	Gravity      float32
	JumpVelocity float32
	MaxSubsteps  int
	MaxDt        float32
}

// DefaultConfig matches the scenarios exercised in this package's tests.
func DefaultConfig() Config {
	return Config{Gravity: -20, JumpVelocity: 8, MaxSubsteps: 1, MaxDt: 1.0 / 30.0}
}

// PhysicsWorld owns the rigid bodies, the static geometry, and the
// per-frame collision event buffer.
type PhysicsWorld struct {
	bodies  *bodyTable
	statics []StaticCollider

	config Config
	player *BodyKey
	events []CollisionEvent
}

func NewWorld(config Config) *PhysicsWorld {
	return &PhysicsWorld{bodies: newBodyTable(), config: config}
}

func (w *PhysicsWorld) InsertBody(b RigidBody4D) BodyKey {
	return w.bodies.insert(b)
}

func (w *PhysicsWorld) RemoveBody(k BodyKey) bool {
	if w.player != nil && *w.player == k {
		w.player = nil
	}
	return w.bodies.remove(k)
}

func (w *PhysicsWorld) Body(k BodyKey) (*RigidBody4D, bool) {
	return w.bodies.get(k)
}

func (w *PhysicsWorld) InsertStatic(s StaticCollider) {
	w.statics = append(w.statics, s)
}

func (w *PhysicsWorld) SetPlayerBody(k BodyKey) {
	key := k
	w.player = &key
}

func (w *PhysicsWorld) isPlayer(k BodyKey) bool {
	return w.player != nil && *w.player == k
}

// ApplyPlayerMovement overwrites the player's horizontal velocity
// components; Y is left untouched so gravity integrates normally.
func (w *PhysicsWorld) ApplyPlayerMovement(v math4.Vec4) {
	if w.player == nil {
		return
	}
	body, ok := w.bodies.get(*w.player)
	if !ok {
		return
	}
	body.Velocity.X = v.X
	body.Velocity.Z = v.Z
	body.Velocity.W = v.W
}

// PlayerJump sets the player's vertical velocity to the configured jump
// velocity and clears its grounded flag iff the player is currently
// grounded; otherwise it is a no-op.
func (w *PhysicsWorld) PlayerJump() {
	if w.player == nil {
		return
	}
	body, ok := w.bodies.get(*w.player)
	if !ok || !body.Grounded {
		return
	}
	body.Velocity.Y = w.config.JumpVelocity
	body.Grounded = false
}

func (w *PhysicsWorld) PlayerIsGrounded() bool {
	if w.player == nil {
		return false
	}
	body, ok := w.bodies.get(*w.player)
	return ok && body.Grounded
}

// Events returns the collision events recorded during the most recent Step.
func (w *PhysicsWorld) Events() []CollisionEvent {
	return w.events
}

// Step advances the simulation by dt, capped at config.MaxDt.
func (w *PhysicsWorld) Step(dt float32) {
	if dt > w.config.MaxDt {
		dt = w.config.MaxDt
	}
	w.events = w.events[:0]

	w.integrate(dt)
	w.resolveBodyVsStatic()
	w.resolveBodyVsBody()
	w.updateGrounding()
}

func (w *PhysicsWorld) integrate(dt float32) {
	w.bodies.each(func(k BodyKey, b *RigidBody4D) {
		if b.BodyType == Static {
			return
		}
		if b.BodyType == Dynamic || w.isPlayer(k) {
			b.Velocity.Y += w.config.Gravity * dt
		}
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	})
}

// resolveBodyVsStatic implements step 2 of §4.2: body-vs-static
// collisions, with the player/BoundedFloor edge-fall exemption.
func (w *PhysicsWorld) resolveBodyVsStatic() {
	w.bodies.each(func(k BodyKey, b *RigidBody4D) {
		if b.BodyType == Static {
			return
		}
		for i := range w.statics {
			s := &w.statics[i]
			if !b.Filter.CollidesWith(s.Filter) {
				continue
			}
			if w.isPlayer(k) && b.Collider.Kind == KindAABB && s.Collider.Kind == KindBoundedFloor {
				center := b.Position
				if !withinXZW(center, s.Collider) {
					continue
				}
			}

			contact, ok := collide(b.worldCollider(), s.Collider)
			if !ok {
				continue
			}
			trigger := b.Filter.isTrigger(s.Filter)
			w.events = append(w.events, CollisionEvent{BodyA: k, Contact: contact, IsTrigger: trigger})
			if trigger {
				continue
			}
			mat := b.Material.Combine(s.Material)
			resolveAgainstImmovable(b, contact, mat)
		}
	})
}

// resolveAgainstImmovable pushes b fully out of the contact and reflects
// its normal-aligned velocity, as used for both body-vs-static contacts
// and the static/kinematic-wins sides of body-vs-body contacts.
func resolveAgainstImmovable(b *RigidBody4D, contact Contact, mat PhysicsMaterial) {
	b.Position = b.Position.Add(contact.Normal.Scale(contact.Penetration))

	vn := b.Velocity.Dot(contact.Normal)
	if vn < 0 {
		b.Velocity = b.Velocity.Sub(contact.Normal.Scale(vn * (1 + mat.Restitution)))
	}
	tangent := b.Velocity.Sub(contact.Normal.Scale(b.Velocity.Dot(contact.Normal)))
	normalComponent := b.Velocity.Sub(tangent)
	b.Velocity = normalComponent.Add(tangent.Scale(1 - mat.Friction))
}

// resolveBodyVsBody implements step 3 of §4.2's Static/Kinematic/Dynamic
// resolution matrix over every body pair except static–static ones.
func (w *PhysicsWorld) resolveBodyVsBody() {
	var keys []BodyKey
	w.bodies.each(func(k BodyKey, _ *RigidBody4D) { keys = append(keys, k) })

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			a, ok := w.bodies.get(keys[i])
			if !ok {
				continue
			}
			b, ok := w.bodies.get(keys[j])
			if !ok {
				continue
			}
			if a.BodyType == Static && b.BodyType == Static {
				continue
			}
			if !a.Filter.CollidesWith(b.Filter) {
				continue
			}
			contact, ok := collide(a.worldCollider(), b.worldCollider())
			if !ok {
				continue
			}
			bk := keys[j]
			trigger := a.Filter.isTrigger(b.Filter)
			w.events = append(w.events, CollisionEvent{BodyA: keys[i], BodyB: &bk, Contact: contact, IsTrigger: trigger})
			if trigger {
				continue
			}
			mat := a.Material.Combine(b.Material)
			resolveBodyPair(a, b, contact, mat)
		}
	}
}

// resolveBodyPair applies the Static/Kinematic/Dynamic matrix: against a
// Dynamic body, the other side never moves, so only the dynamic side is
// pushed and bounced. Two Dynamic bodies split the correction by inverse
// mass. A Kinematic body is pushed out of a Static one (static wins); two
// Kinematics (or two bodies already filtered as both Static) never resolve.
func resolveBodyPair(a, b *RigidBody4D, contact Contact, mat PhysicsMaterial) {
	aMovable := a.BodyType == Dynamic
	bMovable := b.BodyType == Dynamic

	switch {
	case aMovable && !bMovable:
		resolveAgainstImmovable(a, contact, mat)
	case !aMovable && bMovable:
		resolveAgainstImmovable(b, Contact{Point: contact.Point, Normal: contact.Normal.Scale(-1), Penetration: contact.Penetration}, mat)
	case aMovable && bMovable:
		invA, invB := a.invMass(), b.invMass()
		total := invA + invB
		if total <= 0 {
			return
		}
		a.Position = a.Position.Add(contact.Normal.Scale(contact.Penetration * invA / total))
		b.Position = b.Position.Sub(contact.Normal.Scale(contact.Penetration * invB / total))

		relVel := a.Velocity.Sub(b.Velocity).Dot(contact.Normal)
		if relVel < 0 {
			impulse := -relVel * (1 + mat.Restitution) / total
			a.Velocity = a.Velocity.Add(contact.Normal.Scale(impulse * invA))
			b.Velocity = b.Velocity.Sub(contact.Normal.Scale(impulse * invB))
		}
	case a.BodyType == Kinematic && b.BodyType == Static:
		resolveAgainstImmovable(a, contact, mat)
	case a.BodyType == Static && b.BodyType == Kinematic:
		resolveAgainstImmovable(b, Contact{Point: contact.Point, Normal: contact.Normal.Scale(-1), Penetration: contact.Penetration}, mat)
	default:
		// Both sides immovable in the sense that neither yields (e.g. two
		// kinematics, or two statics already filtered out above): record
		// only, matching §4.2's matrix.
	}
}

// updateGrounding implements step 4 of §4.2 using the most recent frame's
// events, evaluated per body from the last non-trigger contact involving
// it with an upward-enough normal.
func (w *PhysicsWorld) updateGrounding() {
	w.bodies.each(func(k BodyKey, b *RigidBody4D) {
		b.Grounded = false
	})
	for _, ev := range w.events {
		if ev.IsTrigger {
			continue
		}
		if ev.Contact.Normal.Y > 0.5 {
			if body, ok := w.bodies.get(ev.BodyA); ok && body.Velocity.Y <= 0 {
				body.Grounded = true
			}
		}
		// The normal points from B into A, so B's upward normal is its negation.
		if ev.BodyB != nil && -ev.Contact.Normal.Y > 0.5 {
			if body, ok := w.bodies.get(*ev.BodyB); ok && body.Velocity.Y <= 0 {
				body.Grounded = true
			}
		}
	}
}
