package physics

import "github.com/fourslice/engine/math4"

// RigidBody4D is one simulated body. Static bodies never move under
// PhysicsWorld.Step and are normally registered via InsertStatic instead;
// a Static-typed entry in the body table is skipped by integration and by
// the static-collider pass, and in body-vs-body contacts it is never the
// side that moves.
type RigidBody4D struct {
	Position math4.Vec4
	Velocity math4.Vec4
	Mass     float32

	Material PhysicsMaterial
	BodyType BodyType
	Collider Collider
	Filter   CollisionFilter

	// Grounded is recomputed at the end of every Step from that Step's
	// contacts: true iff any accepted, non-trigger contact had a mostly-up
	// normal for this body and its post-resolution Velocity.Y is <= 0.
	Grounded bool
}

// NewRigidBody constructs a Dynamic body with a unit mass and the default
// collision filter; callers override fields as needed before insertion.
func NewRigidBody(position math4.Vec4, collider Collider, material PhysicsMaterial) RigidBody4D {
	return RigidBody4D{
		Position: position,
		Mass:     1,
		Material: material,
		BodyType: Dynamic,
		Collider: collider,
		Filter:   DefaultFilter(),
	}
}

func (b RigidBody4D) invMass() float32 {
	if b.BodyType != Dynamic || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// worldCollider returns the body's collider translated to its current
// position.
func (b RigidBody4D) worldCollider() Collider {
	return b.Collider.translated(b.Position)
}

// StaticCollider is an immovable obstacle: geometry with a material and a
// collision filter, but no velocity or mass.
type StaticCollider struct {
	Collider Collider
	Material PhysicsMaterial
	Filter   CollisionFilter
}
