// Package physics simulates 4D rigid bodies: integration, collision
// detection against a closed set of collider shapes, and resolution with a
// friction+restitution material model and a hybrid kinematic/dynamic player
// rule.
package physics

import (
	"math"

	"github.com/fourslice/engine/math4"
)

// PhysicsMaterial describes how a body's surface responds to contact.
type PhysicsMaterial struct {
	Friction    float32 // [0,1]
	Restitution float32 // [0,1]
}

// Combine applies the combination rule: friction is the geometric mean of
// the two values, restitution is their maximum.
func (m PhysicsMaterial) Combine(other PhysicsMaterial) PhysicsMaterial {
	return PhysicsMaterial{
		Friction:    float32(math.Sqrt(float64(m.Friction * other.Friction))),
		Restitution: maxf(m.Restitution, other.Restitution),
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	return minf(maxf(v, lo), hi)
}

// BodyType distinguishes how a body is integrated and how it participates
// in collision resolution.
type BodyType int

const (
	Static BodyType = iota
	Dynamic
	Kinematic
)

// CollisionLayer is a 32-bit mask identifying which layer(s) a body
// belongs to. TriggerLayer is reserved: a contact where either side's
// filter has this bit set is a trigger contact (no position/velocity
// correction, event only).
type CollisionLayer uint32

const TriggerLayer CollisionLayer = 1 << 31

// CollisionFilter controls which pairs of bodies are eligible to collide.
// Two filters collide iff a.Mask includes b.Layer and b.Mask includes
// a.Layer.
type CollisionFilter struct {
	Layer CollisionLayer
	Mask  CollisionLayer
}

// DefaultFilter collides with everything and belongs to no special layer.
func DefaultFilter() CollisionFilter {
	return CollisionFilter{Layer: 1, Mask: 0xFFFFFFFF}
}

func (a CollisionFilter) CollidesWith(b CollisionFilter) bool {
	return a.Mask&b.Layer == b.Layer && b.Mask&a.Layer == a.Layer
}

func (a CollisionFilter) isTrigger(b CollisionFilter) bool {
	return a.Layer&TriggerLayer != 0 || b.Layer&TriggerLayer != 0
}

// ColliderKind tags which variant a Collider value holds.
type ColliderKind int

const (
	KindSphere ColliderKind = iota
	KindAABB
	KindPlane
	KindBoundedFloor
)

// Collider is a closed tagged variant over the four 4D collider shapes the
// spec names. Only the fields relevant to Kind are meaningful.
type Collider struct {
	Kind ColliderKind

	// Sphere
	Center math4.Vec4
	Radius float32

	// AABB
	Min, Max math4.Vec4

	// Plane
	Normal math4.Vec4
	D      float32

	// BoundedFloor: a horizontal plane at Y with a finite XZW rectangle.
	FloorY      float32
	MinXZW      math4.Vec4
	MaxXZW      math4.Vec4
}

func Sphere(center math4.Vec4, radius float32) Collider {
	return Collider{Kind: KindSphere, Center: center, Radius: radius}
}

func AABB(min, max math4.Vec4) Collider {
	return Collider{Kind: KindAABB, Min: min, Max: max}
}

func Plane(normal math4.Vec4, d float32) Collider {
	return Collider{Kind: KindPlane, Normal: normal.Normalize(), D: d}
}

func BoundedFloor(y float32, minXZW, maxXZW math4.Vec4) Collider {
	return Collider{Kind: KindBoundedFloor, FloorY: y, MinXZW: minXZW, MaxXZW: maxXZW}
}

// translated returns the collider re-centered at the given world position;
// used by the body-vs-static and body-vs-body dispatch to place a body's
// collider without mutating the stored shape.
func (c Collider) translated(pos math4.Vec4) Collider {
	switch c.Kind {
	case KindSphere:
		c.Center = pos
	case KindAABB:
		half := c.Max.Sub(c.Min).Scale(0.5)
		c.Min = pos.Sub(half)
		c.Max = pos.Add(half)
	}
	return c
}

func (c Collider) halfExtents() math4.Vec4 {
	return c.Max.Sub(c.Min).Scale(0.5)
}

// Contact describes a single collision point. Normal points from B into A.
type Contact struct {
	Point       math4.Vec4
	Normal      math4.Vec4
	Penetration float32
}

// CollisionEvent is recorded for every accepted contact in a frame.
type CollisionEvent struct {
	BodyA     BodyKey
	BodyB     *BodyKey // nil for body-vs-static contacts
	Contact   Contact
	IsTrigger bool
}
