package physics

import "github.com/fourslice/engine/math4"

// collide dispatches on the (a, b) collider kinds and returns a contact
// with Normal pointing from b into a, plus whether they overlap at all.
// The BoundedFloor variant is only meaningful against a Sphere or AABB and
// falls through to false for any other pairing.
func collide(a, b Collider) (Contact, bool) {
	switch a.Kind {
	case KindSphere:
		switch b.Kind {
		case KindSphere:
			return collideSphereSphere(a, b)
		case KindAABB:
			return collideSphereAABB(a, b)
		case KindPlane:
			return collideSpherePlane(a, b)
		case KindBoundedFloor:
			return collideSphereBoundedFloor(a, b)
		}
	case KindAABB:
		switch b.Kind {
		case KindSphere:
			c, ok := collideSphereAABB(b, a)
			return flip(c), ok
		case KindAABB:
			return collideAABBAABB(a, b)
		case KindPlane:
			return collideAABBPlane(a, b)
		case KindBoundedFloor:
			return collideAABBBoundedFloor(a, b)
		}
	case KindPlane:
		switch b.Kind {
		case KindSphere:
			c, ok := collideSpherePlane(b, a)
			return flip(c), ok
		case KindAABB:
			c, ok := collideAABBPlane(b, a)
			return flip(c), ok
		}
	case KindBoundedFloor:
		switch b.Kind {
		case KindSphere:
			c, ok := collideSphereBoundedFloor(b, a)
			return flip(c), ok
		case KindAABB:
			c, ok := collideAABBBoundedFloor(b, a)
			return flip(c), ok
		}
	}
	return Contact{}, false
}

func flip(c Contact) Contact {
	c.Normal = c.Normal.Scale(-1)
	return c
}

func collideSphereSphere(a, b Collider) (Contact, bool) {
	delta := a.Center.Sub(b.Center)
	dist := delta.Length()
	radiusSum := a.Radius + b.Radius
	if dist >= radiusSum {
		return Contact{}, false
	}
	var normal math4.Vec4
	if dist > 1e-8 {
		normal = delta.Scale(1 / dist)
	} else {
		normal = math4.Vec4{Y: 1}
	}
	point := b.Center.Add(normal.Scale(b.Radius))
	return Contact{Point: point, Normal: normal, Penetration: radiusSum - dist}, true
}

func closestPointOnAABB(min, max, p math4.Vec4) math4.Vec4 {
	return math4.Vec4{
		X: clampf(p.X, min.X, max.X),
		Y: clampf(p.Y, min.Y, max.Y),
		Z: clampf(p.Z, min.Z, max.Z),
		W: clampf(p.W, min.W, max.W),
	}
}

func collideSphereAABB(sphere, box Collider) (Contact, bool) {
	closest := closestPointOnAABB(box.Min, box.Max, sphere.Center)
	delta := sphere.Center.Sub(closest)
	dist := delta.Length()
	if dist >= sphere.Radius {
		return Contact{}, false
	}
	var normal math4.Vec4
	if dist > 1e-8 {
		normal = delta.Scale(1 / dist)
	} else {
		normal = math4.Vec4{Y: 1}
	}
	return Contact{Point: closest, Normal: normal, Penetration: sphere.Radius - dist}, true
}

func collideSpherePlane(sphere, plane Collider) (Contact, bool) {
	dist := sphere.Center.Dot(plane.Normal) - plane.D
	if dist >= sphere.Radius {
		return Contact{}, false
	}
	point := sphere.Center.Sub(plane.Normal.Scale(dist))
	return Contact{Point: point, Normal: plane.Normal, Penetration: sphere.Radius - dist}, true
}

func collideAABBAABB(a, b Collider) (Contact, bool) {
	overlapX := minf(a.Max.X, b.Max.X) - maxf(a.Min.X, b.Min.X)
	overlapY := minf(a.Max.Y, b.Max.Y) - maxf(a.Min.Y, b.Min.Y)
	overlapZ := minf(a.Max.Z, b.Max.Z) - maxf(a.Min.Z, b.Min.Z)
	overlapW := minf(a.Max.W, b.Max.W) - maxf(a.Min.W, b.Min.W)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 || overlapW <= 0 {
		return Contact{}, false
	}

	// Separating axis with minimum overlap determines the contact normal.
	penetration := overlapX
	normal := math4.Vec4{X: 1}
	if overlapY < penetration {
		penetration = overlapY
		normal = math4.Vec4{Y: 1}
	}
	if overlapZ < penetration {
		penetration = overlapZ
		normal = math4.Vec4{Z: 1}
	}
	if overlapW < penetration {
		penetration = overlapW
		normal = math4.Vec4{W: 1}
	}

	centerA := a.Min.Add(a.Max).Scale(0.5)
	centerB := b.Min.Add(b.Max).Scale(0.5)
	if centerA.Component(axisOf(normal))-centerB.Component(axisOf(normal)) < 0 {
		normal = normal.Scale(-1)
	}

	point := closestPointOnAABB(b.Min, b.Max, centerA)
	return Contact{Point: point, Normal: normal, Penetration: penetration}, true
}

func axisOf(unit math4.Vec4) int {
	switch {
	case unit.X != 0:
		return 0
	case unit.Y != 0:
		return 1
	case unit.Z != 0:
		return 2
	default:
		return 3
	}
}

func collideAABBPlane(box, plane Collider) (Contact, bool) {
	center := box.Min.Add(box.Max).Scale(0.5)
	half := box.halfExtents()
	// Project the half-extents onto the plane normal to find the support
	// point nearest the plane.
	radius := absf(half.X*plane.Normal.X) + absf(half.Y*plane.Normal.Y) +
		absf(half.Z*plane.Normal.Z) + absf(half.W*plane.Normal.W)
	dist := center.Dot(plane.Normal) - plane.D
	if dist >= radius {
		return Contact{}, false
	}
	point := center.Sub(plane.Normal.Scale(dist))
	return Contact{Point: point, Normal: plane.Normal, Penetration: radius - dist}, true
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// collideSphereBoundedFloor treats the floor as a Y=FloorY plane clipped to
// the XZW rectangle; outside the rectangle the sphere falls through (no
// contact), matching the edge-fall behavior the world step special-cases
// for the player.
func collideSphereBoundedFloor(sphere, floor Collider) (Contact, bool) {
	if !withinXZW(sphere.Center, floor) {
		return Contact{}, false
	}
	dist := sphere.Center.Y - floor.FloorY
	if dist >= sphere.Radius || dist <= -sphere.Radius {
		return Contact{}, false
	}
	normal := math4.Vec4{Y: 1}
	point := sphere.Center
	point.Y = floor.FloorY
	return Contact{Point: point, Normal: normal, Penetration: sphere.Radius - dist}, true
}

func collideAABBBoundedFloor(box, floor Collider) (Contact, bool) {
	center := box.Min.Add(box.Max).Scale(0.5)
	if !withinXZW(center, floor) {
		return Contact{}, false
	}
	halfY := box.halfExtents().Y
	dist := center.Y - floor.FloorY
	if dist >= halfY || dist <= -halfY {
		return Contact{}, false
	}
	normal := math4.Vec4{Y: 1}
	point := center
	point.Y = floor.FloorY
	return Contact{Point: point, Normal: normal, Penetration: halfY - dist}, true
}

func withinXZW(p math4.Vec4, floor Collider) bool {
	return p.X >= floor.MinXZW.X && p.X <= floor.MaxXZW.X &&
		p.Z >= floor.MinXZW.Z && p.Z <= floor.MaxXZW.Z &&
		p.W >= floor.MinXZW.W && p.W <= floor.MaxXZW.W
}
