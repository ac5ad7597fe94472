package scene

import (
	"github.com/fourslice/engine/math4"
	"github.com/fourslice/engine/physics"
)

// positionEpsilon is the minimum position delta between a body and its
// entity's transform that triggers a transform-dirty sync; it absorbs
// float rounding noise from repeated physics integration.
const positionEpsilon = 1e-6

// World owns the entity table, a name→key index, and (optionally) the
// physics world whose bodies drive entity transforms.
type World struct {
	entities *entityTable
	byName   map[string]EntityKey
	physics  *physics.PhysicsWorld
}

func NewWorld(phys *physics.PhysicsWorld) *World {
	return &World{
		entities: newEntityTable(),
		byName:   make(map[string]EntityKey),
		physics:  phys,
	}
}

// Insert adds an entity and returns its stable key.
func (w *World) Insert(e Entity) EntityKey {
	k := w.entities.insert(e)
	if e.Name != "" {
		w.byName[e.Name] = k
	}
	return k
}

// Remove deletes an entity and, if it had a backing rigid body, removes
// that body from the physics world too — no orphaned bodies survive.
func (w *World) Remove(k EntityKey) bool {
	ent, ok := w.entities.get(k)
	if !ok {
		return false
	}
	if ent.Name != "" {
		delete(w.byName, ent.Name)
	}
	if ent.BodyKey != nil && w.physics != nil {
		w.physics.RemoveBody(*ent.BodyKey)
	}
	return w.entities.remove(k)
}

func (w *World) Get(k EntityKey) (*Entity, bool) {
	return w.entities.get(k)
}

func (w *World) ByName(name string) (EntityKey, bool) {
	k, ok := w.byName[name]
	return k, ok
}

// Each visits every live entity; fn must not insert or remove entities.
func (w *World) Each(fn func(EntityKey, *Entity)) {
	w.entities.each(fn)
}

// AttachBody associates an existing entity with a rigid body key.
func (w *World) AttachBody(k EntityKey, body physics.BodyKey) {
	if ent, ok := w.entities.get(k); ok {
		ent.BodyKey = &body
	}
}

// Physics returns the backing physics world, or nil if this scene has none.
func (w *World) Physics() *physics.PhysicsWorld {
	return w.physics
}

// Update runs the per-frame sequencing the World Bridge specifies:
// step physics, sync transforms from bodies (marking dirty on drift past
// positionEpsilon), then hand the caller the dirty subset via dirtyFn,
// then clear every dirty flag.
func (w *World) Update(dt float32, dirtyFn func(EntityKey, *Entity)) {
	if w.physics != nil {
		w.physics.Step(dt)
	}

	w.entities.each(func(k EntityKey, e *Entity) {
		if e.BodyKey == nil || w.physics == nil {
			return
		}
		body, ok := w.physics.Body(*e.BodyKey)
		if !ok {
			return
		}
		if positionDelta(e.Transform.Position, body.Position) > positionEpsilon {
			e.Transform.Position = body.Position
			e.Dirty |= DirtyTransform
		}
	})

	if dirtyFn != nil {
		w.entities.each(func(k EntityKey, e *Entity) {
			if e.Dirty != 0 {
				dirtyFn(k, e)
			}
		})
	}

	w.entities.each(func(_ EntityKey, e *Entity) {
		e.clearDirty()
	})
}

func positionDelta(a, b math4.Vec4) float32 {
	return a.Sub(b).Length()
}
