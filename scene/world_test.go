package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourslice/engine/math4"
	"github.com/fourslice/engine/physics"
)

func testShape(t *testing.T) math4.ConvexShape4D {
	t.Helper()
	s, err := math4.NewTesseract(1)
	require.NoError(t, err)
	return s
}

func TestWorldInsertAndGet(t *testing.T) {
	w := NewWorld(nil)
	e := NewEntity(testShape(t), Material{R: 1})
	k := w.Insert(e)

	got, ok := w.Get(k)
	require.True(t, ok)
	assert.Equal(t, AllDirty, got.Dirty)
}

func TestWorldByName(t *testing.T) {
	w := NewWorld(nil)
	e := NewEntity(testShape(t), Material{})
	e.Name = "hero"
	k := w.Insert(e)

	got, ok := w.ByName("hero")
	require.True(t, ok)
	assert.Equal(t, k, got)
}

func TestWorldRemoveEvictsBackingBody(t *testing.T) {
	phys := physics.NewWorld(physics.DefaultConfig())
	bk := phys.InsertBody(physics.NewRigidBody(math4.Vec4{}, physics.Sphere(math4.Vec4{}, 1), physics.PhysicsMaterial{}))

	w := NewWorld(phys)
	e := NewEntity(testShape(t), Material{})
	e.BodyKey = &bk
	k := w.Insert(e)

	require.True(t, w.Remove(k))
	_, stillThere := phys.Body(bk)
	assert.False(t, stillThere)
}

func TestWorldUpdateSyncsTransformFromBody(t *testing.T) {
	phys := physics.NewWorld(physics.DefaultConfig())
	body := physics.NewRigidBody(math4.Vec4{Y: 10}, physics.Sphere(math4.Vec4{}, 0.5), physics.PhysicsMaterial{})
	bk := phys.InsertBody(body)

	w := NewWorld(phys)
	e := NewEntity(testShape(t), Material{})
	e.BodyKey = &bk
	e.Dirty = 0
	k := w.Insert(e)

	// Update clears every flag once dirtyFn has run, so the Transform bit
	// set by the body sync is observed from inside dirtyFn.
	var dirtySeen DirtyFlag
	w.Update(1.0/60.0, func(ek EntityKey, ent *Entity) {
		if ek == k {
			dirtySeen = ent.Dirty
		}
	})

	got, _ := w.Get(k)
	assert.NotEqual(t, float32(10), got.Transform.Position.Y)
	assert.NotZero(t, dirtySeen&DirtyTransform)
}

func TestWorldUpdateInvokesDirtyFnThenClears(t *testing.T) {
	w := NewWorld(nil)
	k := w.Insert(NewEntity(testShape(t), Material{}))

	var seen []EntityKey
	w.Update(1.0/60.0, func(ek EntityKey, _ *Entity) { seen = append(seen, ek) })
	assert.Equal(t, []EntityKey{k}, seen)

	got, _ := w.Get(k)
	assert.Zero(t, got.Dirty)
}
