package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyTableInsertAndGet(t *testing.T) {
	tbl := newBodyTable()
	k := tbl.insert(RigidBody4D{Mass: 2})
	got, ok := tbl.get(k)
	require.True(t, ok)
	assert.Equal(t, float32(2), got.Mass)
}

func TestBodyTableRemoveInvalidatesStaleKey(t *testing.T) {
	tbl := newBodyTable()
	k := tbl.insert(RigidBody4D{Mass: 1})
	require.True(t, tbl.remove(k))

	_, ok := tbl.get(k)
	assert.False(t, ok)
}

func TestBodyTableReuseBumpsGeneration(t *testing.T) {
	tbl := newBodyTable()
	k1 := tbl.insert(RigidBody4D{Mass: 1})
	tbl.remove(k1)
	k2 := tbl.insert(RigidBody4D{Mass: 2})

	assert.Equal(t, k1.index(), k2.index())
	assert.NotEqual(t, k1, k2)

	_, ok := tbl.get(k1)
	assert.False(t, ok)
	got, ok := tbl.get(k2)
	require.True(t, ok)
	assert.Equal(t, float32(2), got.Mass)
}

func TestBodyTableEachVisitsOccupiedOnly(t *testing.T) {
	tbl := newBodyTable()
	k1 := tbl.insert(RigidBody4D{Mass: 1})
	_ = tbl.insert(RigidBody4D{Mass: 2})
	tbl.remove(k1)

	count := 0
	tbl.each(func(k BodyKey, b *RigidBody4D) { count++ })
	assert.Equal(t, 1, count)
}
