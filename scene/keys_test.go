package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityTableReuseBumpsGeneration(t *testing.T) {
	tbl := newEntityTable()
	k1 := tbl.insert(Entity{Name: "a"})
	tbl.remove(k1)
	k2 := tbl.insert(Entity{Name: "b"})

	assert.Equal(t, k1.index(), k2.index())
	assert.NotEqual(t, k1, k2)

	_, ok := tbl.get(k1)
	assert.False(t, ok)
	got, ok := tbl.get(k2)
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)
}
