package math4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTesseractRejectsNonPositiveSize(t *testing.T) {
	_, err := NewTesseract(0)
	require.Error(t, err)
	_, err = NewTesseract(-1)
	require.Error(t, err)
}

func TestNewTesseractVertexCount(t *testing.T) {
	s, err := NewTesseract(2)
	require.NoError(t, err)
	assert.Len(t, s.Vertices(), 16)
	assert.NotEmpty(t, s.Tetrahedra())

	for _, v := range s.Vertices() {
		assert.InDelta(t, float32(1), float32(absf(v.X)), 1e-6)
		assert.InDelta(t, float32(1), float32(absf(v.Y)), 1e-6)
		assert.InDelta(t, float32(1), float32(absf(v.Z)), 1e-6)
		assert.InDelta(t, float32(1), float32(absf(v.W)), 1e-6)
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestNewTesseractTetrahedraCoverBoundaryCells(t *testing.T) {
	s, err := NewTesseract(2)
	require.NoError(t, err)
	// Eight cubic boundary cells, each Kuhn-triangulated into six
	// tetrahedra: two boundary facets from each of the 4! = 24 simplices.
	assert.Len(t, s.Tetrahedra(), 48)
}

func TestNewHyperplaneGridRejectsBadParams(t *testing.T) {
	_, err := NewHyperplaneGrid(0, 1, 0)
	require.Error(t, err)
	_, err = NewHyperplaneGrid(4, 0, 0)
	require.Error(t, err)
}

func TestNewHyperplaneGridShape(t *testing.T) {
	s, err := NewHyperplaneGrid(4, 10, -2)
	require.NoError(t, err)
	assert.Len(t, s.Vertices(), 2*5*5)
	assert.Len(t, s.Tetrahedra(), 4*4*2)
	for _, v := range s.Vertices() {
		assert.InDelta(t, float32(-2), v.Y, 1e-6)
		assert.Less(t, absf(v.W), float32(0.01))
	}
}
