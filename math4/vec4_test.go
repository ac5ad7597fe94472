package math4

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec4NormalizePreservesZero(t *testing.T) {
	z := Vec4{}
	assert.Equal(t, Vec4{}, z.Normalize())
}

func TestVec4NormalizeUnitLength(t *testing.T) {
	v := Vec4{X: 3, Y: 4}
	n := v.Normalize()
	assert.InDelta(t, float64(1), float64(n.Length()), 1e-6)
}

func TestVec4Dot(t *testing.T) {
	a := Vec4{X: 1, Y: 2, Z: 3, W: 4}
	b := Vec4{X: 5, Y: 6, Z: 7, W: 8}
	assert.Equal(t, float32(1*5+2*6+3*7+4*8), a.Dot(b))
}

func TestMix(t *testing.T) {
	a := Vec4{X: 0}
	b := Vec4{X: 10}
	assert.Equal(t, Vec4{X: 5}, Mix(a, b, 0.5))
}
