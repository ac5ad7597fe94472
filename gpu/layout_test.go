package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fourslice/engine/math4"
)

func TestVertex4DToBytesSize(t *testing.T) {
	v := Vertex4D{Position: math4.Vec4{X: 1, Y: 2, Z: 3, W: 4}, Color: math4.Vec4{X: 0.1, Y: 0.2, Z: 0.3, W: 1}}
	buf := v.ToBytes()
	assert.Len(t, buf, Vertex4DSize)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32])))
}

func TestGpuTetrahedronToBytes(t *testing.T) {
	tet := GpuTetrahedron{A: 1, B: 2, C: 3, D: 4}
	buf := tet.ToBytes()
	assert.Len(t, buf, GpuTetrahedronSize)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[0:4]))
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(buf[12:16]))
}

func TestIndirectDrawArgsToBytes(t *testing.T) {
	args := IndirectDrawArgs{VertexCount: 9, InstanceCount: 1}
	buf := args.ToBytes()
	assert.Len(t, buf, IndirectDrawArgsSize)
	assert.Equal(t, uint32(9), binary.LittleEndian.Uint32(buf[0:4]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[4:8]))
}

func TestSliceParamsToBytesSize(t *testing.T) {
	p := SliceParams{SliceW: 0.5, CameraMatrix: math4.IdentityMatrix()}
	buf := p.ToBytes()
	assert.Len(t, buf, SliceParamsSize)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
}

func TestVertex3DToBytesSize(t *testing.T) {
	v := Vertex3D{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, Color: [4]float32{1, 1, 1, 1}}
	buf := v.ToBytes()
	assert.Len(t, buf, Vertex3DSize)
}

func TestClampTriangleCapacity(t *testing.T) {
	assert.Equal(t, uint32(10), ClampTriangleCapacity(10))
	huge := ClampTriangleCapacity(1 << 30)
	assert.Less(t, huge, uint32(1<<30))
}
