// Package gpu owns the compute/render pipeline that turns a 4D scene into
// a 3D triangle mesh each frame: byte-exact GPU buffer layouts, dirty
// tracked uploads, and the compute-dispatch/indirect-draw sequencing.
package gpu

import (
	"encoding/binary"
	"math"

	"github.com/fourslice/engine/math4"
)

const (
	// Vertex4DSize is position (16B) + color (16B).
	Vertex4DSize = 32
	// GpuTetrahedronSize is four u32 vertex indices.
	GpuTetrahedronSize = 16
	// SliceParamsSize matches the WGSL uniform's std140-style padding:
	// slice_w (4) + pad (12) + camera_position (16) + camera_matrix (64) +
	// tetrahedron_count (4) + pad (28).
	SliceParamsSize = 128
	// Vertex3DSize is position+pad (16B) + normal+pad (16B) + color (16B).
	Vertex3DSize = 48
	// CounterSize is a single 32-bit atomic vertex counter.
	CounterSize = 4
	// IndirectDrawArgsSize is (vertex_count, instance_count, first_vertex,
	// first_instance), four u32s.
	IndirectDrawArgsSize = 16

	// maxStorageBufferBytes is the conservative device limit this engine
	// targets; output capacity is clamped against it divided by
	// 3*Vertex3DSize per §4.3.2.
	maxStorageBufferBytes = 128 * 1024 * 1024
)

func putFloat32(buf []byte, offset int, v float32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(v))
}

func putVec4(buf []byte, offset int, v math4.Vec4) {
	putFloat32(buf, offset, v.X)
	putFloat32(buf, offset+4, v.Y)
	putFloat32(buf, offset+8, v.Z)
	putFloat32(buf, offset+12, v.W)
}

func putUint32(buf []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], v)
}

// Vertex4D is the slicing compute kernel's per-vertex input.
type Vertex4D struct {
	Position math4.Vec4
	Color    math4.Vec4
}

func (v Vertex4D) ToBytes() []byte {
	buf := make([]byte, Vertex4DSize)
	putVec4(buf, 0, v.Position)
	putVec4(buf, 16, v.Color)
	return buf
}

// GpuTetrahedron mirrors math4.Tetrahedron for GPU consumption.
type GpuTetrahedron struct {
	A, B, C, D uint32
}

func (t GpuTetrahedron) ToBytes() []byte {
	buf := make([]byte, GpuTetrahedronSize)
	putUint32(buf, 0, t.A)
	putUint32(buf, 4, t.B)
	putUint32(buf, 8, t.C)
	putUint32(buf, 12, t.D)
	return buf
}

// SliceParams is the compute kernel's uniform: slice plane, camera state,
// and how many tetrahedra to process.
type SliceParams struct {
	SliceW            float32
	CameraPosition    math4.Vec4
	CameraMatrix      math4.Matrix4
	TetrahedronCount  uint32
}

func (p SliceParams) ToBytes() []byte {
	buf := make([]byte, SliceParamsSize)
	putFloat32(buf, 0, p.SliceW)
	putVec4(buf, 16, p.CameraPosition)
	for col := 0; col < 4; col++ {
		putVec4(buf, 32+col*16, p.CameraMatrix.Column(col))
	}
	putUint32(buf, 96, p.TetrahedronCount)
	return buf
}

// Vertex3D is the compute kernel's per-triangle-vertex output, consumed
// directly by the rasterization vertex shader.
type Vertex3D struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

func (v Vertex3D) ToBytes() []byte {
	buf := make([]byte, Vertex3DSize)
	putFloat32(buf, 0, v.Position[0])
	putFloat32(buf, 4, v.Position[1])
	putFloat32(buf, 8, v.Position[2])
	putFloat32(buf, 16, v.Normal[0])
	putFloat32(buf, 20, v.Normal[1])
	putFloat32(buf, 24, v.Normal[2])
	putFloat32(buf, 32, v.Color[0])
	putFloat32(buf, 36, v.Color[1])
	putFloat32(buf, 40, v.Color[2])
	putFloat32(buf, 44, v.Color[3])
	return buf
}

// IndirectDrawArgs is the indirect-draw buffer's layout.
type IndirectDrawArgs struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

func (a IndirectDrawArgs) ToBytes() []byte {
	buf := make([]byte, IndirectDrawArgsSize)
	putUint32(buf, 0, a.VertexCount)
	putUint32(buf, 4, a.InstanceCount)
	putUint32(buf, 8, a.FirstVertex)
	putUint32(buf, 12, a.FirstInstance)
	return buf
}

// FrameUniformsSize is projection (64) + light_direction (16) +
// w_tint_scale (4) + pad (12).
const FrameUniformsSize = 96

// FrameUniforms carries the rasterization pass's per-frame perspective
// projection, light direction, and W-depth tint scale — kept separate
// from SliceParams so the compute uniform's layout stays exactly what
// §4.3.2 specifies.
type FrameUniforms struct {
	Projection    math4.Matrix4
	LightDirection math4.Vec4
	WTintScale    float32
}

func (u FrameUniforms) ToBytes() []byte {
	buf := make([]byte, FrameUniformsSize)
	for col := 0; col < 4; col++ {
		putVec4(buf, col*16, u.Projection.Column(col))
	}
	putVec4(buf, 64, u.LightDirection)
	putFloat32(buf, 80, u.WTintScale)
	return buf
}

// ClampTriangleCapacity enforces §4.3.2's device-size contract: the output
// triangle ring must fit the device's maximum storage buffer size.
func ClampTriangleCapacity(requested uint32) uint32 {
	maxTriangles := uint32(maxStorageBufferBytes / (3 * Vertex3DSize))
	if requested > maxTriangles {
		return maxTriangles
	}
	return requested
}
