package gpu

import (
	"github.com/fourslice/engine/math4"
	"github.com/fourslice/engine/scene"
)

// SlotAllocator hands out dense vertex/tetrahedron-range slots with
// free-list reuse, the same scheme the teacher's GpuBufferManager uses
// for its sector and brick pools.
type SlotAllocator struct {
	Tail uint32
	Free []uint32
}

func (a *SlotAllocator) Alloc() uint32 {
	if len(a.Free) > 0 {
		idx := a.Free[len(a.Free)-1]
		a.Free = a.Free[:len(a.Free)-1]
		return idx
	}
	idx := a.Tail
	a.Tail++
	return idx
}

func (a *SlotAllocator) FreeSlot(idx uint32) {
	a.Free = append(a.Free, idx)
}

// EntityGpuRange records where an entity's vertices and tetrahedra live
// in the shared GPU buffers.
type EntityGpuRange struct {
	VertexOffset      uint32
	VertexCount       uint32
	TetrahedronOffset uint32
	TetrahedronCount  uint32
}

// UploadStaging batches the CPU-side bytes produced from a scene's dirty
// entities this frame, mirroring the teacher's PendingUpdates batching
// mode: rather than issuing one WriteBuffer call per entity, the caller
// collects ranges and writes them together.
type UploadStaging struct {
	VertexAlloc      SlotAllocator
	TetrahedronAlloc SlotAllocator

	ranges map[scene.EntityKey]EntityGpuRange

	VertexBytes      []byte
	TetrahedronBytes []byte
}

func NewUploadStaging() *UploadStaging {
	return &UploadStaging{ranges: make(map[scene.EntityKey]EntityGpuRange)}
}

// Stage appends an entity's current world-space vertices and tetrahedra
// to the staging buffers, (re)using its existing slot range if one was
// already allocated, and records the byte ranges a caller should write to
// the GPU buffers.
func (s *UploadStaging) Stage(key scene.EntityKey, e *scene.Entity) EntityGpuRange {
	verts := e.Shape.Vertices()
	tets := e.Shape.Tetrahedra()

	rng, existing := s.ranges[key]
	if !existing || rng.VertexCount != uint32(len(verts)) {
		rng = EntityGpuRange{
			VertexOffset:      s.VertexAlloc.Alloc(),
			VertexCount:       uint32(len(verts)),
			TetrahedronOffset: s.TetrahedronAlloc.Alloc(),
			TetrahedronCount:  uint32(len(tets)),
		}
	}

	color := math4.Vec4{X: e.Material.R, Y: e.Material.G, Z: e.Material.B, W: e.Material.A}
	for _, v := range verts {
		world := e.Transform.Apply(v)
		s.VertexBytes = append(s.VertexBytes, Vertex4D{Position: world, Color: color}.ToBytes()...)
	}
	for _, tet := range tets {
		s.TetrahedronBytes = append(s.TetrahedronBytes, GpuTetrahedron{
			A: tet.A + rng.VertexOffset, B: tet.B + rng.VertexOffset,
			C: tet.C + rng.VertexOffset, D: tet.D + rng.VertexOffset,
		}.ToBytes()...)
	}

	s.ranges[key] = rng
	return rng
}

// Release frees an entity's vertex/tetrahedron slots, used when its
// owning entity is removed from the scene.
func (s *UploadStaging) Release(key scene.EntityKey) {
	if rng, ok := s.ranges[key]; ok {
		s.VertexAlloc.FreeSlot(rng.VertexOffset)
		s.TetrahedronAlloc.FreeSlot(rng.TetrahedronOffset)
		delete(s.ranges, key)
	}
}

// Reset clears the staged byte buffers between frames without discarding
// slot allocations.
func (s *UploadStaging) Reset() {
	s.VertexBytes = s.VertexBytes[:0]
	s.TetrahedronBytes = s.TetrahedronBytes[:0]
}
