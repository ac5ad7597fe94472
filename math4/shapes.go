package math4

import (
	"fmt"
	"sort"

	"github.com/fourslice/engine"
)

// Tetrahedron is four indices into an owning shape's vertex list.
type Tetrahedron struct {
	A, B, C, D uint32
}

// ConvexShape4D is the capability any shape the slicing pipeline consumes
// must expose: an ordered vertex list and its tetrahedral decomposition.
// Implementations must be immutable once published and safe for concurrent
// read — the same shape instance may be referenced by many entities.
type ConvexShape4D interface {
	Vertices() []Vec4
	Tetrahedra() []Tetrahedron
}

// shape is the trivial immutable implementation both builders return.
type shape struct {
	vertices    []Vec4
	tetrahedra  []Tetrahedron
}

func (s *shape) Vertices() []Vec4          { return s.vertices }
func (s *shape) Tetrahedra() []Tetrahedron { return s.tetrahedra }

// NewTesseract builds a 4D hypercube of the given side length, centered on
// the origin: 16 signed-coordinate vertices, with each of its eight cubic
// boundary cells Kuhn-triangulated into six tetrahedra (48 in all), the
// triangulations agreeing across shared faces.
func NewTesseract(size float32) (ConvexShape4D, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: math4: NewTesseract: size must be positive, got %v", fourslice.ErrInvalidParameter, size)
	}
	half := size / 2

	// 16 vertices, one per sign combination of (x,y,z,w).
	verts := make([]Vec4, 16)
	for i := 0; i < 16; i++ {
		sign := func(bit int) float32 {
			if i&(1<<bit) != 0 {
				return half
			}
			return -half
		}
		verts[i] = Vec4{X: sign(0), Y: sign(1), Z: sign(2), W: sign(3)}
	}

	// Kuhn triangulation of the 4-cube: for each of the 4! orderings of
	// axes, the path of corners 0, e_p1, e_p1+e_p2, ..., 15 spans one of
	// the 24 4-simplices that tile the tesseract. Each such simplex has
	// exactly two facets on the boundary: dropping corner 15 leaves a
	// tetrahedron in the cell where axis p4 is -half, dropping corner 0
	// leaves one in the cell where axis p1 is +half. Together they are the
	// 48 tetrahedra that tile the eight boundary cells, which is the 3D
	// surface the hyperplane slice intersects. The canonical-sort dedup
	// below is defensive (this construction never produces a duplicate).
	perms := permutations([4]int{0, 1, 2, 3})
	seen := make(map[[4]uint32]bool)
	var tets []Tetrahedron
	for _, p := range perms {
		var path [5]uint32
		cur := 0
		for k := 0; k < 4; k++ {
			cur |= 1 << uint(p[k])
			path[k+1] = uint32(cur)
		}
		for _, idx := range [2][4]uint32{
			{path[0], path[1], path[2], path[3]},
			{path[1], path[2], path[3], path[4]},
		} {
			key := canonicalKey(idx)
			if seen[key] {
				continue
			}
			seen[key] = true
			tets = append(tets, Tetrahedron{A: idx[0], B: idx[1], C: idx[2], D: idx[3]})
		}
	}

	return &shape{vertices: verts, tetrahedra: tets}, nil
}

func canonicalKey(idx [4]uint32) [4]uint32 {
	sorted := idx
	sort.Slice(sorted[:], func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

func permutations(axes [4]int) [][4]int {
	var out [][4]int
	var rec func(prefix []int, rest []int)
	rec = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			var p [4]int
			copy(p[:], prefix)
			out = append(out, p)
			return
		}
		for i := range rest {
			next := append(append([]int{}, prefix...), rest[i])
			remain := append(append([]int{}, rest[:i]...), rest[i+1:]...)
			rec(next, remain)
		}
	}
	rec(nil, axes[:])
	return out
}

// NewHyperplaneGrid builds a finite n x n lattice at Y=y0, spanning
// [-halfExtent, halfExtent] in X and Z, with a vanishingly small W-extent
// so the slicing plane picks it up as a thin, nearly-flat volume. Each quad
// of the lattice is split into two tetrahedra.
func NewHyperplaneGrid(n int, halfExtent, y0 float32) (ConvexShape4D, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: math4: NewHyperplaneGrid: n must be >= 1, got %d", fourslice.ErrInvalidParameter, n)
	}
	if halfExtent <= 0 {
		return nil, fmt.Errorf("%w: math4: NewHyperplaneGrid: halfExtent must be positive, got %v", fourslice.ErrInvalidParameter, halfExtent)
	}
	const wOffset = 1e-3

	cells := n + 1
	verts := make([]Vec4, 0, cells*cells*2)
	// Two W-layers (near/far) so each quad becomes a finite-thickness slab.
	index := func(ix, iz, layer int) uint32 {
		return uint32((layer*cells+iz)*cells + ix)
	}
	for layer := 0; layer < 2; layer++ {
		w := float32(-wOffset)
		if layer == 1 {
			w = wOffset
		}
		for iz := 0; iz < cells; iz++ {
			for ix := 0; ix < cells; ix++ {
				x := -halfExtent + 2*halfExtent*float32(ix)/float32(n)
				z := -halfExtent + 2*halfExtent*float32(iz)/float32(n)
				verts = append(verts, Vec4{X: x, Y: y0, Z: z, W: w})
			}
		}
	}

	var tets []Tetrahedron
	for iz := 0; iz < n; iz++ {
		for ix := 0; ix < n; ix++ {
			n00 := index(ix, iz, 0)
			n10 := index(ix+1, iz, 0)
			n01 := index(ix, iz+1, 0)
			n11 := index(ix+1, iz+1, 0)
			f00 := index(ix, iz, 1)
			f11 := index(ix+1, iz+1, 1)
			// Two tetrahedra spanning the near quad to the far quad,
			// degenerate in W-extent save for the tiny offset above.
			tets = append(tets,
				Tetrahedron{A: n00, B: n10, C: n01, D: f00},
				Tetrahedron{A: n10, B: n01, C: n11, D: f11},
			)
		}
	}

	return &shape{vertices: verts, tetrahedra: tets}, nil
}
