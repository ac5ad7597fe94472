package math4

import "math"

// Rotor4 is a unit element of the even subalgebra of the Cl(4,0) geometric
// algebra: one scalar, six bivector coefficients (one per coordinate
// plane), one pseudoscalar. It represents a rotation via the sandwich
// product v -> R v R~.
type Rotor4 struct {
	S                          float32 // scalar
	Bxy, Bxz, Bxw              float32 // bivectors touching X
	Byz, Byw                   float32 // remaining bivectors touching Y
	Bzw                        float32 // remaining bivector touching Z,W only
	P                          float32 // pseudoscalar
}

// Identity is the rotor that leaves every vector unchanged.
func Identity() Rotor4 { return Rotor4{S: 1} }

// FromPlaneAngle builds a unit rotor for a rotation of angle theta (radians)
// confined to a single coordinate plane. At theta=0 it is the identity; at
// theta=pi the scalar is 0 and the bivector magnitude is 1.
func FromPlaneAngle(plane Plane, theta float64) Rotor4 {
	half := theta / 2
	s := float32(math.Cos(half))
	b := float32(-math.Sin(half))
	r := Rotor4{S: s}
	switch plane {
	case PlaneXY:
		r.Bxy = b
	case PlaneXZ:
		r.Bxz = b
	case PlaneXW:
		r.Bxw = b
	case PlaneYZ:
		r.Byz = b
	case PlaneYW:
		r.Byw = b
	case PlaneZW:
		r.Bzw = b
	}
	return r
}

// Reverse negates the six bivector components; scalar and pseudoscalar are
// unchanged.
func (r Rotor4) Reverse() Rotor4 {
	return Rotor4{
		S:   r.S,
		Bxy: -r.Bxy, Bxz: -r.Bxz, Bxw: -r.Bxw,
		Byz: -r.Byz, Byw: -r.Byw,
		Bzw: -r.Bzw,
		P:   r.P,
	}
}

func (r Rotor4) normSq() float32 {
	return r.S*r.S + r.Bxy*r.Bxy + r.Bxz*r.Bxz + r.Bxw*r.Bxw +
		r.Byz*r.Byz + r.Byw*r.Byw + r.Bzw*r.Bzw + r.P*r.P
}

// Normalize divides all eight components by the Euclidean norm of the
// 8-tuple. It panics on an all-zero rotor: normalizing a degenerate rotor
// is a caller bug, not a recoverable runtime condition (see the Degenerate
// error kind).
func (r Rotor4) Normalize() Rotor4 {
	nSq := r.normSq()
	if nSq < 1e-20 {
		panic("math4: Normalize called on a degenerate (all-zero) rotor")
	}
	inv := float32(1.0 / math.Sqrt(float64(nSq)))
	return Rotor4{
		S: r.S * inv, Bxy: r.Bxy * inv, Bxz: r.Bxz * inv, Bxw: r.Bxw * inv,
		Byz: r.Byz * inv, Byw: r.Byw * inv, Bzw: r.Bzw * inv, P: r.P * inv,
	}
}

// --- Cl(4,0) multivector plumbing -------------------------------------
//
// A general multivector over 4 Euclidean basis vectors has 16 components,
// indexed by the bitmask of basis vectors in the blade (bit0=e1=X,
// bit1=e2=Y, bit2=e3=Z, bit3=e4=W). Rotor4 occupies the even-grade blades
// (bitmask popcount 0, 2, 4); Vec4 occupies the four grade-1 blades. The
// sandwich product, and rotor composition, both reduce to one generic
// geometric product of two 16-component multivectors.

type multivector [16]float32

const (
	bladeScalar = 0
	bladeX      = 1 << 0
	bladeY      = 1 << 1
	bladeZ      = 1 << 2
	bladeW      = 1 << 3
	bladeXY     = bladeX | bladeY
	bladeXZ     = bladeX | bladeZ
	bladeXW     = bladeX | bladeW
	bladeYZ     = bladeY | bladeZ
	bladeYW     = bladeY | bladeW
	bladeZW     = bladeZ | bladeW
	bladePseudo = bladeX | bladeY | bladeZ | bladeW
)

// bladeSign returns the sign of e_a * e_b under the Euclidean metric (every
// basis vector squares to +1), and the resulting blade a^b.
func bladeSign(a, b int) (blade int, sign float32) {
	sign = 1
	for bit := 0; bit < 4; bit++ {
		if b&(1<<bit) == 0 {
			continue
		}
		higher := a >> uint(bit+1)
		if popcount(higher)%2 == 1 {
			sign = -sign
		}
	}
	return a ^ b, sign
}

func popcount(x int) int {
	n := 0
	for x != 0 {
		n += x & 1
		x >>= 1
	}
	return n
}

func mvMul(a, b multivector) multivector {
	var out multivector
	for i := 0; i < 16; i++ {
		if a[i] == 0 {
			continue
		}
		for j := 0; j < 16; j++ {
			if b[j] == 0 {
				continue
			}
			blade, sign := bladeSign(i, j)
			out[blade] += sign * a[i] * b[j]
		}
	}
	return out
}

func (r Rotor4) toMultivector() multivector {
	var mv multivector
	mv[bladeScalar] = r.S
	mv[bladeXY] = r.Bxy
	mv[bladeXZ] = r.Bxz
	mv[bladeXW] = r.Bxw
	mv[bladeYZ] = r.Byz
	mv[bladeYW] = r.Byw
	mv[bladeZW] = r.Bzw
	mv[bladePseudo] = r.P
	return mv
}

func rotorFromMultivector(mv multivector) Rotor4 {
	return Rotor4{
		S: mv[bladeScalar], Bxy: mv[bladeXY], Bxz: mv[bladeXZ], Bxw: mv[bladeXW],
		Byz: mv[bladeYZ], Byw: mv[bladeYW], Bzw: mv[bladeZW], P: mv[bladePseudo],
	}
}

func vecToMultivector(v Vec4) multivector {
	var mv multivector
	mv[bladeX] = v.X
	mv[bladeY] = v.Y
	mv[bladeZ] = v.Z
	mv[bladeW] = v.W
	return mv
}

func multivectorToVec(mv multivector) Vec4 {
	return Vec4{X: mv[bladeX], Y: mv[bladeY], Z: mv[bladeZ], W: mv[bladeW]}
}

// Rotate applies the sandwich product v -> R v R~.
func (r Rotor4) Rotate(v Vec4) Vec4 {
	rev := r.Reverse()
	mv := mvMul(mvMul(r.toMultivector(), vecToMultivector(v)), rev.toMultivector())
	return multivectorToVec(mv)
}

// Compose is the geometric product; r.Compose(other) applied to v produces
// r(other(v other~))r~ — other is applied first.
func (r Rotor4) Compose(other Rotor4) Rotor4 {
	return rotorFromMultivector(mvMul(r.toMultivector(), other.toMultivector()))
}

// ToMatrix assembles the 4x4 matrix that acts identically to the sandwich
// product, by rotating each basis vector.
func (r Rotor4) ToMatrix() Matrix4 {
	var m Matrix4
	basis := [4]Vec4{
		{X: 1}, {Y: 1}, {Z: 1}, {W: 1},
	}
	for col := 0; col < 4; col++ {
		rotated := r.Rotate(basis[col])
		m.SetColumn(col, rotated)
	}
	return m
}
