package math4

// Matrix4 is a column-major 4x4 real matrix. Columns[c] holds the image of
// basis vector c under the transform.
type Matrix4 struct {
	Columns [4]Vec4
}

func IdentityMatrix() Matrix4 {
	return Matrix4{Columns: [4]Vec4{
		{X: 1}, {Y: 1}, {Z: 1}, {W: 1},
	}}
}

func (m *Matrix4) SetColumn(c int, v Vec4) { m.Columns[c] = v }

func (m Matrix4) Column(c int) Vec4 { return m.Columns[c] }

// MulVec4 applies the matrix to a vector.
func (m Matrix4) MulVec4(v Vec4) Vec4 {
	return m.Columns[0].Scale(v.X).
		Add(m.Columns[1].Scale(v.Y)).
		Add(m.Columns[2].Scale(v.Z)).
		Add(m.Columns[3].Scale(v.W))
}

// Mul composes two matrices: (m.Mul(o)).MulVec4(v) == m.MulVec4(o.MulVec4(v)).
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var out Matrix4
	for c := 0; c < 4; c++ {
		out.Columns[c] = m.MulVec4(o.Columns[c])
	}
	return out
}

// At returns the element at (row, col).
func (m Matrix4) At(row, col int) float32 { return m.Columns[col].Component(row) }

func (m *Matrix4) set(row, col int, value float32) { m.Columns[col].SetComponent(row, value) }

// SkipY remaps a 4x4 matrix intended to act on an (X,Y,Z) triple so that it
// instead acts on the 4D scene's (X,Z,W) triple, leaving the world Y axis
// completely untouched. Source row/column indices {0,1,2} land on
// destination indices {0,2,3}; destination row 1 and column 1 are the
// identity row/column. This is the sole mechanism that lets 4D rotation
// never tilt the world up-direction.
func SkipY(m Matrix4) Matrix4 {
	out := IdentityMatrix()
	srcToDst := [3]int{0, 2, 3}
	for sr := 0; sr < 3; sr++ {
		for sc := 0; sc < 3; sc++ {
			out.set(srcToDst[sr], srcToDst[sc], m.At(sr, sc))
		}
	}
	return out
}
