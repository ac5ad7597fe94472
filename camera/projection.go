package camera

import "github.com/go-gl/mathgl/mgl32"

// Projection holds the rasterization pass's FOV/near/far parameters. The
// view matrix the rasterizer uses is always identity (§4.3.4): the
// compute kernel already moved geometry into camera space, so composing a
// second view transform here would rotate what should be a pure
// perspective divide.
type Projection struct {
	FovYRadians float32
	Aspect      float32
	Near        float32
	Far         float32
}

func NewProjection(fovYRadians, aspect, near, far float32) Projection {
	return Projection{FovYRadians: fovYRadians, Aspect: aspect, Near: near, Far: far}
}

// Matrix returns the projection matrix for the rasterization pass.
func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(p.FovYRadians, p.Aspect, p.Near, p.Far)
}

// IdentityView is the rasterization pass's view matrix — always identity,
// per the coordinate-system hazard the compute kernel's camera-space
// transform already resolves.
func IdentityView() mgl32.Mat4 {
	return mgl32.Ident4()
}
