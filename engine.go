package fourslice

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/fourslice/engine/camera"
	"github.com/fourslice/engine/gpu"
	"github.com/fourslice/engine/scene"
)

// maxDt is the host-supplied timestep's hard cap: a long pause between
// windowing init and the first redraw would otherwise integrate one giant
// step of gravity on the first frame.
const maxDt = 1.0 / 30.0

// Intents captures one frame's host input: camera movement/rotation and
// the scene-population calls §6 names.
type Intents struct {
	MoveForward, MoveRight, MoveUp, MoveAna float32
	DeltaYaw, DeltaPitch                    float32
	Look4D                                  bool
	DeltaZW, DeltaXW                        float32
	Jump                                    bool
}

// Engine ties the scene, camera, and GPU pipeline together and runs the
// ordering guarantees §5 specifies: physics before transform sync before
// GPU upload before compute dispatch before rasterization.
type Engine struct {
	Scene    *scene.World
	Camera   camera.Camera4D
	Pipeline *gpu.SlicePipeline
	Staging  *gpu.UploadStaging

	Log Logger
}

// NewEngine wires a scene, camera, and slicing pipeline into one
// per-frame driver.
func NewEngine(sc *scene.World, cam camera.Camera4D, pipeline *gpu.SlicePipeline) *Engine {
	return &Engine{
		Scene:    sc,
		Camera:   cam,
		Pipeline: pipeline,
		Staging:  gpu.NewUploadStaging(),
		Log:      NewNopLogger(),
	}
}

// ApplyIntents folds one frame's host input into the camera and the
// player's physics body, per §4.3.1's movement/rotation rules and §4.2's
// player operations.
func (e *Engine) ApplyIntents(in Intents) {
	e.Camera.MoveCamera(in.MoveForward, in.MoveRight)
	e.Camera.MoveY(in.MoveUp)
	e.Camera.MoveAna(in.MoveAna)

	if in.Look4D {
		e.Camera.Rotate4DLook(in.DeltaYaw, in.DeltaPitch)
	} else {
		e.Camera.Rotate3D(in.DeltaYaw, in.DeltaPitch)
	}
	if in.DeltaZW != 0 {
		e.Camera.RotateZW(in.DeltaZW)
	}
	if in.DeltaXW != 0 {
		e.Camera.RotateXW(in.DeltaXW)
	}

	if phys := e.Scene.Physics(); phys != nil {
		forward := e.Camera.Forward()
		right := e.Camera.Right()
		horizontal := forward.Scale(in.MoveForward).Add(right.Scale(in.MoveRight))
		phys.ApplyPlayerMovement(horizontal)
		if in.Jump {
			phys.PlayerJump()
		}
	}
}

// Frame advances the simulation and GPU pipeline by dt (capped at
// maxDt): physics step, transform sync, dirty-subset GPU upload, compute
// dispatch, then indirect-draw rasterization, issued as two GPU passes
// with a buffer barrier between them.
func (e *Engine) Frame(dt float32, encoder *wgpu.CommandEncoder, renderPass *wgpu.RenderPassEncoder, sliceOffset float32) error {
	if dt > maxDt {
		dt = maxDt
	}

	e.Staging.Reset()
	var dirtyCount int
	e.Scene.Update(dt, func(k scene.EntityKey, ent *scene.Entity) {
		e.Staging.Stage(k, ent)
		dirtyCount++
	})
	e.Log.Debugf("frame: %d dirty entities staged", dirtyCount)

	var tetrahedronCount uint32
	e.Scene.Each(func(_ scene.EntityKey, ent *scene.Entity) {
		tetrahedronCount += uint32(len(ent.Shape.Tetrahedra()))
	})

	viewRotation := e.Camera.ViewRotation()
	params := gpu.SliceParams{
		SliceW:           sliceOffset,
		CameraPosition:   e.Camera.Position,
		CameraMatrix:     viewRotation,
		TetrahedronCount: tetrahedronCount,
	}
	if err := e.Pipeline.UploadVertices(e.Staging.VertexBytes, e.Staging.TetrahedronBytes, params); err != nil {
		return err
	}

	e.Pipeline.Dispatch(encoder, tetrahedronCount)
	e.Pipeline.CopyCounterToIndirectArgs(encoder)
	e.Pipeline.DrawIndirect(renderPass)
	return nil
}
