package main

import (
	"flag"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	fourslice "github.com/fourslice/engine"
	"github.com/fourslice/engine/camera"
	"github.com/fourslice/engine/gpu"
	"github.com/fourslice/engine/math4"
	"github.com/fourslice/engine/physics"
	"github.com/fourslice/engine/scene"
)

func init() {
	runtime.LockOSThread()
}

// demo wires a window, a GPU device, and an Engine together — the
// minimal host the core's External Interfaces contract expects.
type demo struct {
	window *glfw.Window

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	surface  *wgpu.Surface
	config   *wgpu.SurfaceConfiguration

	engine *fourslice.Engine

	lastTime      float64
	mouseCaptured bool
	lastMouseX    float64
	lastMouseY    float64
}

func newDemo(window *glfw.Window) *demo {
	return &demo{window: window}
}

func (d *demo) init() error {
	d.instance = wgpu.CreateInstance(nil)

	surface := d.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(d.window))
	d.surface = surface

	adapter, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return err
	}
	d.adapter = adapter

	d.device, err = adapter.RequestDevice(nil)
	if err != nil {
		return err
	}

	width, height := d.window.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	d.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, d.device, d.config)

	pipeline, err := gpu.NewSlicePipeline(d.device, format, 1<<16)
	if err != nil {
		return err
	}

	phys := physics.NewWorld(physics.DefaultConfig())
	phys.InsertStatic(physics.StaticCollider{
		Collider: physics.BoundedFloor(-2, math4.Vec4{X: -50, Z: -50, W: -50}, math4.Vec4{X: 50, Z: 50, W: 50}),
		Material: physics.PhysicsMaterial{Friction: 0.5, Restitution: 0.1},
		Filter:   physics.DefaultFilter(),
	})

	world := scene.NewWorld(phys)
	tesseract, err := math4.NewTesseract(2)
	if err != nil {
		return err
	}

	body := physics.NewRigidBody(math4.Vec4{Y: 5}, physics.AABB(
		math4.Vec4{X: -1, Y: -1, Z: -1, W: -1}, math4.Vec4{X: 1, Y: 1, Z: 1, W: 1}),
		physics.PhysicsMaterial{Friction: 0.5, Restitution: 0.1})
	bodyKey := phys.InsertBody(body)

	entity := scene.NewEntity(tesseract, scene.Material{R: 0.8, G: 0.3, B: 0.3, A: 1})
	entity.BodyKey = &bodyKey
	world.Insert(entity)

	cam := camera.NewCamera4D()
	cam.Position = math4.Vec4{Y: 2, Z: 10}

	d.engine = fourslice.NewEngine(world, cam, pipeline)
	return nil
}

func (d *demo) resize(width, height int) {
	if d.config == nil {
		return
	}
	d.config.Width = uint32(width)
	d.config.Height = uint32(height)
	d.surface.Configure(d.adapter, d.device, d.config)
}

func (d *demo) frame(dt float32) {
	var intents fourslice.Intents
	if d.window.GetKey(glfw.KeyW) == glfw.Press {
		intents.MoveForward = 5 * dt
	}
	if d.window.GetKey(glfw.KeyS) == glfw.Press {
		intents.MoveForward = -5 * dt
	}
	if d.window.GetKey(glfw.KeyD) == glfw.Press {
		intents.MoveRight = 5 * dt
	}
	if d.window.GetKey(glfw.KeyA) == glfw.Press {
		intents.MoveRight = -5 * dt
	}
	if d.window.GetKey(glfw.KeySpace) == glfw.Press {
		intents.Jump = true
	}
	d.engine.ApplyIntents(intents)

	texture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		return
	}

	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.02, G: 0.02, B: 0.05, A: 1},
			},
		},
	})

	if err := d.engine.Frame(dt, encoder, pass, 0); err != nil {
		pass.End()
		return
	}
	pass.End()

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		return
	}
	d.device.GetQueue().Submit(cmdBuf)
	d.surface.Present()
}

func main() {
	flag.Parse()

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(1280, 720, "fourslice demo", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	d := newDemo(window)
	if err := d.init(); err != nil {
		panic(err)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		d.resize(width, height)
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !d.mouseCaptured {
			d.lastMouseX, d.lastMouseY = xpos, ypos
			return
		}
		dx := float32(xpos - d.lastMouseX)
		dy := float32(ypos - d.lastMouseY)
		d.lastMouseX, d.lastMouseY = xpos, ypos
		d.engine.Camera.Rotate3D(dx*0.003, -dy*0.003)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonRight && action == glfw.Press {
			d.mouseCaptured = !d.mouseCaptured
			if d.mouseCaptured {
				w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			} else {
				w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			}
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		now := glfw.GetTime()
		dt := float32(now - d.lastTime)
		d.lastTime = now
		d.frame(dt)
	}
}
