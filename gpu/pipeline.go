package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/fourslice/engine/shaders"
)

const computeWorkgroupSize = 64

// SlicePipeline owns every GPU resource the slicing+rasterization passes
// need: input buffers (vertices, tetrahedra, uniform params), the output
// triangle ring with its atomic counter, the indirect-draw args buffer,
// and the compute/render pipelines that operate on them. Grounded on the
// teacher's GpuBufferManager buffer-ownership pattern and ensureBuffer
// growth policy.
type SlicePipeline struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	vertexBuf      *wgpu.Buffer
	tetrahedronBuf *wgpu.Buffer
	paramsBuf      *wgpu.Buffer
	counterBuf     *wgpu.Buffer
	triangleBuf    *wgpu.Buffer
	indirectBuf    *wgpu.Buffer

	computeBGL *wgpu.BindGroupLayout
	computeBG  *wgpu.BindGroup
	computePL  *wgpu.ComputePipeline

	renderBGL *wgpu.BindGroupLayout
	renderBG  *wgpu.BindGroup
	renderPL  *wgpu.RenderPipeline

	frameBGL *wgpu.BindGroupLayout
	frameBG  *wgpu.BindGroup
	frameBuf *wgpu.Buffer

	maxTriangles uint32
}

// NewSlicePipeline creates the compute and render pipelines and the
// output buffers sized for maxTriangles (clamped to the device limit).
func NewSlicePipeline(device *wgpu.Device, colorFormat wgpu.TextureFormat, maxTriangles uint32) (*SlicePipeline, error) {
	p := &SlicePipeline{
		device:       device,
		queue:        device.GetQueue(),
		maxTriangles: ClampTriangleCapacity(maxTriangles),
	}

	triangleBufSize := uint64(p.maxTriangles) * 3 * Vertex3DSize

	counterDesc := &wgpu.BufferDescriptor{
		Label: "slice-counter",
		Size:  CounterSize,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
	}
	counterBuf, err := device.CreateBuffer(counterDesc)
	if err != nil {
		return nil, fmt.Errorf("gpu: create counter buffer: %w", err)
	}
	p.counterBuf = counterBuf

	triangleDesc := &wgpu.BufferDescriptor{
		Label: "slice-triangles",
		Size:  triangleBufSize,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageVertex,
	}
	triangleBuf, err := device.CreateBuffer(triangleDesc)
	if err != nil {
		return nil, fmt.Errorf("gpu: create triangle buffer: %w", err)
	}
	p.triangleBuf = triangleBuf

	indirectDesc := &wgpu.BufferDescriptor{
		Label: "slice-indirect-draw",
		Size:  IndirectDrawArgsSize,
		Usage: wgpu.BufferUsageIndirect | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
	}
	indirectBuf, err := device.CreateBuffer(indirectDesc)
	if err != nil {
		return nil, fmt.Errorf("gpu: create indirect draw buffer: %w", err)
	}
	p.indirectBuf = indirectBuf

	paramsDesc := &wgpu.BufferDescriptor{
		Label: "slice-params",
		Size:  SliceParamsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	}
	paramsBuf, err := device.CreateBuffer(paramsDesc)
	if err != nil {
		return nil, fmt.Errorf("gpu: create slice params buffer: %w", err)
	}
	p.paramsBuf = paramsBuf

	if err := p.buildComputePipeline(); err != nil {
		return nil, err
	}
	if err := p.buildRenderPipeline(colorFormat); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SlicePipeline) buildComputePipeline() error {
	mod, err := p.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "slice-compute",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.SliceWGSL},
	})
	if err != nil {
		return fmt.Errorf("gpu: compile slice compute shader: %w", err)
	}

	bgl, err := p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "slice-compute-bgl",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage}},
			{Binding: 1, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
			{Binding: 3, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}},
			{Binding: 4, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice compute bind group layout: %w", err)
	}
	p.computeBGL = bgl

	layout, err := p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice compute pipeline layout: %w", err)
	}

	pl, err := p.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  "slice-compute-pipeline",
		Layout: layout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     mod,
			EntryPoint: "main",
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice compute pipeline: %w", err)
	}
	p.computePL = pl
	return nil
}

// rebuildComputeBindGroup must be called whenever the vertex or
// tetrahedron buffers are recreated, since a bind group is pinned to the
// specific buffer objects it was created with.
func (p *SlicePipeline) rebuildComputeBindGroup() error {
	if p.vertexBuf == nil || p.tetrahedronBuf == nil {
		return nil
	}
	bg, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "slice-compute-bg",
		Layout: p.computeBGL,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.vertexBuf, Size: p.vertexBuf.GetSize()},
			{Binding: 1, Buffer: p.tetrahedronBuf, Size: p.tetrahedronBuf.GetSize()},
			{Binding: 2, Buffer: p.paramsBuf, Size: p.paramsBuf.GetSize()},
			{Binding: 3, Buffer: p.counterBuf, Size: p.counterBuf.GetSize()},
			{Binding: 4, Buffer: p.triangleBuf, Size: p.triangleBuf.GetSize()},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice compute bind group: %w", err)
	}
	p.computeBG = bg
	return nil
}

func (p *SlicePipeline) buildRenderPipeline(colorFormat wgpu.TextureFormat) error {
	mod, err := p.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "slice-raster",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.RasterWGSL},
	})
	if err != nil {
		return fmt.Errorf("gpu: compile rasterization shader: %w", err)
	}

	bgl, err := p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "slice-render-bgl",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice render bind group layout: %w", err)
	}
	p.renderBGL = bgl

	frameBGL, err := p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "slice-frame-bgl",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice frame bind group layout: %w", err)
	}
	p.frameBGL = frameBGL

	frameBuf, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "slice-frame-uniforms",
		Size:  FrameUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create frame uniforms buffer: %w", err)
	}
	p.frameBuf = frameBuf

	layout, err := p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl, frameBGL},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice render pipeline layout: %w", err)
	}

	pl, err := p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "slice-render-pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: Vertex3DSize,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: colorFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{Topology: wgpu.PrimitiveTopologyTriangleList},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice render pipeline: %w", err)
	}
	p.renderPL = pl

	renderBG, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "slice-render-bg",
		Layout: p.renderBGL,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.paramsBuf, Size: p.paramsBuf.GetSize()},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice render bind group: %w", err)
	}
	p.renderBG = renderBG

	frameBG, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "slice-frame-bg",
		Layout: p.frameBGL,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.frameBuf, Size: p.frameBuf.GetSize()},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create slice frame bind group: %w", err)
	}
	p.frameBG = frameBG
	return nil
}

// ensureBuffer grows *buf to fit data, recreating it only when it is too
// small — the same geometric-growth policy as the teacher's
// GpuBufferManager.ensureBuffer, minus the copy-forward (these buffers
// are fully rewritten every frame, never partially updated).
func (p *SlicePipeline) ensureBuffer(buf **wgpu.Buffer, label string, usage wgpu.BufferUsage, size uint64) error {
	if *buf != nil && (*buf).GetSize() >= size {
		return nil
	}
	newSize := size
	if *buf != nil {
		if grown := uint64(float64((*buf).GetSize()) * 1.5); grown > newSize {
			newSize = grown
		}
	}
	created, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  newSize,
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: grow %s buffer: %w", label, err)
	}
	*buf = created
	return nil
}

// UploadVertices writes the current frame's vertex and tetrahedron bytes
// and the slice uniform, resetting the atomic counter and indirect-draw
// args ahead of the compute dispatch.
func (p *SlicePipeline) UploadVertices(vertexBytes, tetrahedronBytes []byte, params SliceParams) error {
	grew := false
	if len(vertexBytes) > 0 {
		before := p.vertexBuf
		if err := p.ensureBuffer(&p.vertexBuf, "slice-vertices", wgpu.BufferUsageStorage, uint64(len(vertexBytes))); err != nil {
			return err
		}
		grew = grew || before != p.vertexBuf
		p.queue.WriteBuffer(p.vertexBuf, 0, vertexBytes)
	}
	if len(tetrahedronBytes) > 0 {
		before := p.tetrahedronBuf
		if err := p.ensureBuffer(&p.tetrahedronBuf, "slice-tetrahedra", wgpu.BufferUsageStorage, uint64(len(tetrahedronBytes))); err != nil {
			return err
		}
		grew = grew || before != p.tetrahedronBuf
		p.queue.WriteBuffer(p.tetrahedronBuf, 0, tetrahedronBytes)
	}
	if grew {
		if err := p.rebuildComputeBindGroup(); err != nil {
			return err
		}
	}
	p.queue.WriteBuffer(p.paramsBuf, 0, params.ToBytes())
	p.queue.WriteBuffer(p.counterBuf, 0, make([]byte, CounterSize))
	p.queue.WriteBuffer(p.indirectBuf, 0, IndirectDrawArgs{InstanceCount: 1}.ToBytes())
	return nil
}

// Dispatch runs the slicing compute kernel: one workgroup-lane per
// tetrahedron, workgroup size 64 per §4.3.3.
func (p *SlicePipeline) Dispatch(encoder *wgpu.CommandEncoder, tetrahedronCount uint32) {
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(p.computePL)
	pass.SetBindGroup(0, p.computeBG, nil)
	workgroups := (tetrahedronCount + computeWorkgroupSize - 1) / computeWorkgroupSize
	pass.DispatchWorkgroups(workgroups, 1, 1)
	pass.End()
}

// CopyCounterToIndirectArgs copies the device-side vertex counter into
// the indirect-draw buffer's vertex_count field ahead of the draw call.
func (p *SlicePipeline) CopyCounterToIndirectArgs(encoder *wgpu.CommandEncoder) {
	encoder.CopyBufferToBuffer(p.counterBuf, 0, p.indirectBuf, 0, CounterSize)
}

// DrawIndirect issues the rasterization pass over the sliced triangles
// using the device-computed vertex count.
func (p *SlicePipeline) DrawIndirect(pass *wgpu.RenderPassEncoder) {
	pass.SetPipeline(p.renderPL)
	pass.SetBindGroup(0, p.renderBG, nil)
	pass.SetBindGroup(1, p.frameBG, nil)
	pass.SetVertexBuffer(0, p.triangleBuf, 0, p.triangleBuf.GetSize())
	pass.DrawIndirect(p.indirectBuf, 0)
}

// SetFrameUniforms uploads the rasterization pass's projection matrix,
// light direction, and W-depth tint scale ahead of the draw call.
func (p *SlicePipeline) SetFrameUniforms(u FrameUniforms) {
	p.queue.WriteBuffer(p.frameBuf, 0, u.ToBytes())
}
