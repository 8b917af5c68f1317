// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ggterm"
	"github.com/gogpu/ggterm/internal/shader"
)

var (
	// ErrNilDevice is returned when a renderer is created without a device
	// or queue.
	ErrNilDevice = errors.New("render: nil device")

	// ErrNotHalProvider is returned when a device provider does not expose
	// its HAL device and queue.
	ErrNotHalProvider = errors.New("render: device provider does not expose HAL device")

	// ErrNilTarget is returned when drawing into a nil pass or target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrDestroyed is returned when drawing with a destroyed renderer.
	ErrDestroyed = errors.New("render: renderer destroyed")
)

// RenderPass is the subset of hal.RenderPassEncoder the rect renderer
// records into. The pass is owned by the caller; the renderer never begins
// or ends it.
type RenderPass interface {
	SetPipeline(pipeline hal.RenderPipeline)
	SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32)
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
}

var _ RenderPass = hal.RenderPassEncoder(nil)

// rectProgram holds the GPU objects of one rect kind.
type rectProgram struct {
	variant    *shaderVariant
	module     hal.ShaderModule
	pipeline   hal.RenderPipeline
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	uniforms   [uniformBlockSize]byte
}

// RectRenderer draws batches of decoration rectangles with one shader
// program per RectKind.
//
// All rects of one kind share a program and a draw call. Kinds are drawn in
// descending order, so RoundedBg rects end up at the bottom and plain
// underline rects on top. Each kind gets its own region of a single vertex
// buffer, which grows as needed and is reused across frames.
//
// A RectRenderer is not safe for concurrent use.
type RectRenderer struct {
	device hal.Device
	queue  hal.Queue
	opts   options

	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	programs      [ggterm.NumRectKinds]*rectProgram

	vertexBuf      hal.Buffer
	vertexCapacity uint64

	plan      framePlan
	destroyed bool
}

// NewRectRenderer compiles the shader variants and creates the pipelines,
// uniform buffers and vertex buffer of a rect renderer.
//
// If the dotted underline variant fails to compile, the renderer falls back
// to a separately compiled copy of the plain underline program for dotted
// rects. Any other compile failure is returned as a *shader.CompileError.
// On error every GPU object created so far is released.
func NewRectRenderer(device hal.Device, queue hal.Queue, opts ...Option) (*RectRenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &RectRenderer{device: device, queue: queue, opts: o}
	if err := r.init(); err != nil {
		r.Destroy()
		return nil, err
	}
	ggterm.Logger().Debug("rect renderer created",
		"format", o.targetFormat, "samples", o.sampleCount, "vertex_capacity", r.vertexCapacity)
	return r, nil
}

func (r *RectRenderer) init() error {
	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "rect_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create rect uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "rect_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create rect pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	for k := 0; k < ggterm.NumRectKinds; k++ {
		kind := ggterm.RectKind(k)
		variant, err := r.compileVariant(kind)
		if err != nil {
			return err
		}
		prog, err := r.createProgram(kind, variant)
		if err != nil {
			return err
		}
		r.programs[kind] = prog
	}

	return r.ensureVertexCapacity(uint64(r.opts.vertexCapacity) * vertexStride) //nolint:gosec // positive option value
}

// compileVariant compiles the program for kind, applying the dotted
// underline fallback.
func (r *RectRenderer) compileVariant(kind ggterm.RectKind) (*shaderVariant, error) {
	variant, err := newShaderVariant(kind, r.opts.compile)
	if err == nil || kind != ggterm.RectKindUnderDotted {
		return variant, err
	}

	ggterm.Logger().Info("dotted underline shader unavailable, using underline shader",
		"error", err)
	return newShaderVariant(ggterm.RectKindUnderline, r.opts.compile)
}

func (r *RectRenderer) createProgram(kind ggterm.RectKind, variant *shaderVariant) (*rectProgram, error) {
	label := "rect_" + kind.String()
	prog := &rectProgram{variant: variant}

	module, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{SPIRV: variant.spirv},
	})
	if err != nil {
		return nil, &shader.CompileError{Label: label, Err: err}
	}
	prog.module = module
	// Registered before the remaining objects so that a partial program
	// is released by Destroy.
	r.programs[kind] = prog

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     prog.module,
			EntryPoint: "vs_main",
			Buffers:    rectVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     prog.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.opts.targetFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: r.opts.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}
	prog.pipeline = pipeline

	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_uniforms",
		Size:  uint64(uniformBlockSize),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s uniform buffer: %w", label, err)
	}
	prog.uniformBuf = uniformBuf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind_group",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: prog.uniformBuf.NativeHandle(),
					Offset: 0,
					Size:   uint64(uniformBlockSize),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s bind group: %w", label, err)
	}
	prog.bindGroup = bindGroup

	return prog, nil
}

// ensureVertexCapacity grows the vertex buffer to hold at least size bytes.
// The buffer is never shrunk.
func (r *RectRenderer) ensureVertexCapacity(size uint64) error {
	if r.vertexBuf != nil && size <= r.vertexCapacity {
		return nil
	}

	capacity := max(r.vertexCapacity, verticesPerRect*vertexStride)
	for capacity < size {
		capacity *= 2
	}

	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rect_vertices",
		Size:  capacity,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create rect vertex buffer (%d bytes): %w", capacity, err)
	}
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		ggterm.Logger().Debug("rect vertex buffer grown", "from", r.vertexCapacity, "to", capacity)
	}
	r.vertexBuf = buf
	r.vertexCapacity = capacity
	return nil
}

// Draw records rects into pass.
//
// Rects are grouped by kind; every non-empty group is uploaded into its own
// region of the vertex buffer and drawn with one call, in descending kind
// order. The uniforms of each program are refreshed from size and metrics
// before its draw. An empty batch records nothing.
//
// Draw panics if a rect carries a kind outside the defined RectKinds.
func (r *RectRenderer) Draw(pass RenderPass, size ggterm.SizeInfo, metrics ggterm.Metrics, rects []ggterm.Rect) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if pass == nil {
		return ErrNilTarget
	}
	if len(rects) == 0 {
		return nil
	}

	r.plan.build(rects, size)
	if err := r.ensureVertexCapacity(uint64(r.plan.totalBytes())); err != nil { //nolint:gosec // length is non-negative
		return err
	}

	var offset uint64
	for _, kind := range r.plan.order() {
		prog := r.programs[kind]
		data := r.plan.vertices[kind]

		prog.variant.updateUniforms(prog.uniforms[:], size, metrics)
		if err := r.queue.WriteBuffer(prog.uniformBuf, 0, prog.uniforms[:]); err != nil {
			return fmt.Errorf("upload %s uniforms: %w", kind, err)
		}
		if err := r.queue.WriteBuffer(r.vertexBuf, offset, data); err != nil {
			return fmt.Errorf("upload %s vertices: %w", kind, err)
		}

		pass.SetPipeline(prog.pipeline)
		pass.SetBindGroup(0, prog.bindGroup, nil)
		pass.SetVertexBuffer(0, r.vertexBuf, offset)
		pass.Draw(r.plan.vertexCount(kind), 1, 0, 0)

		offset += uint64(len(data))
	}
	return nil
}

// ActiveUniforms returns the names of the uniforms the program of kind
// reads. Programs that never read a uniform skip its upload.
func (r *RectRenderer) ActiveUniforms(kind ggterm.RectKind) []string {
	if int(kind) >= ggterm.NumRectKinds || r.programs[kind] == nil {
		return nil
	}
	return r.programs[kind].variant.activeUniforms()
}

// ProgramKind returns the kind whose shader path draws rects of kind. It
// differs from kind only when a fallback program is in use.
func (r *RectRenderer) ProgramKind(kind ggterm.RectKind) ggterm.RectKind {
	if int(kind) >= ggterm.NumRectKinds || r.programs[kind] == nil {
		return kind
	}
	return r.programs[kind].variant.kind
}

// VertexCapacity returns the current size of the vertex buffer in bytes.
func (r *RectRenderer) VertexCapacity() uint64 {
	return r.vertexCapacity
}

// Destroy releases all GPU resources held by the renderer in reverse
// creation order. Safe to call multiple times.
func (r *RectRenderer) Destroy() {
	r.destroyed = true
	if r.device == nil {
		return
	}
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
		r.vertexCapacity = 0
	}
	for k := ggterm.NumRectKinds - 1; k >= 0; k-- {
		if prog := r.programs[k]; prog != nil {
			prog.destroy(r.device)
			r.programs[k] = nil
		}
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
}

func (p *rectProgram) destroy(device hal.Device) {
	if p.bindGroup != nil {
		device.DestroyBindGroup(p.bindGroup)
	}
	if p.uniformBuf != nil {
		device.DestroyBuffer(p.uniformBuf)
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
	}
	if p.module != nil {
		device.DestroyShaderModule(p.module)
	}
}
