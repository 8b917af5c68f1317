// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/ggterm"
	"github.com/gogpu/ggterm/internal/shader"
)

// createNoopDevice creates a noop HAL device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// bufferWrite is one recorded queue upload.
type bufferWrite struct {
	buf    hal.Buffer
	offset uint64
	data   []byte
}

// recordingQueue forwards to a real queue and keeps every buffer upload.
type recordingQueue struct {
	hal.Queue
	writes []bufferWrite
}

func (q *recordingQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	q.writes = append(q.writes, bufferWrite{buf: buf, offset: offset, data: bytes.Clone(data)})
	return q.Queue.WriteBuffer(buf, offset, data)
}

// recordedDraw is one draw call with the state bound before it.
type recordedDraw struct {
	pipelineSet  bool
	bindGroupSet bool
	buffer       hal.Buffer
	offset       uint64
	vertexCount  uint32
}

// recordingPass implements RenderPass and records draws.
type recordingPass struct {
	draws   []recordedDraw
	pending recordedDraw
}

func (p *recordingPass) SetPipeline(hal.RenderPipeline) { p.pending.pipelineSet = true }

func (p *recordingPass) SetBindGroup(index uint32, _ hal.BindGroup, _ []uint32) {
	p.pending.bindGroupSet = index == 0
}

func (p *recordingPass) SetVertexBuffer(_ uint32, buf hal.Buffer, offset uint64) {
	p.pending.buffer = buf
	p.pending.offset = offset
}

func (p *recordingPass) Draw(vertexCount, instanceCount, _, _ uint32) {
	d := p.pending
	d.vertexCount = vertexCount * instanceCount
	p.draws = append(p.draws, d)
	p.pending = recordedDraw{}
}

func newTestRenderer(t *testing.T, opts ...Option) (*RectRenderer, *recordingQueue) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	rq := &recordingQueue{Queue: queue}
	opts = append([]Option{WithShaderCompiler(fakeCompile)}, opts...)
	r, err := NewRectRenderer(device, rq, opts...)
	if err != nil {
		t.Fatalf("NewRectRenderer: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r, rq
}

func TestNewRectRendererNilDevice(t *testing.T) {
	_, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := NewRectRenderer(nil, queue); !errors.Is(err, ErrNilDevice) {
		t.Errorf("error = %v, want ErrNilDevice", err)
	}
}

func TestNewRectRendererCompilesAllVariants(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRectRenderer(device, queue)
	if err != nil {
		t.Fatalf("NewRectRenderer: %v", err)
	}
	defer r.Destroy()

	for k := 0; k < ggterm.NumRectKinds; k++ {
		kind := ggterm.RectKind(k)
		if got := r.ProgramKind(kind); got != kind {
			t.Errorf("ProgramKind(%v) = %v", kind, got)
		}
	}
}

func TestRectRendererDrawOrder(t *testing.T) {
	r, rq := newTestRenderer(t)
	pass := &recordingPass{}

	rects := []ggterm.Rect{
		{X: 0, Y: 18, Width: 10, Height: 1, Color: ggterm.Red, Alpha: 1, Kind: ggterm.RectKindUnderline},
		{X: 0, Y: 0, Width: 10, Height: 20, Color: ggterm.Blue, Alpha: 1, Kind: ggterm.RectKindRoundedBg},
		{X: 10, Y: 18, Width: 10, Height: 1, Color: ggterm.Red, Alpha: 1, Kind: ggterm.RectKindUnderline},
		{X: 0, Y: 14, Width: 10, Height: 6, Color: ggterm.Green, Alpha: 1, Kind: ggterm.RectKindUndercurl},
		{X: 20, Y: 18, Width: 10, Height: 1, Color: ggterm.Red, Alpha: 1, Kind: ggterm.RectKindUnderline},
		{X: 10, Y: 14, Width: 10, Height: 6, Color: ggterm.Green, Alpha: 1, Kind: ggterm.RectKindUndercurl},
	}
	metrics := ggterm.Metrics{Descent: -4, UnderlineThickness: 1, StrikeoutThickness: 1}
	if err := r.Draw(pass, testSize, metrics, rects); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// RoundedBg (1 rect), Undercurl (2 rects), Underline (3 rects).
	want := []struct {
		offset uint64
		count  uint32
	}{
		{0, 6},
		{72, 12},
		{216, 18},
	}
	if len(pass.draws) != len(want) {
		t.Fatalf("draws = %d, want %d", len(pass.draws), len(want))
	}
	for i, w := range want {
		d := pass.draws[i]
		if !d.pipelineSet || !d.bindGroupSet {
			t.Errorf("draw %d: pipeline or bind group not set", i)
		}
		if d.buffer != r.vertexBuf {
			t.Errorf("draw %d: unexpected vertex buffer", i)
		}
		if d.offset != w.offset || d.vertexCount != w.count {
			t.Errorf("draw %d = offset %d count %d, want offset %d count %d",
				i, d.offset, d.vertexCount, w.offset, w.count)
		}
	}

	var vertexWrites []bufferWrite
	for _, w := range rq.writes {
		if w.buf == r.vertexBuf {
			vertexWrites = append(vertexWrites, w)
		}
	}
	if len(vertexWrites) != 3 {
		t.Fatalf("vertex uploads = %d, want 3", len(vertexWrites))
	}
	if !bytes.Equal(vertexWrites[2].data, r.plan.vertices[ggterm.RectKindUnderline]) {
		t.Error("underline upload does not match the planned vertices")
	}
	if v := readVertex(vertexWrites[0].data, 0); v.B != 255 {
		t.Errorf("first upload should be the rounded background, got %+v", v)
	}
}

func TestRectRendererUploadsUniformsPerProgram(t *testing.T) {
	r, rq := newTestRenderer(t)
	rects := []ggterm.Rect{{Width: 10, Height: 2, Alpha: 1, Kind: ggterm.RectKindUnderDashed}}

	if err := r.Draw(&recordingPass{}, testSize, ggterm.Metrics{}, rects); err != nil {
		t.Fatal(err)
	}

	prog := r.programs[ggterm.RectKindUnderDashed]
	found := false
	for _, w := range rq.writes {
		if w.buf == prog.uniformBuf {
			found = true
			if len(w.data) != uniformBlockSize {
				t.Errorf("uniform upload = %d bytes, want %d", len(w.data), uniformBlockSize)
			}
		}
	}
	if !found {
		t.Error("dashed program uniforms were not uploaded")
	}
}

func TestRectRendererEmptyBatch(t *testing.T) {
	r, rq := newTestRenderer(t)
	pass := &recordingPass{}

	if err := r.Draw(pass, testSize, ggterm.Metrics{}, nil); err != nil {
		t.Fatal(err)
	}
	if len(pass.draws) != 0 || len(rq.writes) != 0 {
		t.Errorf("empty batch recorded %d draws and %d uploads", len(pass.draws), len(rq.writes))
	}
}

func TestRectRendererGrowsVertexBuffer(t *testing.T) {
	r, _ := newTestRenderer(t, WithInitialVertexCapacity(verticesPerRect))
	if got := r.VertexCapacity(); got != verticesPerRect*vertexStride {
		t.Fatalf("initial capacity = %d", got)
	}

	rects := make([]ggterm.Rect, 10)
	for i := range rects {
		rects[i] = ggterm.Rect{X: float32(i) * 10, Width: 10, Height: 1, Alpha: 1}
	}
	pass := &recordingPass{}
	if err := r.Draw(pass, testSize, ggterm.Metrics{}, rects); err != nil {
		t.Fatal(err)
	}
	if got := r.VertexCapacity(); got < 10*verticesPerRect*vertexStride {
		t.Errorf("capacity = %d, want >= %d", got, 10*verticesPerRect*vertexStride)
	}
	if pass.draws[0].buffer != r.vertexBuf {
		t.Error("draw should use the grown buffer")
	}

	// A smaller frame keeps the buffer.
	before := r.VertexCapacity()
	if err := r.Draw(&recordingPass{}, testSize, ggterm.Metrics{}, rects[:1]); err != nil {
		t.Fatal(err)
	}
	if r.VertexCapacity() != before {
		t.Error("vertex buffer shrank")
	}
}

func TestRectRendererDottedFallback(t *testing.T) {
	compile := func(label, src string) ([]uint32, error) {
		if label == "rect_under_dotted" {
			return nil, errors.New("dotted unsupported")
		}
		return fakeCompile(label, src)
	}
	r, _ := newTestRenderer(t, WithShaderCompiler(compile))

	if got := r.ProgramKind(ggterm.RectKindUnderDotted); got != ggterm.RectKindUnderline {
		t.Errorf("ProgramKind(dotted) = %v, want underline", got)
	}
	if got := r.ActiveUniforms(ggterm.RectKindUnderDotted); len(got) != 0 {
		t.Errorf("fallback program uniforms = %v, want none", got)
	}
	if r.programs[ggterm.RectKindUnderDotted] == r.programs[ggterm.RectKindUnderline] {
		t.Error("fallback should be a separate program")
	}

	pass := &recordingPass{}
	rects := []ggterm.Rect{{Width: 10, Height: 1, Alpha: 1, Kind: ggterm.RectKindUnderDotted}}
	if err := r.Draw(pass, testSize, ggterm.Metrics{}, rects); err != nil {
		t.Fatal(err)
	}
	if len(pass.draws) != 1 {
		t.Errorf("draws = %d, want 1", len(pass.draws))
	}
}

func TestRectRendererCompileFailure(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	compile := func(label, src string) ([]uint32, error) {
		if label == "rect_undercurl" {
			return nil, errors.New("no curls")
		}
		return fakeCompile(label, src)
	}
	r, err := NewRectRenderer(device, queue, WithShaderCompiler(compile))
	if r != nil {
		t.Error("renderer should be nil on error")
	}
	var ce *shader.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *shader.CompileError", err)
	}
	if ce.Label != "rect_undercurl" {
		t.Errorf("Label = %q", ce.Label)
	}
}

func TestRectRendererDestroy(t *testing.T) {
	r, _ := newTestRenderer(t)

	r.Destroy()
	r.Destroy()

	if r.vertexBuf != nil || r.pipeLayout != nil || r.uniformLayout != nil {
		t.Error("resources not released")
	}
	for k, prog := range r.programs {
		if prog != nil {
			t.Errorf("program %d not released", k)
		}
	}
	rects := []ggterm.Rect{{Width: 1, Height: 1, Alpha: 1}}
	if err := r.Draw(&recordingPass{}, testSize, ggterm.Metrics{}, rects); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Draw after Destroy error = %v, want ErrDestroyed", err)
	}
}

func TestRectRendererNilPass(t *testing.T) {
	r, _ := newTestRenderer(t)
	if err := r.Draw(nil, testSize, ggterm.Metrics{}, nil); !errors.Is(err, ErrNilTarget) {
		t.Errorf("error = %v, want ErrNilTarget", err)
	}
}

func TestRectRendererInvalidKindPanics(t *testing.T) {
	r, _ := newTestRenderer(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid rect kind")
		}
	}()
	_ = r.Draw(&recordingPass{}, testSize, ggterm.Metrics{}, []ggterm.Rect{{Kind: 9}})
}

// halProviderStub is a DeviceHandle exposing a HAL device.
type halProviderStub struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p *halProviderStub) Device() gpucontext.Device             { return p.device }
func (p *halProviderStub) Queue() gpucontext.Queue               { return p.queue }
func (p *halProviderStub) Adapter() gpucontext.Adapter           { return nil }
func (p *halProviderStub) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }
func (p *halProviderStub) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *halProviderStub) HalDevice() any                        { return p.device }
func (p *halProviderStub) HalQueue() any                         { return p.queue }

// plainProvider does not expose HAL objects.
type plainProvider struct{ halProviderStub }

func (plainProvider) HalDevice() {}

func TestNewRectRendererFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	provider := &halProviderStub{device: device, queue: queue, format: gputypes.TextureFormatRGBA8Unorm}
	r, err := NewRectRendererFromProvider(provider, WithShaderCompiler(fakeCompile))
	if err != nil {
		t.Fatalf("NewRectRendererFromProvider: %v", err)
	}
	defer r.Destroy()

	if r.opts.targetFormat != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("target format = %v, want surface format", r.opts.targetFormat)
	}
}

func TestNewRectRendererFromProviderErrors(t *testing.T) {
	if _, err := NewRectRendererFromProvider(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil provider error = %v, want ErrNilDevice", err)
	}
	if _, err := NewRectRendererFromProvider(&plainProvider{}); !errors.Is(err, ErrNotHalProvider) {
		t.Errorf("plain provider error = %v, want ErrNotHalProvider", err)
	}
	if _, err := NewRectRendererFromProvider(&halProviderStub{}); !errors.Is(err, ErrNotHalProvider) {
		t.Errorf("empty provider error = %v, want ErrNotHalProvider", err)
	}
}

func TestOptionsIgnoreZeroValues(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []Option{
		WithTargetFormat(gputypes.TextureFormatUndefined),
		WithSampleCount(0),
		WithShaderCompiler(nil),
		WithInitialVertexCapacity(0),
	} {
		opt(&o)
	}
	def := defaultOptions()
	if o.targetFormat != def.targetFormat || o.sampleCount != def.sampleCount || o.vertexCapacity != def.vertexCapacity {
		t.Errorf("zero options changed defaults: %+v", o)
	}
	if o.compile == nil {
		t.Error("nil compiler replaced the default")
	}
}
