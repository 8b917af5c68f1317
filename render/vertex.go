// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggterm"
)

// vertexStride is the byte stride per vertex in the rect pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0)
//	color    (unorm8x4)  = 4 bytes (location 1)
//
// Total = 12 bytes per vertex, tightly packed.
const vertexStride = 12

// verticesPerRect is the number of vertex references per rect: two
// triangles sharing a diagonal.
const verticesPerRect = 6

// quadIndices maps the six triangle vertices onto the four quad corners.
var quadIndices = [verticesPerRect]int{0, 1, 2, 2, 3, 1}

// Vertex is one rect corner in normalized device coordinates.
type Vertex struct {
	X, Y       float32
	R, G, B, A uint8
}

// rectVertexLayout returns the vertex buffer layout for the rect pipelines.
func rectVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatUnorm8x4, Offset: 8, ShaderLocation: 1},  // color
			},
		},
	}
}

// quadVertices converts a pixel-space rect into its four corners in NDC.
// NDC range from -1 to +1 with Y pointing up.
func quadVertices(r *ggterm.Rect, centerX, centerY float32) [4]Vertex {
	x := r.X/centerX - 1
	y := -r.Y/centerY + 1
	width := r.Width / centerX
	height := r.Height / centerY
	c := Vertex{R: r.Color.R, G: r.Color.G, B: r.Color.B, A: ggterm.AlphaByte(r.Alpha)}

	quad := [4]Vertex{c, c, c, c}
	quad[0].X, quad[0].Y = x, y
	quad[1].X, quad[1].Y = x, y-height
	quad[2].X, quad[2].Y = x+width, y
	quad[3].X, quad[3].Y = x+width, y-height
	return quad
}

// appendRectVertices appends the two triangles of r to buf.
func appendRectVertices(buf []byte, r *ggterm.Rect, centerX, centerY float32) []byte {
	quad := quadVertices(r, centerX, centerY)
	for _, i := range quadIndices {
		buf = appendVertex(buf, quad[i])
	}
	return buf
}

func appendVertex(buf []byte, v Vertex) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.X))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.Y))
	return append(buf, v.R, v.G, v.B, v.A)
}

// readVertex decodes the vertex at index i of buf.
func readVertex(buf []byte, i int) Vertex {
	b := buf[i*vertexStride:]
	return Vertex{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		R: b[8], G: b[9], B: b[10], A: b[11],
	}
}

// framePlan partitions one frame's rects by kind and holds their vertices.
// The per-kind slices are reused across frames.
type framePlan struct {
	vertices [ggterm.NumRectKinds][]byte
}

// build clears the plan and fills it from rects, preserving arrival order
// within each kind.
func (p *framePlan) build(rects []ggterm.Rect, size ggterm.SizeInfo) {
	for i := range p.vertices {
		p.vertices[i] = p.vertices[i][:0]
	}

	centerX := size.Width / 2
	centerY := size.Height / 2
	for i := range rects {
		r := &rects[i]
		if int(r.Kind) >= ggterm.NumRectKinds {
			panic(fmt.Sprintf("render: invalid rect kind %v", r.Kind))
		}
		p.vertices[r.Kind] = appendRectVertices(p.vertices[r.Kind], r, centerX, centerY)
	}
}

// order returns the kinds with vertices in draw order: descending kind,
// so plain and underline rects are drawn last, above everything else.
func (p *framePlan) order() []ggterm.RectKind {
	kinds := make([]ggterm.RectKind, 0, ggterm.NumRectKinds)
	for k := ggterm.NumRectKinds - 1; k >= 0; k-- {
		if len(p.vertices[k]) > 0 {
			kinds = append(kinds, ggterm.RectKind(k))
		}
	}
	return kinds
}

// vertexCount returns the number of vertices queued for kind.
func (p *framePlan) vertexCount(kind ggterm.RectKind) uint32 {
	return uint32(len(p.vertices[kind]) / vertexStride) //nolint:gosec // vertex count fits uint32
}

// totalBytes returns the size of all queued vertex data.
func (p *framePlan) totalBytes() int {
	n := 0
	for i := range p.vertices {
		n += len(p.vertices[i])
	}
	return n
}
