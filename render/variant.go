// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/ggterm"
	"github.com/gogpu/ggterm/internal/shader"
)

// Uniform identifies one field of the rect uniform block.
type Uniform int

const (
	UniformCellWidth Uniform = iota
	UniformCellHeight
	UniformPaddingX
	UniformPaddingY
	UniformUnderlinePosition
	UniformUnderlineThickness
	UniformUndercurlPosition
	UniformViewportHeight

	numUniforms
)

// uniformFields are the WGSL field names in block order.
var uniformFields = [numUniforms]string{
	"cell_width",
	"cell_height",
	"padding_x",
	"padding_y",
	"underline_position",
	"underline_thickness",
	"undercurl_position",
	"viewport_height",
}

// uniformBlockSize is the byte size of RectUniforms (eight f32 fields).
const uniformBlockSize = int(numUniforms) * 4

// String returns the WGSL field name.
func (u Uniform) String() string {
	if u >= 0 && u < numUniforms {
		return uniformFields[u]
	}
	return fmt.Sprintf("Uniform(%d)", int(u))
}

// uniformHandle is the byte offset of a field in the uniform block.
// ok is false when the variant never reads the field.
type uniformHandle struct {
	offset uint32
	ok     bool
}

// shaderVariant is the compiled program of one rect kind together with the
// uniform handles its code path uses.
type shaderVariant struct {
	// kind is the kind the variant was compiled for. A fallback variant
	// serving another kind keeps the kind of the program it runs.
	kind    ggterm.RectKind
	source  string
	spirv   []uint32
	handles [numUniforms]uniformHandle
}

// CompileFunc compiles WGSL source to SPIR-V words.
type CompileFunc func(label, wgslSource string) ([]uint32, error)

// newShaderVariant selects and compiles the shader path for kind.
// Compilation failures are returned as *shader.CompileError.
func newShaderVariant(kind ggterm.RectKind, compile CompileFunc) (*shaderVariant, error) {
	label := "rect_" + kind.String()

	source, err := shader.Preprocess(variantHeader(kind), rectShaderSource)
	if err != nil {
		return nil, &shader.CompileError{Label: label, Err: err}
	}

	spirv, err := compile(label, source)
	if err != nil {
		var ce *shader.CompileError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &shader.CompileError{Label: label, Err: err}
	}

	v := &shaderVariant{kind: kind, source: source, spirv: spirv}
	refs := shader.References(source, "u", uniformFields[:])
	for i, field := range uniformFields {
		if refs[field] {
			v.handles[i] = uniformHandle{offset: uint32(i * 4), ok: true} //nolint:gosec // small constant offsets
		}
	}
	ggterm.Logger().Debug("rect shader variant compiled",
		"kind", kind.String(), "uniforms", v.activeUniforms(), "words", len(spirv))
	return v, nil
}

// Handle returns the handle of a uniform and whether the variant uses it.
func (v *shaderVariant) Handle(u Uniform) (uint32, bool) {
	h := v.handles[u]
	return h.offset, h.ok
}

func (v *shaderVariant) activeUniforms() []string {
	var names []string
	for i, h := range v.handles {
		if h.ok {
			names = append(names, uniformFields[i])
		}
	}
	return names
}

// uniformValues computes the per-frame value of every uniform.
func uniformValues(size ggterm.SizeInfo, metrics ggterm.Metrics) [numUniforms]float32 {
	var vals [numUniforms]float32
	vals[UniformCellWidth] = size.CellWidth
	vals[UniformCellHeight] = size.CellHeight
	vals[UniformPaddingX] = size.PaddingX
	vals[UniformPaddingY] = size.Gutter()
	vals[UniformUnderlinePosition] = abs32(metrics.Descent) - abs32(metrics.UnderlinePosition)
	vals[UniformUnderlineThickness] = metrics.UnderlineThickness
	vals[UniformUndercurlPosition] = abs32(0.5 * metrics.Descent)
	vals[UniformViewportHeight] = size.Height
	return vals
}

// updateUniforms writes the values of present handles into block. Fields
// the variant does not use are left untouched.
func (v *shaderVariant) updateUniforms(block []byte, size ggterm.SizeInfo, metrics ggterm.Metrics) {
	vals := uniformValues(size, metrics)
	for i, h := range v.handles {
		if !h.ok {
			continue
		}
		binary.LittleEndian.PutUint32(block[h.offset:], math.Float32bits(vals[i]))
	}
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
