// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggterm/internal/shader"
)

// Option configures a RectRenderer during creation.
//
// Example:
//
//	r, err := render.NewRectRenderer(device, queue,
//	    render.WithTargetFormat(gputypes.TextureFormatRGBA8Unorm),
//	    render.WithSampleCount(4),
//	)
type Option func(*options)

// options holds optional configuration for RectRenderer creation.
type options struct {
	targetFormat   gputypes.TextureFormat
	sampleCount    uint32
	compile        CompileFunc
	vertexCapacity int
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		targetFormat:   gputypes.TextureFormatBGRA8Unorm,
		sampleCount:    1,
		compile:        shader.Compile,
		vertexCapacity: 256 * verticesPerRect,
	}
}

// WithTargetFormat sets the color format of the render pass the rects are
// recorded into. Defaults to BGRA8Unorm.
func WithTargetFormat(format gputypes.TextureFormat) Option {
	return func(o *options) {
		if format != gputypes.TextureFormatUndefined {
			o.targetFormat = format
		}
	}
}

// WithSampleCount sets the multisample count of the render pass.
// Defaults to 1.
func WithSampleCount(count uint32) Option {
	return func(o *options) {
		if count > 0 {
			o.sampleCount = count
		}
	}
}

// WithShaderCompiler replaces the WGSL to SPIR-V compiler.
// A nil compiler keeps the default naga compiler.
func WithShaderCompiler(compile CompileFunc) Option {
	return func(o *options) {
		if compile != nil {
			o.compile = compile
		}
	}
}

// WithInitialVertexCapacity sets how many vertices the vertex buffer holds
// before its first growth.
func WithInitialVertexCapacity(vertices int) Option {
	return func(o *options) {
		if vertices > 0 {
			o.vertexCapacity = vertices
		}
	}
}
