// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws batches of terminal decoration rectangles.
//
// # Key Principle
//
// The renderer RECEIVES a GPU device from the host application, it does NOT
// create its own. The terminal owns the device, the surface and the render
// pass; RectRenderer only records draws into a pass it is handed.
//
// # Programs
//
// Every ggterm.RectKind has its own shader program, compiled from a single
// WGSL source with a define header selecting the code path:
//
//	Underline    solid fill (underlines, strikeouts, plain rects)
//	Undercurl    cosine wave measured from the cell bottom
//	UnderDotted  square dots, one thickness apart
//	UnderDashed  half dashes on the cell edges, gap in the middle
//	RoundedBg    anti-aliased rounded rectangle
//
// A program only uploads the uniforms its code path reads. If the dotted
// program cannot be compiled, dotted rects are drawn with the solid program.
//
// # Draw Order
//
// Rects are grouped by kind and each group is drawn with one call. Groups
// are drawn from RoundedBg down to Underline, so plain rectangles end up on
// top of every other decoration.
//
// # Renderers
//
//   - RectRenderer: WebGPU rendering through wgpu/hal
//   - SoftwareRectRenderer: CPU rendering into a PixmapTarget
//
// # Example
//
//	r, err := render.NewRectRendererFromProvider(app.DeviceProvider())
//	if err != nil {
//	    return err
//	}
//	defer r.Destroy()
//
//	// inside the frame's render pass
//	rects := lines.Rects(metrics, size)
//	if err := r.Draw(pass, size, metrics, rects); err != nil {
//	    return err
//	}
package render
