// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggterm"
)

// SoftwareRectRenderer is a CPU rendition of RectRenderer.
//
// It batches rects exactly like the GPU renderer, then rasterizes every
// vertex-buffer quad in the same kind order with per-pixel coverage
// matching the shader variants. Useful for headless output, golden images
// and hosts without a GPU device.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	r := render.NewSoftwareRectRenderer()
//	r.Draw(target, size, metrics, rects)
//	img := target.Image()
type SoftwareRectRenderer struct {
	plan framePlan

	// mask is reused for per-rect coverage.
	mask *image.Alpha
}

// NewSoftwareRectRenderer creates a CPU rect renderer.
func NewSoftwareRectRenderer() *SoftwareRectRenderer {
	return &SoftwareRectRenderer{}
}

// Draw rasterizes rects into target, blending source-over.
// Draw panics if a rect carries a kind outside the defined RectKinds.
func (r *SoftwareRectRenderer) Draw(target *PixmapTarget, size ggterm.SizeInfo, metrics ggterm.Metrics, rects []ggterm.Rect) error {
	if target == nil {
		return ErrNilTarget
	}
	if len(rects) == 0 || size.Width <= 0 || size.Height <= 0 {
		return nil
	}

	r.plan.build(rects, size)
	u := uniformValues(size, metrics)
	centerX := size.Width / 2
	centerY := size.Height / 2

	for _, kind := range r.plan.order() {
		data := r.plan.vertices[kind]
		quads := len(data) / (vertexStride * verticesPerRect)
		for q := 0; q < quads; q++ {
			// Vertices 0 and 4 of a quad are its opposite corners.
			topLeft := readVertex(data, q*verticesPerRect)
			bottomRight := readVertex(data, q*verticesPerRect+4)
			r.fillQuad(target.Image(), kind, &u,
				(topLeft.X+1)*centerX, (1-topLeft.Y)*centerY,
				(bottomRight.X+1)*centerX, (1-bottomRight.Y)*centerY,
				color.NRGBA{R: topLeft.R, G: topLeft.G, B: topLeft.B, A: topLeft.A})
		}
	}
	return nil
}

// fillQuad covers every pixel whose center lies inside [x0,x1)x[y0,y1).
func (r *SoftwareRectRenderer) fillQuad(dst *image.RGBA, kind ggterm.RectKind, u *[numUniforms]float32, x0, y0, x1, y1 float32, c color.NRGBA) {
	bounds := image.Rect(
		int(math.Ceil(float64(x0)-0.5)), int(math.Ceil(float64(y0)-0.5)),
		int(math.Ceil(float64(x1)-0.5)), int(math.Ceil(float64(y1)-0.5)),
	).Intersect(dst.Bounds())
	if bounds.Empty() || c.A == 0 {
		return
	}

	mask := r.ensureMask(dst.Bounds(), bounds)
	width, height := x1-x0, y1-y0
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			fx := float32(px) + 0.5
			fy := float32(py) + 0.5
			cov := coverage(kind, u, fx, fy, (fx-x0)/width, (fy-y0)/height, width, height)
			mask.SetAlpha(px, py, color.Alpha{A: uint8(clamp01(cov)*255 + 0.5)})
		}
	}

	draw.DrawMask(dst, bounds, image.NewUniform(c), image.Point{}, mask, bounds.Min, draw.Over)
}

// ensureMask returns the part of the target-sized mask covering bounds.
func (r *SoftwareRectRenderer) ensureMask(target, bounds image.Rectangle) *image.Alpha {
	if r.mask == nil || r.mask.Rect != target {
		r.mask = image.NewAlpha(target)
	}
	return r.mask.SubImage(bounds).(*image.Alpha)
}

// coverage evaluates the fragment stage of kind at framebuffer position
// (fx, fy). (lx, ly) is the position inside the rect in 0..1 and (w, h) the
// rect size in pixels.
func coverage(kind ggterm.RectKind, u *[numUniforms]float32, fx, fy, lx, ly, w, h float32) float32 {
	cellWidth := u[UniformCellWidth]
	cellHeight := u[UniformCellHeight]

	switch kind {
	case ggterm.RectKindUndercurl:
		x := floor32(wrap32(fx-u[UniformPaddingX], cellWidth))
		y := floor32(wrap32(u[UniformViewportHeight]-fy-u[UniformPaddingY], cellHeight))
		amp := u[UniformUndercurlPosition]
		curl := amp/2*float32(math.Cos(float64((x+0.5)*2*math.Pi/cellWidth))) + amp - 1
		halfExtra := max(u[UniformUnderlineThickness]-1, 0) / 2
		top, bottom := curl+halfExtra, curl-halfExtra
		if y > top || y < bottom {
			return 1 - min(abs32(top-y), abs32(bottom-y))
		}
		return 1

	case ggterm.RectKindUnderDotted:
		x := floor32(wrap32(fx-u[UniformPaddingX], cellWidth))
		y := floor32(wrap32(u[UniformViewportHeight]-fy-u[UniformPaddingY], cellHeight))
		thickness := max(u[UniformUnderlineThickness], 1)
		if wrap32(x, 2*thickness) >= thickness {
			return 0
		}
		if abs32(y-u[UniformUnderlinePosition]) > thickness/2 {
			return 0
		}
		return 1

	case ggterm.RectKindUnderDashed:
		x := floor32(wrap32(fx-u[UniformPaddingX], cellWidth))
		halfDash := floor32(cellWidth/4 + 0.5)
		if x > halfDash-1 && x < cellWidth-halfDash {
			return 0
		}
		return 1

	case ggterm.RectKindRoundedBg:
		px, py := lx*w, ly*h
		halfW, halfH := w/2, h/2
		radius := min(min(cellWidth, cellHeight)*0.25, min(halfW, halfH))
		qx := abs32(px-halfW) - (halfW - radius)
		qy := abs32(py-halfH) - (halfH - radius)
		dist := float32(math.Hypot(float64(max(qx, 0)), float64(max(qy, 0)))) - radius
		return 0.5 - dist

	default:
		return 1
	}
}

func wrap32(v, m float32) float32 {
	if m == 0 {
		return 0
	}
	return v - m*floor32(v/m)
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
