package ggterm

import "math"

// Metrics holds the font quantities used to place decorations.
//
// All values are in pixels relative to the baseline, Y up: Descent is
// negative for fonts that extend below the baseline, and positions below the
// baseline are negative.
type Metrics struct {
	Descent            float32
	UnderlinePosition  float32
	UnderlineThickness float32
	StrikeoutPosition  float32
	StrikeoutThickness float32
}

// SizeInfo describes the viewport and cell box in pixels.
type SizeInfo struct {
	// Width and Height are the full viewport dimensions.
	Width  float32
	Height float32

	CellWidth  float32
	CellHeight float32

	// PaddingX and PaddingY are the fixed padding around the grid.
	PaddingX float32
	PaddingY float32

	// Columns is the number of grid columns.
	Columns int
}

// LastColumn returns the index of the last visible column.
func (s SizeInfo) LastColumn() int {
	if s.Columns <= 0 {
		return 0
	}
	return s.Columns - 1
}

// Gutter returns the vertical space left below the last full cell row:
// the viewport height minus padding, modulo the cell height.
func (s SizeInfo) Gutter() float32 {
	if s.CellHeight <= 0 {
		return 0
	}
	viewport := s.Height - s.PaddingY
	rows := float32(math.Floor(float64(viewport / s.CellHeight)))
	return viewport - rows*s.CellHeight
}
