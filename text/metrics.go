package text

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggterm"
)

// cellGlyphs are measured in order for the cell width.
var cellGlyphs = []rune{'0', 'M', ' '}

// CellMetrics holds the terminal cell size and decoration metrics of a
// font at one pixel size. All values are in pixels.
type CellMetrics struct {
	ggterm.Metrics

	// Ascent is the distance from the baseline to the top of the cell
	// (positive).
	Ascent float32

	// CellWidth is the rounded advance of the cell glyph.
	CellWidth float32

	// CellHeight is the rounded line height: ascent + descent + line gap.
	CellHeight float32
}

// SizeInfo returns the viewport geometry of a width x height surface with
// the given padding, filled with cells of m.
func (m CellMetrics) SizeInfo(width, height, paddingX, paddingY float32) ggterm.SizeInfo {
	columns := 0
	if m.CellWidth > 0 {
		columns = int((width - 2*paddingX) / m.CellWidth)
	}
	return ggterm.SizeInfo{
		Width:      width,
		Height:     height,
		CellWidth:  m.CellWidth,
		CellHeight: m.CellHeight,
		PaddingX:   paddingX,
		PaddingY:   paddingY,
		Columns:    max(columns, 0),
	}
}

// Metrics measures the font at sizePx pixels per em. Results are cached
// per size.
//
// Fonts without a "post" table get an underline half way down the descent,
// and fonts without OS/2 strikeout values a strikeout at half the x-height.
// Thicknesses never drop below one pixel.
func (s *FontSource) Metrics(sizePx float64) (CellMetrics, error) {
	if sizePx <= 0 || math.IsNaN(sizePx) || math.IsInf(sizePx, 0) {
		return CellMetrics{}, ErrInvalidSize
	}
	return s.metrics.Load(sizePx, func() (CellMetrics, error) {
		return s.measure(sizePx)
	})
}

func (s *FontSource) measure(sizePx float64) (CellMetrics, error) {
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(sizePx * 64)

	vm, err := s.sfnt.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return CellMetrics{}, err
	}

	cellWidth, err := s.cellAdvance(&buf, ppem)
	if err != nil {
		return CellMetrics{}, err
	}

	ascent := fixedToFloat32(vm.Ascent)
	descent := -fixedToFloat32(vm.Descent)
	height := fixedToFloat32(vm.Height)
	scale := float32(sizePx) / s.upem

	m := CellMetrics{
		Ascent:     ascent,
		CellWidth:  float32(math.Round(float64(cellWidth))),
		CellHeight: float32(math.Round(float64(max(height, ascent-descent)))),
	}
	m.Descent = descent

	if post := s.sfnt.PostTable(); post != nil && post.UnderlineThickness > 0 {
		m.UnderlinePosition = float32(post.UnderlinePosition) * scale
		m.UnderlineThickness = float32(post.UnderlineThickness) * scale
	} else {
		m.UnderlinePosition = descent / 2
		m.UnderlineThickness = float32(sizePx) / 14
	}

	if s.strikeoutThickness > 0 {
		m.StrikeoutPosition = s.strikeoutPosition * scale
		m.StrikeoutThickness = s.strikeoutThickness * scale
	} else {
		m.StrikeoutPosition = fixedToFloat32(vm.XHeight) / 2
		m.StrikeoutThickness = m.UnderlineThickness
	}

	m.UnderlineThickness = max(m.UnderlineThickness, 1)
	m.StrikeoutThickness = max(m.StrikeoutThickness, 1)

	ggterm.Logger().Debug("font measured",
		"font", s.name, "size", sizePx,
		"cell_width", m.CellWidth, "cell_height", m.CellHeight, "descent", m.Descent)
	return m, nil
}

// cellAdvance returns the advance of the first cell glyph the font maps.
func (s *FontSource) cellAdvance(buf *sfnt.Buffer, ppem fixed.Int26_6) (float32, error) {
	for _, r := range cellGlyphs {
		idx, err := s.sfnt.GlyphIndex(buf, r)
		if err != nil || idx == 0 {
			continue
		}
		advance, err := s.sfnt.GlyphAdvance(buf, idx, ppem, font.HintingNone)
		if err != nil || advance <= 0 {
			continue
		}
		return fixedToFloat32(advance), nil
	}
	return 0, ErrNoCellGlyph
}

func familyName(f *sfnt.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// fixedToFloat32 converts fixed.Int26_6 to float32.
func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64
}
