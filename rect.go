package ggterm

import (
	"fmt"
	"math"
)

// RectKind selects the shader variant a rectangle is drawn with.
//
// The numeric order is the reverse of the draw order: RoundedBg is drawn
// first and Underline last, so plain rectangles end up above every other
// decoration.
type RectKind uint8

const (
	// RectKindUnderline is used for underlines, strikeouts and plain
	// caller-supplied rectangles.
	RectKindUnderline RectKind = iota
	RectKindUndercurl
	RectKindUnderDotted
	RectKindUnderDashed
	RectKindRoundedBg

	// NumRectKinds is the number of rectangle kinds.
	NumRectKinds = 5
)

var rectKindNames = [NumRectKinds]string{
	"underline",
	"undercurl",
	"under_dotted",
	"under_dashed",
	"rounded_bg",
}

// String returns a short lower-case name, used for GPU object labels.
func (k RectKind) String() string {
	if int(k) < len(rectKindNames) {
		return rectKindNames[k]
	}
	return fmt.Sprintf("RectKind(%d)", uint8(k))
}

// Rect is a colored axis-aligned rectangle in pixels (top-left origin).
type Rect struct {
	X, Y          float32
	Width, Height float32
	Color         Color
	Alpha         float32
	Kind          RectKind
}

// NewRect creates a plain rectangle. Plain rectangles use RectKindUnderline
// so they are drawn above all other decorations.
func NewRect(x, y, width, height float32, color Color, alpha float32) Rect {
	return Rect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Color:  color,
		Alpha:  alpha,
		Kind:   RectKindUnderline,
	}
}

// Rects compiles the line into rectangles for the given decoration flag.
//
// Lines spanning several grid lines are split at the last column of each
// intermediate row. Rects panics if flag is not one of the seven decoration
// flags.
func (l Line) Rects(flag Flags, metrics Metrics, size SizeInfo) []Rect {
	return l.AppendRects(nil, flag, metrics, size)
}

// AppendRects is like Rects but appends to dst.
func (l Line) AppendRects(dst []Rect, flag Flags, metrics Metrics, size SizeInfo) []Rect {
	start := l.Start
	for start.Line < l.End.Line {
		end := Point{Line: start.Line, Column: size.LastColumn()}
		dst = pushRects(dst, metrics, size, flag, start, end, l.Color)
		start = Point{Line: start.Line + 1}
	}
	return pushRects(dst, metrics, size, flag, start, l.End, l.Color)
}

// pushRects appends all rects required to draw one row of a line.
func pushRects(
	dst []Rect,
	metrics Metrics,
	size SizeInfo,
	flag Flags,
	start, end Point,
	color Color,
) []Rect {
	var (
		position, thickness float32
		kind                RectKind
	)

	switch flag {
	case DoubleUnderline:
		// Each underline gets half of the descent.
		topPos := 0.25 * metrics.Descent
		bottomPos := 0.75 * metrics.Descent

		dst = append(dst, createRect(size, metrics.Descent, start, end, topPos, metrics.UnderlineThickness, color))

		position, thickness, kind = bottomPos, metrics.UnderlineThickness, RectKindUnderline
	case Undercurl:
		position, thickness, kind = metrics.Descent, abs32(metrics.Descent), RectKindUndercurl
	case Underline:
		position, thickness, kind = metrics.UnderlinePosition, metrics.UnderlineThickness, RectKindUnderline
	case DottedUnderline:
		position, thickness, kind = metrics.Descent, abs32(metrics.Descent), RectKindUnderDotted
	case DashedUnderline:
		position, thickness, kind = metrics.UnderlinePosition, metrics.UnderlineThickness, RectKindUnderDashed
	case Strikeout:
		position, thickness, kind = metrics.StrikeoutPosition, metrics.StrikeoutThickness, RectKindUnderline
	case RoundedBackground:
		position, thickness, kind = metrics.Descent, size.CellHeight, RectKindRoundedBg
	default:
		panic(fmt.Sprintf("ggterm: invalid flag for cell line drawing: %v", flag))
	}

	rect := createRect(size, metrics.Descent, start, end, position, thickness, color)
	rect.Kind = kind
	return append(dst, rect)
}

// createRect creates a line's rect at a position relative to the baseline.
func createRect(
	size SizeInfo,
	descent float32,
	start, end Point,
	position, thickness float32,
	color Color,
) Rect {
	startX := float32(start.Column) * size.CellWidth
	endX := float32(end.Column+1) * size.CellWidth
	width := endX - startX

	// Keep lines visible at any scale.
	thickness = max(thickness, 1)

	lineBottom := float32(start.Line+1) * size.CellHeight
	baseline := lineBottom + descent

	y := float32(math.Round(float64(baseline - position - thickness/2)))
	if maxY := lineBottom - thickness; y > maxY {
		y = maxY
	}

	return NewRect(startX+size.PaddingX, y+size.PaddingY, width, thickness, color, 1)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
