package ggterm

// Point is a position in the terminal grid.
type Point struct {
	Line   int
	Column int
}

// Cell is one visible grid cell as reported by the terminal.
// Colors are already resolved.
type Cell struct {
	Point Point
	Flags Flags

	// Fg is the foreground color, used for strikeout.
	Fg Color

	// Underline is the decoration color, used by every other decoration.
	Underline Color
}

// Line is a merged run of cells sharing one decoration flag and color.
// End is inclusive.
type Line struct {
	Start Point
	End   Point
	Color Color
}

// FlagLines pairs a decoration flag with its merged lines in scan order.
type FlagLines struct {
	Flag  Flags
	Lines []Line
}

// Lines accumulates decoration lines for one frame.
//
// Cells must be passed to Update in row-major, left-to-right order. A Lines
// value is owned by the goroutine driving the scan and must be Reset before
// each frame.
type Lines struct {
	inner [NumDecorations][]Line
}

// NewLines creates an empty accumulator.
func NewLines() *Lines {
	return &Lines{}
}

// Reset clears all lines while keeping allocated capacity for the next frame.
func (l *Lines) Reset() {
	for i := range l.inner {
		l.inner[i] = l.inner[i][:0]
	}
}

// Update records the next cell of the scan.
func (l *Lines) Update(cell Cell) {
	for i, flag := range decorations {
		if !cell.Flags.Contains(flag) {
			continue
		}
		l.updateFlag(i, flag, cell)
	}
}

func (l *Lines) updateFlag(slot int, flag Flags, cell Cell) {
	// The underline color escape does not apply to strikeout.
	color := cell.Underline
	if flag == Strikeout {
		color = cell.Fg
	}

	// Cover the spacer column of a wide character.
	end := cell.Point
	if cell.Flags.Contains(WideChar) {
		end.Column++
	}

	lines := l.inner[slot]
	if n := len(lines); n > 0 {
		last := &lines[n-1]
		if last.Color == color &&
			cell.Point.Line == last.End.Line &&
			cell.Point.Column == last.End.Column+1 {
			last.End = end
			return
		}
	}

	l.inner[slot] = append(lines, Line{Start: cell.Point, End: end, Color: color})
}

// Get returns the lines accumulated for a single decoration flag.
// The slice is only valid until the next Reset.
func (l *Lines) Get(flag Flags) []Line {
	i := decorationIndex(flag)
	if i < 0 {
		return nil
	}
	return l.inner[i]
}

// Finish returns every decoration flag with its lines, in processing order.
// Flags without lines are included with an empty slice.
func (l *Lines) Finish() []FlagLines {
	out := make([]FlagLines, 0, NumDecorations)
	for i, flag := range decorations {
		out = append(out, FlagLines{Flag: flag, Lines: l.inner[i]})
	}
	return out
}

// Len returns the total number of lines over all flags.
func (l *Lines) Len() int {
	n := 0
	for i := range l.inner {
		n += len(l.inner[i])
	}
	return n
}

// Rects compiles every accumulated line into pixel-space rectangles.
func (l *Lines) Rects(metrics Metrics, size SizeInfo) []Rect {
	rects := make([]Rect, 0, l.Len())
	for i, flag := range decorations {
		for _, line := range l.inner[i] {
			rects = line.AppendRects(rects, flag, metrics, size)
		}
	}
	return rects
}
