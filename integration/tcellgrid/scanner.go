// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tcellgrid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/ggterm"
)

// Screen is the part of tcell.Screen the scanner reads.
type Screen interface {
	Size() (width, height int)
	GetContent(x, y int) (primary rune, combining []rune, style tcell.Style, width int)
}

var _ Screen = tcell.Screen(nil)

// Scanner converts tcell cells into ggterm cells and accumulates their
// decoration lines.
//
// A Scanner reuses its Lines across scans and is not safe for concurrent
// use.
type Scanner struct {
	// DefaultFg replaces the terminal's default foreground color.
	DefaultFg ggterm.Color

	// DefaultBg replaces the terminal's default background color. It is
	// only visible through reverse video.
	DefaultBg ggterm.Color

	lines *ggterm.Lines
}

// NewScanner creates a scanner resolving default colors to fg and bg.
func NewScanner(fg, bg ggterm.Color) *Scanner {
	return &Scanner{
		DefaultFg: fg,
		DefaultBg: bg,
		lines:     ggterm.NewLines(),
	}
}

// Scan resets the scanner's Lines and feeds every cell of screen to it.
// The returned Lines is owned by the scanner and valid until the next Scan.
func (s *Scanner) Scan(screen Screen) *ggterm.Lines {
	s.lines.Reset()

	width, height := screen.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_, _, style, w := screen.GetContent(x, y)
			cell := s.Cell(ggterm.Point{Line: y, Column: x}, style, w)
			s.lines.Update(cell)
			if w > 1 {
				// The spacer column is covered by the wide cell.
				x += w - 1
			}
		}
	}
	return s.lines
}

// Cell resolves the decorations and colors of one screen cell.
func (s *Scanner) Cell(at ggterm.Point, style tcell.Style, width int) ggterm.Cell {
	fg, bg, attrs := style.Decompose()

	cell := ggterm.Cell{
		Point: at,
		Flags: decorationFlags(style, attrs),
		Fg:    resolve(fg, s.DefaultFg),
	}
	if attrs&tcell.AttrReverse != 0 {
		cell.Fg = resolve(bg, s.DefaultBg)
	}
	if width > 1 {
		cell.Flags |= ggterm.WideChar
	}

	cell.Underline = cell.Fg
	if uc := style.GetUnderlineColor(); uc != tcell.ColorDefault {
		cell.Underline = resolve(uc, cell.Fg)
	}
	return cell
}

// decorationFlags maps tcell attributes to ggterm decoration flags.
func decorationFlags(style tcell.Style, attrs tcell.AttrMask) ggterm.Flags {
	var flags ggterm.Flags

	switch style.GetUnderlineStyle() {
	case tcell.UnderlineStyleSolid:
		flags |= ggterm.Underline
	case tcell.UnderlineStyleDouble:
		flags |= ggterm.DoubleUnderline
	case tcell.UnderlineStyleCurly:
		flags |= ggterm.Undercurl
	case tcell.UnderlineStyleDotted:
		flags |= ggterm.DottedUnderline
	case tcell.UnderlineStyleDashed:
		flags |= ggterm.DashedUnderline
	default:
		if attrs&tcell.AttrUnderline != 0 {
			flags |= ggterm.Underline
		}
	}

	if attrs&tcell.AttrStrikeThrough != 0 {
		flags |= ggterm.Strikeout
	}
	return flags
}

// resolve converts a tcell color, falling back to def for colors without
// an RGB value (default and reset).
func resolve(c tcell.Color, def ggterm.Color) ggterm.Color {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return def
	}
	return ggterm.RGB(uint8(r), uint8(g), uint8(b)) //nolint:gosec // RGB components are 0..255
}
