// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tcellgrid feeds a tcell screen into the ggterm decoration
// pipeline.
//
// A tcell application already holds a fully styled cell grid. Scanner walks
// that grid in row-major order and reports every cell to a ggterm.Lines, so
// underline styles, strikethrough and wide characters become merged
// decoration lines ready for ggterm.Lines.Rects:
//
//	tcell                      ggterm
//	UnderlineStyleSolid   ->   Underline
//	UnderlineStyleDouble  ->   DoubleUnderline
//	UnderlineStyleCurly   ->   Undercurl
//	UnderlineStyleDotted  ->   DottedUnderline
//	UnderlineStyleDashed  ->   DashedUnderline
//	AttrStrikeThrough     ->   Strikeout
//	width 2               ->   WideChar
//
// # Usage
//
//	scanner := tcellgrid.NewScanner(ggterm.White, ggterm.Black)
//	lines := scanner.Scan(screen)
//	rects := lines.Rects(metrics, size)
package tcellgrid
