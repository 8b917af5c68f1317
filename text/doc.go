// Package text measures monospace fonts for terminal decoration rendering.
//
// A FontSource parses a TTF/OTF file once; Metrics then derives, for one
// pixel size, the cell size and the decoration metrics consumed by
// ggterm.Line.Rects and the render package:
//
//   - cell width from the advance of '0', cell height from the line height
//   - descent (negative, below the baseline)
//   - underline position and thickness from the "post" table
//   - strikeout position and thickness from the "OS/2" table
//
// Outlines and advances are read with golang.org/x/image/font/opentype;
// the OS/2 strikeout metrics, which x/image does not expose, come from
// github.com/go-text/typesetting.
//
// # Example
//
//	source, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := source.Metrics(16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	size := m.SizeInfo(800, 600, 2, 2)
//	rects := lines.Rects(m.Metrics, size)
package text
