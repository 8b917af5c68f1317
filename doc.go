// Package ggterm turns per-cell text decorations of a terminal grid into
// colored rectangles ready for GPU batching.
//
// # Overview
//
// A terminal renderer reports every visible cell once per frame. Cells may
// carry decoration flags (underline, double underline, strikeout, undercurl,
// dotted and dashed underline, rounded background). ggterm merges those
// cells into the fewest possible line segments and compiles each segment into
// pixel-space rectangles using font metrics:
//
//	cells -> Lines (merge) -> Line.Rects (geometry) -> render.RectRenderer (GPU)
//
// # Quick Start
//
//	lines := ggterm.NewLines()
//	for _, cell := range visibleCells {
//	    lines.Update(cell)
//	}
//	rects := lines.Rects(metrics, size)
//	renderer.Draw(pass, size, metrics, rects)
//
// # Coordinate System
//
// Grid positions are (line, column) pairs, both zero based. Pixel-space
// rectangles use a top-left origin with Y increasing down.
//
// # Rendering
//
// The render package owns the GPU side: one vertex buffer, one shader variant
// per RectKind and a fixed back-to-front draw order. A CPU renderer with the
// same batching rules is provided for previews and tests.
package ggterm

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
