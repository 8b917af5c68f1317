package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("text: font size must be positive")

	// ErrNoCellGlyph is returned when the font has no glyph to measure the
	// cell width with.
	ErrNoCellGlyph = errors.New("text: font has no glyph for the cell width")
)
