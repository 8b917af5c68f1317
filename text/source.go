package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"

	"github.com/gogpu/ggterm/internal/cache"
)

// metricsCacheSize bounds the number of sizes a FontSource remembers.
// Terminals cycle through a few zoom levels at most.
const metricsCacheSize = 16

// FontSource represents a loaded font file.
// One FontSource can measure the font at any number of sizes.
//
// FontSource is safe for concurrent use.
type FontSource struct {
	name string

	// sfnt is the x/image view of the font (advances, vertical metrics,
	// "post" table).
	sfnt *opentype.Font

	// OS/2 strikeout metrics in font units, read once from the go-text face.
	upem               float32
	strikeoutPosition  float32
	strikeoutThickness float32

	// metrics memoizes Metrics per pixel size.
	metrics *cache.Cache[float64, CellMetrics]
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data is not retained.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	// font.Face is not safe for concurrent use; only its line metrics are
	// kept, and the face itself is dropped.
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font tables: %w", err)
	}

	s := &FontSource{
		name:               familyName(f),
		sfnt:               f,
		upem:               float32(face.Upem()),
		strikeoutPosition:  face.LineMetric(font.StrikethroughPosition),
		strikeoutThickness: face.LineMetric(font.StrikethroughThickness),
		metrics:            cache.New[float64, CellMetrics](metricsCacheSize),
	}
	if s.upem <= 0 {
		s.upem = float32(f.UnitsPerEm())
	}
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name, or "" if the font has none.
func (s *FontSource) Name() string {
	return s.name
}

// LoadMetrics parses data and measures it at sizePx pixels per em.
func LoadMetrics(data []byte, sizePx float64) (CellMetrics, error) {
	s, err := NewFontSource(data)
	if err != nil {
		return CellMetrics{}, err
	}
	return s.Metrics(sizePx)
}
