package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/text/width"

	"github.com/gogpu/ggterm"
	"github.com/gogpu/ggterm/render"
	"github.com/gogpu/ggterm/text"
)

// scene describes the grid the demo renders.
type scene struct {
	// Font is a font file path; empty selects Go Mono.
	Font       string  `toml:"font"`
	FontSize   float64 `toml:"font_size"`
	PaddingX   float32 `toml:"padding_x"`
	PaddingY   float32 `toml:"padding_y"`
	Columns    int     `toml:"columns"`
	Foreground string  `toml:"foreground"`
	Background string  `toml:"background"`
	Rows       []row   `toml:"rows"`
}

// row is one terminal line. Every cell of the row carries the same
// decorations.
type row struct {
	Text        string   `toml:"text"`
	Decorations []string `toml:"decorations"`
	// Color is the underline color; empty uses the foreground.
	Color string `toml:"color"`
	// Foreground overrides the scene foreground, which colors strikeouts.
	Foreground string `toml:"foreground"`
}

func defaultScene() scene {
	return scene{
		FontSize:   16,
		PaddingX:   8,
		PaddingY:   8,
		Columns:    40,
		Foreground: "#d8dee9",
		Background: "#2e3440",
		Rows: []row{
			{Text: "underline", Decorations: []string{"underline"}, Color: "#88c0d0"},
			{Text: "double underline", Decorations: []string{"doubleunderline"}, Color: "#81a1c1"},
			{Text: "strikeout", Decorations: []string{"strikeout"}, Foreground: "#bf616a"},
			{Text: "undercurl spelling errro", Decorations: []string{"undercurl"}, Color: "#bf616a"},
			{Text: "dotted underline", Decorations: []string{"dottedunderline"}, Color: "#ebcb8b"},
			{Text: "dashed underline", Decorations: []string{"dashedunderline"}, Color: "#a3be8c"},
			{Text: "rounded highlight", Decorations: []string{"roundedbackground"}, Color: "#5e81ac"},
			{Text: "wide 世界 cells", Decorations: []string{"underline", "strikeout"}, Color: "#b48ead"},
		},
	}
}

// loadScene reads a TOML scene. Fields missing from the file keep their
// default values.
func loadScene(path string) (scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided scene path
	if err != nil {
		return scene{}, err
	}
	return parseScene(data)
}

func parseScene(data []byte) (scene, error) {
	s := defaultScene()
	s.Rows = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return scene{}, fmt.Errorf("scene: %w", err)
	}
	if s.FontSize <= 0 {
		return scene{}, fmt.Errorf("scene: font_size must be positive, got %v", s.FontSize)
	}
	if s.Columns <= 0 {
		return scene{}, fmt.Errorf("scene: columns must be positive, got %d", s.Columns)
	}
	return s, nil
}

// decorationNames maps lower-case flag names to decoration flags.
var decorationNames = func() map[string]ggterm.Flags {
	names := make(map[string]ggterm.Flags, ggterm.NumDecorations)
	for _, flag := range ggterm.Decorations() {
		names[strings.ToLower(flag.String())] = flag
	}
	return names
}()

func parseDecorations(names []string) (ggterm.Flags, error) {
	var flags ggterm.Flags
	for _, name := range names {
		flag, ok := decorationNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown decoration %q", name)
		}
		flags |= flag
	}
	return flags, nil
}

// isWide reports whether r occupies two terminal columns.
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// fontData returns the font bytes of the scene.
func (s scene) fontData() ([]byte, error) {
	if s.Font == "" {
		return gomono.TTF, nil
	}
	return os.ReadFile(s.Font)
}

// accumulate feeds the scene's cells to lines. Cells past the last column
// are dropped.
func (s scene) accumulate(lines *ggterm.Lines) error {
	fg := ggterm.Hex(s.Foreground)
	for i, r := range s.Rows {
		flags, err := parseDecorations(r.Decorations)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		rowFg := fg
		if r.Foreground != "" {
			rowFg = ggterm.Hex(r.Foreground)
		}
		underline := rowFg
		if r.Color != "" {
			underline = ggterm.Hex(r.Color)
		}

		column := 0
		for _, ch := range r.Text {
			cellFlags := flags
			advance := 1
			if isWide(ch) {
				cellFlags |= ggterm.WideChar
				advance = 2
			}
			if column+advance > s.Columns {
				break
			}
			lines.Update(ggterm.Cell{
				Point:     ggterm.Point{Line: i, Column: column},
				Flags:     cellFlags,
				Fg:        rowFg,
				Underline: underline,
			})
			column += advance
		}
	}
	return nil
}

// renderScene measures the font, accumulates the scene's decorations and
// rasterizes them into a new pixmap sized to fit the grid.
func renderScene(s scene) (*render.PixmapTarget, error) {
	data, err := s.fontData()
	if err != nil {
		return nil, err
	}
	metrics, err := text.LoadMetrics(data, s.FontSize)
	if err != nil {
		return nil, fmt.Errorf("font metrics: %w", err)
	}

	rows := max(len(s.Rows), 1)
	w := float32(s.Columns)*metrics.CellWidth + 2*s.PaddingX
	h := float32(rows)*metrics.CellHeight + 2*s.PaddingY
	size := metrics.SizeInfo(w, h, s.PaddingX, s.PaddingY)

	lines := ggterm.NewLines()
	if err := s.accumulate(lines); err != nil {
		return nil, err
	}
	rects := lines.Rects(metrics.Metrics, size)
	ggterm.Logger().Info("scene accumulated", "rows", rows, "lines", lines.Len(), "rects", len(rects))

	target := render.NewPixmapTarget(int(w), int(h))
	target.Clear(ggterm.Hex(s.Background))
	if err := render.NewSoftwareRectRenderer().Draw(target, size, metrics.Metrics, rects); err != nil {
		return nil, err
	}
	return target, nil
}
