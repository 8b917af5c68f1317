package ggterm

import "image/color"

// Color is an already resolved 24-bit terminal color.
//
// Color resolution (palette lookup, bold brightening, dim) happens before
// cells reach ggterm; decorations only pass colors through.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA implements color.Color. Colors are always opaque; alpha is carried
// separately by Rect.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// NRGBA returns the color combined with an alpha in [0, 1], quantized to
// 8 bits the same way vertex colors are.
func (c Color) NRGBA(alpha float32) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: AlphaByte(alpha)}
}

// AlphaByte quantizes an alpha in [0, 1] to an 8-bit channel. Values
// outside the range are clamped.
func AlphaByte(alpha float32) uint8 {
	switch {
	case alpha <= 0:
		return 0
	case alpha >= 1:
		return 0xff
	}
	return uint8(alpha * 255)
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with an optional leading '#'.
// Malformed input yields black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	default:
		return Color{}
	}

	//nolint:gosec // parseHex yields at most 0xff for two digits
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// Common colors
var (
	Black   = RGB(0, 0, 0)
	White   = RGB(0xff, 0xff, 0xff)
	Red     = RGB(0xff, 0, 0)
	Green   = RGB(0, 0xff, 0)
	Blue    = RGB(0, 0, 0xff)
	Yellow  = RGB(0xff, 0xff, 0)
	Cyan    = RGB(0, 0xff, 0xff)
	Magenta = RGB(0xff, 0, 0xff)
)
