package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHex parses "#RRGGBB" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("core: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("core: invalid hex color %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Palette holds the four colors used to draw a frame.
type Palette struct {
	Background Color
	Body       Color
	Head       Color
	Apple      Color
}

// DefaultPalette returns the stock dark palette.
func DefaultPalette() Palette {
	return Palette{
		Background: RGB(34, 40, 49),
		Body:       RGB(57, 62, 70),
		Head:       RGB(0, 173, 181),
		Apple:      RGB(238, 238, 238),
	}
}
