// Package colorutil provides shared color utilities for the area viewer.
package colorutil

import (
	"fmt"
	"image/color"
)

// Common overlay colors used throughout the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Channels returns the 8-bit RGB channels of a color.
func Channels(c color.Color) (r, g, b int) {
	r16, g16, b16, _ := c.RGBA()
	return int(r16 >> 8), int(g16 >> 8), int(b16 >> 8)
}

// ManhattanDistance returns the sum of absolute per-channel differences
// between two colors, in 8-bit channel units. The maximum possible
// distance is 765 (3 * 255).
func ManhattanDistance(a, b color.Color) int {
	ar, ag, ab := Channels(a)
	br, bg, bb := Channels(b)
	return abs(ar-br) + abs(ag-bg) + abs(ab-bb)
}

// ParseHex parses a "#rrggbb" or "rrggbb" color string.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats a color as "#rrggbb".
func Hex(c color.Color) string {
	r, g, b := Channels(c)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
