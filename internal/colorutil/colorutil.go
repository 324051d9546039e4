// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package colorutil provides pure color-space math used by the brand
// extraction pipeline: hex/RGB/CMYK conversions, RGB-space distance,
// WCAG luminance and contrast, and nearest-Pantone lookup against a
// small approximation table.
package colorutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB holds an 8-bit-per-channel color.
type RGB struct {
	R, G, B int
}

// HexToRGB parses a 6-digit hex color (with or without leading '#').
func HexToRGB(hex string) (RGB, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("colorutil: invalid hex color %q", hex)
	}

	var channels [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("colorutil: invalid hex color %q", hex)
		}
		channels[i] = int(v)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// RGBToHex formats a color as canonical uppercase #RRGGBB.
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBToCMYK converts to a CMYK percentage string ("c, m, y, k").
// Pure black and the degenerate k=1 case are special-cased to avoid
// division by zero.
func RGBToCMYK(rgb RGB) string {
	if rgb.R == 0 && rgb.G == 0 && rgb.B == 0 {
		return "0, 0, 0, 100"
	}

	c := 1 - float64(rgb.R)/255
	m := 1 - float64(rgb.G)/255
	y := 1 - float64(rgb.B)/255

	k := math.Min(c, math.Min(m, y))
	if k == 1 {
		return "0, 0, 0, 100"
	}

	c = (c - k) / (1 - k)
	m = (m - k) / (1 - k)
	y = (y - k) / (1 - k)

	return fmt.Sprintf("%d, %d, %d, %d",
		int(c*100), int(m*100), int(y*100), int(k*100))
}

// Distance returns the Euclidean distance between two hex colors in RGB
// space: 0 for identical colors, ~441 for black vs white. Unparseable
// inputs are treated as black.
func Distance(hex1, hex2 string) float64 {
	c1, _ := HexToRGB(hex1)
	c2, _ := HexToRGB(hex2)

	dr := float64(c1.R - c2.R)
	dg := float64(c1.G - c2.G)
	db := float64(c1.B - c2.B)

	return math.Sqrt(dr*dr + dg*dg + db*db)
}

const (
	// nearWhiteThreshold: all channels at or above this count as white-ish.
	nearWhiteThreshold = 240
	// nearBlackThreshold: all channels at or below this count as black-ish.
	nearBlackThreshold = 15
)

// IsNearWhite reports whether all three channels are at or above 240.
func IsNearWhite(hex string) bool {
	c, err := HexToRGB(hex)
	if err != nil {
		return false
	}
	return c.R >= nearWhiteThreshold && c.G >= nearWhiteThreshold && c.B >= nearWhiteThreshold
}

// IsNearBlack reports whether all three channels are at or below 15.
func IsNearBlack(hex string) bool {
	c, err := HexToRGB(hex)
	if err != nil {
		return false
	}
	return c.R <= nearBlackThreshold && c.G <= nearBlackThreshold && c.B <= nearBlackThreshold
}

// Luminance returns the WCAG relative luminance of a hex color, between
// 0 (black) and 1 (white).
func Luminance(hex string) float64 {
	c, _ := HexToRGB(hex)

	gamma := func(v float64) float64 {
		v /= 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}

	return 0.2126*gamma(float64(c.R)) + 0.7152*gamma(float64(c.G)) + 0.0722*gamma(float64(c.B))
}

// ContrastRatio returns the WCAG contrast ratio between two colors,
// between 1 (no contrast) and 21 (black on white).
func ContrastRatio(hex1, hex2 string) float64 {
	l1 := Luminance(hex1)
	l2 := Luminance(hex2)

	lighter := math.Max(l1, l2)
	darker := math.Min(l1, l2)

	return (lighter + 0.05) / (darker + 0.05)
}

// pantoneSwatch is one named reference color for nearest-match lookup.
type pantoneSwatch struct {
	hex  string
	name string
}

// pantoneSwatches approximates common Pantone colors. Real Pantone
// matching requires proprietary color databases; a coarse table is enough
// for a guidelines document.
var pantoneSwatches = []pantoneSwatch{
	{"#FF0000", "Pantone 185 C"},
	{"#FF6600", "Pantone 1505 C"},
	{"#FFCC00", "Pantone 116 C"},
	{"#00FF00", "Pantone 802 C"},
	{"#00CCFF", "Pantone 2995 C"},
	{"#0066FF", "Pantone 2728 C"},
	{"#0000FF", "Pantone 286 C"},
	{"#6600FF", "Pantone 2685 C"},
	{"#FF00FF", "Pantone 807 C"},
	{"#000000", "Pantone Black C"},
	{"#FFFFFF", "Pantone White"},
	{"#1A1A2E", "Pantone 5395 C"},
	{"#4A4A6A", "Pantone 5275 C"},
}

// NoPantoneMatch is returned when no swatch is within the confidence cutoff.
const NoPantoneMatch = "Contact Pantone for exact match"

// maxPantoneDistance is the cutoff beyond which a match is not trusted.
const maxPantoneDistance = 100

// NearestPantone returns the name of the closest reference swatch, or
// NoPantoneMatch when nothing is within the distance cutoff. It never
// fabricates a name for a poor match.
func NearestPantone(hex string) string {
	minDistance := math.Inf(1)
	nearest := NoPantoneMatch

	for _, sw := range pantoneSwatches {
		if d := Distance(hex, sw.hex); d < minDistance {
			minDistance = d
			nearest = sw.name
		}
	}

	if minDistance < maxPantoneDistance {
		return nearest
	}
	return NoPantoneMatch
}
