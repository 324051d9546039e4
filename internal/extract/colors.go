// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package extract turns raw scraped material into the visual facets of a
// brand profile. Each extractor is a pure function of its inputs: missing
// or broken source data degrades to structural fallbacks, never to an
// error that could abort a job.
package extract

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	// Image decoders for dominant-color extraction; webp registers itself
	// the same way the stdlib formats do.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"brandforge/internal/brand"
	"brandforge/internal/colorutil"
)

var (
	hexLiteral = regexp.MustCompile(`#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`)
	rgbLiteral = regexp.MustCompile(`rgba?\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
	hslLiteral = regexp.MustCompile(`hsla?\s*\(\s*(\d+)\s*,\s*(\d+)%?\s*,\s*(\d+)%?`)
)

const (
	// clusterThreshold merges colors closer than this in RGB space;
	// collapses anti-aliasing and gradient variance into one swatch.
	clusterThreshold = 30

	// maxRankedColors caps the ranked list the palette is built from.
	maxRankedColors = 10

	// maxImages bounds how many image buffers are mined per site.
	maxImages = 5

	// swatchesPerImage is how many dominant colors each image contributes.
	swatchesPerImage = 5
)

// defaultPalette is used when no brand color survives filtering.
var defaultPalette = struct{ primary, secondary, accent string }{
	primary:   "#1A1A2E",
	secondary: "#4A4A6A",
	accent:    "#0066FF",
}

// Colors mines color literals from style text and dominant colors from
// image buffers, clusters and ranks them, and assembles a palette. It
// always returns a palette with a populated primary.
func Colors(cssContents []string, images [][]byte) brand.ColorPalette {
	colors := colorsFromCSS(cssContents)
	colors = append(colors, colorsFromImages(images)...)

	ranked := rankColors(colors)

	return buildPalette(ranked)
}

// colorsFromCSS extracts hex, rgb()/rgba(), and hsl()/hsla() literals from
// the combined style text, normalized to uppercase 6-digit hex.
func colorsFromCSS(cssContents []string) []string {
	combined := strings.Join(cssContents, "\n")
	var colors []string

	for _, m := range hexLiteral.FindAllString(combined, -1) {
		if len(m) == 4 { // expand #ABC to #AABBCC
			m = "#" + strings.Repeat(string(m[1]), 2) +
				strings.Repeat(string(m[2]), 2) +
				strings.Repeat(string(m[3]), 2)
		}
		colors = append(colors, strings.ToUpper(m))
	}

	for _, m := range rgbLiteral.FindAllStringSubmatch(combined, -1) {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			continue
		}
		colors = append(colors, fmt.Sprintf("#%02X%02X%02X", r, g, b))
	}

	for _, m := range hslLiteral.FindAllStringSubmatch(combined, -1) {
		h, _ := strconv.Atoi(m[1])
		s, _ := strconv.Atoi(m[2])
		l, _ := strconv.Atoi(m[3])
		rgb := hslToRGB(h, float64(s)/100, float64(l)/100)
		colors = append(colors, colorutil.RGBToHex(rgb))
	}

	return colors
}

// hslToRGB converts an HSL triple using the standard piecewise
// hue-to-RGB formula.
func hslToRGB(h int, s, l float64) colorutil.RGB {
	if s == 0 {
		v := int(l * 255)
		return colorutil.RGB{R: v, G: v, B: v}
	}

	hueToRGB := func(p, q, t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hNorm := float64(h) / 360
	return colorutil.RGB{
		R: int(hueToRGB(p, q, hNorm+1.0/3) * 255),
		G: int(hueToRGB(p, q, hNorm) * 255),
		B: int(hueToRGB(p, q, hNorm-1.0/3) * 255),
	}
}

// colorsFromImages extracts a small dominant palette from each of up to
// five image buffers. Images that fail to decode are skipped.
func colorsFromImages(images [][]byte) []string {
	var colors []string

	for i, data := range images {
		if i >= maxImages {
			break
		}
		palette, err := dominantColors(data, swatchesPerImage)
		if err != nil {
			slog.Debug("image color extraction skipped", "index", i, "error", err)
			continue
		}
		colors = append(colors, palette...)
	}

	return colors
}

// dominantColors decodes an image and returns its most frequent colors,
// quantized to 32-step channel buckets to merge near-identical pixels.
func dominantColors(data []byte, count int) ([]string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty image")
	}

	// Sample at most ~100x100 positions regardless of resolution.
	stepX := max(1, width/100)
	stepY := max(1, height/100)

	counts := make(map[colorutil.RGB]int)
	var order []colorutil.RGB

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 { // skip mostly-transparent pixels
				continue
			}
			q := colorutil.RGB{
				R: quantizeChannel(int(r >> 8)),
				G: quantizeChannel(int(g >> 8)),
				B: quantizeChannel(int(b >> 8)),
			}
			if counts[q] == 0 {
				order = append(order, q)
			}
			counts[q]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	var palette []string
	for _, q := range order {
		if len(palette) >= count {
			break
		}
		palette = append(palette, colorutil.RGBToHex(q))
	}
	return palette, nil
}

// quantizeChannel buckets a channel value into 32-wide bins, returning the
// bin midpoint clamped to [0, 255].
func quantizeChannel(v int) int {
	q := (v/32)*32 + 16
	if q > 255 {
		q = 255
	}
	return q
}

// rankedColor is one cluster representative with its summed frequency.
type rankedColor struct {
	hex   string
	count int
}

// rankColors filters background neutrals, clusters similar colors, and
// returns the top clusters by summed frequency.
func rankColors(colors []string) []rankedColor {
	// Near-white and near-black are assumed page background and body
	// text, not brand colors.
	counts := make(map[string]int)
	var order []string
	for _, c := range colors {
		if colorutil.IsNearWhite(c) || colorutil.IsNearBlack(c) {
			continue
		}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	clustered := clusterColors(order, counts)

	sort.SliceStable(clustered, func(i, j int) bool {
		return clustered[i].count > clustered[j].count
	})

	if len(clustered) > maxRankedColors {
		clustered = clustered[:maxRankedColors]
	}
	return clustered
}

// clusterColors merges colors within clusterThreshold of an earlier color
// into that color's bucket, summing counts. Greedy and first-seen-wins:
// discovery order anchors each cluster.
func clusterColors(order []string, counts map[string]int) []rankedColor {
	used := make(map[string]bool)
	var merged []rankedColor

	for i, color := range order {
		if used[color] {
			continue
		}

		total := counts[color]
		for _, other := range order[i+1:] {
			if used[other] {
				continue
			}
			if colorutil.Distance(color, other) < clusterThreshold {
				total += counts[other]
				used[other] = true
			}
		}

		merged = append(merged, rankedColor{hex: color, count: total})
		used[color] = true
	}

	return merged
}

// buildPalette assigns ranked colors to palette roles, enriching each with
// derived RGB/CMYK/Pantone fields. With no survivors it returns the fixed
// default palette.
func buildPalette(ranked []rankedColor) brand.ColorPalette {
	if len(ranked) == 0 {
		return brand.ColorPalette{
			Primary:   mustColorSpec("Primary", defaultPalette.primary),
			Secondary: colorSpecPtr("Secondary", defaultPalette.secondary),
			Accent:    colorSpecPtr("Accent", defaultPalette.accent),
		}
	}

	palette := brand.ColorPalette{
		Primary: mustColorSpec("Primary", ranked[0].hex),
	}
	if len(ranked) > 1 {
		palette.Secondary = colorSpecPtr("Secondary", ranked[1].hex)
	}
	if len(ranked) > 2 {
		palette.Accent = colorSpecPtr("Accent", ranked[2].hex)
	}
	if len(ranked) > 3 {
		for i, rc := range ranked[3:] {
			if i >= 4 {
				break
			}
			palette.Neutrals = append(palette.Neutrals,
				mustColorSpec(fmt.Sprintf("Neutral %d", i+1), rc.hex))
		}
	}

	return palette
}

// mustColorSpec builds a spec from a hex the extractor itself produced;
// such values are always canonical, so validation failure is a bug.
func mustColorSpec(name, hex string) brand.ColorSpec {
	spec, err := brand.NewColorSpec(name, hex)
	if err != nil {
		panic(fmt.Sprintf("extract: non-canonical hex %q: %v", hex, err))
	}
	return spec
}

func colorSpecPtr(name, hex string) *brand.ColorSpec {
	spec := mustColorSpec(name, hex)
	return &spec
}

