// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package colorutil

import (
	"math"
	"testing"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "red with hash", input: "#FF0000", want: RGB{255, 0, 0}},
		{name: "red without hash", input: "FF0000", want: RGB{255, 0, 0}},
		{name: "lowercase", input: "#ff8800", want: RGB{255, 136, 0}},
		{name: "black", input: "#000000", want: RGB{0, 0, 0}},
		{name: "white", input: "#FFFFFF", want: RGB{255, 255, 255}},
		{name: "mixed", input: "#1A2B3C", want: RGB{26, 43, 60}},
		{name: "three digit rejected", input: "#FFF", wantErr: true},
		{name: "garbage", input: "#GGHHII", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToRGB(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("HexToRGB(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("HexToRGB(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("HexToRGB(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestHexRGBRoundTrip verifies hex -> RGB -> hex stability across a sweep
// of representative values.
func TestHexRGBRoundTrip(t *testing.T) {
	for _, hex := range []string{
		"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF",
		"#123456", "#ABCDEF", "#7F7F7F", "#010203", "#FEDCBA",
	} {
		rgb, err := HexToRGB(hex)
		if err != nil {
			t.Fatalf("HexToRGB(%q): %v", hex, err)
		}
		if got := RGBToHex(rgb); got != hex {
			t.Errorf("round trip %q -> %v -> %q", hex, rgb, got)
		}
	}
}

func TestRGBToCMYK(t *testing.T) {
	tests := []struct {
		name  string
		input RGB
		want  string
	}{
		{name: "pure black", input: RGB{0, 0, 0}, want: "0, 0, 0, 100"},
		{name: "pure white", input: RGB{255, 255, 255}, want: "0, 0, 0, 0"},
		{name: "pure red", input: RGB{255, 0, 0}, want: "0, 100, 100, 0"},
		{name: "pure green", input: RGB{0, 255, 0}, want: "100, 0, 100, 0"},
		{name: "pure blue", input: RGB{0, 0, 255}, want: "100, 100, 0, 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToCMYK(tt.input); got != tt.want {
				t.Errorf("RGBToCMYK(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	// Identity.
	for _, hex := range []string{"#000000", "#FF0000", "#ABCDEF"} {
		if d := Distance(hex, hex); d != 0 {
			t.Errorf("Distance(%q, %q) = %v, want 0", hex, hex, d)
		}
	}

	// Symmetry.
	if d1, d2 := Distance("#FF0000", "#0000FF"), Distance("#0000FF", "#FF0000"); d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}

	// Black vs white is the maximum, sqrt(255^2 * 3).
	want := math.Sqrt(255 * 255 * 3)
	if d := Distance("#000000", "#FFFFFF"); math.Abs(d-want) > 1e-9 {
		t.Errorf("Distance(black, white) = %v, want %v", d, want)
	}
}

func TestNearWhiteNearBlack(t *testing.T) {
	tests := []struct {
		hex       string
		nearWhite bool
		nearBlack bool
	}{
		{"#FFFFFF", true, false},
		{"#F0F0F0", true, false},
		{"#EFEFEF", false, false}, // 239 < 240 threshold
		{"#000000", false, true},
		{"#0F0F0F", false, true},
		{"#101010", false, false}, // 16 > 15 threshold
		{"#FF0000", false, false},
	}

	for _, tt := range tests {
		if got := IsNearWhite(tt.hex); got != tt.nearWhite {
			t.Errorf("IsNearWhite(%q) = %v, want %v", tt.hex, got, tt.nearWhite)
		}
		if got := IsNearBlack(tt.hex); got != tt.nearBlack {
			t.Errorf("IsNearBlack(%q) = %v, want %v", tt.hex, got, tt.nearBlack)
		}
	}
}

func TestLuminance(t *testing.T) {
	if l := Luminance("#000000"); l != 0 {
		t.Errorf("Luminance(black) = %v, want 0", l)
	}
	if l := Luminance("#FFFFFF"); math.Abs(l-1) > 1e-9 {
		t.Errorf("Luminance(white) = %v, want 1", l)
	}
	// Green dominates the weighting.
	if Luminance("#00FF00") <= Luminance("#FF0000") {
		t.Error("expected green to be more luminous than red")
	}
}

func TestContrastRatio(t *testing.T) {
	// Black on white is the WCAG maximum of 21.
	if cr := ContrastRatio("#000000", "#FFFFFF"); math.Abs(cr-21) > 1e-9 {
		t.Errorf("ContrastRatio(black, white) = %v, want 21", cr)
	}
	// Order must not matter.
	if c1, c2 := ContrastRatio("#FF0000", "#FFFFFF"), ContrastRatio("#FFFFFF", "#FF0000"); c1 != c2 {
		t.Errorf("contrast ratio not symmetric: %v vs %v", c1, c2)
	}
	// Same color: ratio 1.
	if cr := ContrastRatio("#808080", "#808080"); math.Abs(cr-1) > 1e-9 {
		t.Errorf("ContrastRatio(same, same) = %v, want 1", cr)
	}
}

func TestNearestPantone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "exact red", input: "#FF0000", want: "Pantone 185 C"},
		{name: "near red", input: "#FA0505", want: "Pantone 185 C"},
		{name: "exact black", input: "#000000", want: "Pantone Black C"},
		{name: "default palette navy", input: "#1A1A2E", want: "Pantone 5395 C"},
		// A saturated mid-green sits 100+ away from every table entry,
		// so the lookup refuses to fabricate a name.
		{name: "no confident match", input: "#00A550", want: NoPantoneMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestPantone(tt.input); got != tt.want {
				t.Errorf("NearestPantone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
