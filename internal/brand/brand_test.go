// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brand

import "testing"

func TestNewColorSpec(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		wantRGB string
		wantErr bool
	}{
		{name: "red", hex: "#FF0000", wantRGB: "255, 0, 0"},
		{name: "default navy", hex: "#1A1A2E", wantRGB: "26, 26, 46"},
		{name: "lowercase rejected", hex: "#ff0000", wantErr: true},
		{name: "three digit rejected", hex: "#F00", wantErr: true},
		{name: "missing hash rejected", hex: "FF0000", wantErr: true},
		{name: "non hex rejected", hex: "#GGGGGG", wantErr: true},
		{name: "empty rejected", hex: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewColorSpec("Primary", tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewColorSpec(%q) expected error", tt.hex)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewColorSpec(%q): %v", tt.hex, err)
			}
			if spec.Hex != tt.hex {
				t.Errorf("Hex = %q, want %q", spec.Hex, tt.hex)
			}
			if spec.RGB != tt.wantRGB {
				t.Errorf("RGB = %q, want %q", spec.RGB, tt.wantRGB)
			}
			if spec.CMYK == "" {
				t.Error("CMYK not derived")
			}
			if spec.Pantone == "" {
				t.Error("Pantone not derived")
			}
		})
	}
}

func TestNewColorSpecDerivedFields(t *testing.T) {
	spec, err := NewColorSpec("Primary", "#000000")
	if err != nil {
		t.Fatal(err)
	}
	if spec.CMYK != "0, 0, 0, 100" {
		t.Errorf("CMYK = %q, want black special case", spec.CMYK)
	}
	if spec.Pantone != "Pantone Black C" {
		t.Errorf("Pantone = %q, want Pantone Black C", spec.Pantone)
	}
}
