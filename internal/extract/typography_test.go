// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package extract

import (
	"testing"

	"brandforge/internal/brand"
)

func TestTypographyGoogleFontsV1(t *testing.T) {
	html := `<link href="https://fonts.googleapis.com/css?family=Open+Sans:400,700" rel="stylesheet">`

	typo := TypographyFrom(html, nil)

	if typo.Primary.Name != "Open Sans" {
		t.Errorf("primary name = %q, want Open Sans", typo.Primary.Name)
	}
	if typo.Primary.Source != brand.FontSourceGoogle {
		t.Errorf("primary source = %q, want google", typo.Primary.Source)
	}
	if typo.Primary.DownloadURL != "https://fonts.google.com/specimen/Open+Sans" {
		t.Errorf("download URL = %q", typo.Primary.DownloadURL)
	}
	if typo.SystemFallback != "Arial, Helvetica, sans-serif" {
		t.Errorf("system fallback = %q", typo.SystemFallback)
	}
}

func TestTypographyGoogleFontsV1MultipleFamilies(t *testing.T) {
	html := `<link href="https://fonts.googleapis.com/css?family=Roboto:400|Lora:400i" rel="stylesheet">`

	typo := TypographyFrom(html, nil)

	if typo.Primary.Name != "Roboto" {
		t.Errorf("primary = %q, want Roboto", typo.Primary.Name)
	}
	if typo.Secondary == nil || typo.Secondary.Name != "Lora" {
		t.Fatalf("secondary = %v, want Lora", typo.Secondary)
	}
	if typo.Secondary.Source != brand.FontSourceGoogle {
		t.Errorf("secondary source = %q, want google", typo.Secondary.Source)
	}
	if typo.Secondary.DownloadURL == "" {
		t.Error("google secondary should carry a specimen URL")
	}
}

func TestTypographyGoogleFontsV2(t *testing.T) {
	html := `<link href="https://fonts.googleapis.com/css2?family=Playfair+Display:wght@400;700&family=Source%20Sans%20Pro" rel="stylesheet">`

	typo := TypographyFrom(html, nil)

	if typo.Primary.Name != "Playfair Display" {
		t.Errorf("primary = %q, want Playfair Display", typo.Primary.Name)
	}
	if typo.Secondary == nil || typo.Secondary.Name != "Source Sans Pro" {
		t.Errorf("secondary = %v, want Source Sans Pro", typo.Secondary)
	}
}

func TestTypographyFontFamilies(t *testing.T) {
	css := []string{`
		body { font-family: "Helvetica Neue", Arial, sans-serif; }
		h1 { font-family: Georgia, serif; }
		code { font-family: monospace; }
		.x { font-family: inherit; }
	`}

	typo := TypographyFrom("", css)

	if typo.Primary.Name != "Helvetica Neue" {
		t.Errorf("primary = %q, want first custom family", typo.Primary.Name)
	}
	if typo.Primary.Source != brand.FontSourceCustom {
		t.Errorf("primary source = %q, want custom", typo.Primary.Source)
	}
	if typo.Primary.DownloadURL != "" {
		t.Error("custom font must not carry a download URL")
	}
	if typo.Secondary == nil || typo.Secondary.Name != "Georgia" {
		t.Errorf("secondary = %v, want Georgia", typo.Secondary)
	}
}

func TestTypographyGenericOnlyFallsBackToInter(t *testing.T) {
	css := []string{`body { font-family: system-ui, sans-serif; }`}

	typo := TypographyFrom("", css)

	if typo.Primary.Name != "Inter" {
		t.Errorf("primary = %q, want Inter fallback", typo.Primary.Name)
	}
	if typo.Primary.Source != brand.FontSourceGoogle {
		t.Errorf("fallback source = %q, want google", typo.Primary.Source)
	}
	if typo.Primary.DownloadURL != "https://fonts.google.com/specimen/Inter" {
		t.Errorf("fallback download URL = %q", typo.Primary.DownloadURL)
	}
	if typo.Secondary != nil {
		t.Errorf("secondary = %v, want none", typo.Secondary)
	}
}

func TestTypographyGoogleBeatsCustom(t *testing.T) {
	html := `<link href="https://fonts.googleapis.com/css?family=Montserrat" rel="stylesheet">`
	css := []string{`body { font-family: "Proxima Nova", sans-serif; }`}

	typo := TypographyFrom(html, css)

	if typo.Primary.Name != "Montserrat" {
		t.Errorf("primary = %q; web font must beat custom family", typo.Primary.Name)
	}
	if typo.Secondary == nil || typo.Secondary.Name != "Proxima Nova" {
		t.Errorf("secondary = %v, want Proxima Nova", typo.Secondary)
	}
	if typo.Secondary != nil && typo.Secondary.Source != brand.FontSourceCustom {
		t.Errorf("secondary source = %q, want custom", typo.Secondary.Source)
	}
}

func TestTypographySecondarySkipsDuplicateOfPrimary(t *testing.T) {
	// The same font in both a web-font link and a font-family stack must
	// not become its own secondary.
	html := `<link href="https://fonts.googleapis.com/css?family=Roboto" rel="stylesheet">`
	css := []string{`body { font-family: Roboto, sans-serif; }`}

	typo := TypographyFrom(html, css)

	if typo.Primary.Name != "Roboto" {
		t.Errorf("primary = %q", typo.Primary.Name)
	}
	if typo.Secondary != nil {
		t.Errorf("secondary = %v, want none (only one distinct font)", typo.Secondary)
	}
}
