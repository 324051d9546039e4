// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package brand defines the BrandProfile aggregate and its parts: the
// visual identity extracted from a website (colors, typography, logo) and
// the narrative copy authored by the AI synthesizer. Profiles are built
// incrementally by the pipeline and are treated as immutable once handed
// to the PDF renderer.
package brand

import (
	"fmt"
	"regexp"

	"brandforge/internal/colorutil"
)

// hexPattern is the canonical uppercase 6-digit hex form every stored
// color must match.
var hexPattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

// Cardinality caps for AI-authored list fields.
const (
	MaxPillars         = 3
	MaxTraits          = 4
	MaxVoiceGuidelines = 3
)

// ColorSpec is a single palette color with derived representations.
// RGB, CMYK, and Pantone are always computed from Hex, never supplied
// independently.
type ColorSpec struct {
	Name    string `json:"name"`
	Hex     string `json:"hex"`
	RGB     string `json:"rgb,omitempty"`
	CMYK    string `json:"cmyk,omitempty"`
	Pantone string `json:"pantone,omitempty"`
}

// NewColorSpec validates the hex value and derives the RGB string, CMYK
// string, and nearest Pantone name from it.
func NewColorSpec(name, hex string) (ColorSpec, error) {
	if !hexPattern.MatchString(hex) {
		return ColorSpec{}, fmt.Errorf("brand: invalid hex color %q, expected #RRGGBB", hex)
	}

	rgb, err := colorutil.HexToRGB(hex)
	if err != nil {
		return ColorSpec{}, fmt.Errorf("brand: parse %q: %w", hex, err)
	}

	return ColorSpec{
		Name:    name,
		Hex:     hex,
		RGB:     fmt.Sprintf("%d, %d, %d", rgb.R, rgb.G, rgb.B),
		CMYK:    colorutil.RGBToCMYK(rgb),
		Pantone: colorutil.NearestPantone(hex),
	}, nil
}

// ColorPalette is the ranked brand palette. Primary is always populated;
// extraction falls back to a fixed default palette rather than producing
// an empty one.
type ColorPalette struct {
	Primary   ColorSpec   `json:"primary"`
	Secondary *ColorSpec  `json:"secondary,omitempty"`
	Accent    *ColorSpec  `json:"accent,omitempty"`
	Neutrals  []ColorSpec `json:"neutrals,omitempty"`
}

// FontSource identifies where a font was detected.
type FontSource string

const (
	FontSourceGoogle FontSource = "google"
	FontSourceCustom FontSource = "custom"
	FontSourceAdobe  FontSource = "adobe"
)

// FontSpec describes one typeface. DownloadURL is only populated for
// Google-hosted fonts.
type FontSpec struct {
	Name        string     `json:"name"`
	Family      string     `json:"family"`
	Weight      string     `json:"weight,omitempty"`
	Style       string     `json:"style,omitempty"`
	Source      FontSource `json:"source"`
	DownloadURL string     `json:"download_url,omitempty"`
}

// DefaultSystemFallback is the font stack recommended when neither brand
// font is available.
const DefaultSystemFallback = "Arial, Helvetica, sans-serif"

// Typography is the font assignment for the brand.
type Typography struct {
	Primary        FontSpec  `json:"primary"`
	Secondary      *FontSpec `json:"secondary,omitempty"`
	SystemFallback string    `json:"system_fallback"`
}

// BrandPillar is one of up to three strategic pillars.
type BrandPillar struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PersonalityTrait is one of up to four brand personality traits.
type PersonalityTrait struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// VoiceGuideline is an IS / IS NOT voice pair with example copy.
type VoiceGuideline struct {
	IsTrait      string `json:"is_trait"`
	IsExample    string `json:"is_example"`
	IsNotTrait   string `json:"is_not_trait"`
	IsNotExample string `json:"is_not_example"`
}

// LogoFormat is the inferred image format of a logo asset.
type LogoFormat string

const (
	LogoFormatPNG  LogoFormat = "png"
	LogoFormatJPEG LogoFormat = "jpeg"
	LogoFormatSVG  LogoFormat = "svg"
	LogoFormatICO  LogoFormat = "ico"
)

// LogoAsset holds the resolved logo URL, its fetched bytes when the asset
// was reachable, and any variation URLs.
type LogoAsset struct {
	PrimaryURL  string     `json:"primary_url,omitempty"`
	PrimaryData []byte     `json:"-"`
	Variations  []string   `json:"variations,omitempty"`
	Format      LogoFormat `json:"format"`
}

// Profile is the aggregate brand description produced by the pipeline.
// Visual fields are set by the extractors, narrative fields by the AI
// merge step.
type Profile struct {
	// Identity
	CompanyName string `json:"company_name"`
	Domain      string `json:"domain"`
	Tagline     string `json:"tagline,omitempty"`

	// Visual identity
	Colors     ColorPalette `json:"colors"`
	Typography Typography   `json:"typography"`
	Logo       *LogoAsset   `json:"logo,omitempty"`

	// Brand strategy (AI-generated)
	PositioningHeadline    string `json:"positioning_headline,omitempty"`
	PositioningDescription string `json:"positioning_description,omitempty"`
	Mission                string `json:"mission,omitempty"`
	MissionDescription     string `json:"mission_description,omitempty"`
	Vision                 string `json:"vision,omitempty"`
	VisionDescription      string `json:"vision_description,omitempty"`

	// Brand personality
	Pillars            []BrandPillar      `json:"pillars,omitempty"`
	Traits             []PersonalityTrait `json:"traits,omitempty"`
	Promise            string             `json:"promise,omitempty"`
	PromiseDescription string             `json:"promise_description,omitempty"`

	// Voice & tone
	VoiceGuidelines []VoiceGuideline `json:"voice_guidelines,omitempty"`
	Boilerplate     string           `json:"boilerplate,omitempty"`

	// Photography
	PhotoStyle string `json:"photo_style,omitempty"`
}
