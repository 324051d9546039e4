// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package extract

import (
	"fmt"
	"regexp"
	"strings"

	"brandforge/internal/brand"
)

var (
	// googleFontsV1 matches classic Google Fonts URLs
	// (fonts.googleapis.com/css?family=Name:400,700|Other).
	googleFontsV1 = regexp.MustCompile(`fonts\.googleapis\.com/css[^"'&]*family=([^"'&]+)`)

	// googleFontsV2 matches the css2 API
	// (fonts.googleapis.com/css2?family=Name:wght@400;700&family=Other).
	// The capture keeps '&' so multi-family URLs can be split below.
	googleFontsV2 = regexp.MustCompile(`fonts\.googleapis\.com/css2\?family=([^"'\s]+)`)

	fontFamilyDecl = regexp.MustCompile(`font-family:\s*([^;]+)`)

	// fontSuffix splits off weight/axis specs like :400,700 or :wght@400.
	fontSuffix = regexp.MustCompile(`[:@]`)
)

// genericFonts are CSS keywords, not typefaces.
var genericFonts = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true,
	"cursive": true, "fantasy": true,
	"system-ui": true, "ui-serif": true, "ui-sans-serif": true, "ui-monospace": true,
	"inherit": true, "initial": true, "unset": true, "revert": true,
}

// fallbackFontName is assigned when nothing is detected at all.
const fallbackFontName = "Inter"

// TypographyFrom mines web-font references and font-family declarations
// from the page HTML and style text and assigns primary/secondary roles.
// Primary is always populated.
func TypographyFrom(html string, cssContents []string) brand.Typography {
	googleFonts := googleFontNames(html, cssContents)
	customFonts := fontFamilyNames(cssContents)

	primary := pickPrimary(googleFonts, customFonts)
	secondary := pickSecondary(primary.Name, googleFonts, customFonts)

	return brand.Typography{
		Primary:        primary,
		Secondary:      secondary,
		SystemFallback: brand.DefaultSystemFallback,
	}
}

// googleFontNames finds Google Fonts families across both URL formats,
// decoded and stripped of weight suffixes, deduplicated in first-seen
// order.
func googleFontNames(html string, cssContents []string) []string {
	combined := html + strings.Join(cssContents, "\n")

	seen := make(map[string]bool)
	var fonts []string
	add := func(name string) {
		name = strings.TrimSpace(fontSuffix.Split(name, 2)[0])
		if name != "" && !seen[name] {
			seen[name] = true
			fonts = append(fonts, name)
		}
	}

	for _, m := range googleFontsV1.FindAllStringSubmatch(combined, -1) {
		param := decodeFontParam(m[1])
		// Classic API separates families with |.
		for _, name := range strings.Split(param, "|") {
			add(name)
		}
	}

	for _, m := range googleFontsV2.FindAllStringSubmatch(combined, -1) {
		param := decodeFontParam(m[1])
		// css2 separates families with &family=; cut trailing params
		// like &display=swap off each segment.
		for _, name := range strings.Split(param, "&family=") {
			name, _, _ = strings.Cut(name, "&")
			add(name)
		}
	}

	return fonts
}

func decodeFontParam(param string) string {
	param = strings.ReplaceAll(param, "%20", " ")
	return strings.ReplaceAll(param, "+", " ")
}

// fontFamilyNames takes the first non-generic font of every font-family
// stack in the style text, deduplicated in first-seen order.
func fontFamilyNames(cssContents []string) []string {
	combined := strings.Join(cssContents, "\n")

	seen := make(map[string]bool)
	var families []string

	for _, m := range fontFamilyDecl.FindAllStringSubmatch(combined, -1) {
		first := strings.TrimSpace(strings.Split(m[1], ",")[0])
		first = strings.Trim(first, `"'`)
		if first == "" || genericFonts[strings.ToLower(first)] {
			continue
		}
		if !seen[first] {
			seen[first] = true
			families = append(families, first)
		}
	}

	return families
}

// pickPrimary prefers a detected web font over a custom family, falling
// back to Inter.
func pickPrimary(googleFonts, customFonts []string) brand.FontSpec {
	if len(googleFonts) > 0 {
		return googleFontSpec(googleFonts[0])
	}
	if len(customFonts) > 0 {
		return brand.FontSpec{
			Name:   customFonts[0],
			Family: customFonts[0],
			Source: brand.FontSourceCustom,
		}
	}
	return googleFontSpec(fallbackFontName)
}

// pickSecondary returns the first detected font with a different name
// than the primary, or nil when only one distinct font exists.
func pickSecondary(primaryName string, googleFonts, customFonts []string) *brand.FontSpec {
	isGoogle := make(map[string]bool, len(googleFonts))
	for _, name := range googleFonts {
		isGoogle[name] = true
	}

	all := append(append([]string{}, googleFonts...), customFonts...)
	if len(all) < 2 {
		return nil
	}

	for _, name := range all[1:] {
		if name == primaryName {
			continue
		}
		spec := brand.FontSpec{Name: name, Family: name, Source: brand.FontSourceCustom}
		if isGoogle[name] {
			spec = googleFontSpec(name)
		}
		return &spec
	}
	return nil
}

func googleFontSpec(name string) brand.FontSpec {
	return brand.FontSpec{
		Name:        name,
		Family:      name,
		Source:      brand.FontSourceGoogle,
		DownloadURL: fmt.Sprintf("https://fonts.google.com/specimen/%s", strings.ReplaceAll(name, " ", "+")),
	}
}
