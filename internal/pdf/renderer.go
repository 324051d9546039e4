// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pdf renders a brand profile into a fixed-layout guidelines
// document using gofpdf. Pages follow a set inventory: cover, strategy,
// personality, voice, then the visual identity (color, typography, logo).
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"brandforge/internal/brand"
	"brandforge/internal/colorutil"
)

// Landscape Letter in millimetres.
const (
	pageWidth  = 279.4
	pageHeight = 215.9
	margin     = 20.0
)

// Renderer writes brand guidelines PDFs into an output directory.
type Renderer struct {
	outputDir string
}

// New creates a Renderer. The output directory is created on first render.
func New(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir}
}

// Render builds the guidelines document for the profile and writes it to
// <outputDir>/<jobID>.pdf, returning the written path.
func (r *Renderer) Render(profile *brand.Profile, jobID string) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("pdf output dir: %w", err)
	}

	doc := gofpdf.New("L", "mm", "Letter", "")
	doc.SetAutoPageBreak(true, margin)

	coverPage(doc, profile)
	positioningPage(doc, profile)
	statementPage(doc, "OUR MISSION", profile.Mission, profile.MissionDescription)
	statementPage(doc, "OUR VISION", profile.Vision, profile.VisionDescription)
	pillarsPage(doc, profile)
	traitsPage(doc, profile)
	statementPage(doc, "BRAND PROMISE", profile.Promise, profile.PromiseDescription)
	voicePage(doc, profile)
	boilerplatePage(doc, profile)
	colorPage(doc, profile)
	typographyPage(doc, profile)
	logoPage(doc, profile)

	path := filepath.Join(r.outputDir, jobID+".pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("pdf output: %w", err)
	}
	return path, nil
}

// coverPage paints a full-bleed band in the primary brand color with the
// company name and tagline reversed out of it.
func coverPage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()

	red, green, blue := fillColor(profile.Colors.Primary.Hex)
	doc.SetFillColor(red, green, blue)
	doc.Rect(0, 0, pageWidth, pageHeight, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 42)
	doc.SetXY(margin, 70)
	doc.MultiCell(pageWidth-2*margin, 18, profile.CompanyName, "", "L", false)

	doc.SetFont("Helvetica", "", 16)
	doc.SetX(margin)
	doc.MultiCell(pageWidth-2*margin, 9, "Brand Guidelines", "", "L", false)

	if profile.Tagline != "" {
		doc.Ln(10)
		doc.SetFont("Helvetica", "I", 13)
		doc.SetX(margin)
		doc.MultiCell(pageWidth-2*margin, 7, profile.Tagline, "", "L", false)
	}

	doc.SetTextColor(0, 0, 0)
}

func positioningPage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()
	pageLabel(doc, "BRAND POSITIONING")

	doc.SetFont("Helvetica", "B", 24)
	doc.SetXY(margin, 60)
	doc.MultiCell(pageWidth-2*margin, 11, orPlaceholder(profile.PositioningHeadline), "", "L", false)

	doc.Ln(8)
	doc.SetFont("Helvetica", "", 12)
	doc.SetX(margin)
	doc.MultiCell(pageWidth-2*margin, 6.5, orPlaceholder(profile.PositioningDescription), "", "L", false)
}

// statementPage is the shared layout for mission, vision, and promise:
// label, short statement set large, then an expanding paragraph.
func statementPage(doc *gofpdf.Fpdf, label, statement, description string) {
	doc.AddPage()
	pageLabel(doc, label)

	doc.SetFont("Helvetica", "B", 24)
	doc.SetXY(margin, 70)
	doc.MultiCell(pageWidth-2*margin, 11, orPlaceholder(statement), "", "L", false)

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(90, 90, 90)
	doc.SetX(margin)
	doc.MultiCell(pageWidth-2*margin, 6.5, orPlaceholder(description), "", "L", false)
	doc.SetTextColor(0, 0, 0)
}

func pillarsPage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()
	pageLabel(doc, "BRAND PILLARS")

	doc.SetY(55)
	for i, pillar := range profile.Pillars {
		doc.SetFont("Helvetica", "", 11)
		doc.SetTextColor(150, 150, 150)
		doc.SetX(margin)
		doc.CellFormat(14, 8, fmt.Sprintf("%02d", i+1), "", 0, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)

		doc.SetFont("Helvetica", "B", 15)
		doc.MultiCell(pageWidth-2*margin-14, 8, pillar.Title, "", "L", false)

		doc.SetFont("Helvetica", "", 11)
		doc.SetX(margin + 14)
		doc.MultiCell(pageWidth-2*margin-14, 6, pillar.Description, "", "L", false)
		doc.Ln(7)
	}
}

func traitsPage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()
	pageLabel(doc, "BRAND PERSONALITY")

	doc.SetY(55)
	for _, trait := range profile.Traits {
		doc.SetFont("Helvetica", "B", 14)
		doc.SetX(margin)
		doc.MultiCell(pageWidth-2*margin, 7.5, trait.Name, "", "L", false)

		doc.SetFont("Helvetica", "", 11)
		doc.SetX(margin)
		doc.MultiCell(pageWidth-2*margin, 6, trait.Description, "", "L", false)
		doc.Ln(5)
	}
}

// voicePage sets voice guidelines in IS / IS NOT columns, the left column
// showing the trait to embody and the right its opposite to avoid.
func voicePage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()
	pageLabel(doc, "VOICE CHARACTERISTICS")

	colWidth := (pageWidth - 2*margin - 10) / 2
	rightX := margin + colWidth + 10

	doc.SetFont("Helvetica", "B", 13)
	doc.SetXY(margin, 52)
	doc.CellFormat(colWidth, 8, strings.ToUpper(profile.CompanyName)+" IS", "", 0, "L", false, 0, "")
	doc.SetX(rightX)
	doc.CellFormat(colWidth, 8, strings.ToUpper(profile.CompanyName)+" IS NOT", "", 1, "L", false, 0, "")
	doc.Ln(4)

	for _, guideline := range profile.VoiceGuidelines {
		rowY := doc.GetY()

		doc.SetXY(margin, rowY)
		doc.SetFont("Helvetica", "B", 12)
		doc.MultiCell(colWidth, 6.5, guideline.IsTrait, "", "L", false)
		doc.SetFont("Helvetica", "I", 10)
		doc.SetX(margin)
		doc.MultiCell(colWidth, 5.5, `"`+guideline.IsExample+`"`, "", "L", false)
		leftEnd := doc.GetY()

		doc.SetXY(rightX, rowY)
		doc.SetFont("Helvetica", "B", 12)
		doc.MultiCell(colWidth, 6.5, guideline.IsNotTrait, "", "L", false)
		doc.SetFont("Helvetica", "I", 10)
		doc.SetX(rightX)
		doc.MultiCell(colWidth, 5.5, `"`+guideline.IsNotExample+`"`, "", "L", false)

		doc.SetY(max(leftEnd, doc.GetY()) + 8)
	}
}

func boilerplatePage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()
	pageLabel(doc, "BOILERPLATE")

	doc.SetFont("Helvetica", "", 12)
	doc.SetXY(margin, 55)
	doc.MultiCell(pageWidth-2*margin, 6.5, orPlaceholder(profile.Boilerplate), "", "L", false)

	doc.Ln(14)
	doc.SetFont("Helvetica", "B", 13)
	doc.SetX(margin)
	doc.CellFormat(0, 8, "Photography Style", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.SetX(margin)
	doc.MultiCell(pageWidth-2*margin, 6.5, orPlaceholder(profile.PhotoStyle), "", "L", false)
}

// colorPage draws one swatch block per palette entry with the print and
// screen values beneath it.
func colorPage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()
	pageLabel(doc, "COLOR")

	swatches := []brand.ColorSpec{profile.Colors.Primary}
	if profile.Colors.Secondary != nil {
		swatches = append(swatches, *profile.Colors.Secondary)
	}
	if profile.Colors.Accent != nil {
		swatches = append(swatches, *profile.Colors.Accent)
	}
	swatches = append(swatches, profile.Colors.Neutrals...)

	const swatchSize = 38.0
	const cellWidth = swatchSize + 22
	x, y := margin, 52.0

	for _, spec := range swatches {
		if x+swatchSize > pageWidth-margin {
			x = margin
			y += swatchSize + 42
		}

		red, green, blue := fillColor(spec.Hex)
		doc.SetFillColor(red, green, blue)
		doc.Rect(x, y, swatchSize, swatchSize, "F")

		doc.SetFont("Helvetica", "B", 10)
		doc.SetXY(x, y+swatchSize+2)
		doc.CellFormat(cellWidth, 5, spec.Name, "", 2, "L", false, 0, "")

		doc.SetFont("Helvetica", "", 8)
		for _, line := range []string{
			spec.Hex,
			"RGB " + spec.RGB,
			"CMYK " + spec.CMYK,
			spec.Pantone,
		} {
			doc.CellFormat(cellWidth, 4, line, "", 2, "L", false, 0, "")
		}

		x += cellWidth
	}
}

func typographyPage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()
	pageLabel(doc, "TYPOGRAPHY")

	doc.SetY(55)
	fontSpec(doc, "Primary Typeface", &profile.Typography.Primary)
	if profile.Typography.Secondary != nil {
		fontSpec(doc, "Secondary Typeface", profile.Typography.Secondary)
	}

	doc.SetFont("Helvetica", "B", 13)
	doc.SetX(margin)
	doc.CellFormat(0, 8, "System Fallback", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.SetX(margin)
	doc.CellFormat(0, 6, profile.Typography.SystemFallback, "", 1, "L", false, 0, "")
}

func fontSpec(doc *gofpdf.Fpdf, heading string, spec *brand.FontSpec) {
	doc.SetFont("Helvetica", "B", 13)
	doc.SetX(margin)
	doc.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 22)
	doc.SetX(margin)
	doc.CellFormat(0, 11, spec.Name, "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(90, 90, 90)
	doc.SetX(margin)
	doc.CellFormat(0, 5.5, "Source: "+string(spec.Source), "", 1, "L", false, 0, "")
	if spec.DownloadURL != "" {
		doc.SetX(margin)
		doc.CellFormat(0, 5.5, spec.DownloadURL, "", 1, "L", false, 0, "")
	}
	doc.SetTextColor(0, 0, 0)
	doc.Ln(8)
}

// logoPage embeds the fetched logo when it is a raster format gofpdf can
// place; otherwise it records the source URL only.
func logoPage(doc *gofpdf.Fpdf, profile *brand.Profile) {
	doc.AddPage()
	pageLabel(doc, "LOGO")

	if profile.Logo == nil {
		doc.SetFont("Helvetica", "I", 11)
		doc.SetXY(margin, 60)
		doc.CellFormat(0, 6, "No logo was identified for this brand.", "", 1, "L", false, 0, "")
		return
	}

	if imageType := embeddableType(profile.Logo); imageType != "" {
		name := "brand-logo"
		options := gofpdf.ImageOptions{ImageType: imageType}
		doc.RegisterImageOptionsReader(name, options, bytes.NewReader(profile.Logo.PrimaryData))
		doc.ImageOptions(name, margin, 60, 80, 0, false, options, 0, "")
		doc.SetY(150)
	} else {
		doc.SetFont("Helvetica", "I", 11)
		doc.SetXY(margin, 60)
		doc.CellFormat(0, 6, "Logo artwork could not be embedded; source reference below.", "", 1, "L", false, 0, "")
	}

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(90, 90, 90)
	doc.SetX(margin)
	doc.MultiCell(pageWidth-2*margin, 5.5, "Source: "+profile.Logo.PrimaryURL, "", "L", false)
	doc.SetTextColor(0, 0, 0)
}

// embeddableType returns the gofpdf image type for the logo payload, or
// "" when the payload is absent or not a decodable PNG/JPEG. Decoding up
// front keeps a corrupt download from poisoning the whole document.
func embeddableType(logo *brand.LogoAsset) string {
	if len(logo.PrimaryData) == 0 {
		return ""
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(logo.PrimaryData))
	if err != nil {
		return ""
	}
	switch format {
	case "png":
		return "PNG"
	case "jpeg":
		return "JPG"
	}
	return ""
}

// pageLabel writes the small uppercase label at the top of a page.
func pageLabel(doc *gofpdf.Fpdf, label string) {
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(150, 150, 150)
	doc.SetXY(margin, 28)
	doc.CellFormat(0, 6, label, "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
}

// fillColor converts a palette hex into gofpdf's integer channels,
// falling back to near-black for anything unparseable.
func fillColor(hex string) (int, int, int) {
	rgb, err := colorutil.HexToRGB(hex)
	if err != nil {
		return 26, 26, 46
	}
	return rgb.R, rgb.G, rgb.B
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "To be defined."
	}
	return s
}
