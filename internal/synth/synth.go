// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package synth turns scraped website text into brand narrative copy by
// prompting an LLM for a structured JSON document and merging the parsed
// result into a brand profile.
package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"brandforge/internal/brand"
)

// maxPromptText caps the website text embedded in the prompt so the
// request stays inside model token limits.
const maxPromptText = 15000

// systemPrompt frames every generation request.
const systemPrompt = "You are a senior brand strategist. You write precise, " +
	"specific brand guidelines grounded in the source material you are given."

// Generator produces text from a pair of prompts. *ai.Registry satisfies it.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Synthesizer drives narrative generation for brand profiles.
type Synthesizer struct {
	gen Generator
}

// New creates a Synthesizer backed by the given generator.
func New(gen Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Enrich prompts the generator with the site text, parses the JSON reply
// and merges the narrative fields into the profile. The profile's visual
// fields (colors, typography, logo) are never touched. A response that
// cannot be parsed as JSON is a hard error; the caller decides whether
// that fails the job.
func (s *Synthesizer) Enrich(ctx context.Context, profile *brand.Profile, siteText string) error {
	prompt := BuildPrompt(siteText, profile.CompanyName)

	raw, err := s.gen.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return fmt.Errorf("synth generate: %w", err)
	}

	content, err := Parse(raw)
	if err != nil {
		return err
	}

	Merge(profile, content)
	return nil
}

// BuildPrompt assembles the generation prompt, truncating the site text
// to maxPromptText bytes on a rune boundary.
func BuildPrompt(siteText, companyName string) string {
	if len(siteText) > maxPromptText {
		cut := maxPromptText
		for cut > 0 && !utf8.RuneStart(siteText[cut]) {
			cut--
		}
		siteText = siteText[:cut]
	}

	var b strings.Builder
	b.WriteString("Analyze this website content for ")
	b.WriteString(companyName)
	b.WriteString(" and generate brand guidelines content.\n\n")
	b.WriteString("WEBSITE CONTENT:\n")
	b.WriteString(siteText)
	b.WriteString("\n\nBased on the content above, generate brand guidelines in JSON format. ")
	b.WriteString("Be specific to this company based on what you learned from their website. Do not be generic.\n\n")
	b.WriteString("Generate the following JSON structure:\n")
	b.WriteString(`{
    "tagline": "Short memorable tagline (max 10 words)",
    "positioning_headline": "Bold positioning statement that captures what makes this company unique",
    "positioning_description": "2-3 sentences expanding on the positioning",
    "mission": "Mission statement (1-2 sentences)",
    "mission_description": "Paragraph explaining the mission in more detail",
    "vision": "Vision statement (1-2 sentences)",
    "vision_description": "Paragraph explaining the vision in more detail",
    "pillars": [
        {"title": "First Pillar Name", "description": "1-2 sentence description of this pillar"},
        {"title": "Second Pillar Name", "description": "1-2 sentence description of this pillar"},
        {"title": "Third Pillar Name", "description": "1-2 sentence description of this pillar"}
    ],
    "traits": [
        {"name": "First Trait", "description": "1-2 sentence description of this personality trait"},
        {"name": "Second Trait", "description": "1-2 sentence description of this personality trait"},
        {"name": "Third Trait", "description": "1-2 sentence description of this personality trait"},
        {"name": "Fourth Trait", "description": "1-2 sentence description of this personality trait"}
    ],
    "promise": "Brand promise statement",
    "promise_description": "Paragraph explaining what this promise means to customers",
    "voice_guidelines": [
        {
            "is_trait": "Voice characteristic (e.g., Confident)",
            "is_example": "Example copy demonstrating this characteristic",
            "is_not_trait": "Opposite to avoid (e.g., Arrogant)",
            "is_not_example": "Example of what to avoid"
        },
        {
            "is_trait": "Another voice characteristic",
            "is_example": "Example copy",
            "is_not_trait": "Opposite to avoid",
            "is_not_example": "Example of what to avoid"
        },
        {
            "is_trait": "Third voice characteristic",
            "is_example": "Example copy",
            "is_not_trait": "Opposite to avoid",
            "is_not_example": "Example of what to avoid"
        }
    ],
    "boilerplate": "Company boilerplate paragraph for press releases (2-3 sentences)",
    "photo_style": "Description of photography style that would fit this brand (2-3 sentences)"
}`)
	b.WriteString("\n\nReturn ONLY valid JSON, no additional text or explanation.")
	return b.String()
}

// Content is the typed shape of the model's JSON reply. Pointer fields
// distinguish "key absent" from "empty string" so a merge never wipes an
// existing value with a missing one.
type Content struct {
	Tagline                *string                 `json:"tagline"`
	PositioningHeadline    *string                 `json:"positioning_headline"`
	PositioningDescription *string                 `json:"positioning_description"`
	Mission                *string                 `json:"mission"`
	MissionDescription     *string                 `json:"mission_description"`
	Vision                 *string                 `json:"vision"`
	VisionDescription      *string                 `json:"vision_description"`
	Pillars                []brand.BrandPillar     `json:"pillars"`
	Traits                 []brand.PersonalityTrait `json:"traits"`
	Promise                *string                 `json:"promise"`
	PromiseDescription     *string                 `json:"promise_description"`
	VoiceGuidelines        []brand.VoiceGuideline  `json:"voice_guidelines"`
	Boilerplate            *string                 `json:"boilerplate"`
	PhotoStyle             *string                 `json:"photo_style"`
}

// Parse extracts the JSON document from a model reply. Markdown code
// fences are stripped and the payload is isolated between the first "{"
// and the last "}", since models routinely wrap JSON in prose.
func Parse(raw string) (*Content, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		start := 0
		if strings.HasPrefix(lines[0], "```") {
			start = 1
		}
		end := len(lines)
		for i := start; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "```" {
				end = i
				break
			}
		}
		text = strings.Join(lines[start:end], "\n")
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first < 0 || last <= first {
		return nil, fmt.Errorf("synth: no JSON object in model response")
	}

	var content Content
	if err := json.Unmarshal([]byte(text[first:last+1]), &content); err != nil {
		return nil, fmt.Errorf("synth parse: %w", err)
	}
	return &content, nil
}

// Merge copies the generated narrative into the profile. Only keys the
// model actually returned overwrite profile fields, and list fields are
// capped at their layout limits.
func Merge(profile *brand.Profile, content *Content) {
	setString(&profile.Tagline, content.Tagline)
	setString(&profile.PositioningHeadline, content.PositioningHeadline)
	setString(&profile.PositioningDescription, content.PositioningDescription)
	setString(&profile.Mission, content.Mission)
	setString(&profile.MissionDescription, content.MissionDescription)
	setString(&profile.Vision, content.Vision)
	setString(&profile.VisionDescription, content.VisionDescription)
	setString(&profile.Promise, content.Promise)
	setString(&profile.PromiseDescription, content.PromiseDescription)
	setString(&profile.Boilerplate, content.Boilerplate)
	setString(&profile.PhotoStyle, content.PhotoStyle)

	if len(content.Pillars) > 0 {
		profile.Pillars = capSlice(content.Pillars, brand.MaxPillars)
	}
	if len(content.Traits) > 0 {
		profile.Traits = capSlice(content.Traits, brand.MaxTraits)
	}
	if len(content.VoiceGuidelines) > 0 {
		profile.VoiceGuidelines = capSlice(content.VoiceGuidelines, brand.MaxVoiceGuidelines)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func capSlice[T any](s []T, limit int) []T {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
