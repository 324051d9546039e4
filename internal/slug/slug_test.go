package slug

import "testing"

// TestGenerate exercises the slug generator with company names, hostnames,
// and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "company name with punctuation",
			input: "Acme, Inc.!",
			want:  "acme-inc",
		},
		{
			name:  "bare hostname",
			input: "example.com",
			want:  "example-com",
		},
		{
			name:  "hostname with subdomain",
			input: "www.example.co.uk",
			want:  "www-example-co-uk",
		},
		{
			name:  "url path segments",
			input: "example.com/about/team",
			want:  "example-com-about-team",
		},
		{
			name:  "title with pipe separator",
			input: "Acme Corp | Widgets",
			want:  "acme-corp-widgets",
		},
		{
			name:  "underscores as separators",
			input: "brand_guidelines_v2",
			want:  "brand-guidelines-v2",
		},
		{
			name:  "ampersand stripped",
			input: "Rock & Roll",
			want:  "rock-roll",
		},
		{
			name:  "multiple consecutive spaces collapsed",
			input: "hello    world",
			want:  "hello-world",
		},
		{
			name:  "leading and trailing junk trimmed",
			input: "  --hello -- world--  ",
			want:  "hello-world",
		},
		{
			name:  "single hyphen preserved",
			input: "well-known fact",
			want:  "well-known-fact",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only special characters",
			input: "!@#$%^&*()",
			want:  "",
		},
		{
			name:  "numbers survive",
			input: "Chapter 3 Section 14",
			want:  "chapter-3-section-14",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{
		"hello-world",
		"example-com",
		"a",
		"123",
	}

	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			got := Generate(s)
			if got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}
