// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package extract

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"brandforge/internal/brand"
)

// logoKeywords mark a URL, alt text, class, or id as logo-like.
var logoKeywords = []string{"logo", "brand", "mark", "icon"}

// assetFetchTimeout bounds each logo download.
const assetFetchTimeout = 15 * time.Second

// AssetResult is the outcome of a best-effort asset fetch: either the
// bytes, or the reason the asset was unavailable. Unavailability never
// fails an extraction stage.
type AssetResult struct {
	Data   []byte
	Reason string
}

// Available reports whether the fetch produced a payload.
func (r AssetResult) Available() bool { return len(r.Data) > 0 }

// Logo resolves a logo URL from the page in strict priority order —
// structured data, social-preview image, header/nav images, SVG links,
// touch icons, favicon — then fetches the winning asset. It always
// returns an asset with a non-empty PrimaryURL; the payload is absent
// when the URL could not be fetched.
func Logo(ctx context.Context, client *http.Client, html, baseURL string, meta map[string]string) brand.LogoAsset {
	if client == nil {
		client = &http.Client{Timeout: assetFetchTimeout}
	}

	logoURL := resolveLogoURL(html, baseURL, meta)

	asset := brand.LogoAsset{
		PrimaryURL: logoURL,
		Format:     detectFormat(logoURL),
	}

	result := fetchAsset(ctx, client, logoURL)
	if result.Available() {
		asset.PrimaryData = result.Data
	} else {
		slog.Debug("logo payload unavailable", "url", logoURL, "reason", result.Reason)
	}

	return asset
}

// resolveLogoURL walks the priority chain. The final favicon fallback
// guarantees a URL even when every heuristic misses.
func resolveLogoURL(html, baseURL string, meta map[string]string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return joinURL(baseURL, "/favicon.ico")
	}

	// 1. Structured data (JSON-LD, then microdata).
	if u := schemaLogo(doc); u != "" {
		return joinURL(baseURL, u)
	}

	// 2. Social-preview image, only when it looks like a logo.
	if og := meta["ogImage"]; og != "" && hasLogoKeyword(strings.ToLower(og)) {
		return og
	}

	// 3. Header/nav images with logo keywords.
	if u := headerLogo(doc); u != "" {
		return joinURL(baseURL, u)
	}

	// 4. SVG file links with logo keywords. Inline <svg> elements are
	// skipped: serializing them to an asset is out of scope.
	if u := svgLogo(doc); u != "" {
		return joinURL(baseURL, u)
	}

	// 5. Touch icon, icon link, then /favicon.ico as last resort.
	return faviconLogo(doc, baseURL, meta)
}

// schemaLogo scans JSON-LD blocks and microdata for a logo property,
// handling scalar URLs, nested url/contentUrl objects, and array-wrapped
// schema lists.
func schemaLogo(doc *goquery.Document) string {
	var found string

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}

		items, ok := data.([]any)
		if !ok {
			items = []any{data}
		}
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if u := logoValue(obj["logo"]); u != "" {
				found = u
				return false
			}
		}
		return true
	})
	if found != "" {
		return found
	}

	// Microdata.
	elem := doc.Find(`[itemprop="logo"]`).First()
	for _, attr := range []string{"src", "content", "href"} {
		if v, ok := elem.Attr(attr); ok && v != "" {
			return v
		}
	}

	return ""
}

// logoValue extracts a URL from a schema logo property, which may be a
// plain string or an object with url/contentUrl.
func logoValue(v any) string {
	switch logo := v.(type) {
	case string:
		return logo
	case map[string]any:
		if u, ok := logo["url"].(string); ok && u != "" {
			return u
		}
		if u, ok := logo["contentUrl"].(string); ok && u != "" {
			return u
		}
	}
	return ""
}

// headerLogo searches header/nav regions for keyword-matched images, or
// links whose class marks them as the brand link.
func headerLogo(doc *goquery.Document) string {
	containers := []*goquery.Selection{
		doc.Find("header").First(),
		doc.Find("nav").First(),
		doc.Find(`[class*="header"], [id*="header"], [class*="nav"], [id*="nav"]`).First(),
	}

	for _, container := range containers {
		if container.Length() == 0 {
			continue
		}

		var found string
		container.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src, _ := img.Attr("src")
			alt, _ := img.Attr("alt")
			class, _ := img.Attr("class")
			id, _ := img.Attr("id")

			haystack := strings.ToLower(src + " " + alt + " " + class + " " + id)
			if src != "" && hasLogoKeyword(haystack) {
				found = src
				return false
			}
			return true
		})
		if found != "" {
			return found
		}

		container.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
			class, _ := link.Attr("class")
			if !hasLogoKeyword(strings.ToLower(class)) {
				return true
			}
			if src, ok := link.Find("img").First().Attr("src"); ok && src != "" {
				found = src
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	return ""
}

// svgLogo finds .svg image links whose URL carries a logo keyword.
func svgLogo(doc *goquery.Document) string {
	var found string
	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		lower := strings.ToLower(src)
		if strings.Contains(lower, ".svg") && hasLogoKeyword(lower) {
			found = src
			return false
		}
		return true
	})
	return found
}

// faviconLogo falls through touch icons and icon links, ending at the
// hard-coded /favicon.ico path.
func faviconLogo(doc *goquery.Document, baseURL string, meta map[string]string) string {
	if u := meta["appleTouchIcon"]; u != "" {
		return u
	}
	if href, ok := doc.Find(`link[rel~="apple-touch-icon"]`).First().Attr("href"); ok && href != "" {
		return joinURL(baseURL, href)
	}
	if u := meta["favicon"]; u != "" {
		return u
	}
	if href, ok := doc.Find(`link[rel="icon"], link[rel="shortcut icon"]`).First().Attr("href"); ok && href != "" {
		return joinURL(baseURL, href)
	}
	return joinURL(baseURL, "/favicon.ico")
}

// fetchAsset downloads a candidate asset, following redirects, accepting
// only successful responses that either declare an image content-type or
// carry an image extension.
func fetchAsset(ctx context.Context, client *http.Client, assetURL string) AssetResult {
	ctx, cancel := context.WithTimeout(ctx, assetFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return AssetResult{Reason: "build request: " + err.Error()}
	}

	resp, err := client.Do(req)
	if err != nil {
		return AssetResult{Reason: "fetch: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AssetResult{Reason: "status " + resp.Status}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "image") && !hasImageExtension(assetURL) {
		return AssetResult{Reason: "not an image: " + contentType}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return AssetResult{Reason: "read body: " + err.Error()}
	}
	return AssetResult{Data: data}
}

func hasImageExtension(u string) bool {
	lower := strings.ToLower(u)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".svg", ".ico"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func hasLogoKeyword(s string) bool {
	for _, kw := range logoKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// detectFormat infers the logo format from the URL extension.
func detectFormat(u string) brand.LogoFormat {
	lower := strings.ToLower(u)
	switch {
	case strings.Contains(lower, ".svg"):
		return brand.LogoFormatSVG
	case strings.Contains(lower, ".png"):
		return brand.LogoFormatPNG
	case strings.Contains(lower, ".jpg"), strings.Contains(lower, ".jpeg"):
		return brand.LogoFormatJPEG
	case strings.Contains(lower, ".ico"):
		return brand.LogoFormatICO
	default:
		return brand.LogoFormatPNG
	}
}

// joinURL resolves a possibly-relative reference against the base URL.
func joinURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
