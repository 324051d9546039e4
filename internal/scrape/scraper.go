// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scrape fetches a website and packages everything the extraction
// pipeline needs: page HTML, inline and external CSS, and a flat metadata
// map. It uses plain HTTP plus DOM queries; pages that require JavaScript
// to render their markup yield whatever the server sends.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	// maxExternalCSS caps how many linked stylesheets get downloaded.
	maxExternalCSS = 10
)

// Page holds the scraped material of a single page.
type Page struct {
	URL        string
	HTML       string
	InlineCSS  []string
	Screenshot []byte // never populated by the HTTP scraper
}

// Site is the complete scraped snapshot of a website.
type Site struct {
	BaseURL     string
	Pages       map[string]*Page
	ExternalCSS []string
	Meta        map[string]string
}

// AllCSS returns the homepage's inline styles followed by all downloaded
// external stylesheets, the combined style text the extractors scan.
func (s *Site) AllCSS() []string {
	var all []string
	if home, ok := s.Pages["home"]; ok {
		all = append(all, home.InlineCSS...)
	}
	return append(all, s.ExternalCSS...)
}

// Text returns the visible text of every scraped page with script, style,
// nav, and footer regions removed. This is the corpus handed to the AI
// synthesizer. Pages are concatenated homepage first so that downstream
// prompt truncation trims secondary pages, never the homepage.
func (s *Site) Text() string {
	var b strings.Builder
	for _, key := range s.pageOrder() {
		page := s.Pages[key]
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
		if err != nil {
			continue
		}
		doc.Find("script, style, nav, footer").Remove()
		b.WriteString(strings.Join(strings.Fields(doc.Text()), " "))
		b.WriteString("\n\n")
	}
	return b.String()
}

// pageOrder returns the page keys in a fixed order: home, about, contact,
// then anything else sorted.
func (s *Site) pageOrder() []string {
	var keys []string
	for _, key := range []string{"home", "about", "contact"} {
		if _, ok := s.Pages[key]; ok {
			keys = append(keys, key)
		}
	}
	var rest []string
	for key := range s.Pages {
		switch key {
		case "home", "about", "contact":
		default:
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Scraper fetches websites over HTTP.
type Scraper struct {
	client *http.Client
}

// New creates a Scraper with a bounded-timeout HTTP client.
func New() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// NewWithClient creates a Scraper using the given client. Used by tests.
func NewWithClient(client *http.Client) *Scraper {
	return &Scraper{client: client}
}

// Scrape fetches the homepage plus best-effort about/contact pages,
// downloads linked stylesheets, and extracts the metadata map. Only the
// homepage fetch is fatal; every other asset failure is skipped.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Site, error) {
	base := normalizeURL(rawURL)

	home, err := s.fetchPage(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("scrape homepage: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(home.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse homepage: %w", err)
	}

	site := &Site{
		BaseURL: base,
		Pages:   map[string]*Page{"home": home},
		Meta:    extractMeta(doc, base),
	}

	// Key secondary pages: first about-ish and contact-ish link found.
	for name, pageURL := range s.findKeyPages(doc, base) {
		page, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			slog.Debug("key page skipped", "page", name, "url", pageURL, "error", err)
			continue
		}
		site.Pages[name] = page
	}

	// External stylesheets, best effort.
	for _, cssURL := range findStylesheetURLs(doc, base) {
		css, err := s.fetchText(ctx, cssURL)
		if err != nil {
			slog.Debug("stylesheet skipped", "url", cssURL, "error", err)
			continue
		}
		site.ExternalCSS = append(site.ExternalCSS, css)
	}

	slog.Info("site scraped",
		"url", base,
		"pages", len(site.Pages),
		"stylesheets", len(site.ExternalCSS),
	)
	return site, nil
}

// fetchPage GETs a URL and returns its HTML plus inline <style> contents.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (*Page, error) {
	body, err := s.fetchText(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	page := &Page{URL: pageURL, HTML: body}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
			if css := sel.Text(); css != "" {
				page.InlineCSS = append(page.InlineCSS, css)
			}
		})
	}

	return page, nil
}

// fetchText GETs a URL and returns the response body as a string.
func (s *Scraper) fetchText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	return string(body), nil
}

// findKeyPages scans homepage links for about and contact pages.
func (s *Scraper) findKeyPages(doc *goquery.Document, base string) map[string]string {
	found := make(map[string]string)

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		lowerHref := strings.ToLower(href)

		for _, name := range []string{"about", "contact"} {
			if _, ok := found[name]; ok {
				continue
			}
			if strings.Contains(lowerHref, name) || strings.Contains(text, name) {
				if resolved := resolveURL(base, href); resolved != "" && resolved != base {
					found[name] = resolved
				}
			}
		}
		return len(found) < 2
	})

	return found
}

// findStylesheetURLs collects resolved <link rel="stylesheet"> hrefs.
func findStylesheetURLs(doc *goquery.Document, base string) []string {
	var urls []string
	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, sel *goquery.Selection) {
		if len(urls) >= maxExternalCSS {
			return
		}
		if href, ok := sel.Attr("href"); ok {
			if resolved := resolveURL(base, href); resolved != "" {
				urls = append(urls, resolved)
			}
		}
	})
	return urls
}

// extractMeta pulls the flat metadata map used by the logo extractor and
// for company-name derivation.
func extractMeta(doc *goquery.Document, base string) map[string]string {
	meta := map[string]string{
		"title":         strings.TrimSpace(doc.Find("title").First().Text()),
		"description":   metaContent(doc, `meta[name="description"]`),
		"ogImage":       metaContent(doc, `meta[property="og:image"]`),
		"ogTitle":       metaContent(doc, `meta[property="og:title"]`),
		"ogDescription": metaContent(doc, `meta[property="og:description"]`),
	}

	if href, ok := doc.Find(`link[rel~="apple-touch-icon"]`).First().Attr("href"); ok {
		meta["appleTouchIcon"] = resolveURL(base, href)
	}
	if href, ok := doc.Find(`link[rel="icon"], link[rel="shortcut icon"]`).First().Attr("href"); ok {
		meta["favicon"] = resolveURL(base, href)
	}

	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// normalizeURL ensures the URL carries a scheme, defaulting to https.
func normalizeURL(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "https://" + rawURL
	}
	return rawURL
}

// resolveURL joins a possibly-relative href against the base URL.
func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}
