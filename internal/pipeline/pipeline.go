// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pipeline orchestrates a brand guidelines job from URL to PDF:
// scrape, extract the visual identity, generate the narrative, render.
// Each stage advances the job record in Redis so pollers see progress.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"unicode"

	"brandforge/internal/brand"
	"brandforge/internal/extract"
	"brandforge/internal/jobs"
	"brandforge/internal/scrape"
	"brandforge/internal/storage"
	"brandforge/internal/store"
	"brandforge/internal/synth"
)

// maxErrorLength bounds the error text stored on a failed record.
const maxErrorLength = 500

// SiteScraper fetches a website snapshot. *scrape.Scraper satisfies it.
type SiteScraper interface {
	Scrape(ctx context.Context, rawURL string) (*scrape.Site, error)
}

// Renderer writes the guidelines PDF. *pdf.Renderer satisfies it.
type Renderer interface {
	Render(profile *brand.Profile, jobID string) (string, error)
}

// Pipeline wires the stages together. History and Artifacts are optional;
// when nil the corresponding step is skipped.
type Pipeline struct {
	scraper   SiteScraper
	synth     *synth.Synthesizer
	renderer  Renderer
	store     *jobs.Store
	history   *store.HistoryStore
	artifacts *storage.Client
	client    *http.Client
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithHistory archives terminal job outcomes in PostgreSQL.
func WithHistory(h *store.HistoryStore) Option {
	return func(p *Pipeline) { p.history = h }
}

// WithArtifacts uploads finished PDFs to object storage.
func WithArtifacts(c *storage.Client) Option {
	return func(p *Pipeline) { p.artifacts = c }
}

// WithHTTPClient overrides the client used for logo downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pipeline) { p.client = c }
}

// New creates a Pipeline.
func New(scraper SiteScraper, gen synth.Generator, renderer Renderer, jobStore *jobs.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		scraper:  scraper,
		synth:    synth.New(gen),
		renderer: renderer,
		store:    jobStore,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the job to completion. Stage failures mark the record
// failed with a truncated error message; the returned error mirrors what
// was recorded so workers can log it.
func (p *Pipeline) Run(ctx context.Context, jobID, rawURL string) error {
	record, ok, err := p.store.Get(ctx, jobID)
	if err != nil {
		return fmt.Errorf("pipeline load job %s: %w", jobID, err)
	}
	if !ok {
		return fmt.Errorf("pipeline: job %s not found", jobID)
	}

	if err := p.run(ctx, &record, rawURL); err != nil {
		p.fail(ctx, &record, err)
		return err
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context, record *jobs.Record, rawURL string) error {
	if err := p.advance(ctx, record, jobs.StatusScraping); err != nil {
		return err
	}
	site, err := p.scraper.Scrape(ctx, rawURL)
	if err != nil {
		return err
	}

	profile := &brand.Profile{
		CompanyName: companyName(site),
		Domain:      domainOf(site.BaseURL),
	}

	if err := p.advance(ctx, record, jobs.StatusExtractingColors); err != nil {
		return err
	}
	profile.Colors = extract.Colors(site.AllCSS(), nil)

	if err := p.advance(ctx, record, jobs.StatusExtractingTypography); err != nil {
		return err
	}
	homeHTML := ""
	if home, ok := site.Pages["home"]; ok {
		homeHTML = home.HTML
	}
	profile.Typography = extract.TypographyFrom(homeHTML, site.AllCSS())

	if err := p.advance(ctx, record, jobs.StatusExtractingLogo); err != nil {
		return err
	}
	logo := extract.Logo(ctx, p.client, homeHTML, site.BaseURL, site.Meta)
	profile.Logo = &logo

	if err := p.advance(ctx, record, jobs.StatusGeneratingContent); err != nil {
		return err
	}
	if err := p.synth.Enrich(ctx, profile, site.Text()); err != nil {
		return err
	}

	if err := p.advance(ctx, record, jobs.StatusBuildingPDF); err != nil {
		return err
	}
	outputPath, err := p.renderer.Render(profile, record.JobID)
	if err != nil {
		return err
	}

	p.archivePDF(ctx, record.JobID, outputPath)

	if err := record.Complete(outputPath); err != nil {
		return err
	}
	if err := p.store.Put(ctx, *record); err != nil {
		return err
	}
	p.archiveHistory(ctx, *record)

	slog.Info("job completed", "job_id", record.JobID, "output", outputPath)
	return nil
}

// advance moves the record to the next stage and persists it, so pollers
// see the stage change before the work starts.
func (p *Pipeline) advance(ctx context.Context, record *jobs.Record, status jobs.Status) error {
	if err := record.Advance(status); err != nil {
		return err
	}
	return p.store.Put(ctx, *record)
}

// fail records the failure. The write uses a detached context so a job
// that failed by timeout can still be marked failed. Store errors here
// are logged, not returned: the original stage error is the one that
// matters.
func (p *Pipeline) fail(ctx context.Context, record *jobs.Record, cause error) {
	ctx = context.WithoutCancel(ctx)

	message := cause.Error()
	if len(message) > maxErrorLength {
		message = message[:maxErrorLength]
	}

	if err := record.Fail(message); err != nil {
		slog.Error("mark job failed", "job_id", record.JobID, "error", err)
		return
	}
	if err := p.store.Put(ctx, *record); err != nil {
		slog.Error("persist failed job", "job_id", record.JobID, "error", err)
	}
	p.archiveHistory(ctx, *record)

	slog.Error("job failed", "job_id", record.JobID, "error", message)
}

// archivePDF uploads the document to object storage when configured.
// Upload failures never fail the job.
func (p *Pipeline) archivePDF(ctx context.Context, jobID, path string) {
	if p.artifacts == nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("read pdf for archive", "job_id", jobID, "error", err)
		return
	}
	key, err := p.artifacts.UploadPDF(ctx, jobID, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Warn("archive pdf", "job_id", jobID, "error", err)
		return
	}
	slog.Info("pdf archived", "job_id", jobID, "key", key)
}

// archiveHistory writes the terminal outcome to PostgreSQL when configured.
func (p *Pipeline) archiveHistory(ctx context.Context, record jobs.Record) {
	if p.history == nil {
		return
	}
	if err := p.history.Archive(ctx, record); err != nil {
		slog.Warn("archive job history", "job_id", record.JobID, "error", err)
	}
}

// companyName derives a display name from the scraped metadata. The
// og:title is most reliable, then the document title, then the domain's
// first label. Title strings like "Acme Corp | Home" are cut at the
// separator.
func companyName(site *scrape.Site) string {
	for _, key := range []string{"ogTitle", "title"} {
		if raw := site.Meta[key]; raw != "" {
			return cleanTitle(raw)
		}
	}

	host := domainOf(site.BaseURL)
	label, _, _ := strings.Cut(host, ".")
	return titleCase(label)
}

// cleanTitle keeps the part of a page title before the first separator.
func cleanTitle(title string) string {
	for _, sep := range []string{"|", " - "} {
		if before, _, found := strings.Cut(title, sep); found {
			title = before
			break
		}
	}
	return strings.TrimSpace(title)
}

// domainOf returns the hostname without a www prefix.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
