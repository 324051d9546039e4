// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package jobs defines brand guideline job records and their Redis-backed
// store. A job moves through a fixed sequence of stages and its record is
// only ever updated forward; a poller can never observe progress move
// backwards.
package jobs

import (
	"fmt"
	"time"
)

// Status is the stage a job is currently in.
type Status string

const (
	StatusPending              Status = "pending"
	StatusScraping             Status = "scraping"
	StatusExtractingColors     Status = "extracting_colors"
	StatusExtractingTypography Status = "extracting_typography"
	StatusExtractingLogo       Status = "extracting_logo"
	StatusGeneratingContent    Status = "generating_content"
	StatusBuildingPDF          Status = "building_pdf"
	StatusCompleted            Status = "completed"
	StatusFailed               Status = "failed"
)

// statusRank orders the pipeline stages. Failed ranks above every working
// stage so a job can fail from anywhere, but nothing moves after a
// terminal state.
var statusRank = map[Status]int{
	StatusPending:              0,
	StatusScraping:             1,
	StatusExtractingColors:     2,
	StatusExtractingTypography: 3,
	StatusExtractingLogo:       4,
	StatusGeneratingContent:    5,
	StatusBuildingPDF:          6,
	StatusCompleted:            7,
	StatusFailed:               8,
}

// statusProgress is the percent shown to pollers when a stage begins.
var statusProgress = map[Status]int{
	StatusPending:              0,
	StatusScraping:             10,
	StatusExtractingColors:     30,
	StatusExtractingTypography: 45,
	StatusExtractingLogo:       55,
	StatusGeneratingContent:    70,
	StatusBuildingPDF:          90,
	StatusCompleted:            100,
}

// statusStep is the human-readable label for each stage.
var statusStep = map[Status]string{
	StatusPending:              "Queued",
	StatusScraping:             "Scraping website",
	StatusExtractingColors:     "Extracting color palette",
	StatusExtractingTypography: "Extracting typography",
	StatusExtractingLogo:       "Extracting logo",
	StatusGeneratingContent:    "Generating brand narrative",
	StatusBuildingPDF:          "Building PDF",
	StatusCompleted:            "Done",
	StatusFailed:               "Failed",
}

// Record is the poller-visible state of one job.
type Record struct {
	JobID           string     `json:"job_id"`
	URL             string     `json:"url"`
	Status          Status     `json:"status"`
	ProgressPercent int        `json:"progress_percent"`
	CurrentStep     string     `json:"current_step"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	OutputPath      string     `json:"output_path,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// NewRecord creates a pending record for a freshly accepted job.
func NewRecord(jobID, url string) Record {
	return Record{
		JobID:           jobID,
		URL:             url,
		Status:          StatusPending,
		ProgressPercent: 0,
		CurrentStep:     statusStep[StatusPending],
		CreatedAt:       time.Now().UTC(),
	}
}

// Terminal reports whether the record has reached a final state.
func (r *Record) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// Advance moves the record to the next stage, updating progress and the
// step label. Backward moves and transitions out of a terminal state are
// rejected.
func (r *Record) Advance(status Status) error {
	next, ok := statusRank[status]
	if !ok {
		return fmt.Errorf("jobs: unknown status %q", status)
	}
	if r.Terminal() {
		return fmt.Errorf("jobs: job %s is already %s", r.JobID, r.Status)
	}
	if next <= statusRank[r.Status] && status != StatusFailed {
		return fmt.Errorf("jobs: cannot move job %s from %s to %s", r.JobID, r.Status, status)
	}

	r.Status = status
	r.CurrentStep = statusStep[status]
	if p, ok := statusProgress[status]; ok {
		r.ProgressPercent = p
	}
	if r.Terminal() {
		now := time.Now().UTC()
		r.CompletedAt = &now
	}
	return nil
}

// Fail marks the record failed with a message. Progress stays where it
// was so the client can see how far the job got.
func (r *Record) Fail(message string) error {
	if err := r.Advance(StatusFailed); err != nil {
		return err
	}
	r.ErrorMessage = message
	return nil
}

// Complete marks the record done and records where the PDF was written.
func (r *Record) Complete(outputPath string) error {
	if err := r.Advance(StatusCompleted); err != nil {
		return err
	}
	r.OutputPath = outputPath
	return nil
}
