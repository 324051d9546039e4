// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the brand guidelines API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandforge/internal/jobs"
	"brandforge/internal/slug"
)

// Submitter queues a job for background processing.
type Submitter interface {
	Submit(jobID, url string) error
}

// Jobs exposes the job submission and polling endpoints.
type Jobs struct {
	store *jobs.Store
	pool  Submitter
}

// NewJobs creates the job handler group.
func NewJobs(store *jobs.Store, pool Submitter) *Jobs {
	return &Jobs{store: store, pool: pool}
}

type createJobRequest struct {
	URL string `json:"url"`
}

type createJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// Create accepts a website URL and queues a brand guidelines job.
// Responds 202 with the job ID; progress is polled via Get.
func (h *Jobs) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with a \"url\" field")
		return
	}

	target, err := validateURL(req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID := uuid.NewString()
	record := jobs.NewRecord(jobID, target)
	if err := h.store.Put(r.Context(), record); err != nil {
		slog.Error("failed to persist new job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	if err := h.pool.Submit(jobID, target); err != nil {
		slog.Warn("job submission rejected", "job_id", jobID, "error", err)
		// The record was never queued; remove it so it cannot poll as
		// pending forever.
		if delErr := h.store.Delete(r.Context(), jobID); delErr != nil {
			slog.Error("failed to remove unqueued job", "job_id", jobID, "error", delErr)
		}
		writeError(w, http.StatusServiceUnavailable, "server is busy, try again later")
		return
	}

	slog.Info("job queued", "job_id", jobID, "url", target)
	writeJSON(w, http.StatusAccepted, createJobResponse{JobID: jobID, Status: string(jobs.StatusPending)})
}

// Get returns the current state of a job, including progress percentage
// and the current pipeline step.
func (h *Jobs) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	record, ok, err := h.store.Get(r.Context(), jobID)
	if err != nil {
		slog.Error("failed to load job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Download serves the finished PDF for a completed job.
func (h *Jobs) Download(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	record, ok, err := h.store.Get(r.Context(), jobID)
	if err != nil {
		slog.Error("failed to load job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	if record.Status != jobs.StatusCompleted {
		writeError(w, http.StatusConflict, "job has not completed yet")
		return
	}
	if record.OutputPath == "" {
		writeError(w, http.StatusConflict, "job completed without an output file")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+downloadName(record.URL, jobID)+"\"")
	http.ServeFile(w, r, record.OutputPath)
}

// Health reports service readiness. It fails when Redis, which holds all
// live job state, is unreachable.
func (h *Jobs) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": "down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "redis": "up"})
}

// downloadName builds the attachment filename from the scraped site's host,
// falling back to the job ID when the stored URL does not parse.
func downloadName(rawURL, jobID string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		if s := slug.Generate(u.Host); s != "" {
			return s + "-brand-guidelines.pdf"
		}
	}
	return jobID + ".pdf"
}

// validateURL checks that the submitted URL is an absolute http or https
// URL with a host, returning the normalized form.
func validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("url is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.New("url is not valid")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("url must use http or https")
	}
	if u.Host == "" {
		return "", errors.New("url must include a host")
	}

	return u.String(), nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
