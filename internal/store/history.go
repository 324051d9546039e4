// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists terminal job outcomes in PostgreSQL. Live job
// state lives in Redis with a 24h TTL; this archive is what remains after
// the Redis record expires.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brandforge/internal/jobs"
)

// HistoryEntry is one archived job outcome.
type HistoryEntry struct {
	JobID        string
	URL          string
	Status       jobs.Status
	ErrorMessage string
	OutputPath   string
	CreatedAt    time.Time
	CompletedAt  time.Time
	ArchivedAt   time.Time
}

// HistoryStore handles all job history database operations.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore creates a new HistoryStore with the given database connection.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Archive inserts the terminal record into the history table. Records that
// have not reached a terminal state are rejected. Re-archiving the same
// job ID is a no-op so a crashed-and-restarted worker cannot duplicate rows.
func (s *HistoryStore) Archive(ctx context.Context, record jobs.Record) error {
	if !record.Terminal() {
		return fmt.Errorf("archive job %s: status %s is not terminal", record.JobID, record.Status)
	}

	completedAt := record.CreatedAt
	if record.CompletedAt != nil {
		completedAt = *record.CompletedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO job_history (job_id, url, status, error_message, output_path, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (job_id) DO NOTHING
	`, record.JobID, record.URL, record.Status, record.ErrorMessage,
		record.OutputPath, record.CreatedAt, completedAt,
	)
	if err != nil {
		return fmt.Errorf("archive job %s: %w", record.JobID, err)
	}
	return nil
}

// FindByJobID retrieves an archived outcome. Returns nil if not found.
func (s *HistoryStore) FindByJobID(ctx context.Context, jobID string) (*HistoryEntry, error) {
	e := &HistoryEntry{}
	err := s.db.QueryRowContext(ctx, `
		SELECT job_id, url, status, COALESCE(error_message, ''), COALESCE(output_path, ''),
		       created_at, completed_at, archived_at
		FROM job_history WHERE job_id = $1
	`, jobID).Scan(
		&e.JobID, &e.URL, &e.Status, &e.ErrorMessage, &e.OutputPath,
		&e.CreatedAt, &e.CompletedAt, &e.ArchivedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job history %s: %w", jobID, err)
	}
	return e, nil
}

// Recent returns the most recently created archived jobs, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT job_id, url, status, COALESCE(error_message, ''), COALESCE(output_path, ''),
		       created_at, completed_at, archived_at
		FROM job_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list job history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(
			&e.JobID, &e.URL, &e.Status, &e.ErrorMessage, &e.OutputPath,
			&e.CreatedAt, &e.CompletedAt, &e.ArchivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
