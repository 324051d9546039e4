// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Integration tests: they require a running PostgreSQL instance and skip
// otherwise.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"

	"brandforge/internal/database"
	"brandforge/internal/jobs"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "brandforge")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "brandforge")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := database.Connect(dsn)
	if err != nil {
		t.Skipf("skipping integration test: DB not available: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func terminalRecord(t *testing.T) jobs.Record {
	t.Helper()

	record := jobs.NewRecord(uuid.NewString(), "https://example.com")
	if err := record.Advance(jobs.StatusBuildingPDF); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := record.Complete("/output/" + record.JobID + ".pdf"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	return record
}

func TestArchiveAndFind(t *testing.T) {
	s := NewHistoryStore(testDB(t))
	ctx := context.Background()

	record := terminalRecord(t)
	if err := s.Archive(ctx, record); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	entry, err := s.FindByJobID(ctx, record.JobID)
	if err != nil {
		t.Fatalf("FindByJobID: %v", err)
	}
	if entry == nil {
		t.Fatal("archived record not found")
	}
	if entry.Status != jobs.StatusCompleted {
		t.Errorf("Status = %s", entry.Status)
	}
	if entry.OutputPath != record.OutputPath {
		t.Errorf("OutputPath = %q, want %q", entry.OutputPath, record.OutputPath)
	}
}

func TestArchiveRejectsNonTerminal(t *testing.T) {
	s := NewHistoryStore(testDB(t))

	record := jobs.NewRecord(uuid.NewString(), "https://example.com")
	record.Advance(jobs.StatusScraping)

	if err := s.Archive(context.Background(), record); err == nil {
		t.Error("Archive must reject records that are still running")
	}
}

func TestArchiveIsIdempotent(t *testing.T) {
	s := NewHistoryStore(testDB(t))
	ctx := context.Background()

	record := terminalRecord(t)
	if err := s.Archive(ctx, record); err != nil {
		t.Fatalf("first Archive: %v", err)
	}
	if err := s.Archive(ctx, record); err != nil {
		t.Fatalf("second Archive: %v", err)
	}
}

func TestFindByJobIDMissing(t *testing.T) {
	s := NewHistoryStore(testDB(t))

	entry, err := s.FindByJobID(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("FindByJobID: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil for unknown job, got %+v", entry)
	}
}

func TestRecent(t *testing.T) {
	s := NewHistoryStore(testDB(t))
	ctx := context.Background()

	failed := jobs.NewRecord(uuid.NewString(), "https://example.com/broken")
	failed.Advance(jobs.StatusScraping)
	if err := failed.Fail("homepage returned 500"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if err := s.Archive(ctx, failed); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("Recent returned no rows after an archive")
	}
}
