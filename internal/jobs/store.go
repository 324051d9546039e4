// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// recordTTL keeps finished and abandoned job records around for a day.
const recordTTL = 24 * time.Hour

const keyPrefix = "job:"

// Store persists job records in Redis with a fixed TTL.
type Store struct {
	client *redis.Client
}

// NewStore creates a Store on top of an existing Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Put writes the record, resetting its TTL.
func (s *Store) Put(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("jobs marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+record.JobID, payload, recordTTL).Err(); err != nil {
		return fmt.Errorf("jobs put: %w", err)
	}
	return nil
}

// Get loads a record by job ID. The second return is false when the
// record does not exist or has expired.
func (s *Store) Get(ctx context.Context, jobID string) (Record, bool, error) {
	payload, err := s.client.Get(ctx, keyPrefix+jobID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("jobs get: %w", err)
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, false, fmt.Errorf("jobs unmarshal: %w", err)
	}
	return record, true, nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (s *Store) Delete(ctx context.Context, jobID string) error {
	if err := s.client.Del(ctx, keyPrefix+jobID).Err(); err != nil {
		return fmt.Errorf("jobs delete: %w", err)
	}
	return nil
}

// Ping reports whether the backing Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
