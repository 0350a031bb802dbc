// Package testutil provides shared fixtures for tests: sample payloads and
// history stores seeded with analyzed results.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/qr-signal/internal/analysis"
	"github.com/Veraticus/qr-signal/internal/storage"
)

// SetupHistory opens a history store and closes it when the test ends.
//
// Example:
//
//	h := testutil.SetupHistory(t, storage.BackendSQLite, storage.DefaultHistoryCapacity)
func SetupHistory(t *testing.T, backend storage.Backend, capacity int) storage.History {
	t.Helper()

	h, err := storage.NewHistory(backend, capacity)
	if err != nil {
		t.Fatalf("failed to open %s history: %v", backend, err)
	}

	t.Cleanup(func() {
		_ = h.Close()
	})

	return h
}

// SeedHistory analyzes payloads in order and records every result. The
// returned entries are in insertion order, oldest first.
func SeedHistory(t *testing.T, h storage.History, payloads ...string) []storage.Entry {
	t.Helper()

	engine := analysis.New()
	ctx := context.Background()

	entries := make([]storage.Entry, 0, len(payloads))
	for _, payload := range payloads {
		entry, err := h.Add(ctx, engine.Analyze(payload))
		if err != nil {
			t.Fatalf("failed to seed history with %q: %v", payload, err)
		}
		entries = append(entries, entry)
	}
	return entries
}
