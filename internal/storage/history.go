// Package storage keeps the bounded history of analyzed payloads.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/qr-signal/internal/model"
)

// History capacity limits.
const (
	MinHistoryCapacity     = 10
	MaxHistoryCapacity     = 20
	DefaultHistoryCapacity = 20
)

// Entry is one recorded analysis.
type Entry struct {
	ScannedAt time.Time
	Result    model.AnalysisResult
	ID        uuid.UUID
}

// History is a bounded, newest-first list of analysis results.
// Adding beyond capacity evicts the oldest entry.
type History interface {
	// Add records result and returns the stored entry.
	Add(ctx context.Context, result model.AnalysisResult) (Entry, error)
	// List returns all entries, newest first.
	List(ctx context.Context) ([]Entry, error)
	// Get returns the entry with id, or common.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (Entry, error)
	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)
	// Clear removes every entry.
	Clear(ctx context.Context) error
	// Capacity returns the maximum number of entries kept.
	Capacity() int
	// Close releases resources held by the store.
	Close() error
}

// Backend names a History implementation.
type Backend string

// Available history backends.
const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
)

// NewHistory opens a history store for the given backend.
func NewHistory(backend Backend, capacity int) (History, error) {
	switch backend {
	case BackendMemory, "":
		h, err := NewMemoryHistory(capacity)
		if err != nil {
			return nil, err
		}
		return h, nil
	case BackendSQLite:
		h, err := NewSQLiteHistory(capacity)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, invalidBackend(backend)
	}
}

type signalLister interface {
	ListBySignal(ctx context.Context, signal model.Signal) ([]Entry, error)
}

// ListBySignal returns the entries of h carrying signal, newest first.
// Stores that can filter natively do so; others are filtered after List.
func ListBySignal(ctx context.Context, h History, signal model.Signal) ([]Entry, error) {
	if lister, ok := h.(signalLister); ok {
		return lister.ListBySignal(ctx, signal)
	}
	entries, err := h.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBySignal(entries, signal), nil
}

// FilterBySignal returns the entries carrying signal, preserving order.
func FilterBySignal(entries []Entry, signal model.Signal) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Result.Signal == signal {
			out = append(out, e)
		}
	}
	return out
}
