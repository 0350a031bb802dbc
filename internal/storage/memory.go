package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/model"
)

// MemoryHistory is a ring buffer of entries guarded by a mutex.
type MemoryHistory struct {
	now      func() time.Time
	entries  []Entry
	head     int // index of the next write
	count    int
	capacity int
	closed   bool
	mu       sync.RWMutex
}

// NewMemoryHistory creates an in-memory history with the given capacity.
func NewMemoryHistory(capacity int) (*MemoryHistory, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	return &MemoryHistory{
		now:      time.Now,
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}, nil
}

// Add records result, overwriting the oldest entry when full.
func (h *MemoryHistory) Add(ctx context.Context, result model.AnalysisResult) (Entry, error) {
	if err := validateContext(ctx); err != nil {
		return Entry{}, err
	}
	if err := validateResult(result); err != nil {
		return Entry{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return Entry{}, common.ErrHistoryClosed
	}

	entry := Entry{
		ID:        uuid.New(),
		ScannedAt: h.now().UTC(),
		Result:    result,
	}
	h.entries[h.head] = entry
	h.head = (h.head + 1) % h.capacity
	if h.count < h.capacity {
		h.count++
	}

	return entry, nil
}

// List returns the entries newest first.
func (h *MemoryHistory) List(ctx context.Context) ([]Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil, common.ErrHistoryClosed
	}

	out := make([]Entry, 0, h.count)
	for i := 1; i <= h.count; i++ {
		idx := (h.head - i + h.capacity) % h.capacity
		out = append(out, h.entries[idx])
	}
	return out, nil
}

// Get returns the entry with id.
func (h *MemoryHistory) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	entries, err := h.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("history entry %s: %w", id, common.ErrNotFound)
}

// Len returns the number of stored entries.
func (h *MemoryHistory) Len(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return 0, common.ErrHistoryClosed
	}
	return h.count, nil
}

// Clear removes every entry.
func (h *MemoryHistory) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return common.ErrHistoryClosed
	}
	h.entries = make([]Entry, h.capacity)
	h.head = 0
	h.count = 0
	return nil
}

// Capacity returns the maximum number of entries kept.
func (h *MemoryHistory) Capacity() int {
	return h.capacity
}

// Close drops the entries. Further calls fail with common.ErrHistoryClosed.
func (h *MemoryHistory) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	h.entries = nil
	h.count = 0
	return nil
}
