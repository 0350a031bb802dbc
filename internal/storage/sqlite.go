package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteHistory keeps the history in a private in-memory SQLite database.
// Nothing is written to disk; the data lives as long as the store is open.
type SQLiteHistory struct {
	now      func() time.Time
	db       *sql.DB
	capacity int
	closeMu  sync.Mutex
	closed   bool
}

// NewSQLiteHistory opens an in-memory SQLite history with the given capacity.
func NewSQLiteHistory(capacity int) (*SQLiteHistory, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	// A named shared-cache memory database keeps each store isolated while
	// surviving connection recycling inside database/sql.
	dsn := fmt.Sprintf("file:qrsignal-history-%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	h := &SQLiteHistory{
		now:      time.Now,
		db:       db,
		capacity: capacity,
	}

	if err := h.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return h, nil
}

// Add records result and evicts rows beyond capacity in the same transaction.
func (h *SQLiteHistory) Add(ctx context.Context, result model.AnalysisResult) (Entry, error) {
	if err := validateContext(ctx); err != nil {
		return Entry{}, err
	}
	if err := validateResult(result); err != nil {
		return Entry{}, err
	}
	if err := h.checkOpen(); err != nil {
		return Entry{}, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to encode result: %w", err)
	}

	entry := Entry{
		ID:        uuid.New(),
		ScannedAt: h.now().UTC(),
		Result:    result,
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history (id, scanned_at, qr_type, signal, root_domain, result)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID.String(), entry.ScannedAt, string(result.Type), string(result.Signal), result.RootDomain(), string(payload))
	if err != nil {
		return Entry{}, fmt.Errorf("failed to insert history entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM history
		WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)
	`, h.capacity)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to evict history entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("failed to commit history entry: %w", err)
	}

	return entry, nil
}

// List returns the entries newest first.
func (h *SQLiteHistory) List(ctx context.Context) ([]Entry, error) {
	return h.query(ctx, `
		SELECT id, scanned_at, result FROM history ORDER BY seq DESC
	`)
}

// ListBySignal returns the entries carrying signal, newest first.
func (h *SQLiteHistory) ListBySignal(ctx context.Context, signal model.Signal) ([]Entry, error) {
	return h.query(ctx, `
		SELECT id, scanned_at, result FROM history WHERE signal = ? ORDER BY seq DESC
	`, string(signal))
}

// Get returns the entry with id.
func (h *SQLiteHistory) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	if err := validateContext(ctx); err != nil {
		return Entry{}, err
	}
	if err := h.checkOpen(); err != nil {
		return Entry{}, err
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, scanned_at, result FROM history WHERE id = ?
	`, id.String())

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("history entry %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Len returns the number of stored entries.
func (h *SQLiteHistory) Len(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := h.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return count, nil
}

// Clear removes every entry.
func (h *SQLiteHistory) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := h.checkOpen(); err != nil {
		return err
	}

	if _, err := h.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Capacity returns the maximum number of entries kept.
func (h *SQLiteHistory) Capacity() int {
	return h.capacity
}

// Close closes the database, discarding the history.
func (h *SQLiteHistory) Close() error {
	h.closeMu.Lock()
	defer h.closeMu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	return h.db.Close()
}

func (h *SQLiteHistory) checkOpen() error {
	h.closeMu.Lock()
	defer h.closeMu.Unlock()

	if h.closed {
		return common.ErrHistoryClosed
	}
	return nil
}

func (h *SQLiteHistory) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := h.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		id        string
		scannedAt time.Time
		payload   string
	)
	if err := row.Scan(&id, &scannedAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("failed to scan history entry: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse history id %q: %w", id, err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return Entry{}, fmt.Errorf("failed to decode history entry %s: %w", id, err)
	}

	return Entry{
		ID:        parsedID,
		ScannedAt: scannedAt.UTC(),
		Result:    result,
	}, nil
}
