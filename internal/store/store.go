// Package store persists inventory items in SQLite. One table holds every
// entity kind (areas, locations, counters); the kind column partitions the
// lists the UI shows.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"barkeep/internal/inventory"
	"barkeep/internal/logging"
)

// Entity kinds.
const (
	KindArea     = "area"
	KindLocation = "location"
	KindCounter  = "counter"
)

// Kinds lists the valid entity kinds in display order.
var Kinds = []string{KindArea, KindLocation, KindCounter}

// ErrNotFound is returned when an item id does not exist.
var ErrNotFound = errors.New("item not found")

// Item is one persisted inventory row. Rank is optional: nil means the item
// has no explicit position and sorts after every ranked sibling.
type Item struct {
	ID        string
	Kind      string
	ParentID  string
	Label     string
	Rank      *float64
	Quantity  float64
	Unit      string
	Notes     string // markdown, shown in the detail pane
	UpdatedAt time.Time
}

// Record adapts an item to the shape the view synchronizer consumes. The
// item itself rides along as the opaque payload.
func (it Item) Record() inventory.Record {
	return inventory.Record{ID: it.ID, Rank: it.Rank, Label: it.Label, Payload: it}
}

// ValidKind reports whether kind names a known entity kind.
func ValidKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Store wraps the SQLite database holding all inventory items.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// New opens (creating if needed) the SQLite database at path and ensures the
// schema exists.
func New(path string) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "store.New")
	defer timer.Stop()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.Get(logging.CategoryStore).Debug("busy_timeout pragma failed: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.Get(logging.CategoryStore).Debug("journal_mode pragma failed: %v", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.Get(logging.CategoryStore).Info("Store opened at %s", path)
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		parent_id  TEXT NOT NULL DEFAULT '',
		label      TEXT NOT NULL,
		rank       REAL,
		quantity   REAL NOT NULL DEFAULT 0,
		unit       TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_items_kind ON items(kind);
	CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_items_kind_label ON items(kind, label);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Save upserts an item by id, stamping updated_at.
func (s *Store) Save(it Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidKind(it.Kind) {
		return fmt.Errorf("unknown item kind %q", it.Kind)
	}
	_, err := s.db.Exec(`
		INSERT INTO items (id, kind, parent_id, label, rank, quantity, unit, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			parent_id = excluded.parent_id,
			label = excluded.label,
			rank = excluded.rank,
			quantity = excluded.quantity,
			unit = excluded.unit,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		it.ID, it.Kind, it.ParentID, it.Label, rankValue(it.Rank), it.Quantity, it.Unit, it.Notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save item %s: %w", it.ID, err)
	}
	logging.Get(logging.CategoryStore).Debug("Saved %s item %q (%s)", it.Kind, it.Label, it.ID)
	return nil
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, kind, parent_id, label, rank, quantity, unit, notes, updated_at
		FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("failed to load item %s: %w", id, err)
	}
	return it, nil
}

// GetByLabel returns the item of a kind with the given label, if any.
func (s *Store) GetByLabel(kind, label string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, kind, parent_id, label, rank, quantity, unit, notes, updated_at
		FROM items WHERE kind = ? AND label = ?`, kind, label)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("failed to load %s %q: %w", kind, label, err)
	}
	return it, nil
}

// List returns every item of a kind. Rough rank/label ordering comes from
// SQL; the canonical collection re-sorts under the full ranking policy, so
// callers must not rely on this order being final.
func (s *Store) List(kind string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, kind, parent_id, label, rank, quantity, unit, notes, updated_at
		FROM items WHERE kind = ?
		ORDER BY rank IS NULL, rank, label COLLATE NOCASE`, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s items: %w", kind, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s item: %w", kind, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Delete removes an item by id. Absent ids are a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func rankValue(r *float64) any {
	if r == nil {
		return nil
	}
	return *r
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var it Item
	var rank sql.NullFloat64
	err := row.Scan(&it.ID, &it.Kind, &it.ParentID, &it.Label, &rank, &it.Quantity, &it.Unit, &it.Notes, &it.UpdatedAt)
	if err != nil {
		return Item{}, err
	}
	if rank.Valid {
		it.Rank = inventory.RankOf(rank.Float64)
	}
	return it, nil
}
