// Package storage provides an SQLite-backed catalog of generated star textures.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a requested layer does not exist.
var ErrNotFound = errors.New("storage: layer not found")

// Store manages the SQLite database connection for the texture catalog.
type Store struct {
	db *sql.DB
}

// LayerRecord is one encoded layer texture and the parameters that produced it.
// Layers generated together share a BatchID.
type LayerRecord struct {
	ID         int64
	BatchID    string
	Preset     string
	Seed       int64
	Altitude   float64
	LayerIndex int
	Width      int
	Height     int
	Density    int
	StarSize   int
	Format     string
	Data       []byte
	CreatedAt  time.Time
}

// BatchSummary aggregates the layers of one generation run.
type BatchSummary struct {
	BatchID    string
	Preset     string
	Seed       int64
	Layers     int
	TotalBytes int64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS layers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			altitude REAL NOT NULL DEFAULT 0,
			layer_index INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			density INTEGER NOT NULL,
			star_size INTEGER NOT NULL,
			format TEXT NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_layers_batch_id ON layers(batch_id);
		CREATE INDEX IF NOT EXISTS idx_layers_preset ON layers(preset);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLayer records an encoded layer texture.
// Returns the ID of the inserted record.
func (s *Store) SaveLayer(r LayerRecord) (int64, error) {
	if r.BatchID == "" {
		return 0, fmt.Errorf("storage: layer has no batch id")
	}
	result, err := s.db.Exec(
		`INSERT INTO layers
		 (batch_id, preset, seed, altitude, layer_index, width, height, density, star_size, format, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.BatchID, r.Preset, r.Seed, r.Altitude, r.LayerIndex,
		r.Width, r.Height, r.Density, r.StarSize, r.Format, r.Data,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save layer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const layerColumns = `id, batch_id, preset, seed, altitude, layer_index, width, height,
	density, star_size, format, data, created_at`

// ListLayers retrieves the most recent layers, newest first.
func (s *Store) ListLayers(limit int) ([]LayerRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+layerColumns+`
		 FROM layers
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layers: %w", err)
	}
	defer rows.Close()

	return scanLayers(rows)
}

// LayersInBatch retrieves every layer of a batch ordered by layer index.
func (s *Store) LayersInBatch(batchID string) ([]LayerRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+layerColumns+`
		 FROM layers
		 WHERE batch_id = ?
		 ORDER BY layer_index ASC`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query batch: %w", err)
	}
	defer rows.Close()

	return scanLayers(rows)
}

// LoadLayer retrieves a single layer by ID.
func (s *Store) LoadLayer(id int64) (*LayerRecord, error) {
	row := s.db.QueryRow(`SELECT `+layerColumns+` FROM layers WHERE id = ?`, id)

	r, err := scanLayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layer: %w", err)
	}
	return &r, nil
}

// DeleteBatch removes every layer of a batch and reports how many were deleted.
func (s *Store) DeleteBatch(batchID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM layers WHERE batch_id = ?", batchID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete batch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}

// Batches summarises generation runs, newest first.
func (s *Store) Batches(limit int) ([]BatchSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT batch_id, MAX(preset), MAX(seed), COUNT(*), COALESCE(SUM(LENGTH(data)), 0), MAX(created_at), MAX(id) AS last_id
		 FROM layers
		 GROUP BY batch_id
		 ORDER BY last_id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query batches: %w", err)
	}
	defer rows.Close()

	var batches []BatchSummary
	for rows.Next() {
		var b BatchSummary
		var createdAt any
		var lastID int64
		if err := rows.Scan(&b.BatchID, &b.Preset, &b.Seed, &b.Layers, &b.TotalBytes, &createdAt, &lastID); err != nil {
			return nil, fmt.Errorf("storage: cannot scan batch row: %w", err)
		}
		b.CreatedAt = parseTime(createdAt)
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return batches, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLayer(sc scanner) (LayerRecord, error) {
	var r LayerRecord
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.BatchID,
		&r.Preset,
		&r.Seed,
		&r.Altitude,
		&r.LayerIndex,
		&r.Width,
		&r.Height,
		&r.Density,
		&r.StarSize,
		&r.Format,
		&r.Data,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func scanLayers(rows *sql.Rows) ([]LayerRecord, error) {
	var records []LayerRecord
	for rows.Next() {
		r, err := scanLayer(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles the driver returning DATETIME as either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
