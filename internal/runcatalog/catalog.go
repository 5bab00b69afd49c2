// Package runcatalog records completed visualization runs in a SQLite
// database inside the network directory, so past interpolation sweeps stay
// traceable without re-reading the frame output.
// See docs/ARCHITECTURE.md § Run Catalog.
package runcatalog

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ECOLE-ITN/pcaeviz/internal/paths"
)

// Catalog errors.
var (
	ErrCatalogClosed = errors.New("run catalog is closed")
)

// createRuns is the schema DDL for the runs table.
const createRuns = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    experiment TEXT NOT NULL,
    pc_size INTEGER NOT NULL,
    latent_size INTEGER NOT NULL,
    steps INTEGER NOT NULL,
    shapes INTEGER NOT NULL,
    frames INTEGER NOT NULL,
    gif_path TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

// Run is one recorded visualization run.
type Run struct {
	ID         string    `json:"id"`
	Experiment string    `json:"experiment"`
	PCSize     int       `json:"pc_size"`
	LatentSize int       `json:"latent_size"`
	Steps      int       `json:"steps"`
	Shapes     int       `json:"shapes"`
	Frames     int       `json:"frames"`
	GIFPath    string    `json:"gif_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// Catalog wraps the runs database. Open once per invocation, Close when
// done; the catalog is not shared between processes concurrently.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the runs database inside networkDir.
func Open(networkDir string) (*Catalog, error) {
	dbPath := filepath.Join(networkDir, paths.RunCatalogName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open run catalog: %w", err)
	}
	if _, err := db.Exec(createRuns); err != nil {
		db.Close()
		return nil, fmt.Errorf("init run catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the database handle. Idempotent.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Record inserts the run and returns its id, generating a UUID when the
// run carries none. CreatedAt defaults to now.
func (c *Catalog) Record(r Run) (string, error) {
	if c.db == nil {
		return "", ErrCatalogClosed
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := c.db.Exec(
		`INSERT INTO runs (run_id, experiment, pc_size, latent_size, steps, shapes, frames, gif_path, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Experiment, r.PCSize, r.LatentSize, r.Steps, r.Shapes, r.Frames, r.GIFPath,
		r.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return r.ID, nil
}

// List returns all recorded runs, newest first.
func (c *Catalog) List() ([]Run, error) {
	if c.db == nil {
		return nil, ErrCatalogClosed
	}

	rows, err := c.db.Query(
		`SELECT run_id, experiment, pc_size, latent_size, steps, shapes, frames, gif_path, created_at
         FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		err := rows.Scan(&r.ID, &r.Experiment, &r.PCSize, &r.LatentSize,
			&r.Steps, &r.Shapes, &r.Frames, &r.GIFPath, &created)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
