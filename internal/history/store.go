// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed conversions in SQLite so batch runs
// can skip canvases that have not changed since their Markdown was written.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/canvas-outline/pkg/types"
)

// DefaultPath is the history database used when none is configured.
var DefaultPath = filepath.Join(".canvas-outline", "history.db")

// Store manages the conversion history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		source_path TEXT PRIMARY KEY,
		output_path TEXT NOT NULL,
		source_mod_time TEXT NOT NULL,
		nodes INTEGER,
		edges INTEGER,
		roots INTEGER,
		headings INTEGER,
		list_items INTEGER,
		links INTEGER,
		max_heading_level INTEGER,
		config_hash TEXT NOT NULL DEFAULT '',
		converted_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts or replaces the entry for rec.SourcePath.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source_path, output_path, source_mod_time, nodes, edges, roots,
			headings, list_items, links, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_path) DO UPDATE SET
			output_path=excluded.output_path, source_mod_time=excluded.source_mod_time,
			nodes=excluded.nodes, edges=excluded.edges, roots=excluded.roots,
			headings=excluded.headings, list_items=excluded.list_items, links=excluded.links,
			max_heading_level=excluded.max_heading_level, config_hash=excluded.config_hash,
			converted_at=excluded.converted_at`,
		rec.SourcePath, rec.OutputPath, rec.SourceModTime.UTC().Format(time.RFC3339Nano),
		rec.Nodes, rec.Edges, rec.Roots, rec.Headings, rec.ListItems, rec.Links,
		rec.MaxHeadingLevel, rec.ConfigHash,
		rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.SourcePath, err)
	}
	return nil
}

// Lookup returns the entry for sourcePath. The boolean is false when the
// canvas has never been converted.
func (s *Store) Lookup(ctx context.Context, sourcePath string) (types.ConversionRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE source_path = ?`, sourcePath)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ConversionRecord{}, false, nil
	}
	if err != nil {
		return types.ConversionRecord{}, false, fmt.Errorf("looking up %s: %w", sourcePath, err)
	}
	return rec, true, nil
}

// List returns every entry, most recent conversion first.
func (s *Store) List(ctx context.Context) ([]types.ConversionRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY converted_at DESC, source_path`)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var recs []types.ConversionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

const selectColumns = `SELECT source_path, output_path, source_mod_time, nodes, edges, roots,
	headings, list_items, links, max_heading_level, config_hash, converted_at FROM conversions`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (types.ConversionRecord, error) {
	var (
		rec                    types.ConversionRecord
		modTime, convertedTime string
	)
	err := sc.Scan(&rec.SourcePath, &rec.OutputPath, &modTime,
		&rec.Nodes, &rec.Edges, &rec.Roots,
		&rec.Headings, &rec.ListItems, &rec.Links, &rec.MaxHeadingLevel, &rec.ConfigHash, &convertedTime)
	if err != nil {
		return types.ConversionRecord{}, err
	}
	if rec.SourceModTime, err = time.Parse(time.RFC3339Nano, modTime); err != nil {
		return types.ConversionRecord{}, fmt.Errorf("parsing source_mod_time: %w", err)
	}
	if rec.ConvertedAt, err = time.Parse(time.RFC3339Nano, convertedTime); err != nil {
		return types.ConversionRecord{}, fmt.Errorf("parsing converted_at: %w", err)
	}
	return rec, nil
}
