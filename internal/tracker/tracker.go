// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tracker persists per-chapter build state in a SQLite index so the
// status command can report which chapters changed since the last build.
// The assembler itself never consults the tracker; assembly stays a pure
// streaming pass.
package tracker

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const dbFile = "build.db"

// Tracker manages the build-state SQLite database.
type Tracker struct {
	db *sql.DB
}

// Open opens or creates the build index at dir/build.db, creating the
// schema if it does not exist.
func Open(dir string) (*Tracker, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating tracker directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	t := &Tracker{db: db}
	if err := t.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return t, nil
}

// Close releases the database connection.
func (t *Tracker) Close() error {
	return t.db.Close()
}

func (t *Tracker) createSchema() error {
	_, err := t.db.Exec(`CREATE TABLE IF NOT EXISTS chapters (
		path TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		mod_time TEXT NOT NULL,
		built_at TEXT NOT NULL,
		words INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Inspect reads a chapter source file and produces its tracker record with
// the build time set to now.
func Inspect(path string) (types.ChapterRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.ChapterRecord{}, fmt.Errorf("inspecting chapter %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ChapterRecord{}, fmt.Errorf("reading chapter %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	return types.ChapterRecord{
		Path:        path,
		Fingerprint: hex.EncodeToString(sum[:]),
		ModTime:     info.ModTime().UTC(),
		BuiltAt:     time.Now().UTC(),
		Words:       len(strings.Fields(string(data))),
	}, nil
}

// Record upserts a chapter's build state.
func (t *Tracker) Record(ctx context.Context, rec types.ChapterRecord) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO chapters (path, fingerprint, mod_time, built_at, words)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			fingerprint=excluded.fingerprint, mod_time=excluded.mod_time,
			built_at=excluded.built_at, words=excluded.words`,
		rec.Path, rec.Fingerprint,
		rec.ModTime.Format(time.RFC3339Nano),
		rec.BuiltAt.Format(time.RFC3339Nano),
		rec.Words,
	)
	if err != nil {
		return fmt.Errorf("recording chapter %s: %w", rec.Path, err)
	}
	return nil
}

// RecordAll records every chapter in paths, printing per-chapter status to w.
// The first chapter that cannot be inspected or stored aborts the pass.
func (t *Tracker) RecordAll(ctx context.Context, paths []string, w io.Writer) error {
	for _, path := range paths {
		rec, err := Inspect(path)
		if err != nil {
			return err
		}
		if err := t.Record(ctx, rec); err != nil {
			return err
		}
		fmt.Fprintf(w, "tracked %s (%d words)\n", path, rec.Words)
	}
	return nil
}

// Status computes the freshness of each chapter in paths against the stored
// build state: new (never built), fresh (unchanged), stale (content changed),
// or missing (file gone).
func (t *Tracker) Status(ctx context.Context, paths []string) ([]types.ChapterStatus, error) {
	out := make([]types.ChapterStatus, 0, len(paths))
	for _, path := range paths {
		st, err := t.chapterStatus(ctx, path)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (t *Tracker) chapterStatus(ctx context.Context, path string) (types.ChapterStatus, error) {
	var stored string
	err := t.db.QueryRowContext(ctx,
		`SELECT fingerprint FROM chapters WHERE path = ?`, path,
	).Scan(&stored)

	tracked := err == nil
	if err != nil && err != sql.ErrNoRows {
		return types.ChapterStatus{}, fmt.Errorf("querying chapter %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ChapterStatus{Path: path, State: types.ChapterMissing}, nil
		}
		return types.ChapterStatus{}, fmt.Errorf("reading chapter %s: %w", path, err)
	}

	words := len(strings.Fields(string(data)))
	if !tracked {
		return types.ChapterStatus{Path: path, State: types.ChapterNew, Words: words}, nil
	}

	sum := sha256.Sum256(data)
	state := types.ChapterFresh
	if hex.EncodeToString(sum[:]) != stored {
		state = types.ChapterStale
	}
	return types.ChapterStatus{Path: path, State: state, Words: words}, nil
}
