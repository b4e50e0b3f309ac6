// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps fetched entities in a local SQLite database and exports
// their simplified claims.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wbclaims/internal/entity"
	"github.com/pdiddy/wbclaims/pkg/types"
)

const (
	dbFile     = "entities.db"
	defaultDir = ".wbclaims"
)

// ErrNotFound marks a lookup of an id the cache does not hold.
var ErrNotFound = errors.New("entity not in cache")

// Store manages the entity cache database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the cache database at <cfg.Dir>/entities.db,
// creating the schema if it does not exist.
func NewStore(cfg types.CacheConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating cache directory")
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return s, nil
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			lastrevid INTEGER NOT NULL DEFAULT 0,
			modified TEXT,
			data TEXT NOT NULL,
			stored_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(type)`,
		`CREATE TABLE IF NOT EXISTS labels (
			entity_id TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
			language TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (entity_id, language)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_labels_value ON labels(value COLLATE NOCASE)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// PutSummary holds counts from a Put or Ingest run.
type PutSummary struct {
	Stored  int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of entities processed.
func (s PutSummary) Total() int {
	return s.Stored + s.Updated + s.Skipped + s.Failed
}

// Put stores entities. An entity already cached at the same non-zero
// revision is skipped; a newer one replaces the old row and its labels.
// Missing entities are not stored.
func (s *Store) Put(ctx context.Context, entities []types.Entity) (PutSummary, error) {
	var summary PutSummary
	for _, e := range entities {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if e.IsMissing() || e.ID == "" {
			summary.Skipped++
			continue
		}
		outcome, err := s.put(ctx, e)
		if err != nil {
			return summary, errors.Wrapf(err, "storing %s", e.ID)
		}
		switch outcome {
		case putStored:
			summary.Stored++
		case putUpdated:
			summary.Updated++
		case putSkipped:
			summary.Skipped++
		}
	}
	return summary, nil
}

type putOutcome int

const (
	putStored putOutcome = iota
	putUpdated
	putSkipped
)

func (s *Store) put(ctx context.Context, e types.Entity) (putOutcome, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	var storedRev int64
	err = tx.QueryRowContext(ctx, `SELECT lastrevid FROM entities WHERE id = ?`, e.ID).Scan(&storedRev)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, errors.Wrap(err, "looking up revision")
	}
	if exists && e.LastRevID != 0 && storedRev == e.LastRevID {
		return putSkipped, nil
	}

	data, err := json.Marshal(e)
	if err != nil {
		return 0, errors.Wrap(err, "encoding entity")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entities (id, type, lastrevid, modified, data, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			type=excluded.type, lastrevid=excluded.lastrevid, modified=excluded.modified,
			data=excluded.data, stored_at=excluded.stored_at`,
		e.ID, string(e.Type), e.LastRevID, e.Modified, string(data),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.Wrap(err, "upserting entity")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM labels WHERE entity_id = ?`, e.ID); err != nil {
		return 0, errors.Wrap(err, "deleting old labels")
	}
	labels := e.Labels
	if len(labels) == 0 {
		labels = e.Lemmas
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO labels (entity_id, language, value) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, errors.Wrap(err, "preparing label insert")
	}
	defer stmt.Close()
	for lang, term := range labels {
		if _, err := stmt.ExecContext(ctx, e.ID, lang, term.Value); err != nil {
			return 0, errors.Wrapf(err, "inserting label %s", lang)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing")
	}
	if exists {
		return putUpdated, nil
	}
	return putStored, nil
}

// Get returns the cached entity with id.
func (s *Store) Get(ctx context.Context, id string) (types.Entity, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM entities WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Entity{}, errors.Mark(errors.Newf("entity %s not in cache", id), ErrNotFound)
	}
	if err != nil {
		return types.Entity{}, errors.Wrapf(err, "looking up %s", id)
	}

	var e types.Entity
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return types.Entity{}, errors.Wrapf(err, "decoding cached %s", id)
	}
	return e, nil
}

// Delete removes id and its labels. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, id); err != nil {
		return errors.Wrapf(err, "deleting %s", id)
	}
	return nil
}

// Ingest stores every *.json file in dir. Each file may hold one entity, an
// array of entities, or a wbgetentities response. Files that fail to parse
// are counted and reported on w but do not stop the run.
func (s *Store) Ingest(ctx context.Context, dir string, w io.Writer) (PutSummary, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return PutSummary{}, errors.Wrapf(err, "reading directory %s", dir)
	}

	var summary PutSummary
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", f.Name(), err)
			summary.Failed++
			continue
		}
		entities, err := entity.Unmarshal(data)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", f.Name(), err)
			summary.Failed++
			continue
		}

		got, err := s.Put(ctx, entities)
		if err != nil {
			return summary, err
		}
		summary.Stored += got.Stored
		summary.Updated += got.Updated
		summary.Skipped += got.Skipped
		fmt.Fprintf(w, "ingested %s (%d entities)\n", f.Name(), len(entities))
	}

	fmt.Fprintf(w, "\nstored: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Stored, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}
