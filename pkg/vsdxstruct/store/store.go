// Package store persists extracted diagram models in SQLite.
//
// Usage:
//
//	st, err := store.Open("diagrams.db")
//	if err != nil { ... }
//	defer st.Close()
//	docID, err := st.Save(ctx, "plan.vsdx", pages)
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	source     TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
CREATE TABLE IF NOT EXISTS pages (
	document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	page_index  INTEGER NOT NULL,
	page_id     TEXT NOT NULL,
	page_name   TEXT NOT NULL,
	page_file   TEXT NOT NULL,
	properties  TEXT NOT NULL,
	PRIMARY KEY (document_id, page_index)
);
CREATE TABLE IF NOT EXISTS shapes (
	document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	page_index  INTEGER NOT NULL,
	shape_id    TEXT NOT NULL,
	parent_id   TEXT,
	ordinal     INTEGER NOT NULL,
	name        TEXT NOT NULL,
	kind        TEXT NOT NULL,
	x           TEXT NOT NULL,
	y           TEXT NOT NULL,
	width       TEXT NOT NULL,
	height      TEXT NOT NULL,
	angle       TEXT NOT NULL,
	master_id   TEXT NOT NULL,
	master_name TEXT NOT NULL,
	text        TEXT NOT NULL,
	properties  TEXT NOT NULL,
	PRIMARY KEY (document_id, page_index, shape_id)
);
CREATE TABLE IF NOT EXISTS edges (
	document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	page_index  INTEGER NOT NULL,
	from_shape  TEXT NOT NULL,
	to_shape    TEXT NOT NULL,
	from_cell   TEXT NOT NULL,
	to_cell     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS connectors (
	document_id  INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	page_index   INTEGER NOT NULL,
	connector_id TEXT NOT NULL,
	name         TEXT NOT NULL,
	kind         TEXT NOT NULL,
	line_pattern TEXT NOT NULL,
	line_color   TEXT NOT NULL,
	line_weight  TEXT NOT NULL,
	begin_arrow  TEXT NOT NULL,
	end_arrow    TEXT NOT NULL,
	direction    TEXT NOT NULL,
	points       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_edges_from ON edges(document_id, page_index, from_shape);
`

type config struct {
	busyTimeout int
	mkdirAll    bool
}

// Option customises Open behaviour.
type Option func(*config)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) Option { return func(c *config) { c.busyTimeout = ms } }

// WithMkdirAll creates parent directories of the database path before opening.
func WithMkdirAll() Option { return func(c *config) { c.mkdirAll = true } }

// Store writes extraction results to an SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" opens a private in-memory database.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := config{busyTimeout: 10_000}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.mkdirAll && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if path == ":memory:" {
		// Each connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: exec schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for queries.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores the pages of one document in a single transaction and returns
// the new document id.
func (s *Store) Save(ctx context.Context, source string, pages []models.PageRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO documents (source) VALUES (?)`, source)
	if err != nil {
		return 0, fmt.Errorf("store: insert document: %w", err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: document id: %w", err)
	}

	for _, p := range pages {
		if err := savePage(ctx, tx, docID, p); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return docID, nil
}

func savePage(ctx context.Context, tx *sql.Tx, docID int64, p models.PageRecord) error {
	props, err := json.Marshal(p.PageProperties)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO pages (document_id, page_index, page_id, page_name, page_file, properties) VALUES (?, ?, ?, ?, ?, ?)`,
		docID, p.PageIndex, p.PageID, p.PageName, p.PageFile, string(props)); err != nil {
		return fmt.Errorf("store: insert page %d: %w", p.PageIndex, err)
	}

	ordinal := 0
	var insertShape func(parent *string, n *models.ShapeNode) error
	insertShape = func(parent *string, n *models.ShapeNode) error {
		props, err := json.Marshal(n.Properties)
		if err != nil {
			return err
		}
		g := n.Geometry
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shapes (document_id, page_index, shape_id, parent_id, ordinal, name, kind, x, y, width, height, angle, master_id, master_name, text, properties)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			docID, p.PageIndex, n.ID, parent, ordinal, n.Name, n.Kind,
			string(g.X), string(g.Y), string(g.Width), string(g.Height), string(g.Angle),
			n.MasterID, n.MasterName, n.Text, string(props)); err != nil {
			return fmt.Errorf("store: insert shape %s: %w", n.ID, err)
		}
		ordinal++
		for _, e := range n.Connections {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO edges (document_id, page_index, from_shape, to_shape, from_cell, to_cell) VALUES (?, ?, ?, ?, ?, ?)`,
				docID, p.PageIndex, e.FromShape, e.ToShape, e.FromCell, e.ToCell); err != nil {
				return fmt.Errorf("store: insert edge: %w", err)
			}
		}
		id := n.ID
		for _, c := range n.Children {
			if err := insertShape(&id, c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, s := range p.Shapes {
		if err := insertShape(nil, s); err != nil {
			return err
		}
	}

	for _, c := range p.Connectors {
		points, err := json.Marshal(c.GeometryPoints)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO connectors (document_id, page_index, connector_id, name, kind, line_pattern, line_color, line_weight, begin_arrow, end_arrow, direction, points)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			docID, p.PageIndex, c.ID, c.Name, c.Kind,
			string(c.LinePattern), c.LineColor, string(c.LineWeight),
			string(c.BeginArrow), string(c.EndArrow), c.Direction, string(points)); err != nil {
			return fmt.Errorf("store: insert connector %s: %w", c.ID, err)
		}
	}
	return nil
}
