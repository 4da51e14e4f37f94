// SPDX-License-Identifier: MIT

// Package sqlitestore keeps harness snapshots in a SQLite project file.
// Each collection of a persist.Snapshot is one table; list-valued fields
// are stored as JSON text. Save replaces the whole project in one
// transaction.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/harness/persist"
)

// Store is an open project database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the project database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return initStore(db, path)
}

// OpenMemory opens an in-memory database.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// every pooled connection would get its own empty database
	db.SetMaxOpenConns(1)
	return initStore(db, ":memory:")
}

func initStore(db *sql.DB, path string) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS connectors (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL DEFAULT '',
    part_number TEXT NOT NULL DEFAULT '',
    manufacturer TEXT NOT NULL DEFAULT '',
    x REAL NOT NULL,
    y REAL NOT NULL,
    rotation REAL NOT NULL DEFAULT 0,
    pins TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS nodes (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL CHECK(kind IN ('connector','junction','branch_point','fastener')),
    x REAL NOT NULL,
    y REAL NOT NULL,
    connector TEXT NOT NULL DEFAULT '',
    branch_type TEXT NOT NULL DEFAULT '',
    fastener_type TEXT NOT NULL DEFAULT '',
    part_number TEXT NOT NULL DEFAULT '',
    origin TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS branches (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    start_node TEXT NOT NULL,
    end_node TEXT NOT NULL,
    bundle TEXT NOT NULL DEFAULT '',
    origin TEXT NOT NULL DEFAULT '',
    wires TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS bundles (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    start_x REAL NOT NULL,
    start_y REAL NOT NULL,
    end_x REAL NOT NULL,
    end_y REAL NOT NULL,
    start_node TEXT NOT NULL DEFAULT '',
    end_node TEXT NOT NULL DEFAULT '',
    length REAL,
    wires TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS wires (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    from_pin TEXT NOT NULL,
    to_pin TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    cross_section REAL NOT NULL DEFAULT 0,
    segments TEXT NOT NULL DEFAULT '[]',
    origin TEXT NOT NULL DEFAULT '',
    hidden INTEGER NOT NULL DEFAULT 0,
    sources TEXT NOT NULL DEFAULT '[]'
);
`

var tables = []string{"connectors", "nodes", "branches", "bundles", "wires"}

// Save validates snap and replaces the stored project with it.
func (s *Store) Save(ctx context.Context, snap persist.Snapshot) (err error) {
	if err := snap.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range tables {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("clearing %s: %w", t, err)
		}
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES('version', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(persist.Version)); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}

	for i, c := range snap.Connectors {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO connectors(seq, id, name, part_number, manufacturer, x, y, rotation, pins) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, c.ID, c.Name, c.PartNumber, c.Manufacturer, c.X, c.Y, c.Rotation, toJSON(c.Pins)); err != nil {
			return fmt.Errorf("inserting connector %q: %w", c.ID, err)
		}
	}
	for i, n := range snap.Nodes {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO nodes(seq, id, kind, x, y, connector, branch_type, fastener_type, part_number, origin) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, n.ID, n.Kind, n.X, n.Y, n.Connector, n.BranchType, n.FastenerType, n.PartNumber, n.Origin); err != nil {
			return fmt.Errorf("inserting node %q: %w", n.ID, err)
		}
	}
	for i, b := range snap.Branches {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO branches(seq, id, start_node, end_node, bundle, origin, wires) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			i, b.ID, b.Start, b.End, b.Bundle, b.Origin, toJSON(b.Wires)); err != nil {
			return fmt.Errorf("inserting branch %q: %w", b.ID, err)
		}
	}
	for i, b := range snap.Bundles {
		var length sql.NullFloat64
		if b.Length != nil {
			length = sql.NullFloat64{Float64: *b.Length, Valid: true}
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO bundles(seq, id, start_x, start_y, end_x, end_y, start_node, end_node, length, wires) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, b.ID, b.StartX, b.StartY, b.EndX, b.EndY, b.StartNode, b.EndNode, length, toJSON(b.Wires)); err != nil {
			return fmt.Errorf("inserting bundle %q: %w", b.ID, err)
		}
	}
	for i, w := range snap.Wires {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO wires(seq, id, from_pin, to_pin, color, cross_section, segments, origin, hidden, sources) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, w.ID, w.From, w.To, w.Color, w.CrossSection, toJSON(w.Segments), w.Origin, w.Hidden, toJSON(w.Sources)); err != nil {
			return fmt.Errorf("inserting wire %q: %w", w.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ErrNoProject means the database holds no saved project.
var ErrNoProject = errors.New("sqlitestore: no project saved")

// Load reads and validates the stored project.
func (s *Store) Load(ctx context.Context) (persist.Snapshot, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return persist.Snapshot{}, ErrNoProject
	}
	if err != nil {
		return persist.Snapshot{}, fmt.Errorf("reading version: %w", err)
	}
	snap := persist.Snapshot{}
	if snap.Version, err = strconv.Atoi(version); err != nil {
		return persist.Snapshot{}, fmt.Errorf("reading version: %w", err)
	}

	loaders := []func(context.Context, *persist.Snapshot) error{
		s.loadConnectors, s.loadNodes, s.loadBranches, s.loadBundles, s.loadWires,
	}
	for _, load := range loaders {
		if err := load(ctx, &snap); err != nil {
			return persist.Snapshot{}, err
		}
	}
	if err := snap.Validate(); err != nil {
		return persist.Snapshot{}, err
	}
	return snap, nil
}

// each runs query and calls scan once per row.
func (s *Store) each(ctx context.Context, table, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scanning %s: %w", table, err)
		}
	}
	return rows.Err()
}

func (s *Store) loadConnectors(ctx context.Context, snap *persist.Snapshot) error {
	return s.each(ctx, "connectors",
		`SELECT id, name, part_number, manufacturer, x, y, rotation, pins FROM connectors ORDER BY seq`,
		func(r *sql.Rows) error {
			var c persist.Connector
			var pins string
			if err := r.Scan(&c.ID, &c.Name, &c.PartNumber, &c.Manufacturer, &c.X, &c.Y, &c.Rotation, &pins); err != nil {
				return err
			}
			if err := fromJSON(pins, &c.Pins); err != nil {
				return err
			}
			snap.Connectors = append(snap.Connectors, c)
			return nil
		})
}

func (s *Store) loadNodes(ctx context.Context, snap *persist.Snapshot) error {
	return s.each(ctx, "nodes",
		`SELECT id, kind, x, y, connector, branch_type, fastener_type, part_number, origin FROM nodes ORDER BY seq`,
		func(r *sql.Rows) error {
			var n persist.Node
			if err := r.Scan(&n.ID, &n.Kind, &n.X, &n.Y, &n.Connector, &n.BranchType, &n.FastenerType, &n.PartNumber, &n.Origin); err != nil {
				return err
			}
			snap.Nodes = append(snap.Nodes, n)
			return nil
		})
}

func (s *Store) loadBranches(ctx context.Context, snap *persist.Snapshot) error {
	return s.each(ctx, "branches",
		`SELECT id, start_node, end_node, bundle, origin, wires FROM branches ORDER BY seq`,
		func(r *sql.Rows) error {
			var b persist.Branch
			var wires string
			if err := r.Scan(&b.ID, &b.Start, &b.End, &b.Bundle, &b.Origin, &wires); err != nil {
				return err
			}
			if err := fromJSON(wires, &b.Wires); err != nil {
				return err
			}
			snap.Branches = append(snap.Branches, b)
			return nil
		})
}

func (s *Store) loadBundles(ctx context.Context, snap *persist.Snapshot) error {
	return s.each(ctx, "bundles",
		`SELECT id, start_x, start_y, end_x, end_y, start_node, end_node, length, wires FROM bundles ORDER BY seq`,
		func(r *sql.Rows) error {
			var b persist.Bundle
			var length sql.NullFloat64
			var wires string
			if err := r.Scan(&b.ID, &b.StartX, &b.StartY, &b.EndX, &b.EndY, &b.StartNode, &b.EndNode, &length, &wires); err != nil {
				return err
			}
			if length.Valid {
				l := length.Float64
				b.Length = &l
			}
			if err := fromJSON(wires, &b.Wires); err != nil {
				return err
			}
			snap.Bundles = append(snap.Bundles, b)
			return nil
		})
}

func (s *Store) loadWires(ctx context.Context, snap *persist.Snapshot) error {
	return s.each(ctx, "wires",
		`SELECT id, from_pin, to_pin, color, cross_section, segments, origin, hidden, sources FROM wires ORDER BY seq`,
		func(r *sql.Rows) error {
			var w persist.Wire
			var segs, sources string
			if err := r.Scan(&w.ID, &w.From, &w.To, &w.Color, &w.CrossSection, &segs, &w.Origin, &w.Hidden, &sources); err != nil {
				return err
			}
			if err := fromJSON(segs, &w.Segments); err != nil {
				return err
			}
			if err := fromJSON(sources, &w.Sources); err != nil {
				return err
			}
			snap.Wires = append(snap.Wires, w)
			return nil
		})
}

// toJSON encodes a string list; nil is stored as "[]".
func toJSON(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// fromJSON decodes a list stored by toJSON; "[]" yields nil.
func fromJSON(s string, out *[]string) error {
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return err
	}
	if len(v) > 0 {
		*out = v
	}
	return nil
}
