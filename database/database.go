// Package database implements the named-table container and snapshot
// persistence described in spec.md §4.3: tables are created and dropped
// explicitly, and the whole database is saved to and loaded from a
// single JSON file at data/<name>/db.json.
package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"bplusdb/dberr"
	"bplusdb/table"
)

// Database is single-threaded and holds no internal lock (spec.md §5):
// a caller sharing one across goroutines must serialize both reads and
// writes with its own mutex, because range scans walk leaf links that
// concurrent mutation would otherwise tear.
type Database struct {
	Name   string
	tables map[string]*table.Table
	logger *log.Logger
}

// New creates an empty, unsaved database named name. A nil logger
// defaults to log.Default(); tests typically pass a logger wrapping
// io.Discard to keep output quiet.
func New(name string, logger *log.Logger) *Database {
	if logger == nil {
		logger = log.Default()
	}
	return &Database{Name: name, tables: make(map[string]*table.Table), logger: logger}
}

// CreateTable adds a new table, failing if the name is already taken or
// pk is not a column in schema.
func (d *Database) CreateTable(name string, schema []table.Column, pk string) error {
	if _, exists := d.tables[name]; exists {
		return fmt.Errorf("database %s: %w", d.Name, dberr.Duplicate(name))
	}
	tb, err := table.New(name, schema, pk)
	if err != nil {
		return err
	}
	d.tables[name] = tb
	return nil
}

// DropTable removes a table, reporting whether it existed.
func (d *Database) DropTable(name string) bool {
	if _, ok := d.tables[name]; !ok {
		return false
	}
	delete(d.tables, name)
	return true
}

// GetTable returns the named table and whether it exists.
func (d *Database) GetTable(name string) (*table.Table, bool) {
	tb, ok := d.tables[name]
	return tb, ok
}

// ListTables returns the database's table names. Order is unspecified
// (spec.md does not require it); callers that need a stable order sort
// the result themselves.
func (d *Database) ListTables() []string {
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	return names
}

func (d *Database) dataDir() string {
	return filepath.Join("data", d.Name)
}

func (d *Database) snapshotPath() string {
	return filepath.Join(d.dataDir(), "db.json")
}

// Save writes the database to data/<name>/db.json as a pretty-printed
// JSON document, creating the directory if needed. Persistence is a
// whole-file replacement; there is no partial-write recovery (spec.md
// §5, §7).
func (d *Database) Save() error {
	if err := os.MkdirAll(d.dataDir(), 0o755); err != nil {
		d.logger.Printf("database %s: save: mkdir: %v", d.Name, err)
		return dberr.IOFailure("create data directory", err)
	}

	snap := dbSnapshot{Name: d.Name, Tables: make(map[string]tableSnapshot, len(d.tables))}
	for name, tb := range d.tables {
		snap.Tables[name] = toTableSnapshot(tb)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		d.logger.Printf("database %s: save: marshal: %v", d.Name, err)
		return dberr.IOFailure("encode snapshot", err)
	}

	if err := os.WriteFile(d.snapshotPath(), data, 0o644); err != nil {
		d.logger.Printf("database %s: save: write: %v", d.Name, err)
		return dberr.IOFailure("write snapshot", err)
	}
	return nil
}

// Load reads data/<name>/db.json and materializes a Database, returning
// (nil, false) if the file does not exist. A nil logger defaults to
// log.Default().
func Load(name string, logger *log.Logger) (*Database, bool) {
	if logger == nil {
		logger = log.Default()
	}

	path := filepath.Join("data", name, "db.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false
		}
		logger.Printf("database %s: load: read: %v", name, err)
		return nil, false
	}

	var snap dbSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Printf("database %s: load: decode: %v", name, err)
		return nil, false
	}

	d := &Database{Name: snap.Name, tables: make(map[string]*table.Table, len(snap.Tables)), logger: logger}
	for tableName, ts := range snap.Tables {
		tb, err := fromTableSnapshot(ts)
		if err != nil {
			logger.Printf("database %s: load table %s: %v", name, tableName, err)
			return nil, false
		}
		d.tables[tableName] = tb
	}
	return d, true
}
