package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	dirName         = ".listview"
	sqliteFileName  = "listview.sqlite"
	eventsFileName  = "events.jsonl"
	DefaultDocument = "default"
)

// Store is a directory holding one block database plus its side files
// (event log, view state, log file).
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .listview directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// LogPath is where the interactive UI writes its log.
func (s Store) LogPath() string {
	return filepath.Join(s.Dir, "listview.log")
}

func NormalizeDocument(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultDocument
	}
	return id
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite registers itself as "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI write while a TUI in another process reads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS blocks (
			document_id TEXT NOT NULL,
			client_id TEXT NOT NULL,
			parent_id TEXT NOT NULL DEFAULT '',
			rank TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			attributes_json TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (document_id, client_id)
		);`,
		`CREATE INDEX IF NOT EXISTS blocks_by_parent ON blocks(document_id, parent_id, rank);`,
		`CREATE TABLE IF NOT EXISTS revisions (
			document_id TEXT PRIMARY KEY,
			rev INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS selection (
			document_id TEXT PRIMARY KEY,
			start_id TEXT NOT NULL,
			end_id TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Init creates the store directory and database.
func (s Store) Init(ctx context.Context) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	return db.Close()
}

// Documents lists the ids of documents that have at least one block.
func (s Store) Documents(ctx context.Context) ([]string, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT document_id FROM blocks ORDER BY document_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
