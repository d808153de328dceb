package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const migrationTable = "schema_migrations"

// SQLiteBackend is the on-device backend: one file, keys namespaced by
// profile.
type SQLiteBackend struct {
	db      *sql.DB
	profile string
}

// OpenSQLite opens (creating when needed) the database at p and applies
// the embedded schema.
func OpenSQLite(p, profile string) (*SQLiteBackend, error) {
	if strings.TrimSpace(p) == "" {
		return nil, fmt.Errorf("missing sqlite path")
	}
	if p != ":memory:" {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, wrap(err, "create sqlite dir")
			}
		}
	}
	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1)
	if err := applyMigrations(db, migrationFS, "migrations/sqlite"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteBackend{db: db, profile: profileOrDefault(profile)}, nil
}

func (s *SQLiteBackend) Close() error { return s.db.Close() }

func (s *SQLiteBackend) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE profile = ? AND key = ?`, s.profile, key).Scan(&value)
	if errs.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrap(err, "get "+key)
	}
	return value, true, nil
}

func (s *SQLiteBackend) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv_entries(id, profile, key, value, updated_at) VALUES (?,?,?,?,?)
	ON CONFLICT (profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		uuid.NewString(), s.profile, key, value, time.Now().UTC().UnixMilli())
	return wrap(err, "set "+key)
}

func (s *SQLiteBackend) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE profile = ? AND key = ?`, s.profile, key)
	return wrap(err, "remove "+key)
}

// applyMigrations executes the Up half of each .sql file under root at most
// once, recording applied names in schema_migrations.
func applyMigrations(db *sql.DB, fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, applied_at INTEGER NOT NULL)`, migrationTable)); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}
	for _, name := range files {
		var n int
		if err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE name = ?`, migrationTable), name).Scan(&n); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if n > 0 {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		up := upSection(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		if _, err := tx.Exec(fmt.Sprintf(`INSERT OR IGNORE INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable), name, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}

// upSection returns the SQL between "-- +migrate Up" and "-- +migrate Down".
func upSection(content string) string {
	const upMark, downMark = "-- +migrate Up", "-- +migrate Down"
	i := strings.Index(content, upMark)
	if i == -1 {
		return content
	}
	rest := content[i+len(upMark):]
	if j := strings.Index(rest, downMark); j != -1 {
		return rest[:j]
	}
	return rest
}
