package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/versecraft/internal/util"
)

var ErrNoChange = errs.New("no change")

const opTimeout = 5 * time.Second

// DB wraps gorm.DB for the postgres backend and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error { return d.sql.Close() }

// Open connects to postgres per config.
func Open(cfg util.Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, err
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(4)
	sdb.SetMaxIdleConns(2)
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := sdb.PingContext(ctx); err != nil {
		return nil, err
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// PostgresBackend stores keys in kv_entries, namespaced by profile.
type PostgresBackend struct {
	db      *DB
	profile string
}

func NewPostgresBackend(db *DB, profile string) *PostgresBackend {
	return &PostgresBackend{db: db, profile: profileOrDefault(profile)}
}

func (p *PostgresBackend) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	var value string
	row := p.db.gorm.WithContext(ctx).Raw(`SELECT value FROM kv_entries WHERE profile = ? AND key = ?`, p.profile, key).Row()
	if err := row.Scan(&value); err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, wrap(err, "get "+key)
	}
	return value, true, nil
}

func (p *PostgresBackend) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return wrap(p.db.gorm.WithContext(ctx).Exec(`INSERT INTO kv_entries(id, profile, key, value, updated_at) VALUES (?,?,?,?,now())
	ON CONFLICT (profile, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, uuid.New(), p.profile, key, value).Error, "set "+key)
}

func (p *PostgresBackend) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return wrap(p.db.gorm.WithContext(ctx).Exec(`DELETE FROM kv_entries WHERE profile = ? AND key = ?`, p.profile, key).Error, "remove "+key)
}

func profileOrDefault(p string) string {
	if p == "" {
		return "default"
	}
	return p
}

// wrap is errors.Wrap that keeps nil as nil.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
