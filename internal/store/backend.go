package store

import (
	"fmt"
	"strings"

	"github.com/DaanHessen/versecraft/internal/util"
)

// Backend is the key/value boundary every persisted value goes through.
// Errors are reported, never panicked; Local decides what to do with them.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryBackend keeps values in a map. It is not safe for concurrent use,
// which matches the single UI loop that owns it.
type MemoryBackend struct {
	m map[string]string
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{m: map[string]string{}} }

func (b *MemoryBackend) Get(key string) (string, bool, error) {
	v, ok := b.m[key]
	return v, ok, nil
}

func (b *MemoryBackend) Set(key, value string) error { b.m[key] = value; return nil }

func (b *MemoryBackend) Remove(key string) error { delete(b.m, key); return nil }

// Len reports the number of stored keys.
func (b *MemoryBackend) Len() int { return len(b.m) }

// OpenBackend picks the backend named by cfg.Backend.
// The returned closer is never nil.
func OpenBackend(cfg util.Config) (Backend, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "sqlite":
		b, err := OpenSQLite(cfg.SQLitePath, cfg.Profile)
		if err != nil {
			return nil, noopClose, err
		}
		return b, b.Close, nil
	case "postgres":
		db, err := Open(cfg)
		if err != nil {
			return nil, noopClose, err
		}
		return NewPostgresBackend(db, cfg.Profile), db.Close, nil
	case "memory":
		return NewMemoryBackend(), noopClose, nil
	default:
		return nil, noopClose, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func noopClose() error { return nil }
