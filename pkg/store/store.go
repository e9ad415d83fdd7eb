// Package store persists dumped documents between a copy and a paste.
//
// A [Store] is a small TTL key/value interface with four backends:
// [FileStore] for the CLI, [RedisStore] and [MongoStore] for shared
// setups, and [NullStore] to disable persistence. [Clipboard] builds the
// copy/paste history on top of any of them.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/figmajson/pkg/errors"
)

// Store is a key/value store with per-entry expiry. Get reports a miss,
// not an error, for missing or expired entries.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
	TTL           time.Duration `toml:"ttl"`
}

// Open returns the store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if err := errors.ValidateBackend(cfg.Backend); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendFile:
		if cfg.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file store needs a directory")
		}
		if err := errors.ValidatePath(cfg.Dir); err != nil {
			return nil, err
		}
		return NewFileStore(cfg.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	case BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case BackendNone:
		return NewNullStore(), nil
	}
	return nil, fmt.Errorf("unreachable backend %q", cfg.Backend)
}
