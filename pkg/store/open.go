package store

import (
	"context"
	"strings"
	"time"

	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/observability"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of the Backend constants. Empty means file.
	Backend string `toml:"backend"`

	// Path is the directory of the file backend or the database file of
	// the sqlite backend.
	Path string `toml:"path"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// Open creates the configured store. The result reports every operation to
// the registered observability store hooks.
func Open(ctx context.Context, cfg Config) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendFile
	}

	var (
		s   Store
		err error
	)
	switch backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile:
		s, err = NewFileStore(cfg.Path)
	case BackendSQLite:
		s, err = OpenSQLite(ctx, cfg.Path)
	case BackendRedis:
		s, err = NewRedisStore(ctx, cfg.Redis)
	case BackendMongo:
		s, err = NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s, backend), nil
}

// Instrument wraps s so that every operation is reported to
// observability.Store(). Keys and Close pass through.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

type instrumented struct {
	Store
	backend string
}

func (s *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := s.Store.Get(ctx, key)
	observability.Store().OnGet(ctx, s.backend, key, ok, time.Since(start), err)
	return v, ok, err
}

func (s *instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.Store.Set(ctx, key, value)
	observability.Store().OnSet(ctx, s.backend, key, len(value), time.Since(start), err)
	return err
}

func (s *instrumented) Remove(ctx context.Context, key string) error {
	err := s.Store.Remove(ctx, key)
	observability.Store().OnRemove(ctx, s.backend, key, err)
	return err
}

func (s *instrumented) Keys(ctx context.Context) ([]string, error) {
	keys, _, err := Keys(ctx, s.Store)
	return keys, err
}

// Unwrap returns the underlying store.
func (s *instrumented) Unwrap() Store { return s.Store }
