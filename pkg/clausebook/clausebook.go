// Package clausebook opens a catalog of reusable document text.
//
// Example:
//
//	lib, err := clausebook.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".clausebook-db",
//	})
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	e, ok := lib.Get("governing-law")
//	text := types.ResolvePlaceholders(e, map[string]string{"STATE": "Delaware"})
package clausebook

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/clausebook/internal/catalog"
	"github.com/mesh-intelligence/clausebook/internal/seed"
	"github.com/mesh-intelligence/clausebook/internal/sqlite"
	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// Version is the clausebook release.
const Version = "0.1.0"

// Library is an open catalog. Close releases the backend; the in-memory
// backend has nothing to release.
type Library interface {
	types.Library
	io.Closer
}

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger passed to the backend.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock overrides the clock used to stamp LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Open creates the backend named by cfg.Backend and loads its catalog. The
// memory backend is seeded from cfg.SeedFile, or the built-in catalog when
// it is empty; the sqlite backend seeds only on first use of cfg.DataDir.
func Open(cfg types.Config, opts ...Option) (Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	switch cfg.Backend {
	case types.BackendMemory:
		entities, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		store, err := catalog.New(entities, catalog.WithLogger(o.logger), catalog.WithClock(o.now))
		if err != nil {
			return nil, err
		}
		return memoryLibrary{store}, nil
	case types.BackendSQLite:
		b := sqlite.NewBackend(sqlite.WithLogger(o.logger), sqlite.WithClock(o.now))
		if err := b.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attaching library: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
}

type memoryLibrary struct {
	*catalog.Store
}

func (memoryLibrary) Close() error { return nil }
