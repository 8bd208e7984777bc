// Package sqlite implements the persistent clausebook library backend.
//
// entities.jsonl in the data directory is the source of truth. On Attach the
// backend rebuilds a SQLite database from it, seeds the catalog on first
// run, and hydrates an in-memory catalog that serves reads. Registrations
// are written to SQLite and entities.jsonl inside one transaction before
// they become visible to readers.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/clausebook/internal/catalog"
	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// dbFileName is the SQLite database rebuilt on every Attach.
const dbFileName = "clausebook.db"

var _ types.Library = (*Backend)(nil)

// Backend implements types.Library using SQLite as the query engine and a
// JSONL file as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	catalog  *catalog.Store

	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the backend logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, rebuilds the SQLite database from
// entities.jsonl, seeds an empty catalog, and loads the catalog into memory.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendSQLite {
		return fmt.Errorf("%w: %q", types.ErrBackendUnknown, config.Backend)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a disposable index; entities.jsonl is authoritative.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store, err := b.initialize(db, dataDir, config.SeedFile)
	if err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.catalog = store
	b.attached = true

	b.logger.Info("library attached",
		zap.String("data_dir", dataDir),
		zap.Int("entities", store.Len()))
	return nil
}

// initialize creates the schema, loads JSONL, seeds if needed, and returns
// the hydrated in-memory catalog.
func (b *Backend) initialize(db *sql.DB, dataDir, seedFile string) (*catalog.Store, error) {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return nil, fmt.Errorf("creating index: %w", err)
		}
	}

	if err := ensureJSONLFile(filepath.Join(dataDir, entitiesJSONL)); err != nil {
		return nil, fmt.Errorf("creating %s: %w", entitiesJSONL, err)
	}

	loaded, err := loadJSONL(db, dataDir, b.now().UTC(), b.logger)
	if err != nil {
		return nil, fmt.Errorf("load JSONL: %w", err)
	}

	seeded, err := seedCatalog(db, dataDir, seedFile, b.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	if seeded > 0 {
		b.logger.Info("seeded catalog", zap.Int("entities", seeded), zap.String("seed_file", seedFile))
	}

	entities, err := queryEntities(db)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("catalog loaded", zap.Int("from_jsonl", loaded), zap.Int("total", len(entities)))

	return catalog.New(entities, catalog.WithLogger(b.logger), catalog.WithClock(b.now))
}

// Detach releases all resources held by the backend. After Detach,
// Register returns ErrLibraryDetached and reads return empty results.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.catalog = nil
	b.logger.Info("library detached", zap.String("data_dir", b.dataDir))
	return nil
}

// Close detaches the backend.
func (b *Backend) Close() error {
	return b.Detach()
}

// Register writes entity to SQLite and entities.jsonl, then publishes it to
// readers. If either write fails the catalog is left unchanged.
func (b *Backend) Register(entity types.Entity) error {
	if err := entity.Validate(); err != nil {
		return err
	}
	if entity.LastUpdated.IsZero() {
		entity.LastUpdated = b.now().UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrLibraryDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertEntity(tx, entity); err != nil {
		return fmt.Errorf("persisting entity: %w", err)
	}
	if err := persistEntitiesJSONL(tx, b.dataDir); err != nil {
		return fmt.Errorf("persisting %s: %w", entitiesJSONL, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entity: %w", err)
	}

	b.logger.Debug("entity registered",
		zap.String("id", entity.ID),
		zap.String("category", string(entity.Category)),
		zap.String("version", entity.Version))
	return b.catalog.Register(entity)
}

// Get returns the entity with the given ID.
func (b *Backend) Get(id string) (types.Entity, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Entity{}, false
	}
	return b.catalog.Get(id)
}

// ListByCategory returns the entities in category, in registration order.
func (b *Backend) ListByCategory(category types.Category) []types.Entity {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return []types.Entity{}
	}
	return b.catalog.ListByCategory(category)
}

// Search returns entities whose name or content contains query, ignoring
// case. The empty query returns every entity.
func (b *Backend) Search(query string) []types.Entity {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return []types.Entity{}
	}
	return b.catalog.Search(query)
}

// All returns every entity in registration order.
func (b *Backend) All() []types.Entity {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return []types.Entity{}
	}
	return b.catalog.All()
}

// Len returns the number of entities.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0
	}
	return b.catalog.Len()
}

// CountByCategory returns the number of entities per category, computed by
// the SQLite index.
func (b *Backend) CountByCategory() (map[types.Category]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLibraryDetached
	}
	return countByCategory(b.db)
}
