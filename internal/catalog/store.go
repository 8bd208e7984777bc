// Package catalog implements the in-memory entity library.
//
// The Store keeps entities in an ordered map: a slice of IDs records first
// registration order and a map holds the current value for each ID. Reads
// take a shared lock and registrations an exclusive one, so a Store is safe
// for concurrent use.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

var _ types.Library = (*Store)(nil)

// Store is an in-memory types.Library.
type Store struct {
	mu      sync.RWMutex
	order   []string                // IDs in first-registration order.
	entries map[string]types.Entity // Current value per ID.

	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store populated with seed. Each seed entity goes through
// Register, so a duplicate ID in seed overwrites the earlier one. Returns
// the first registration error, naming the offending entity.
func New(seed []types.Entity, opts ...Option) (*Store, error) {
	s := &Store{
		entries: make(map[string]types.Entity, len(seed)),
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, e := range seed {
		if err := s.Register(e); err != nil {
			return nil, fmt.Errorf("seeding entity %q: %w", e.ID, err)
		}
	}
	s.logger.Debug("catalog seeded", zap.Int("entities", len(s.order)))
	return s, nil
}

// Register inserts entity or overwrites the entity with the same ID. An
// overwritten entity keeps its original position. A zero LastUpdated is
// stamped with the current time.
func (s *Store) Register(entity types.Entity) error {
	if err := entity.Validate(); err != nil {
		return err
	}
	if entity.LastUpdated.IsZero() {
		entity.LastUpdated = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entity.ID]; exists {
		s.logger.Debug("overwriting entity", zap.String("id", entity.ID))
	} else {
		s.order = append(s.order, entity.ID)
	}
	s.entries[entity.ID] = entity
	return nil
}

// Get returns the entity with the given ID.
func (s *Store) Get(id string) (types.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	return e, ok
}

// ListByCategory returns the entities in category, in registration order.
func (s *Store) ListByCategory(category types.Category) []types.Entity {
	return s.collect(func(e types.Entity) bool {
		return e.Category == category
	})
}

// Search returns entities whose name or content contains query, ignoring
// case, in registration order. The empty query returns every entity.
func (s *Store) Search(query string) []types.Entity {
	return s.collect(func(e types.Entity) bool {
		return e.Matches(query)
	})
}

// All returns every entity in registration order.
func (s *Store) All() []types.Entity {
	return s.collect(func(types.Entity) bool { return true })
}

// Len returns the number of entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// collect returns the entities accepted by keep. The result is never nil.
func (s *Store) collect(keep func(types.Entity) bool) []types.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]types.Entity, 0)
	for _, id := range s.order {
		e := s.entries[id]
		if keep(e) {
			results = append(results, e)
		}
	}
	return results
}
