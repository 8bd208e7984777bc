package types

import "errors"

// Library is a catalog of reusable entities, queryable by ID, category, or
// free text. Iteration order is always registration order: an entity keeps
// the position of its first registration when it is overwritten.
type Library interface {
	// Register inserts the entity, or overwrites the entity with the same ID.
	// Returns ErrInvalidID or ErrInvalidCategory when the entity is rejected;
	// a rejected entity leaves the catalog unchanged.
	Register(entity Entity) error

	// Get returns the entity with the given ID. The boolean is false when no
	// such entity exists; absence is not an error.
	Get(id string) (Entity, bool)

	// ListByCategory returns every entity in the category.
	ListByCategory(category Category) []Entity

	// Search returns entities whose name or content contains query, ignoring
	// case. An empty query returns every entity.
	Search(query string) []Entity

	// All returns every entity.
	All() []Entity

	// Len returns the number of entities in the catalog.
	Len() int
}

// Entity and library errors.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidCategory = errors.New("invalid category")
)

// Library lifecycle errors.
var (
	ErrLibraryDetached = errors.New("library is detached")
	ErrAlreadyAttached = errors.New("library is already attached")
)
