// Package insert composes catalog lookups and placeholder resolution with a
// document inserter.
package insert

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// Result reports what Insert wrote and which placeholders were left in it.
type Result struct {
	Range      types.InsertedRange `json:"range"`
	Unresolved []string            `json:"unresolved"`
}

// Composer resolves catalog entities and hands the text to an Inserter.
type Composer struct {
	lib      types.Library
	inserter types.Inserter
	logger   *zap.Logger
}

// NewComposer returns a Composer reading from lib and writing through
// inserter. A nil logger disables logging.
func NewComposer(lib types.Library, inserter types.Inserter, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{lib: lib, inserter: inserter, logger: logger}
}

// Insert looks up id, resolves its placeholders with values, and inserts the
// result at location. Returns ErrNotFound for an unknown id and
// ErrInvalidLocation for an unknown location; neither reaches the inserter.
// Inserter failures are wrapped and returned without retry.
func (c *Composer) Insert(ctx context.Context, id string, values map[string]string, location types.InsertLocation) (Result, error) {
	if !location.Valid() {
		return Result{}, fmt.Errorf("%w: %q", types.ErrInvalidLocation, location)
	}
	entity, ok := c.lib.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", types.ErrNotFound, id)
	}

	text := types.ResolvePlaceholders(entity, values)
	unresolved := types.Unresolved(text)

	r, err := c.inserter.InsertText(ctx, text, location)
	if err != nil {
		return Result{}, fmt.Errorf("inserting %s: %w", id, err)
	}

	c.logger.Debug("entity inserted",
		zap.String("id", id),
		zap.String("location", string(location)),
		zap.Int("start", r.Start),
		zap.Int("end", r.End),
		zap.Strings("unresolved", unresolved))
	return Result{Range: r, Unresolved: unresolved}, nil
}
