// JSON record structure for the entities.jsonl data file.
package sqlite

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// timeFormat is the timestamp layout used in JSONL and SQLite columns.
const timeFormat = time.RFC3339Nano

// entityJSON represents an entity in entities.jsonl. Category is kept as a
// plain string so a bad value is reported per line instead of failing the
// whole decode.
type entityJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	Version     string `json:"version"`
	LastUpdated string `json:"last_updated"`
}

// newEntityJSON converts an entity into its file record.
func newEntityJSON(e types.Entity) entityJSON {
	return entityJSON{
		ID:          e.ID,
		Name:        e.Name,
		Category:    string(e.Category),
		Content:     e.Content,
		Version:     e.Version,
		LastUpdated: e.LastUpdated.UTC().Format(timeFormat),
	}
}

// toEntity converts a file record into a validated entity.
func (r entityJSON) toEntity() (types.Entity, error) {
	category, err := types.ParseCategory(r.Category)
	if err != nil {
		return types.Entity{}, err
	}
	var updated time.Time
	if r.LastUpdated != "" {
		updated, err = time.Parse(timeFormat, r.LastUpdated)
		if err != nil {
			return types.Entity{}, fmt.Errorf("parsing last_updated: %w", err)
		}
	}
	e := types.Entity{
		ID:          r.ID,
		Name:        r.Name,
		Category:    category,
		Content:     r.Content,
		Version:     r.Version,
		LastUpdated: updated,
	}
	if err := e.Validate(); err != nil {
		return types.Entity{}, err
	}
	return e, nil
}
