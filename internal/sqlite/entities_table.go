// This file implements queries over the entities table and its JSONL
// persistence.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// sqlQueryer is satisfied by *sql.DB and *sql.Tx.
type sqlQueryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// queryEntities returns every entity in registration order.
func queryEntities(q sqlQueryer) ([]types.Entity, error) {
	rows, err := q.Query(selectEntitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	entities := make([]types.Entity, 0)
	for rows.Next() {
		e, err := hydrateEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating entity: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	return entities, nil
}

// hydrateEntity converts the current row into a types.Entity.
func hydrateEntity(rows *sql.Rows) (types.Entity, error) {
	var (
		e        types.Entity
		category string
		updated  string
	)
	if err := rows.Scan(&e.ID, &e.Name, &category, &e.Content, &e.Version, &updated); err != nil {
		return types.Entity{}, err
	}
	e.Category = types.Category(category)
	t, err := time.Parse(timeFormat, updated)
	if err != nil {
		return types.Entity{}, fmt.Errorf("parsing last_updated for %s: %w", e.ID, err)
	}
	e.LastUpdated = t
	return e, nil
}

// persistEntitiesJSONL reads all entities through q and writes them to
// entities.jsonl in registration order using the atomic write pattern.
// Passing the open transaction makes the file reflect uncommitted writes,
// so the caller can roll back if the file cannot be written.
func persistEntitiesJSONL(q sqlQueryer, dataDir string) error {
	entities, err := queryEntities(q)
	if err != nil {
		return err
	}

	records := make([]json.RawMessage, 0, len(entities))
	for _, e := range entities {
		data, err := json.Marshal(newEntityJSON(e))
		if err != nil {
			return fmt.Errorf("marshaling entity %s for JSONL: %w", e.ID, err)
		}
		records = append(records, data)
	}
	return writeJSONL(filepath.Join(dataDir, entitiesJSONL), records)
}

// countByCategory returns the number of entities per category. Categories
// without entities are reported as zero.
func countByCategory(q sqlQueryer) (map[types.Category]int, error) {
	rows, err := q.Query("SELECT category, COUNT(*) FROM entities GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("counting entities by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Category]int, len(types.Categories()))
	for _, c := range types.Categories() {
		counts[c] = 0
	}
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		counts[types.Category(category)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}
	return counts, nil
}
