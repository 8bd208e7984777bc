// This file implements built-in catalog seeding on backend attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/clausebook/internal/seed"
)

// seedCatalog registers the seed catalog if the entities table is empty
// (first run). Seeding is idempotent: it only runs when entities.jsonl held
// no loadable records on startup. seedFile selects an external catalog; an
// empty path uses the built-in one. Returns the number of entities seeded.
func seedCatalog(db *sql.DB, dataDir, seedFile string, now time.Time) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM entities").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entities: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	entities, err := seed.Load(seedFile)
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entities {
		if e.LastUpdated.IsZero() {
			e.LastUpdated = now
		}
		if err := upsertEntity(tx, e); err != nil {
			return 0, fmt.Errorf("seeding entity %s: %w", e.ID, err)
		}
	}

	if err := persistEntitiesJSONL(tx, dataDir); err != nil {
		return 0, fmt.Errorf("persisting seeded data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", err)
	}
	return len(entities), nil
}
