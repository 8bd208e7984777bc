// This file implements JSONL loading at attach time.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// sqlExecer is satisfied by *sql.DB and *sql.Tx.
type sqlExecer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// loadJSONL reads entities.jsonl from dataDir and inserts its records into
// SQLite in file order. Loading is transactional: all records load or the
// table stays empty. Malformed lines and records that fail validation are
// skipped with a warning; unknown fields are ignored. A later line with the
// same ID overwrites the earlier one in place. Records without a timestamp
// are stamped with now. Returns the number of records loaded.
func loadJSONL(db *sql.DB, dataDir string, now time.Time, logger *zap.Logger) (int, error) {
	path := filepath.Join(dataDir, entitiesJSONL)
	records, err := readJSONL(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", entitiesJSONL, err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for i, rec := range records {
		var r entityJSON
		if err := json.Unmarshal(rec, &r); err != nil {
			logger.Warn("skipping malformed record", zap.Int("line", i+1), zap.Error(err))
			continue
		}
		e, err := r.toEntity()
		if err != nil {
			logger.Warn("skipping invalid entity", zap.Int("line", i+1), zap.String("id", r.ID), zap.Error(err))
			continue
		}
		if e.LastUpdated.IsZero() {
			e.LastUpdated = now
		}
		if err := upsertEntity(tx, e); err != nil {
			return 0, fmt.Errorf("loading entity %q: %w", e.ID, err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// upsertEntity writes e into the entities table.
func upsertEntity(x sqlExecer, e types.Entity) error {
	_, err := x.Exec(upsertEntitySQL,
		e.ID, e.Name, string(e.Category), e.Content, e.Version,
		e.LastUpdated.UTC().Format(timeFormat),
	)
	return err
}
