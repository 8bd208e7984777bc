package sqlite

// Schema DDL. seq records first-registration order; an upsert on entity_id
// leaves it untouched so overwritten entities keep their position.
const (
	createEntities = `CREATE TABLE entities (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    entity_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    content TEXT NOT NULL,
    version TEXT NOT NULL,
    last_updated TEXT NOT NULL
);`

	idxEntitiesCategory = `CREATE INDEX idx_entities_category ON entities(category);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createEntities,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntitiesCategory,
}

// Entity column list shared by selects and upserts.
const entityColumns = "entity_id, name, category, content, version, last_updated"

// upsertEntitySQL inserts an entity or overwrites the row with the same
// entity_id in place.
const upsertEntitySQL = `INSERT INTO entities (` + entityColumns + `) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(entity_id) DO UPDATE SET
    name = excluded.name,
    category = excluded.category,
    content = excluded.content,
    version = excluded.version,
    last_updated = excluded.last_updated`

// selectEntitiesSQL returns every entity in registration order.
const selectEntitiesSQL = `SELECT ` + entityColumns + ` FROM entities ORDER BY seq ASC`
