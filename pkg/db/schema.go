package db

// migrations[i] moves the schema from version i to version i+1.
var migrations = []string{
	// 1: version bookkeeping and the key/value slots holding the serialized
	// mood, journal and game progress.
	`
CREATE TABLE IF NOT EXISTS schema_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    updated_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS slots (
    key VARCHAR(128) PRIMARY KEY,
    value TEXT NOT NULL,
    created_at REAL DEFAULT (unixepoch()),
    updated_at REAL DEFAULT (unixepoch())
);
`,
}

// SchemaVersion is the version Migrate brings a database to.
var SchemaVersion = int64(len(migrations))

const component = "slots"
