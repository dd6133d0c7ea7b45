package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements that create the history database.
// Times are stored as Unix nanoseconds so range filters compare integers.
const Schema = `
CREATE TABLE IF NOT EXISTS builds (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    digest TEXT NOT NULL,

    outcome TEXT NOT NULL,
    error_kind TEXT,
    message TEXT,

    expr TEXT,
    nodes INTEGER NOT NULL DEFAULT 0,

    duration_ns INTEGER NOT NULL,
    recorded_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_builds_recorded_at ON builds(recorded_at);
CREATE INDEX IF NOT EXISTS idx_builds_source ON builds(source);
CREATE INDEX IF NOT EXISTS idx_builds_outcome ON builds(outcome);
`

// InsertSchemaVersion records the schema version once.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion returns the newest applied schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertBuild = `
INSERT INTO builds (
    id, source, digest, outcome, error_kind, message, expr, nodes, duration_ns, recorded_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectBuilds = `
SELECT id, source, digest, outcome, error_kind, message, expr, nodes, duration_ns, recorded_at
FROM builds
`
