package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"lambda-hq/stlc/pkg/config"
)

const backendSQLite = "sqlite"

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	config *config.SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at cfg.Path and
// applies the schema.
func NewSQLiteStore(cfg *config.SQLiteConfig) (*SQLiteStore, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, NewStorageError(backendSQLite, "open", fmt.Errorf("database path cannot be empty"))
	}

	logger := slog.Default().With("component", "history.sqlite")

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError(backendSQLite, "create_dir", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, NewStorageError(backendSQLite, "open", err)
	}

	// SQLite supports a single writer; one connection also keeps the
	// PRAGMAs below in effect for every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		config: cfg,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("history store opened", "path", cfg.Path)

	return s, nil
}

// initialize enables WAL mode, sets the busy timeout and creates the schema.
func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return NewStorageError(backendSQLite, "enable_wal", err)
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError(backendSQLite, "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError(backendSQLite, "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError(backendSQLite, "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return NewStorageError(backendSQLite, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError(backendSQLite, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a record.
func (s *SQLiteStore) Store(ctx context.Context, record *Record) error {
	_, err := s.db.ExecContext(ctx, insertBuild,
		record.ID, record.Source, record.Digest,
		record.Outcome, nullString(record.ErrorKind), nullString(record.Message),
		nullString(record.Expr), record.Nodes,
		int64(record.Duration), record.RecordedAt.UnixNano(),
	)
	if err != nil {
		return NewStorageError(backendSQLite, "store", err)
	}
	return nil
}

// Query returns matching records, newest first.
func (s *SQLiteStore) Query(ctx context.Context, query *Query) ([]*Record, error) {
	where, args := buildWhereClause(query)

	sqlQuery := selectBuilds
	if where != "" {
		sqlQuery += " WHERE " + where
	}
	sqlQuery += " ORDER BY recorded_at DESC, rowid DESC"
	if query != nil && query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, NewStorageError(backendSQLite, "query", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError(backendSQLite, "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(backendSQLite, "query", err)
	}

	return records, nil
}

// Count returns the number of matching records.
func (s *SQLiteStore) Count(ctx context.Context, query *Query) (int64, error) {
	where, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM builds"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, NewStorageError(backendSQLite, "count", err)
	}
	return count, nil
}

// Delete removes records recorded before the cutoff.
func (s *SQLiteStore) Delete(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM builds WHERE recorded_at < ?", before.UnixNano())
	if err != nil {
		return 0, NewStorageError(backendSQLite, "delete", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError(backendSQLite, "delete", err)
	}
	return deleted, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError(backendSQLite, "close", err)
	}
	return nil
}

// buildWhereClause turns the query filters into a WHERE clause and its
// positional arguments.
func buildWhereClause(query *Query) (string, []any) {
	if query == nil {
		return "", nil
	}

	var conditions []string
	var args []any

	if query.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, query.Source)
	}
	if query.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, query.Outcome)
	}
	if query.Since != nil {
		conditions = append(conditions, "recorded_at >= ?")
		args = append(args, query.Since.UnixNano())
	}
	if query.Until != nil {
		conditions = append(conditions, "recorded_at <= ?")
		args = append(args, query.Until.UnixNano())
	}

	return strings.Join(conditions, " AND "), args
}

func scanRecord(rows *sql.Rows) (*Record, error) {
	var (
		r                        Record
		errorKind, message, expr sql.NullString
		durationNs, recordedAtNs int64
	)

	err := rows.Scan(
		&r.ID, &r.Source, &r.Digest,
		&r.Outcome, &errorKind, &message,
		&expr, &r.Nodes,
		&durationNs, &recordedAtNs,
	)
	if err != nil {
		return nil, err
	}

	r.ErrorKind = errorKind.String
	r.Message = message.String
	r.Expr = expr.String
	r.Duration = time.Duration(durationNs)
	r.RecordedAt = time.Unix(0, recordedAtNs).UTC()

	return &r, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
