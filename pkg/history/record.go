package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lambda-hq/stlc/pkg/stlc/ast"
	"lambda-hq/stlc/pkg/stlc/errors"
)

// Outcome values stored in Record.Outcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Record is one build recorded by the stlc command.
type Record struct {
	// Unique identifier (UUID)
	ID string `json:"id"`

	// Source path, or "<repl>" / "<stdin>" for unnamed input
	Source string `json:"source"`

	// SHA-256 of the input bytes, hex encoded
	Digest string `json:"digest"`

	// Build outcome
	Outcome   string `json:"outcome"`
	ErrorKind string `json:"error_kind,omitempty"`
	Message   string `json:"message,omitempty"`

	// Rendered expression of a successful build
	Expr  string `json:"expr,omitempty"`
	Nodes int    `json:"nodes"`

	Duration   time.Duration `json:"duration"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// NewRecord creates a record for one build of data. Exactly one of root and
// err is expected to be set.
func NewRecord(source string, data []byte, root ast.Node, err error, duration time.Duration) *Record {
	sum := sha256.Sum256(data)
	r := &Record{
		ID:         uuid.New().String(),
		Source:     source,
		Digest:     hex.EncodeToString(sum[:]),
		Duration:   duration,
		RecordedAt: time.Now().UTC(),
	}

	if err != nil {
		r.Outcome = OutcomeFailure
		r.ErrorKind = string(errors.KindOf(err))
		r.Message = err.Error()
		return r
	}

	r.Outcome = OutcomeSuccess
	if root != nil {
		r.Expr = ast.Format(root)
		r.Nodes = ast.Count(root)
	}
	return r
}

// Query filters records. Zero values match everything.
type Query struct {
	Source  string
	Outcome string
	Since   *time.Time
	Until   *time.Time

	// Limit caps the number of records returned (0 means no limit).
	Limit int
}

// matches reports whether r passes every filter of q.
func (q *Query) matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.Source != "" && r.Source != q.Source {
		return false
	}
	if q.Outcome != "" && r.Outcome != q.Outcome {
		return false
	}
	if q.Since != nil && r.RecordedAt.Before(*q.Since) {
		return false
	}
	if q.Until != nil && r.RecordedAt.After(*q.Until) {
		return false
	}
	return true
}

// Store persists build records.
type Store interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query returns matching records, newest first.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of matching records, ignoring Limit.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records recorded before the cutoff and returns how
	// many were removed.
	Delete(ctx context.Context, before time.Time) (int64, error)

	// Close releases the store's resources.
	Close() error
}

// StorageError is returned when a store operation fails.
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("history storage error [backend=%s, operation=%s]: %v",
		e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new storage error.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}
