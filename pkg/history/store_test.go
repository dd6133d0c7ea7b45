package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lambda-hq/stlc/pkg/config"
)

// storeFactories lists every Store implementation so each test runs
// against all of them.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"sqlite": func() Store {
			s, err := NewSQLiteStore(&config.SQLiteConfig{
				Path:        filepath.Join(t.TempDir(), "nested", "history.db"),
				BusyTimeout: time.Second,
			})
			if err != nil {
				t.Fatalf("NewSQLiteStore() error = %v", err)
			}
			return s
		},
	}
}

func record(id, source, outcome string, at time.Time) *Record {
	r := &Record{
		ID:         id,
		Source:     source,
		Digest:     "d-" + id,
		Outcome:    outcome,
		Nodes:      1,
		Duration:   time.Millisecond,
		RecordedAt: at,
	}
	if outcome == OutcomeFailure {
		r.ErrorKind = "syntax"
		r.Message = "unexpected token"
		r.Nodes = 0
	} else {
		r.Expr = "0"
	}
	return r
}

func seed(t *testing.T, s Store, base time.Time) {
	t.Helper()
	ctx := context.Background()
	records := []*Record{
		record("1", "a.lam", OutcomeSuccess, base.Add(-72*time.Hour)),
		record("2", "a.lam", OutcomeFailure, base.Add(-48*time.Hour)),
		record("3", "b.lam", OutcomeSuccess, base.Add(-24*time.Hour)),
		record("4", "a.lam", OutcomeSuccess, base),
	}
	for _, r := range records {
		if err := s.Store(ctx, r); err != nil {
			t.Fatalf("Store(%s) error = %v", r.ID, err)
		}
	}
}

func ids(records []*Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStore_Query(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	since := base.Add(-50 * time.Hour)
	until := base.Add(-time.Hour)

	tests := []struct {
		name  string
		query *Query
		want  []string
	}{
		{"nil query returns everything newest first", nil, []string{"4", "3", "2", "1"}},
		{"by source", &Query{Source: "a.lam"}, []string{"4", "2", "1"}},
		{"by outcome", &Query{Outcome: OutcomeFailure}, []string{"2"}},
		{"since", &Query{Since: &since}, []string{"4", "3", "2"}},
		{"until", &Query{Until: &until}, []string{"3", "2", "1"}},
		{"window", &Query{Since: &since, Until: &until}, []string{"3", "2"}},
		{"limit", &Query{Limit: 2}, []string{"4", "3"}},
		{"no match", &Query{Source: "missing.lam"}, []string{}},
	}

	for backend, newStore := range storeFactories(t) {
		t.Run(backend, func(t *testing.T) {
			s := newStore()
			defer s.Close()
			seed(t, s, base)

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.Query(context.Background(), tt.query)
					if err != nil {
						t.Fatalf("Query() error = %v", err)
					}
					if !equalStrings(ids(got), tt.want) {
						t.Errorf("Query() ids = %v, want %v", ids(got), tt.want)
					}
				})
			}
		})
	}
}

func TestStore_RoundTripFields(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC)

	for backend, newStore := range storeFactories(t) {
		t.Run(backend, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			want := record("f", "f.lam", OutcomeFailure, at)
			if err := s.Store(context.Background(), want); err != nil {
				t.Fatalf("Store() error = %v", err)
			}

			got, err := s.Query(context.Background(), &Query{})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Query() returned %d records, want 1", len(got))
			}
			stored := *got[0]
			if !stored.RecordedAt.Equal(want.RecordedAt) {
				t.Errorf("RecordedAt = %v, want %v", stored.RecordedAt, want.RecordedAt)
			}
			stored.RecordedAt = want.RecordedAt
			if stored != *want {
				t.Errorf("stored record = %+v, want %+v", stored, *want)
			}
		})
	}
}

func TestStore_QueryReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	r := record("1", "a.lam", OutcomeSuccess, time.Now())
	if err := s.Store(context.Background(), r); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	r.Source = "mutated"

	got, _ := s.Query(context.Background(), nil)
	got[0].Expr = "mutated"

	again, _ := s.Query(context.Background(), nil)
	if again[0].Source != "a.lam" || again[0].Expr != "0" {
		t.Errorf("store shares memory with callers: %+v", again[0])
	}
}

func TestStore_Count(t *testing.T) {
	base := time.Now().UTC()

	for backend, newStore := range storeFactories(t) {
		t.Run(backend, func(t *testing.T) {
			s := newStore()
			defer s.Close()
			seed(t, s, base)

			total, err := s.Count(context.Background(), nil)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if total != 4 {
				t.Errorf("Count(nil) = %d, want 4", total)
			}

			// Limit does not apply to counts.
			n, err := s.Count(context.Background(), &Query{Source: "a.lam", Limit: 1})
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if n != 3 {
				t.Errorf("Count(a.lam) = %d, want 3", n)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for backend, newStore := range storeFactories(t) {
		t.Run(backend, func(t *testing.T) {
			s := newStore()
			defer s.Close()
			seed(t, s, base)

			deleted, err := s.Delete(context.Background(), base.Add(-36*time.Hour))
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if deleted != 2 {
				t.Errorf("Delete() = %d, want 2", deleted)
			}

			got, _ := s.Query(context.Background(), nil)
			if !equalStrings(ids(got), []string{"4", "3"}) {
				t.Errorf("remaining ids = %v, want [4 3]", ids(got))
			}

			deleted, err = s.Delete(context.Background(), base.Add(-36*time.Hour))
			if err != nil {
				t.Fatalf("second Delete() error = %v", err)
			}
			if deleted != 0 {
				t.Errorf("second Delete() = %d, want 0", deleted)
			}
		})
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	cfg := &config.SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "history.db"),
		BusyTimeout: time.Second,
	}

	s, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := s.Store(context.Background(), record("1", "a.lam", OutcomeSuccess, time.Now())); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	n, err := s.Count(context.Background(), nil)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() after reopen = %d, want 1", n)
	}
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStore(&config.SQLiteConfig{}); err == nil {
		t.Error("NewSQLiteStore() with empty path succeeded, want error")
	}
	if _, err := NewSQLiteStore(nil); err == nil {
		t.Error("NewSQLiteStore(nil) succeeded, want error")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      *config.HistoryConfig
		wantType string
		wantErr  bool
	}{
		{
			name:     "memory",
			cfg:      &config.HistoryConfig{Backend: "memory"},
			wantType: "*history.MemoryStore",
		},
		{
			name: "sqlite",
			cfg: &config.HistoryConfig{
				Backend: "sqlite",
				SQLite:  config.SQLiteConfig{Path: filepath.Join(dir, "h.db"), BusyTimeout: time.Second},
			},
			wantType: "*history.SQLiteStore",
		},
		{
			name:    "unknown backend",
			cfg:     &config.HistoryConfig{Backend: "postgres"},
			wantErr: true,
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer s.Close()

			if got := typeName(s); got != tt.wantType {
				t.Errorf("Open() type = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func typeName(s Store) string {
	switch s.(type) {
	case *MemoryStore:
		return "*history.MemoryStore"
	case *SQLiteStore:
		return "*history.SQLiteStore"
	default:
		return "unknown"
	}
}
