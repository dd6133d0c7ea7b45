package history

import (
	"context"
	"testing"
	"time"

	"lambda-hq/stlc/pkg/config"
)

type fakeObserver struct {
	calls []int64
}

func (f *fakeObserver) RecordPruned(n int64) {
	f.calls = append(f.calls, n)
}

func TestPruner_Prune(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	s := NewMemoryStore()
	for _, r := range []*Record{
		record("old-1", "a.lam", OutcomeSuccess, now.AddDate(0, 0, -40)),
		record("old-2", "a.lam", OutcomeFailure, now.AddDate(0, 0, -31)),
		record("recent", "a.lam", OutcomeSuccess, now.AddDate(0, 0, -29)),
		record("new", "a.lam", OutcomeSuccess, now),
	} {
		if err := s.Store(ctx, r); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}

	obs := &fakeObserver{}
	p := NewPruner(s, &config.RetentionConfig{Days: 30}).WithObserver(obs)

	deleted, err := p.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune() = %d, want 2", deleted)
	}

	remaining, _ := s.Query(ctx, nil)
	if !equalStrings(ids(remaining), []string{"new", "recent"}) {
		t.Errorf("remaining = %v, want [new recent]", ids(remaining))
	}

	// A second run deletes nothing and does not notify the observer.
	deleted, err = p.Prune(ctx)
	if err != nil {
		t.Fatalf("second Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("second Prune() = %d, want 0", deleted)
	}

	if len(obs.calls) != 1 || obs.calls[0] != 2 {
		t.Errorf("observer calls = %v, want [2]", obs.calls)
	}
}

func TestPruner_InvalidDays(t *testing.T) {
	p := NewPruner(NewMemoryStore(), &config.RetentionConfig{Days: 0})

	if _, err := p.Prune(context.Background()); err == nil {
		t.Error("Prune() with zero retention days succeeded, want error")
	}
}

func TestPruner_Defaults(t *testing.T) {
	p := NewPruner(NewMemoryStore(), nil)

	now := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	want := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := p.Cutoff(now); !got.Equal(want) {
		t.Errorf("Cutoff() = %v, want %v", got, want)
	}
	if p.config.PruneSchedule != config.DefaultHistoryPruneSchedule {
		t.Errorf("PruneSchedule = %q, want %q", p.config.PruneSchedule, config.DefaultHistoryPruneSchedule)
	}
}
