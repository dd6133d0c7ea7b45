package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lambda-hq/stlc/pkg/config"
)

// PruneObserver is notified of every pruning run that removed records.
// *metrics.Collector satisfies it.
type PruneObserver interface {
	RecordPruned(n int64)
}

// Pruner removes records older than the retention period.
type Pruner struct {
	store    Store
	config   *config.RetentionConfig
	observer PruneObserver
	logger   *slog.Logger
}

// NewPruner creates a pruner over store. A nil config keeps the default
// retention of 30 days.
func NewPruner(store Store, cfg *config.RetentionConfig) *Pruner {
	if cfg == nil {
		cfg = &config.RetentionConfig{
			Days:          config.DefaultHistoryRetentionDays,
			PruneSchedule: config.DefaultHistoryPruneSchedule,
		}
	}

	return &Pruner{
		store:  store,
		config: cfg,
		logger: slog.Default().With("component", "history.retention"),
	}
}

// WithObserver sets the observer notified after each pruning run.
func (p *Pruner) WithObserver(o PruneObserver) *Pruner {
	p.observer = o
	return p
}

// WithLogger sets the logger used by the pruner.
func (p *Pruner) WithLogger(logger *slog.Logger) *Pruner {
	p.logger = logger.With("component", "history.retention")
	return p
}

// Cutoff returns the oldest recording time kept when pruning at now.
func (p *Pruner) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -p.config.Days)
}

// Prune deletes every record older than the retention period and returns
// how many were deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.Days <= 0 {
		return 0, fmt.Errorf("retention days must be positive, got %d", p.config.Days)
	}

	cutoff := p.Cutoff(time.Now())

	p.logger.Debug("pruning build history",
		"retention_days", p.config.Days,
		"cutoff", cutoff.Format(time.RFC3339),
	)

	deleted, err := p.store.Delete(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}

	if deleted > 0 {
		p.logger.Info("pruned build history",
			"deleted_count", deleted,
			"retention_days", p.config.Days,
		)
		if p.observer != nil {
			p.observer.RecordPruned(deleted)
		}
	}

	return deleted, nil
}
