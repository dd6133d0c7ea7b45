package history

import (
	"fmt"

	"lambda-hq/stlc/pkg/config"
)

// Open returns the store selected by cfg.Backend.
func Open(cfg *config.HistoryConfig) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("history config cannot be nil")
	}

	switch cfg.Backend {
	case "", "sqlite":
		return NewSQLiteStore(&cfg.SQLite)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported history backend %q", cfg.Backend)
	}
}
