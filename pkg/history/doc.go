// Package history records the builds run by the stlc command and prunes
// them on a retention schedule.
//
// Two stores implement the Store interface. SQLiteStore keeps records in a
// SQLite file through the pure Go modernc.org/sqlite driver, and MemoryStore
// keeps them in process memory for the REPL and tests. Open selects one from
// the history section of the configuration.
//
// # Retention
//
// A Pruner deletes records older than retention.days. A Scheduler runs the
// pruner on the retention.prune_schedule cron expression while the command
// is in watch mode:
//
//	store, err := history.Open(&cfg.History)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	pruner := history.NewPruner(store, &cfg.History.Retention).WithObserver(collector)
//	scheduler := history.NewScheduler(pruner)
//	if err := scheduler.Start(ctx); err != nil {
//		return err
//	}
package history
