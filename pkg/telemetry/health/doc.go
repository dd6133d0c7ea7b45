// Package health serves liveness, readiness and version probes for
// long-running stlc commands.
//
// Watch mode mounts the endpoints next to the Prometheus handler:
//
//	checker := health.New(0)
//	checker.Register("watcher", func(ctx context.Context) error { ... })
//	collector.Serve(ctx, logger, func(mux *http.ServeMux) {
//		checker.Mount(mux, health.NewVersionInfo(version, commit, date))
//	})
//
// GET /healthz always answers 200. GET /readyz runs every registered check
// concurrently, each bounded by the checker timeout, and answers 503 with a
// "degraded" report when any check fails.
package health
