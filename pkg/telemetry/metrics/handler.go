package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// shutdownTimeout bounds how long Serve waits for in-flight scrapes.
const shutdownTimeout = 5 * time.Second

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
//
// This handler exposes all registered metrics in the standard Prometheus
// exposition format, with OpenMetrics negotiated when the scraper asks for it.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

// Serve exposes the metrics endpoint on the configured listen address and
// path until ctx is cancelled. Each mount may register further handlers on
// the same mux. It returns once the listener is closed.
func (c *Collector) Serve(ctx context.Context, logger *slog.Logger, mounts ...func(*http.ServeMux)) error {
	mux := http.NewServeMux()
	mux.Handle(c.config.Path, c.Handler())
	for _, mount := range mounts {
		mount(mux)
	}

	ln, err := net.Listen("tcp", c.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.config.ListenAddress, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.Info("metrics endpoint listening",
		"address", ln.Addr().String(),
		"path", c.config.Path,
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}
