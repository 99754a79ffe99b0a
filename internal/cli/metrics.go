package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/metrics"
)

var (
	flagListen   string
	flagInterval time.Duration
)

func newMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Serve prayer times as Prometheus metrics",
		Long:  "Run an HTTP server exposing today's prayer times and the time until the next one at /metrics.",
		Args:  cobra.NoArgs,
		RunE:  runMetrics,
	}

	cmd.Flags().StringVar(&flagListen, "listen", ":9464", "The address to listen on for HTTP requests")
	cmd.Flags().DurationVar(&flagInterval, "interval", time.Minute, "How often to recalculate the schedule")

	return cmd
}

func runMetrics(cmd *cobra.Command, args []string) error {
	if flagInterval <= 0 {
		return fmt.Errorf("invalid --interval %s: must be positive", flagInterval)
	}

	cfg := effectiveConfig(cmd)
	s, err := newSession(cfg, time.Now())
	if err != nil {
		return err
	}

	exporter := metrics.New(s.strategy, s.location.Geo,
		metrics.WithEvents(s.events),
		metrics.WithLogger(logger),
		metrics.WithClock(func() time.Time { return s.localTime(time.Now()) }),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go exporter.Run(ctx, flagInterval)

	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter.Handler())
	srv := &http.Server{
		Addr:              flagListen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on http://%s/metrics\n", s.location.label(), flagListen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
