package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetwatch/internal/logger"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run evaluation on the configured interval",
	Long: `Runs the scheduler in the foreground. Each pass and its outcome are kept
in the task history. With --metrics-addr, Prometheus metrics are served on
/metrics at that address. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

var metricsAddr string

func init() {
	scheduleCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve /metrics on this address (e.g. :9108)")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}
	if !schedulerConfig.Enabled {
		return errors.New("scheduler is disabled")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		addr, shutdown, err := serveMetrics(metricsAddr)
		if err != nil {
			return err
		}
		defer shutdown()
		cmd.Printf("Serving metrics on http://%s/metrics\n", addr)
	}

	cmd.Println("Scheduler running. Press Ctrl+C to stop.")

	errCh := make(chan error, 1)
	go func() {
		errCh <- scheduler.Start(ctx)
	}()

	var runErr error
	select {
	case runErr = <-errCh:
		_ = scheduler.Stop()
	case <-ctx.Done():
		if err := scheduler.Stop(); err != nil {
			return fmt.Errorf("stop scheduler: %w", err)
		}
		runErr = <-errCh
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	cmd.Println("Scheduler stopped.")
	return nil
}

// serveMetrics starts the metrics endpoint and returns the bound address
// and a shutdown func.
func serveMetrics(addr string) (string, func(), error) {
	if metricsHandler == nil {
		return "", nil, errors.New("metrics not configured")
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server: %v", err)
		}
	}()

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
