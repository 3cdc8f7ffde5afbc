package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/fleetwatch/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-evaluate whenever the snapshot file changes",
	Long: `Runs an evaluation pass immediately, then again each time the snapshot
file is written or replaced. Bursts of changes are collapsed and passes are
spaced at least --min-interval apart. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchMinInterval time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchMinInterval, "min-interval", 2*time.Second,
		"Minimum time between evaluation passes")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if evaluator == nil {
		return errors.New("evaluation service not configured")
	}
	if snapshotPath == "" {
		return errors.New("no snapshot path configured (set snapshot.path or --snapshot)")
	}

	path, err := filepath.Abs(snapshotPath)
	if err != nil {
		return fmt.Errorf("resolve snapshot path: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s\n", path)
	return watchSnapshot(ctx, cmd.OutOrStdout(), path, watchMinInterval)
}

// watchSnapshot blocks until ctx is done. The parent directory is watched
// rather than the file so editors that save by rename are still seen.
func watchSnapshot(ctx context.Context, out io.Writer, path string, minInterval time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(minInterval), 1)

	// Capacity 1: a pending pass absorbs further events until it starts.
	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-trigger:
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				if err := evaluateOnce(ctx, out); err != nil {
					logger.Warn("evaluation failed: %v", err)
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			<-done
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				cancel()
				<-done
				return nil
			}
			if !isSnapshotEvent(event, path) {
				continue
			}
			logger.Debug("snapshot changed: %s", event)
			select {
			case trigger <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				cancel()
				<-done
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

func isSnapshotEvent(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
