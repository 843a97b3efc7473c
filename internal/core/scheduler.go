package core

// scheduler.go runs background maintenance for the result store.
//
// The janitor is long-running and context-aware: it purges expired results
// every interval and stops when the context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// JanitorConfig configures StartResultJanitor.
type JanitorConfig struct {
	Interval time.Duration // How often to purge (default: TTL / 2, at least 1m)
}

// StartResultJanitor purges expired entries of store until ctx is done. It
// blocks; run it in its own goroutine.
func StartResultJanitor(ctx context.Context, store *ResultStore, cfg JanitorConfig) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = store.TTL() / 2
		if interval < time.Minute {
			interval = time.Minute
		}
	}

	slog.Info("result janitor started", "interval", interval.String(), "ttl", store.TTL().String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("result janitor stopped")
			return
		case <-ticker.C:
			runPurge(store)
		}
	}
}

func runPurge(store *ResultStore) {
	start := time.Now()
	purged := store.Purge()
	if purged == 0 {
		return
	}
	slog.Info("purged expired results",
		"entries_purged", purged,
		"entries_left", store.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
