package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
)

// janitorLockName guards one sweep across instances
const janitorLockName = "janitor"

// Janitor periodically removes expired sessions.
//
// For multi-instance deployments, configure a DistributedLock so only one
// instance sweeps per cycle.
type Janitor struct {
	sessions driven.SessionStore
	lock     driven.DistributedLock
	logger   *slog.Logger

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	interval time.Duration
	lockTTL  time.Duration
}

// JanitorConfig holds configuration for the janitor.
type JanitorConfig struct {
	Sessions driven.SessionStore
	Lock     driven.DistributedLock // Optional
	Logger   *slog.Logger
	Interval time.Duration // Time between sweeps (default: 1h)
	LockTTL  time.Duration // TTL for the sweep lock (default: 5m)
}

// NewJanitor creates a new janitor.
func NewJanitor(cfg JanitorConfig) *Janitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval == 0 {
		interval = time.Hour
	}

	lockTTL := cfg.LockTTL
	if lockTTL == 0 {
		lockTTL = 5 * time.Minute
	}

	return &Janitor{
		sessions: cfg.Sessions,
		lock:     cfg.Lock,
		logger:   logger,
		interval: interval,
		lockTTL:  lockTTL,
	}
}

// Start begins the sweep loop. It runs until Stop is called or ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.doneCh = make(chan struct{})

	j.logger.Info("janitor starting", "interval", j.interval)
	go j.run(ctx, j.stopCh, j.doneCh)
}

// Stop stops the loop and waits for an in-flight sweep.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	close(j.stopCh)
	done := j.doneCh
	j.running = false
	j.mu.Unlock()

	<-done
	j.logger.Info("janitor stopped")
}

func (j *Janitor) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep removes expired sessions once and returns how many were removed.
// It skips the cycle when another instance holds the lock.
func (j *Janitor) Sweep(ctx context.Context) int {
	if j.lock != nil {
		acquired, err := j.lock.Acquire(ctx, janitorLockName, j.lockTTL)
		if err != nil {
			j.logger.Warn("failed to acquire janitor lock", "error", err)
			return 0
		}
		if !acquired {
			j.logger.Debug("janitor lock held by another instance, skipping cycle")
			return 0
		}
		defer func() {
			if err := j.lock.Release(context.WithoutCancel(ctx), janitorLockName); err != nil {
				j.logger.Warn("failed to release janitor lock", "error", err)
			}
		}()
	}

	removed, err := j.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		j.logger.Error("failed to delete expired sessions", "error", err)
		return 0
	}
	if removed > 0 {
		j.logger.Info("removed expired sessions", "count", removed)
	}
	return removed
}
