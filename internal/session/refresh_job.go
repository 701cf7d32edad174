// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-desk/internal/logger"
)

var timeNow = time.Now

// Refresher is the part of Provider the refresh job drives.
type Refresher interface {
	Current() Identity
	Refresh(ctx context.Context) (Identity, error)
}

// RefreshJob rotates the access token ahead of its expiry.
type RefreshJob struct {
	provider Refresher
	interval time.Duration
	skew     time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a job that checks the session every interval and
// refreshes it once it expires within skew. The job is idle until Start is
// called. A non-positive interval defaults to 30 seconds and a non-positive
// skew to 2 minutes.
func NewRefreshJob(provider Refresher, interval, skew time.Duration, log *logger.Logger) *RefreshJob {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if skew <= 0 {
		skew = 2 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RefreshJob{
		provider: provider,
		interval: interval,
		skew:     skew,
		log:      log.WithComponent("refresh_job"),
	}
}

// Start stops any previously running job, then launches a background
// goroutine that exits when ctx is cancelled or Stop is called.
func (j *RefreshJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *RefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *RefreshJob) tick(ctx context.Context) {
	current := j.provider.Current()
	if current.IsZero() || !current.Session.ExpiresWithin(j.skew, timeNow()) {
		return
	}

	if _, err := j.provider.Refresh(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		j.log.Warn().Err(err).Str("func", "RefreshJob.tick").Msg("token refresh failed")
		return
	}
	j.log.Debug().Str("func", "RefreshJob.tick").Msg("access token rotated")
}
