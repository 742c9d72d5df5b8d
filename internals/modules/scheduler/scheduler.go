package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"urlmonitor/internals/modules/monitor"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type URLStore interface {
	ListActive(ctx context.Context) ([]monitor.MonitoredURL, error)
}

type Runner interface {
	CheckNow(ctx context.Context, urlID uuid.UUID) (monitor.URLCheck, error)
}

// Scheduler sweeps active URLs on a fixed tick and checks the ones whose
// interval has elapsed. A tick that is still running when the next one fires
// is not stacked: the new tick is skipped.
type Scheduler struct {
	urls        URLStore
	runner      Runner
	interval    time.Duration
	concurrency int
	logger      *zerolog.Logger

	busy atomic.Bool
}

func NewScheduler(urls URLStore, runner Runner, interval time.Duration, concurrency int, logger *zerolog.Logger) *Scheduler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scheduler{
		urls:        urls,
		runner:      runner,
		interval:    interval,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Int("concurrency", s.concurrency).
		Msg("scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			if !s.busy.CompareAndSwap(false, true) {
				s.logger.Warn().Msg("previous sweep still running, skipping tick")
				continue
			}
			s.sweep(ctx)
			s.busy.Store(false)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	const op string = "scheduler.sweep"

	urls, err := s.urls.ListActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("op", op).Msg("failed to list active urls")
		return
	}

	now := time.Now().UTC()
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	launched := 0
	for i := range urls {
		u := urls[i]
		if !due(u, now) {
			continue
		}

		launched++
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if _, err := s.runner.CheckNow(ctx, u.ID); err != nil {
				s.logger.Error().Err(err).
					Str("op", op).
					Str("url_id", u.ID.String()).
					Str("url", u.URL).
					Msg("scheduled check failed")
			}
		}()
	}
	wg.Wait()

	if launched > 0 {
		s.logger.Debug().
			Int("due", launched).
			Int("active", len(urls)).
			Msg("sweep finished")
	}
}

// due reports whether the URL's check interval has elapsed. A URL that was
// never checked is always due.
func due(u monitor.MonitoredURL, now time.Time) bool {
	if u.LastCheck == nil {
		return true
	}
	interval := u.CheckInterval
	if interval <= 0 {
		interval = monitor.DefaultCheckInterval
	}
	return now.Sub(*u.LastCheck) >= time.Duration(interval)*time.Second
}
