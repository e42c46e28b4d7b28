package uploader

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPartialMaxAge is how old a partial file must be before the sweeper removes it
const DefaultPartialMaxAge = time.Hour

// PartialMaxAge returns the sweep age for partial files given the upload
// timeout. It is at least twice the timeout so in-flight uploads survive.
func PartialMaxAge(uploadTimeout time.Duration) time.Duration {
	return max(DefaultPartialMaxAge, 2*uploadTimeout)
}

// SweepWorker periodically removes partial files left behind by crashed
// uploads. Finished uploads are never touched.
type SweepWorker struct {
	pipeline *Pipeline
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
	done     chan struct{}
	stopped  chan struct{}
	ticker   *time.Ticker
}

func NewSweepWorker(pipeline *Pipeline, interval, maxAge time.Duration) *SweepWorker {
	return &SweepWorker{
		pipeline: pipeline,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	// Perform initial sweep
	w.Sweep()

	w.ticker = time.NewTicker(w.interval)
	go w.run(ctx)

	log.Info().
		Dur("interval", w.interval).
		Dur("max_age", w.maxAge).
		Msg("started partial upload sweeper")
}

// Stop halts the worker and waits for a running sweep to finish
func (w *SweepWorker) Stop() {
	if w.ticker == nil {
		return
	}
	w.ticker.Stop()
	close(w.done)
	<-w.stopped
	log.Info().Msg("partial upload sweeper stopped")
}

// Sweep removes stale partial files once and returns how many were removed
func (w *SweepWorker) Sweep() int {
	dir := w.pipeline.resolver.Dir()
	removed, err := w.pipeline.store.RemovePartials(dir, w.now().Add(-w.maxAge))
	if err != nil {
		// Nothing to sweep before the first upload created the directory.
		if !errors.Is(err, os.ErrNotExist) {
			log.Error().
				Err(err).
				Str("dir", dir).
				Msg("error sweeping partial uploads")
		}
		return 0
	}

	if removed > 0 {
		partialsRemovedTotal.Add(float64(removed))
		log.Info().
			Int("removed", removed).
			Msg("removed stale partial uploads")
	}
	return removed
}

func (w *SweepWorker) run(ctx context.Context) {
	defer close(w.stopped)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("context cancelled, sweeper shutting down")
			return
		case <-w.done:
			return
		case <-w.ticker.C:
			w.Sweep()
		}
	}
}
