package app

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/five82/capture/internal/contact"
	"github.com/five82/capture/internal/state"
)

const (
	defaultFlushInterval = 30 * time.Second
	maxBackoff           = 5 * time.Minute
)

// Outbox is the part of the contact service the flusher drives.
type Outbox interface {
	Flush(ctx context.Context) (contact.FlushReport, error)
	PendingCount(ctx context.Context) (int, error)
}

// Pinger checks backend reachability when there is nothing to deliver.
type Pinger interface {
	Health(ctx context.Context) error
}

// Flusher periodically redelivers queued contact submissions and records
// each run in the shared store. Failed runs back off exponentially.
type Flusher struct {
	outbox   Outbox
	pinger   Pinger
	store    *state.Store
	clock    clockwork.Clock
	interval time.Duration
	kick     chan struct{}
}

// NewFlusher builds a Flusher. A nil clock uses the real clock and a
// non-positive interval uses the default.
func NewFlusher(outbox Outbox, pinger Pinger, store *state.Store, clock clockwork.Clock, interval time.Duration) *Flusher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	return &Flusher{
		outbox:   outbox,
		pinger:   pinger,
		store:    store,
		clock:    clock,
		interval: interval,
		kick:     make(chan struct{}, 1),
	}
}

// Trigger asks for a flush as soon as possible. It never blocks.
func (f *Flusher) Trigger() {
	select {
	case f.kick <- struct{}{}:
	default:
	}
}

// Run flushes immediately and then on every tick until ctx is cancelled.
// It always returns nil so an errgroup sibling exiting is what ends it.
func (f *Flusher) Run(ctx context.Context) error {
	for {
		f.flushOnce(ctx)

		delay := calculateBackoff(f.store.Snapshot().ConsecutiveFailures, f.interval)
		timer := f.clock.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-f.kick:
			timer.Stop()
		case <-timer.Chan():
		}
	}
}

func (f *Flusher) flushOnce(ctx context.Context) {
	pending, err := f.outbox.PendingCount(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logrus.WithError(err).Warn("count outbox failed")
		}
		return
	}

	var result state.FlushResult
	if pending == 0 {
		if f.pinger != nil {
			result.Err = f.pinger.Health(ctx)
		}
	} else {
		report, ferr := f.outbox.Flush(ctx)
		result = state.FlushResult{Delivered: report.Delivered, Rejected: report.Rejected, Err: ferr}
		result.Pending = pending - report.Delivered - report.Rejected
	}
	if errors.Is(result.Err, context.Canceled) && ctx.Err() != nil {
		return
	}

	if result.Err != nil {
		logrus.WithError(result.Err).WithField("pending", result.Pending).Warn("outbox flush failed")
	} else if result.Delivered > 0 || result.Rejected > 0 {
		logrus.WithFields(logrus.Fields{
			"delivered": result.Delivered,
			"rejected":  result.Rejected,
		}).Info("outbox flushed")
	}
	f.store.Update(result, f.clock.Now())
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	delay := base
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
