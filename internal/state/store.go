package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest outbox state available to the UI.
type Snapshot struct {
	OutboxPending       int
	HasFlushed          bool
	Delivered           int // total delivered since startup
	Rejected            int // total dropped as invalid since startup
	LastFlush           time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive flush failures
}

// IsOffline returns true when the backend has been unreachable for multiple
// flush attempts.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// FlushResult is the outcome of one outbox flush.
type FlushResult struct {
	Pending   int
	Delivered int
	Rejected  int
	Err       error
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a flush. Delivery counts accumulate even when err is
// non-nil, since a run can deliver some entries before failing.
func (s *Store) Update(r FlushResult, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.OutboxPending = r.Pending
	s.snapshot.Delivered += r.Delivered
	s.snapshot.Rejected += r.Rejected
	s.snapshot.LastFlush = at
	s.snapshot.HasFlushed = true

	if r.Err != nil {
		s.snapshot.LastError = r.Err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetPending updates the outbox size without counting as a flush, e.g.
// after a submission was queued.
func (s *Store) SetPending(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.OutboxPending = n
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
