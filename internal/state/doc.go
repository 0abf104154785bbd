// Package state provides thread-safe state shared between the outbox flusher
// and the UI.
//
// # Overview
//
// The flusher goroutine writes the result of every outbox run into a Store;
// the UI reads a Snapshot on each status tick to render the header badge
// ("2 queued", "offline", last flush time).
//
//	Producer (flusher):            Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ contact.Flush  │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	└────────────────┘  (mutex)   └─────────────────┘
//
// # Update Semantics
//
// Update always records the pending count and the flush time. Delivered
// and Rejected accumulate across runs. A non-nil error increments
// ConsecutiveFailures; a clean run resets it. SetPending adjusts the count
// after a submission is queued outside a flush.
//
// # Offline Detection
//
// IsOffline reports true after two consecutive failed flushes. The flusher
// uses the same counter to back off.
//
// The zero Store is ready to use.
package state
