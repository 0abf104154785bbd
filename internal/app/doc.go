// Package app is the composition root for capture.
//
// # Overview
//
// Open loads configuration and preferences, configures logging, loads the
// content catalog, opens the SQLite store and builds the backend client and
// contact service. The CLI subcommands use an Env directly; Run adds the
// outbox flusher and the TUI on top.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> Open()           config, prefs, logging, content, storage, client
//	       ├─────> Flusher.Run()    errgroup goroutine
//	       └─────> ui.Run()         errgroup goroutine, blocks until quit
//
// Quitting the TUI cancels the shared context, which stops the flusher;
// g.Wait() then returns the TUI's error, if any.
//
// # Outbox Flushing
//
// The flusher wakes on a clockwork timer. When submissions are queued it
// calls contact.Service.Flush; when the outbox is empty it pings the
// backend instead so the header can still show an offline badge. Each
// run is written to state.Store.
//
// The UI calls Flusher.Trigger after a submission lands in the outbox,
// which runs a flush without waiting for the timer.
//
// # Backoff
//
// After a failed run the next delay is base × 2^failures, capped at
// five minutes. With the default 30 second interval:
//
//	failures: 0    1    2    3    4+
//	delay:    30s  1m   2m   4m   5m
//
// The counter resets on the first clean run.
package app
