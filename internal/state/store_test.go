package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_UpdateAccumulates(t *testing.T) {
	var s Store
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Update(FlushResult{Pending: 3, Delivered: 2, Rejected: 1}, at)
	s.Update(FlushResult{Pending: 0, Delivered: 3}, at.Add(time.Minute))

	snap := s.Snapshot()
	if !snap.HasFlushed {
		t.Fatal("HasFlushed = false, want true")
	}
	if snap.OutboxPending != 0 {
		t.Fatalf("OutboxPending = %d, want 0", snap.OutboxPending)
	}
	if snap.Delivered != 5 || snap.Rejected != 1 {
		t.Fatalf("Delivered/Rejected = %d/%d, want 5/1", snap.Delivered, snap.Rejected)
	}
	if !snap.LastFlush.Equal(at.Add(time.Minute)) {
		t.Fatalf("LastFlush = %v, want %v", snap.LastFlush, at.Add(time.Minute))
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestStore_UpdateErrorRecorded(t *testing.T) {
	var s Store

	origErr := errors.New("boom")
	s.Update(FlushResult{Pending: 2, Delivered: 1, Err: origErr}, time.Now())

	snap := s.Snapshot()
	if snap.Delivered != 1 {
		t.Fatalf("Delivered = %d, want 1 even on partial failure", snap.Delivered)
	}
	if snap.OutboxPending != 2 {
		t.Fatalf("OutboxPending = %d, want 2", snap.OutboxPending)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatal("Snapshot error should wrap the original")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_SetPendingIsNotAFlush(t *testing.T) {
	var s Store
	s.SetPending(4)

	snap := s.Snapshot()
	if snap.OutboxPending != 4 {
		t.Fatalf("OutboxPending = %d, want 4", snap.OutboxPending)
	}
	if snap.HasFlushed || !snap.LastFlush.IsZero() {
		t.Fatalf("SetPending should not record a flush: %#v", snap)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store
	now := time.Now()

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("zero store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	for i, wantOffline := range []bool{false, true, true} {
		s.Update(FlushResult{Err: errors.New("fail")}, now)
		snap = s.Snapshot()
		if snap.ConsecutiveFailures != i+1 {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i+1)
		}
		if snap.IsOffline() != wantOffline {
			t.Fatalf("after %d failures IsOffline() = %v, want %v", i+1, snap.IsOffline(), wantOffline)
		}
	}

	// Success resets counter
	s.Update(FlushResult{}, now)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}
