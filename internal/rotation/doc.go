// Package rotation implements the rotating selection controller behind the
// hero carousel and the testimonial slider.
//
// # Overview
//
// A Controller owns an index over a fixed number of slides. The index moves
// three ways:
//
//   - Auto-advance: a timer steps forward every Interval, wrapping at the end.
//   - Manual navigation: Next, Prev and GoTo.
//   - Gestures: HandleGesture maps a horizontal drag to Prev or Next once it
//     exceeds SwipeThreshold.
//
// The controller knows nothing about rendering. Every change is reported
// through the OnChange callback, including the initial index 0 at
// construction, and the host view reflects it however it likes.
//
// # Timer Semantics
//
// Next, Prev and HandleGesture restart the timer so a user interaction never
// gets followed by an immediate auto-advance. HandleGesture restarts it even
// when the drag was too short to navigate. GoTo leaves the timer alone; hosts
// that treat a jump as user interaction call RestartTimer afterwards.
//
// Pause and Resume cancel and reschedule auto-advance without moving the
// index. Both are idempotent, as is Dispose.
//
// # Edge Cases
//
//   - Zero slides: the controller is inert. OnChange never fires, no timer is
//     scheduled and every operation is a no-op (GoTo reports ErrInvalidIndex).
//   - Out-of-range GoTo: rejected with ErrInvalidIndex; the index is unchanged
//     and OnChange is not called.
//   - After Dispose every operation is a no-op.
//
// # Concurrency
//
// Operations are serialised by a mutex held across the OnChange callback, so
// timer ticks, key presses and gestures are applied one at a time in arrival
// order. Time comes from a clockwork.Clock, which lets tests drive the timer
// with a fake clock.
//
// # Usage Example
//
//	hero := rotation.New(rotation.Options{
//		Name:      "hero",
//		Slides:    len(catalog.Slides),
//		Interval:  rotation.DefaultHeroInterval,
//		AutoStart: true,
//		OnChange:  func(i int) { view.Select(i) },
//	})
//	defer hero.Dispose()
package rotation
