package rotation

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// ErrInvalidIndex is returned by GoTo when the index is outside [0, slides).
var ErrInvalidIndex = errors.New("rotation: index out of range")

const (
	DefaultHeroInterval        = 5 * time.Second
	DefaultTestimonialInterval = 6 * time.Second
	DefaultSwipeThreshold      = 40
)

// Options configure a Controller.
type Options struct {
	Name           string        // used in log fields only
	Slides         int           // fixed slide count; zero yields an inert controller
	Interval       time.Duration // auto-advance period; zero uses DefaultHeroInterval
	SwipeThreshold int           // gesture distance in px; zero uses DefaultSwipeThreshold
	AutoStart      bool
	Clock          clockwork.Clock // nil uses the real clock
	OnChange       func(index int)
}

// Controller keeps a current index over a fixed-size circular sequence and
// advances it on a timer, by manual navigation, or by horizontal gestures.
//
// Every operation runs under one lock, including the OnChange callback, so a
// navigation and its timer restart complete before the next event is handled.
// OnChange must not call back into the Controller.
type Controller struct {
	mu sync.Mutex

	name      string
	slides    int
	index     int
	interval  time.Duration
	threshold int
	onChange  func(int)
	clock     clockwork.Clock

	timer    clockwork.Timer
	gen      uint64
	disposed bool
}

// New builds a Controller. When opts.Slides is positive, OnChange is invoked
// with index 0 before New returns and the timer starts if AutoStart is set.
func New(opts Options) *Controller {
	c := &Controller{
		name:      opts.Name,
		slides:    max(opts.Slides, 0),
		interval:  opts.Interval,
		threshold: opts.SwipeThreshold,
		onChange:  opts.OnChange,
		clock:     opts.Clock,
	}
	if c.interval <= 0 {
		c.interval = DefaultHeroInterval
	}
	if c.threshold <= 0 {
		c.threshold = DefaultSwipeThreshold
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.onChange == nil {
		c.onChange = func(int) {}
	}

	if c.slides == 0 {
		c.logger().Debug("no slides; controller inert")
		return c
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify()
	if opts.AutoStart {
		c.schedule()
	}
	return c
}

// Index returns the current index. It is meaningless when Slides is zero.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Slides returns the fixed slide count.
func (c *Controller) Slides() int {
	return c.slides
}

// Interval returns the auto-advance period.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// TimerActive reports whether an auto-advance is currently scheduled.
func (c *Controller) TimerActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// GoTo selects index. Out-of-range indexes are rejected with ErrInvalidIndex
// and leave the state untouched. GoTo does not restart the timer; a disposed
// controller ignores the call.
func (c *Controller) GoTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil
	}
	if index < 0 || index >= c.slides {
		c.logger().WithField("index", index).Debug("rejected out-of-range index")
		return ErrInvalidIndex
	}
	c.index = index
	c.notify()
	return nil
}

// Next advances one slide, wrapping to zero, and restarts the timer.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() {
		return
	}
	c.step(1)
	c.schedule()
}

// Prev moves back one slide, wrapping to the last, and restarts the timer.
func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() {
		return
	}
	c.step(-1)
	c.schedule()
}

// RestartTimer cancels any pending auto-advance and schedules a fresh one a
// full interval from now.
func (c *Controller) RestartTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() {
		return
	}
	c.schedule()
}

// Pause cancels the pending auto-advance without touching the index.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
}

// Resume schedules auto-advance a full interval from now. It is a no-op when
// a timer is already pending.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() || c.timer != nil {
		return
	}
	c.schedule()
}

// HandleGesture interprets a horizontal drag of deltaPx. A drag right past
// the threshold reveals the previous slide, a drag left past it the next one.
// The timer restarts whether or not the drag navigated.
func (c *Controller) HandleGesture(deltaPx int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() {
		return
	}
	switch {
	case deltaPx > c.threshold:
		c.step(-1)
	case deltaPx < -c.threshold:
		c.step(1)
	default:
		c.logger().WithField("delta_px", deltaPx).Debug("gesture below threshold")
	}
	c.schedule()
}

// Dispose stops the timer for good. Later calls on the controller do nothing.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()
	c.disposed = true
}

func (c *Controller) inert() bool {
	return c.disposed || c.slides == 0
}

// step moves by delta (±1) modulo slides and notifies. Caller holds mu.
func (c *Controller) step(delta int) {
	c.index = (c.index + delta + c.slides) % c.slides
	c.notify()
}

func (c *Controller) notify() {
	c.onChange(c.index)
}

// schedule replaces any pending timer with one that fires a full interval
// from now. Caller holds mu.
func (c *Controller) schedule() {
	c.cancel()
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.interval, func() { c.tick(gen) })
}

// cancel stops the pending timer. Bumping gen discards a tick that already
// fired but has not acquired the lock yet. Caller holds mu.
func (c *Controller) cancel() {
	c.gen++
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	c.timer = nil
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() || gen != c.gen {
		return
	}
	c.step(1)
	c.logger().WithField("index", c.index).Debug("auto-advanced")
	c.schedule()
}

func (c *Controller) logger() *logrus.Entry {
	return logrus.WithField("widget", c.name)
}
