package ui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

type widget int

const (
	widgetHero widget = iota
	widgetTestimonials
)

func (w widget) String() string {
	if w == widgetHero {
		return "hero"
	}
	return "testimonials"
}

// slideChangedMsg reports a controller's new index to the model.
type slideChangedMsg struct {
	widget widget
	index  int
}

// rotationFeed bridges a controller's OnChange callback, which runs on the
// controller's timer goroutine under its lock, into Bubble Tea messages.
// notify never blocks: bursts collapse into one pending signal and the
// reader picks up the latest index.
type rotationFeed struct {
	widget widget
	index  atomic.Int64
	signal chan struct{}
}

func newRotationFeed(w widget) *rotationFeed {
	return &rotationFeed{widget: w, signal: make(chan struct{}, 1)}
}

func (f *rotationFeed) notify(index int) {
	f.index.Store(int64(index))
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *rotationFeed) current() int {
	return int(f.index.Load())
}

// wait returns a command that blocks until the next change. The model
// re-arms it after every slideChangedMsg so exactly one is outstanding.
func (f *rotationFeed) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-f.signal:
			return slideChangedMsg{widget: f.widget, index: f.current()}
		}
	}
}
