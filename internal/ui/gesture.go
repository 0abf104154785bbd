package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// dragState tracks a left-button drag that started over a carousel.
type dragState struct {
	active bool
	widget widget
	startX int
}

// handleMouse turns a horizontal drag over a carousel into a swipe. The
// terminal reports cells, so the distance is scaled by the configured cell
// width before the controller compares it with its threshold.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.page != PageHome || m.showHelp || m.lightbox != nil {
		m.drag = dragState{}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		w, ok := widgetAt(msg.Y)
		if !ok {
			m.drag = dragState{}
			return m, nil
		}
		m.drag = dragState{active: true, widget: w, startX: msg.X}

	case tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		d := m.drag
		m.drag = dragState{}
		m.swipe(d.widget, m.dragPixels(d.startX, msg.X))
	}
	return m, nil
}

func (m Model) dragPixels(startX, endX int) int {
	cell := m.config.CellWidth
	if cell <= 0 {
		cell = 8
	}
	return (endX - startX) * cell
}

func (m *Model) swipe(w widget, dx int) {
	ctrl := m.controllerFor(w)
	ctrl.HandleGesture(dx)
	if w == widgetHero {
		m.heroIndex = ctrl.Index()
		return
	}
	m.afterTestimonialNav()
}
