package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/capture/internal/rotation"
)

// Home page layout, in terminal rows. Mouse hit-testing relies on these.
const (
	headerRows      = 2
	heroTop         = headerRows
	heroRows        = 8
	testimonialTop  = heroTop + heroRows + 1
	testimonialRows = 8
)

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.HeroPrev):
		m.hero.Prev()
		m.heroIndex = m.hero.Index()
	case key.Matches(msg, m.keys.HeroNext):
		m.hero.Next()
		m.heroIndex = m.hero.Index()
	case key.Matches(msg, m.keys.TestimonialPrev):
		m.testimonials.Prev()
		m.afterTestimonialNav()
	case key.Matches(msg, m.keys.TestimonialNext):
		m.testimonials.Next()
		m.afterTestimonialNav()
	case key.Matches(msg, m.keys.TestimonialJump):
		m.jumpTestimonial(msg.String())
	case key.Matches(msg, m.keys.FocusTestimonial):
		m.testimonialHeld = !m.testimonialHeld
		m.syncRotations()
	}
	return m, nil
}

// jumpTestimonial handles a dot click: digits are 1-based, and digits past
// the last testimonial are ignored.
func (m *Model) jumpTestimonial(digit string) {
	if len(digit) != 1 || digit[0] < '1' || digit[0] > '9' {
		return
	}
	if err := m.testimonials.GoTo(int(digit[0] - '1')); err != nil {
		return
	}
	m.testimonials.RestartTimer()
	m.afterTestimonialNav()
}

// afterTestimonialNav refreshes the index and re-applies a hold, since
// navigation restarts the controller's timer.
func (m *Model) afterTestimonialNav() {
	m.testimonialIndex = m.testimonials.Index()
	m.syncRotations()
}

func (m Model) controllerFor(w widget) *rotation.Controller {
	if w == widgetHero {
		return m.hero
	}
	return m.testimonials
}

// widgetAt maps a terminal row on the home page to the carousel drawn there.
func widgetAt(y int) (widget, bool) {
	switch {
	case y >= heroTop && y < heroTop+heroRows:
		return widgetHero, true
	case y >= testimonialTop && y < testimonialTop+testimonialRows:
		return widgetTestimonials, true
	}
	return 0, false
}

func (m Model) renderHome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHero(),
		"",
		m.renderTestimonials(),
	)
}

func (m Model) renderHero() string {
	styles := m.theme.Styles()
	slides := m.catalog.Slides

	var lines []string
	if len(slides) == 0 {
		lines = []string{styles.MutedText.Render("No slides")}
	} else {
		idx := clampIndex(m.heroIndex, len(slides))
		slide := slides[idx]
		lines = []string{
			styles.AccentText.Bold(true).Render(slide.Title),
			styles.Text.Render(slide.Subtitle),
			"",
			styles.FaintText.Render(slide.Image),
			"",
			styles.MutedText.Render("‹ h") + "  " +
				renderDots(styles, len(slides), idx, false) + "  " +
				styles.MutedText.Render("l ›") + "  " +
				styles.FaintText.Render(fmt.Sprintf("%d/%d", idx+1, len(slides))),
		}
	}
	return m.panel(styles.Panel, lines, heroRows)
}

func (m Model) renderTestimonials() string {
	styles := m.theme.Styles()
	items := m.catalog.Testimonials
	inner := m.panelInnerWidth()

	var lines []string
	if len(items) == 0 {
		lines = []string{styles.MutedText.Render("No testimonials yet")}
	} else {
		idx := clampIndex(m.testimonialIndex, len(items))
		t := items[idx]
		quote := lipgloss.NewStyle().Width(inner).Italic(true).
			Foreground(lipgloss.Color(m.theme.Text)).
			Render("“" + t.Quote + "”")
		lines = append(lines, clampLines(quote, testimonialRows-5)...)

		author := styles.AccentText.Render("- " + t.Author)
		if t.Role != "" {
			author += styles.MutedText.Render(", " + t.Role)
		}
		lines = append(lines, author, "")

		status := ""
		if m.testimonialHeld {
			status = "  " + styles.WarningText.Render("held")
		}
		lines = append(lines, renderDots(styles, len(items), idx, true)+status)
	}

	style := styles.Panel
	if m.testimonialHeld {
		style = styles.PanelFocus
	}
	return m.panel(style, lines, testimonialRows)
}

// panel draws lines inside a bordered box exactly rows tall.
func (m Model) panel(style lipgloss.Style, lines []string, rows int) string {
	inner := rows - 2
	if len(lines) > inner {
		lines = lines[:inner]
	}
	for len(lines) < inner {
		lines = append(lines, "")
	}
	return style.Width(m.panelInnerWidth() + 2).Render(strings.Join(lines, "\n"))
}

func (m Model) panelInnerWidth() int {
	// border (2) + padding (2)
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	return w
}

func renderDots(styles Styles, n, active int, numbered bool) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		dot := "○"
		style := styles.FaintText
		if i == active {
			dot = "●"
			style = styles.AccentText
		}
		if numbered && i < 9 {
			dot = fmt.Sprintf("%d%s", i+1, dot)
		}
		parts[i] = style.Render(dot)
	}
	return strings.Join(parts, " ")
}

func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}

func clampLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
		lines[n-1] = strings.TrimRight(lines[n-1], " ") + "…"
	}
	return lines
}
