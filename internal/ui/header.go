package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// renderMain lays out header, the active page and the footer.
func (m Model) renderMain() string {
	var body string
	switch m.page {
	case PagePortfolio:
		body = m.renderPortfolio()
	case PageContact:
		body = m.renderContact()
	case PageLogs:
		body = m.renderLogs()
	default:
		body = m.renderHome()
	}

	bodyHeight := max(1, m.height-headerRows-1)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return strings.Join([]string{
		m.renderHeader(),
		"",
		body,
		m.renderFooter(),
	}, "\n")
}

// renderHeader renders the logo, page tabs and outbox status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	surface := lipgloss.Color(m.theme.Surface)

	parts := []string{styles.Logo.Background(surface).Render("capture")}
	for _, p := range pageOrder {
		label := " " + p.String() + " "
		if p == m.page {
			parts = append(parts, styles.Selected.Render(label))
		} else {
			parts = append(parts, styles.MutedText.Background(surface).Render(label))
		}
	}
	left := strings.Join(parts, styles.Surface.Render(" "))
	right := m.renderOutboxStatus(styles, surface)

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + styles.Surface.Render(strings.Repeat(" ", gap)) + right)
}

func (m Model) renderOutboxStatus(styles Styles, surface lipgloss.Color) string {
	snap := m.snapshot
	var parts []string

	if snap.IsOffline() {
		parts = append(parts, styles.DangerText.Background(surface).Render("offline"))
	}
	if snap.OutboxPending > 0 {
		parts = append(parts, styles.WarningText.Background(surface).Render(
			fmt.Sprintf("%d queued", snap.OutboxPending)))
	}
	if snap.HasFlushed && !snap.LastFlush.IsZero() {
		label := "synced"
		if snap.LastError != nil {
			label = "tried"
		}
		parts = append(parts, styles.FaintText.Background(surface).Render(
			label+" "+humanize.RelTime(snap.LastFlush, m.clock.Now(), "ago", "from now")))
	}
	if m.theme.Name != "" {
		parts = append(parts, styles.FaintText.Background(surface).Render(m.theme.Name))
	}
	return strings.Join(parts, styles.Surface.Render("  "))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	return styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
