package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	h := m.help
	h.ShowAll = true
	content := styles.Text.Bold(true).Render("Keyboard Shortcuts") + "\n\n" +
		h.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		styles.FaintText.Render("Contact form: letters go to the focused field; use ctrl+c to quit.")

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}
