package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/capture/internal/logtail"
)

const logFetchLimit = 400

type logState struct {
	viewport viewport.Model
	lines    []string
	err      error
	loaded   bool
}

type logsLoadedMsg struct {
	lines []string
	err   error
}

func newLogState() logState {
	return logState{viewport: viewport.New(80, 20)}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, logFetchLimit)
		return logsLoadedMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogsLoaded(msg logsLoadedMsg) {
	follow := !m.logs.loaded || m.logs.viewport.AtBottom()
	m.logs.loaded = true
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.lines = msg.lines
	}
	m.logs.viewport.SetContent(m.renderLogContent())
	if follow {
		m.logs.viewport.GotoBottom()
	}
}

func (m *Model) resizeLogs() {
	// header, title line, footer
	h := m.height - headerRows - 3
	if h < 3 {
		h = 3
	}
	m.logs.viewport.Width = m.width
	m.logs.viewport.Height = h
	m.logs.viewport.SetContent(m.renderLogContent())
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g", "home":
		m.logs.viewport.GotoTop()
		return m, nil
	case "G", "end":
		m.logs.viewport.GotoBottom()
		return m, nil
	case "r":
		return m, loadLogsCmd(m.config.LogFile)
	}
	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	return m, cmd
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	if len(m.logs.lines) == 0 {
		return styles.MutedText.Render("No log entries yet.")
	}
	out := make([]string, len(m.logs.lines))
	for i, line := range m.logs.lines {
		e := logtail.Parse(line)
		if e.Level == "" && e.Time == "" {
			out[i] = styles.Text.Render(e.Message)
			continue
		}
		var b strings.Builder
		if e.Time != "" {
			b.WriteString(styles.FaintText.Render(e.Time))
			b.WriteString(" ")
		}
		b.WriteString(styles.LevelStyle(e.Level).Render(strings.ToUpper(levelLabel(e.Level))))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))
		for _, kv := range e.Fields {
			b.WriteString(" ")
			b.WriteString(styles.AccentText.Render(kv[0]))
			b.WriteString(styles.FaintText.Render("="))
			b.WriteString(styles.MutedText.Render(kv[1]))
		}
		out[i] = b.String()
	}
	return strings.Join(out, "\n")
}

func levelLabel(level string) string {
	switch level {
	case "warning":
		return "warn"
	case "":
		return "-"
	}
	return level
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.Text.Bold(true).Render("Log") + " " + styles.FaintText.Render(m.config.LogFile)
	if m.logs.err != nil {
		title += "  " + styles.DangerText.Render(m.logs.err.Error())
	}
	return title + "\n" + m.logs.viewport.View()
}
