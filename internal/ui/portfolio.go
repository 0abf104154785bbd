package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/capture/internal/backend"
	"github.com/five82/capture/internal/content"
)

type portfolioState struct {
	items      []content.Item
	categories []string
	filterIdx  int
	visible    []content.Item
	selected   int
	status     string
	analyses   int // sequence for matching analysis results to lightboxes
}

func newPortfolioState(cat content.Catalog) portfolioState {
	p := portfolioState{items: cat.Portfolio, categories: cat.Categories()}
	p.applyFilter()
	return p
}

func (p *portfolioState) filter() string {
	if len(p.categories) == 0 {
		return content.FilterAll
	}
	return p.categories[p.filterIdx]
}

func (p *portfolioState) cycleFilter() {
	if len(p.categories) == 0 {
		return
	}
	p.filterIdx = (p.filterIdx + 1) % len(p.categories)
	p.applyFilter()
}

func (p *portfolioState) applyFilter() {
	p.visible = content.Filter(p.items, p.filter())
	p.selected = 0
}

func (p *portfolioState) move(delta int) {
	if len(p.visible) == 0 {
		return
	}
	p.selected = max(0, min(len(p.visible)-1, p.selected+delta))
}

func (p *portfolioState) current() (content.Item, bool) {
	if p.selected < 0 || p.selected >= len(p.visible) {
		return content.Item{}, false
	}
	return p.visible[p.selected], true
}

// lightbox is the full-screen photo modal.
type lightbox struct {
	item      content.Item
	caption   string
	tags      []string
	color     string
	analyzing bool
	seq       int
}

type analysisMsg struct {
	seq      int
	analysis backend.Analysis
	err      error
}

const (
	analyzingCaption   = "Analyzing image with AI..."
	analysisDone       = "Analysis complete"
	analysisServerFail = "Analysis failed (server returned error)."
	analysisFail       = "Analysis failed (see log)."
	noImageMessage     = "No image URL found to analyze."
)

func (m Model) handlePortfolioKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.portfolio.status = ""
	switch {
	case key.Matches(msg, m.keys.CycleFilter):
		m.portfolio.cycleFilter()
	case key.Matches(msg, m.keys.Up):
		m.portfolio.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.portfolio.move(1)
	case key.Matches(msg, m.keys.View):
		if item, ok := m.portfolio.current(); ok {
			m.openLightbox(&lightbox{item: item, caption: item.Title})
		}
	case key.Matches(msg, m.keys.Analyze):
		return m.startAnalysis()
	}
	return m, nil
}

func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	item, ok := m.portfolio.current()
	if !ok {
		return m, nil
	}
	src := item.Source()
	if strings.TrimSpace(src) == "" || m.analyzer == nil {
		m.portfolio.status = noImageMessage
		return m, nil
	}
	m.portfolio.analyses++
	lb := &lightbox{item: item, caption: analyzingCaption, analyzing: true, seq: m.portfolio.analyses}
	m.openLightbox(lb)
	return m, analyzeCmd(m.ctx, m.analyzer, src, lb.seq)
}

func analyzeCmd(ctx context.Context, analyzer Analyzer, imageURL string, seq int) tea.Cmd {
	return func() tea.Msg {
		a, err := analyzer.Analyze(ctx, imageURL)
		return analysisMsg{seq: seq, analysis: a, err: err}
	}
}

// handleAnalysis applies a result to the lightbox that asked for it.
// Results for a closed or replaced lightbox are dropped.
func (m *Model) handleAnalysis(msg analysisMsg) {
	lb := m.lightbox
	if lb == nil || !lb.analyzing || lb.seq != msg.seq {
		return
	}
	lb.analyzing = false
	if msg.err != nil {
		logrus.WithError(msg.err).WithField("image", lb.item.Source()).Warn("analyze failed")
		var serr *backend.StatusError
		if errors.As(msg.err, &serr) {
			lb.caption = analysisServerFail
		} else {
			lb.caption = analysisFail
		}
		return
	}
	lb.caption = strings.TrimSpace(msg.analysis.Caption)
	if lb.caption == "" {
		lb.caption = analysisDone
	}
	lb.tags = msg.analysis.Tags
	lb.color = msg.analysis.DominantColor
}

func (m *Model) openLightbox(lb *lightbox) {
	m.lightbox = lb
	m.drag = dragState{}
	m.syncRotations()
}

func (m *Model) closeLightbox() {
	m.lightbox = nil
	m.syncRotations()
}

func (m Model) handleLightboxKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "enter", " ":
		m.closeLightbox()
	}
	return m, nil
}

func (m Model) renderPortfolio() string {
	styles := m.theme.Styles()
	p := m.portfolio

	chips := make([]string, 0, len(p.categories))
	for i, c := range p.categories {
		label := " " + c + " "
		if i == p.filterIdx {
			chips = append(chips, styles.Selected.Render(label))
		} else {
			chips = append(chips, styles.MutedText.Render(label))
		}
	}

	var b strings.Builder
	b.WriteString(styles.FaintText.Render("filter ") + strings.Join(chips, " "))
	b.WriteString("\n\n")

	if len(p.visible) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing in this category."))
	}
	for i, item := range p.visible {
		cat := item.Category
		if cat == "" {
			cat = "-"
		}
		line := fmt.Sprintf("%-32s %s", item.Title, styles.FaintText.Render(strings.ToLower(cat)))
		if i == p.selected {
			b.WriteString(styles.AccentText.Render("› ") + styles.Text.Bold(true).Render(line))
		} else {
			b.WriteString("  " + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	if p.status != "" {
		b.WriteString("\n" + styles.WarningText.Render(p.status))
	}
	return b.String()
}

func (m Model) renderLightbox() string {
	styles := m.theme.Styles()
	lb := m.lightbox

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(lb.item.Title))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(lb.item.Source()))
	b.WriteString("\n\n")

	captionStyle := styles.Text
	if lb.analyzing {
		captionStyle = styles.InfoText
	}
	b.WriteString(captionStyle.Render(lb.caption))

	if len(lb.tags) > 0 {
		tags := make([]string, len(lb.tags))
		for i, t := range lb.tags {
			tags[i] = styles.Selected.Render(" " + t + " ")
		}
		b.WriteString("\n\n" + strings.Join(tags, " "))
	}
	if lb.color != "" {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(lb.color)).Render("  ")
		b.WriteString("\n\n" + styles.MutedText.Render("dominant ") + swatch + " " + styles.FaintText.Render(lb.color))
	}
	b.WriteString("\n\n" + styles.FaintText.Render("esc close"))

	width := min(72, max(30, m.width-8))
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(width).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
