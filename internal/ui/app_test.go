package ui

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/capture/internal/backend"
	"github.com/five82/capture/internal/config"
	"github.com/five82/capture/internal/contact"
	"github.com/five82/capture/internal/content"
	"github.com/five82/capture/internal/prefs"
	"github.com/five82/capture/internal/state"
)

type fakeContact struct {
	mu        sync.Mutex
	submitted []contact.Payload
	saved     []contact.Payload
	result    contact.Result
	err       error
	draft     *contact.Payload
	pending   int
}

func (f *fakeContact) Submit(_ context.Context, p contact.Payload) (contact.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, p)
	return f.result, f.err
}

func (f *fakeContact) SaveDraft(_ context.Context, p contact.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeContact) LoadDraft(context.Context) (contact.Payload, bool, error) {
	if f.draft == nil {
		return contact.Payload{}, false, nil
	}
	return *f.draft, true, nil
}

func (f *fakeContact) PendingCount(context.Context) (int, error) {
	return f.pending, nil
}

type fakeAnalyzer struct {
	analysis backend.Analysis
	err      error
	urls     []string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, url string) (backend.Analysis, error) {
	f.urls = append(f.urls, url)
	return f.analysis, f.err
}

type testEnv struct {
	clock     *clockwork.FakeClock
	contact   *fakeContact
	analyzer  *fakeAnalyzer
	store     *state.Store
	prefsPath string
	queued    int
}

func newTestModel(t *testing.T) (Model, *testEnv) {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)

	dir := t.TempDir()
	cfg := config.Default()
	cfg.LogFile = filepath.Join(dir, "capture.log")

	env := &testEnv{
		clock:     clockwork.NewFakeClock(),
		contact:   &fakeContact{result: contact.Result{Message: "Thanks, we'll be in touch."}},
		analyzer:  &fakeAnalyzer{},
		store:     &state.Store{},
		prefsPath: filepath.Join(dir, "prefs.toml"),
	}
	m := New(Options{
		Catalog:   cat,
		Config:    cfg,
		Theme:     prefs.ThemeDark,
		PrefsPath: env.prefsPath,
		Contact:   env.contact,
		Analyzer:  env.analyzer,
		Store:     env.store,
		OnQueued:  func() { env.queued++ },
		Clock:     env.clock,
	})
	t.Cleanup(m.Dispose)

	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, env
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = update(m, keyMsg(k))
	}
	return m
}

func TestHeroKeysNavigate(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "l")
	assert.Equal(t, 1, m.heroIndex)
	m = press(m, "right")
	assert.Equal(t, 2, m.heroIndex)
	m = press(m, "l")
	assert.Equal(t, 0, m.heroIndex, "wraps past the last slide")
	m = press(m, "h")
	assert.Equal(t, 2, m.heroIndex, "wraps before the first slide")
	m = press(m, "left")
	assert.Equal(t, 1, m.heroIndex)

	assert.Equal(t, 0, m.testimonialIndex, "hero keys leave testimonials alone")
}

func TestTestimonialKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "]")
	assert.Equal(t, 1, m.testimonialIndex)
	m = press(m, "[", "[")
	assert.Equal(t, 2, m.testimonialIndex)

	m = press(m, "1")
	assert.Equal(t, 0, m.testimonialIndex)
	m = press(m, "3")
	assert.Equal(t, 2, m.testimonialIndex)
	assert.True(t, m.testimonials.TimerActive())

	m = press(m, "9")
	assert.Equal(t, 2, m.testimonialIndex, "digits past the last dot are ignored")
}

func TestTestimonialHold(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "t")
	assert.True(t, m.testimonialHeld)
	assert.False(t, m.testimonials.TimerActive())
	assert.True(t, m.hero.TimerActive(), "holding testimonials does not pause the hero")

	// Manual navigation still works but the hold wins over the timer restart.
	m = press(m, "]")
	assert.Equal(t, 1, m.testimonialIndex)
	assert.False(t, m.testimonials.TimerActive())

	m = press(m, "t")
	assert.False(t, m.testimonialHeld)
	assert.True(t, m.testimonials.TimerActive())
}

func TestRotationTickReachesModel(t *testing.T) {
	m, env := newTestModel(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, env.clock.BlockUntilContext(ctx, 2))
	env.clock.Advance(5 * time.Second)
	require.Eventually(t, func() bool { return m.hero.Index() == 1 }, time.Second, 5*time.Millisecond)

	msg := m.heroFeed.wait(ctx)()
	require.Equal(t, slideChangedMsg{widget: widgetHero, index: 1}, msg)

	m, cmd := update(m, msg)
	assert.Equal(t, 1, m.heroIndex)
	assert.NotNil(t, cmd, "feed is re-armed")
}

func TestFeedWaitStopsOnCancel(t *testing.T) {
	feed := newRotationFeed(widgetTestimonials)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, feed.wait(ctx)())
}

func TestFeedCollapsesBursts(t *testing.T) {
	feed := newRotationFeed(widgetHero)
	feed.notify(1)
	feed.notify(2)
	feed.notify(0)

	msg := feed.wait(context.Background())()
	assert.Equal(t, slideChangedMsg{widget: widgetHero, index: 0}, msg)
	assert.Len(t, feed.signal, 0)
}

func TestPageNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "tab")
	assert.Equal(t, PagePortfolio, m.page)
	m = press(m, "tab", "tab")
	assert.Equal(t, PageLogs, m.page)
	m = press(m, "tab")
	assert.Equal(t, PageHome, m.page)
	m = press(m, "shift+tab")
	assert.Equal(t, PageLogs, m.page)
	m = press(m, "esc")
	assert.Equal(t, PageHome, m.page)
}

func TestPortfolioFilterAndSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "tab")

	assert.Equal(t, content.FilterAll, m.portfolio.filter())
	assert.Len(t, m.portfolio.visible, 6)

	m = press(m, "f")
	assert.Equal(t, "wedding", m.portfolio.filter())
	require.Len(t, m.portfolio.visible, 2)

	m = press(m, "j", "j", "j")
	item, ok := m.portfolio.current()
	require.True(t, ok)
	assert.Equal(t, "Golden Hour Vows", item.Title, "selection clamps to the last item")

	m = press(m, "f", "f", "f")
	assert.Equal(t, content.FilterAll, m.portfolio.filter(), "filter cycle wraps")
	assert.Equal(t, 0, m.portfolio.selected)
}

func TestLightboxPausesRotations(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "tab", "v")

	require.NotNil(t, m.lightbox)
	assert.Equal(t, "First Dance", m.lightbox.caption)
	assert.False(t, m.hero.TimerActive())
	assert.False(t, m.testimonials.TimerActive())

	m = press(m, "esc")
	assert.Nil(t, m.lightbox)
	assert.Equal(t, PagePortfolio, m.page, "esc closes the lightbox before leaving the page")
	assert.True(t, m.hero.TimerActive())
	assert.True(t, m.testimonials.TimerActive())
}

func TestLightboxKeepsHeldTestimonialsPaused(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "t", "tab", "v", "esc")

	assert.True(t, m.hero.TimerActive())
	assert.False(t, m.testimonials.TimerActive())
}

func TestAnalyzeFlow(t *testing.T) {
	m, env := newTestModel(t)
	env.analyzer.analysis = backend.Analysis{Caption: "A couple dancing", Tags: []string{"wedding", "night"}, DominantColor: "#aa8844"}

	m = press(m, "tab")
	m, cmd := update(m, keyMsg("a"))
	require.NotNil(t, cmd)
	require.NotNil(t, m.lightbox)
	assert.True(t, m.lightbox.analyzing)
	assert.Equal(t, analyzingCaption, m.lightbox.caption)
	assert.False(t, m.hero.TimerActive())

	m, _ = update(m, cmd())
	assert.Equal(t, []string{"https://images.capture-moments.example/portfolio/first-dance.jpg"}, env.analyzer.urls)
	assert.False(t, m.lightbox.analyzing)
	assert.Equal(t, "A couple dancing", m.lightbox.caption)
	assert.Equal(t, []string{"wedding", "night"}, m.lightbox.tags)
	assert.Contains(t, m.View(), "A couple dancing")
}

func TestAnalyzeFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server error", &backend.StatusError{Endpoint: "/api/analyze", StatusCode: http.StatusInternalServerError}, analysisServerFail},
		{"transport error", errors.New("connection refused"), analysisFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, env := newTestModel(t)
			env.analyzer.err = tt.err

			m = press(m, "tab")
			m, cmd := update(m, keyMsg("a"))
			m, _ = update(m, cmd())
			assert.Equal(t, tt.want, m.lightbox.caption)
		})
	}
}

func TestAnalyzeStaleResultIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "tab")
	m, cmd := update(m, keyMsg("a"))
	require.NotNil(t, cmd)

	// Closing the lightbox drops the in-flight result.
	m = press(m, "esc")
	m, _ = update(m, cmd())
	assert.Nil(t, m.lightbox)

	// A newer lightbox ignores results for an older request.
	m, _ = update(m, keyMsg("a"))
	m, _ = update(m, analysisMsg{seq: 1, analysis: backend.Analysis{Caption: "old"}})
	assert.Equal(t, analyzingCaption, m.lightbox.caption)
}

func TestMouseDragSwipes(t *testing.T) {
	m, _ := newTestModel(t)

	drag := func(m Model, y, fromX, toX int) Model {
		m, _ = update(m, tea.MouseMsg{X: fromX, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m, _ = update(m, tea.MouseMsg{X: toX, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
		return m
	}

	// 10 cells left at 8px per cell: next slide.
	m = drag(m, heroTop+2, 60, 50)
	assert.Equal(t, 1, m.heroIndex)

	// 3 cells is 24px, under the 40px threshold.
	m = drag(m, heroTop+2, 60, 63)
	assert.Equal(t, 1, m.heroIndex)
	assert.True(t, m.hero.TimerActive())

	// Right drag over the testimonials: previous testimonial.
	m = drag(m, testimonialTop+1, 20, 30)
	assert.Equal(t, 2, m.testimonialIndex)
	assert.Equal(t, 1, m.heroIndex)

	// Outside both carousels nothing moves.
	m = drag(m, 0, 60, 10)
	assert.Equal(t, 1, m.heroIndex)
	assert.Equal(t, 2, m.testimonialIndex)
}

func TestWidgetAt(t *testing.T) {
	tests := []struct {
		y      int
		want   widget
		wantOK bool
	}{
		{0, 0, false},
		{heroTop, widgetHero, true},
		{heroTop + heroRows - 1, widgetHero, true},
		{heroTop + heroRows, 0, false},
		{testimonialTop, widgetTestimonials, true},
		{testimonialTop + testimonialRows, 0, false},
	}
	for _, tt := range tests {
		got, ok := widgetAt(tt.y)
		assert.Equal(t, tt.wantOK, ok, "y=%d", tt.y)
		if ok {
			assert.Equal(t, tt.want, got, "y=%d", tt.y)
		}
	}
}

func TestThemeTogglePersists(t *testing.T) {
	m, env := newTestModel(t)

	m = press(m, "T")
	assert.Equal(t, prefs.ThemeLight, m.theme.Name)

	saved, err := prefs.Load(env.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, prefs.ThemeLight, saved.Theme)

	m = press(m, "T")
	assert.Equal(t, prefs.ThemeDark, m.theme.Name)
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = press(m, "l")
	assert.False(t, m.showHelp)
	assert.Equal(t, 0, m.heroIndex, "the closing key is swallowed")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDisposeStopsTimers(t *testing.T) {
	m, _ := newTestModel(t)
	m.Dispose()

	assert.False(t, m.hero.TimerActive())
	assert.False(t, m.testimonials.TimerActive())
	m = press(m, "l")
	assert.Equal(t, 0, m.heroIndex)
}

func TestViewRendersHome(t *testing.T) {
	m, env := newTestModel(t)
	env.store.Update(state.FlushResult{Pending: 2, Err: errors.New("down")}, env.clock.Now().Add(-2*time.Minute))
	m, _ = update(m, snapshotMsg(env.store.Snapshot()))

	out := m.View()
	assert.Contains(t, out, "Capture Moments")
	assert.Contains(t, out, "They caught every moment")
	assert.Contains(t, out, "2 queued")
	assert.Contains(t, out, "2 minutes ago")
	assert.Contains(t, out, "Portfolio")
}

func TestEmptyCatalogIsInert(t *testing.T) {
	m := New(Options{Clock: clockwork.NewFakeClock()})
	t.Cleanup(m.Dispose)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m = press(m, "l", "]", "1", "tab", "a", "v")
	assert.Equal(t, 0, m.heroIndex)
	assert.Nil(t, m.lightbox)
	assert.False(t, m.hero.TimerActive())
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestLogsPage(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(m, keyMsg("shift+tab"))
	require.Equal(t, PageLogs, m.page)
	require.NotNil(t, cmd)

	m, _ = update(m, logsLoadedMsg{lines: []string{
		`time="2025-06-01 12:00:00" level=info msg="slide changed" index=2 widget=hero`,
		"plain line",
	}})
	view := m.logs.viewport.View()
	assert.Contains(t, view, "slide changed")
	assert.Contains(t, view, "widget")
	assert.Contains(t, view, "plain line")
}
