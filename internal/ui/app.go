package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/five82/capture/internal/config"
	"github.com/five82/capture/internal/content"
	"github.com/five82/capture/internal/prefs"
	"github.com/five82/capture/internal/rotation"
	"github.com/five82/capture/internal/state"
)

// Page is one of the top-level navigation targets.
type Page int

const (
	PageHome Page = iota
	PagePortfolio
	PageContact
	PageLogs
)

var pageOrder = []Page{PageHome, PagePortfolio, PageContact, PageLogs}

func (p Page) String() string {
	switch p {
	case PagePortfolio:
		return "Portfolio"
	case PageContact:
		return "Contact"
	case PageLogs:
		return "Logs"
	default:
		return "Home"
	}
}

const statusTick = time.Second

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	catalog   content.Catalog
	config    config.Config
	contact   ContactService
	analyzer  Analyzer
	store     *state.Store
	onQueued  func()
	clock     clockwork.Clock
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	page     Page
	width    int
	height   int
	ready    bool
	showHelp bool

	// Rotations
	hero             *rotation.Controller
	testimonials     *rotation.Controller
	heroFeed         *rotationFeed
	testimonialFeed  *rotationFeed
	heroIndex        int
	testimonialIndex int
	testimonialHeld  bool
	drag             dragState

	// Data state
	snapshot state.Snapshot

	portfolio portfolioState
	lightbox  *lightbox
	form      contactForm
	logs      logState
}

// New creates a new Bubble Tea model and starts both rotations.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:             ctx,
		catalog:         opts.Catalog,
		config:          opts.Config,
		contact:         opts.Contact,
		analyzer:        opts.Analyzer,
		store:           opts.Store,
		onQueued:        opts.OnQueued,
		clock:           clock,
		prefsPath:       prefsPath,
		theme:           GetTheme(opts.Theme),
		keys:            DefaultKeyMap(),
		help:            help.New(),
		heroFeed:        newRotationFeed(widgetHero),
		testimonialFeed: newRotationFeed(widgetTestimonials),
		form:            newContactForm(opts.Catalog.Services),
		logs:            newLogState(),
	}
	m.portfolio = newPortfolioState(opts.Catalog)

	m.hero = rotation.New(rotation.Options{
		Name:           widgetHero.String(),
		Slides:         len(opts.Catalog.Slides),
		Interval:       opts.Config.HeroInterval,
		SwipeThreshold: opts.Config.SwipeThreshold,
		AutoStart:      true,
		Clock:          clock,
		OnChange:       m.heroFeed.notify,
	})
	m.testimonials = rotation.New(rotation.Options{
		Name:           widgetTestimonials.String(),
		Slides:         len(opts.Catalog.Testimonials),
		Interval:       opts.Config.TestimonialInterval,
		SwipeThreshold: opts.Config.SwipeThreshold,
		AutoStart:      true,
		Clock:          clock,
		OnChange:       m.testimonialFeed.notify,
	})
	return m
}

// Dispose stops both rotation timers. The model must not be used afterwards.
func (m Model) Dispose() {
	m.hero.Dispose()
	m.testimonials.Dispose()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.heroFeed.wait(m.ctx),
		m.testimonialFeed.wait(m.ctx),
		tickCmd(statusTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.contact != nil {
		cmds = append(cmds, loadDraftCmd(m.ctx, m.contact))
	}
	return tea.Batch(cmds...)
}

type tickMsg time.Time

type snapshotMsg state.Snapshot

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeForm()
		m.resizeLogs()
		return m, nil

	case slideChangedMsg:
		switch msg.widget {
		case widgetHero:
			m.heroIndex = msg.index
			return m, m.heroFeed.wait(m.ctx)
		default:
			m.testimonialIndex = msg.index
			return m, m.testimonialFeed.wait(m.ctx)
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(statusTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		if m.page == PageLogs {
			cmds = append(cmds, loadLogsCmd(m.config.LogFile))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case analysisMsg:
		m.handleAnalysis(msg)
		return m, nil

	case draftLoadedMsg, draftSavedMsg, contactSubmittedMsg:
		return m.handleFormResult(msg)

	case logsLoadedMsg:
		m.handleLogsLoaded(msg)
		return m, nil
	}

	if m.page == PageContact {
		return m.updateFormInput(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.lightbox != nil {
		return m.renderLightbox()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.lightbox != nil {
		return m.handleLightboxKey(msg)
	}

	// Keys that work on every page, including while typing in the form.
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPage):
		return m.switchPage(m.nextPage(1))
	case key.Matches(msg, m.keys.PrevPage):
		return m.switchPage(m.nextPage(-1))
	case key.Matches(msg, m.keys.Home):
		return m.switchPage(PageHome)
	}

	if m.page == PageContact {
		return m.handleContactKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return m, nil
	}

	switch m.page {
	case PageHome:
		return m.handleHomeKey(msg)
	case PagePortfolio:
		return m.handlePortfolioKey(msg)
	case PageLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) nextPage(delta int) Page {
	for i, p := range pageOrder {
		if p == m.page {
			n := len(pageOrder)
			return pageOrder[((i+delta)%n+n)%n]
		}
	}
	return PageHome
}

func (m Model) switchPage(p Page) (tea.Model, tea.Cmd) {
	if m.page == PageContact && p != PageContact {
		m.form.blur()
	}
	m.page = p
	switch p {
	case PageContact:
		return m, m.form.focusCurrent()
	case PageLogs:
		return m, loadLogsCmd(m.config.LogFile)
	}
	return m, nil
}

func (m *Model) toggleTheme() {
	next := prefs.Prefs{Theme: m.theme.Name}.ToggleTheme()
	m.theme = GetTheme(next.Theme)
	if m.prefsPath != "" {
		if err := prefs.Save(m.prefsPath, next); err != nil {
			logrus.WithError(err).Warn("save prefs failed")
		}
	}
}

// syncRotations pauses or resumes the controllers to match what the user
// is looking at: the lightbox covers both, and holding the testimonial
// pane stops that rotation.
func (m *Model) syncRotations() {
	if m.lightbox != nil {
		m.hero.Pause()
		m.testimonials.Pause()
		return
	}
	m.hero.Resume()
	if m.testimonialHeld {
		m.testimonials.Pause()
	} else {
		m.testimonials.Resume()
	}
}
