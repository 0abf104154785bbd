package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/five82/capture/internal/backend"
	"github.com/five82/capture/internal/config"
	"github.com/five82/capture/internal/contact"
	"github.com/five82/capture/internal/content"
	"github.com/five82/capture/internal/state"
)

// ContactService is the part of contact.Service the form uses.
type ContactService interface {
	Submit(ctx context.Context, p contact.Payload) (contact.Result, error)
	SaveDraft(ctx context.Context, p contact.Payload) error
	LoadDraft(ctx context.Context) (contact.Payload, bool, error)
	PendingCount(ctx context.Context) (int, error)
}

// Analyzer describes photos for the lightbox.
type Analyzer interface {
	Analyze(ctx context.Context, imageURL string) (backend.Analysis, error)
}

var (
	_ ContactService = (*contact.Service)(nil)
	_ Analyzer       = (*backend.Client)(nil)
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Catalog   content.Catalog
	Config    config.Config
	Theme     string
	PrefsPath string
	Contact   ContactService
	Analyzer  Analyzer
	Store     *state.Store
	OnQueued  func() // called after a submission lands in the outbox
	Clock     clockwork.Clock
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. Both rotation controllers are disposed before it returns.
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx
	m := New(opts)
	defer m.Dispose()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
