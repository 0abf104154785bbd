package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/five82/capture/internal/backend"
	"github.com/five82/capture/internal/config"
	"github.com/five82/capture/internal/contact"
	"github.com/five82/capture/internal/content"
	"github.com/five82/capture/internal/logging"
	"github.com/five82/capture/internal/prefs"
	"github.com/five82/capture/internal/state"
	"github.com/five82/capture/internal/storage"
	"github.com/five82/capture/internal/ui"
)

// Options configure the capture application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/capture/prefs.toml
	Verbose    bool
	LogToFile  bool // false logs to stderr, for non-interactive commands
}

// Env holds the long-lived dependencies shared by the TUI and the CLI
// subcommands.
type Env struct {
	Config  config.Config
	Prefs   prefs.Prefs
	Catalog content.Catalog
	DB      *storage.DB
	Client  *backend.Client
	Contact *contact.Service

	closers []func() error
}

// Open loads configuration, sets up logging, and opens storage and the
// backend client. Callers must Close the returned Env.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	env := &Env{Config: cfg}

	logPath := ""
	if opts.LogToFile {
		logPath = cfg.LogFile
	}
	logCloser, err := logging.Setup(logPath, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	env.closers = append(env.closers, logCloser.Close)

	env.Prefs, err = prefs.Load(opts.PrefsPath)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("load prefs: %w", err)
	}

	env.Catalog, err = content.Load(cfg.ContentFile)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}

	env.DB, err = storage.Open(cfg.DatabasePath())
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	// Close storage before the log file.
	env.closers = append([]func() error{env.DB.Close}, env.closers...)

	env.Client, err = backend.NewClient(cfg.APIBase)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	env.Contact = contact.NewService(env.Client, env.DB, nil)
	return env, nil
}

// Close releases everything Open acquired.
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Run boots the capture TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.LogToFile = true
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	clock := clockwork.NewRealClock()
	store := &state.Store{}
	flusher := NewFlusher(env.Contact, env.Client, store, clock, env.Config.FlushInterval)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(gctx)

	g.Go(func() error {
		return flusher.Run(runCtx)
	})
	g.Go(func() error {
		// Quitting the TUI ends the flusher too.
		defer stop()
		return ui.Run(runCtx, ui.Options{
			Catalog:   env.Catalog,
			Config:    env.Config,
			Theme:     env.Prefs.Theme,
			PrefsPath: opts.PrefsPath,
			Contact:   env.Contact,
			Analyzer:  env.Client,
			Store:     store,
			OnQueued:  flusher.Trigger,
			Clock:     clock,
		})
	})
	return g.Wait()
}
