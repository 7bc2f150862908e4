package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/accounts"
	"github.com/atomicstack/reclamation-control/internal/backend"
	"github.com/atomicstack/reclamation-control/internal/session"
	"github.com/atomicstack/reclamation-control/internal/store"
	"github.com/atomicstack/reclamation-control/internal/ui"
	"github.com/atomicstack/reclamation-control/internal/view"
)

// Config describes user-provided application options.
type Config struct {
	DatabasePath string
	AccountsPath string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	Refresh      time.Duration
	Start        view.ID
}

// runtime holds the resources a running program owns.
type runtime struct {
	store   *store.Store
	watcher *backend.Watcher
	model   *ui.Model
}

func setup(cfg Config) (*runtime, error) {
	dir := accounts.Demo()
	if cfg.AccountsPath != "" {
		loaded, err := accounts.Load(cfg.AccountsPath)
		if err != nil {
			return nil, fmt.Errorf("load accounts: %w", err)
		}
		dir = loaded
	}
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	watcher := backend.NewWatcher(st, cfg.Refresh)
	model := ui.NewModel(ui.Config{
		Session:    session.New(),
		Service:    st,
		Accounts:   dir,
		Watcher:    watcher,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Start:      cfg.Start,
	})
	return &runtime{store: st, watcher: watcher, model: model}, nil
}

func (r *runtime) close() error {
	r.watcher.Stop()
	r.watcher.Wait()
	return r.store.Close()
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	rt, err := setup(cfg)
	if err != nil {
		return err
	}
	defer rt.close()
	program := tea.NewProgram(rt.model)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
