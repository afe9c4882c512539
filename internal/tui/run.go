package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cardwar/internal/game"
	"github.com/lox/cardwar/internal/runner"
)

// Observer forwards runner events to a running program
func Observer(p *tea.Program) runner.Observer {
	return runner.ObserverFunc(func(ev game.Event) {
		p.Send(EventMsg{Event: ev})
	})
}

// Run shows r in the terminal until the user quits or ctx is cancelled
func Run(ctx context.Context, r *runner.Runner, logger *log.Logger, opts ...tea.ProgramOption) error {
	model := NewModel(r.Restart, logger)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)
	r.Subscribe(Observer(p))

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(gctx)

	g.Go(func() error {
		defer stop()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		err := r.Run(runCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
