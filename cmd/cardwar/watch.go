package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lox/cardwar/cmd/cardwar/shared"
	"github.com/lox/cardwar/internal/game"
	"github.com/lox/cardwar/internal/runner"
)

// WatchCmd prints each battle to stdout as it happens
type WatchCmd struct {
	Games int `short:"n" default:"1" help:"Number of games to play before exiting (0 plays forever)"`
}

func (c *WatchCmd) Run(g *Globals) error {
	cfg, err := g.Load()
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.LogLevel())
	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	r, err := runner.New(runner.Config{
		Interval: cfg.Game.Interval,
		Players:  cfg.Game.Players,
		Seed:     cfg.Game.Seed,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	r.Subscribe(printer(os.Stdout, r, c.Games, cancel))

	err = r.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// printer writes events as log lines, restarting until games are played
func printer(w io.Writer, r *runner.Runner, games int, done context.CancelFunc) runner.Observer {
	played := 0
	return runner.ObserverFunc(func(ev game.Event) {
		switch ev.(type) {
		case game.GameStartEvent:
			_, _ = fmt.Fprintln(w, "")
		}
		_, _ = fmt.Fprintln(w, game.FormatEvent(ev))

		if _, ok := ev.(game.GameOverEvent); ok {
			played++
			if games > 0 && played >= games {
				done()
				return
			}
			r.Restart()
		}
	})
}
