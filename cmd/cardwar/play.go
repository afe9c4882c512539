package main

import (
	"github.com/lox/cardwar/cmd/cardwar/shared"
	"github.com/lox/cardwar/internal/runner"
	"github.com/lox/cardwar/internal/tui"
)

// PlayCmd shows the game in the terminal UI
type PlayCmd struct {
	LogFile string `default:"cardwar.log" help:"Where to write logs while the UI is open"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.Load()
	if err != nil {
		return err
	}

	path := c.LogFile
	if cfg.Log.File != "" {
		path = cfg.Log.File
	}
	logger, closeLog, err := shared.SetupFileLogger(path, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

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

	logger.Info("Starting terminal UI", "interval", cfg.Game.Interval, "players", cfg.Game.Players)
	return tui.Run(ctx, r, logger)
}
