package main

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/lox/cardwar/cmd/cardwar/shared"
	"github.com/lox/cardwar/internal/runner"
	"github.com/lox/cardwar/internal/server"
)

// ServeCmd runs games on the timer and streams them to spectators
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config server block)"`
}

func (c *ServeCmd) Run(g *Globals) error {
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

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddress()
	}
	srv := server.NewServer(addr, r, logger)
	r.Subscribe(srv)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := r.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		return srv.Start(ctx)
	})
	return eg.Wait()
}
