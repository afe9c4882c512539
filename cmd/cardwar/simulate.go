package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/cardwar/cmd/cardwar/shared"
	"github.com/lox/cardwar/internal/config"
	"github.com/lox/cardwar/internal/fileutil"
	"github.com/lox/cardwar/internal/randutil"
	"github.com/lox/cardwar/internal/simulator"
	"github.com/lox/cardwar/internal/statistics"
)

// SimulateCmd plays games without a timer
type SimulateCmd struct {
	Games   int    `short:"n" default:"10000" help:"Number of games to simulate"`
	Workers int    `default:"0" help:"Parallel workers (0 uses GOMAXPROCS)"`
	Out     string `short:"o" help:"Also write a JSON summary to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.Load()
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.LogLevel())
	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	seed := randutil.SeedOrNow(cfg.Game.Seed)
	logger.Info("Simulating", "games", c.Games, "seed", seed)

	stats, err := simulator.New(simulator.Config{
		Games:   c.Games,
		Seed:    seed,
		Players: cfg.Game.Players,
		Workers: c.Workers,
		Logger:  logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	printSummary(os.Stdout, cfg, seed, stats)

	if c.Out != "" {
		if err := fileutil.WriteJSON(c.Out, stats.Summarize(cfg.Game.Players, seed)); err != nil {
			return err
		}
		logger.Info("Wrote summary", "file", c.Out)
	}
	return nil
}

func printSummary(w io.Writer, cfg *config.Config, seed int64, s *statistics.Statistics) {
	p := cfg.Game.Players
	lo, hi := s.ConfidenceInterval95()

	_, _ = fmt.Fprintf(w, "Games:       %d (seeds %d..%d)\n", s.Games, seed, seed+int64(s.Games)-1)
	_, _ = fmt.Fprintf(w, "%-12s %d wins (%.1f%%)\n", p[0]+":", s.Wins[0], 100*s.WinRate(0))
	_, _ = fmt.Fprintf(w, "%-12s %d wins (%.1f%%)\n", p[1]+":", s.Wins[1], 100*s.WinRate(1))
	_, _ = fmt.Fprintf(w, "Stalemates:  %d (%.1f%%)\n", s.Stalemates, 100*s.StalemateRate())
	_, _ = fmt.Fprintf(w, "Tie rounds:  %.2f%% of battles, at most %d in one game\n", 100*s.TieRate(), s.MostTiesInGame)
	_, _ = fmt.Fprintf(w, "Margin:      mean %+.2f, median %+.1f, sd %.2f, 95%% CI [%+.2f, %+.2f]\n",
		s.Mean(), s.Median(), s.StdDev(), lo, hi)
	_, _ = fmt.Fprintf(w, "Biggest win: %d points (seed %d)\n", s.BiggestMargin, s.BiggestSeed)
}
