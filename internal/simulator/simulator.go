package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cardwar/internal/game"
	"github.com/lox/cardwar/internal/randutil"
	"github.com/lox/cardwar/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Seed    int64
	Players [2]string
	Workers int
	Logger  *log.Logger
}

// Simulator plays complete games back to back with no timer
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("simulator")}
}

// Run plays every game and returns the aggregated statistics. Game i uses
// seed Seed+i, so a run is reproducible regardless of worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}

	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := PlayGame(seed, s.config.Players)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Debug("Simulation complete", "games", stats.Games, "wins", stats.Wins, "stalemates", stats.Stalemates)
	return stats, nil
}

// PlayGame plays one game to completion with the given seed
func PlayGame(seed int64, players [2]string) (statistics.GameResult, error) {
	g := game.New(game.Options{
		ID:    fmt.Sprintf("sim-%d", seed),
		Names: players,
		Seed:  seed,
		RNG:   randutil.New(seed),
	})

	res, err := g.PlayOut()
	if err != nil {
		return statistics.GameResult{}, err
	}

	result := statistics.GameResult{
		Seed:      seed,
		Scores:    res.Scores,
		TieRounds: res.TieRounds,
		Winner:    res.Winner.Winner(),
	}
	if err := statistics.ValidateResult(result); err != nil {
		return statistics.GameResult{}, err
	}
	return result, nil
}

// RunSimulation is a convenience function that creates and runs a simulator
func RunSimulation(ctx context.Context, games int, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{Games: games, Seed: seed, Logger: logger}).Run(ctx)
}
