// Package runner drives a game of War on a fixed interval.
//
// The runner goroutine owns the current game. Every tick it resolves one
// round, and on the tick after the hands run out it finishes the game and
// stops the ticker. A restart can be requested from any goroutine; it
// deals a fresh game and starts the ticker again.
package runner

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/cardwar/internal/game"
	"github.com/lox/cardwar/internal/gameid"
	"github.com/lox/cardwar/internal/randutil"
)

// DefaultInterval is the time between rounds
const DefaultInterval = 2 * time.Second

// ErrInvalidInterval is returned by New for non-positive intervals
var ErrInvalidInterval = errors.New("runner: interval must be positive")

// Observer receives every event the runner publishes, on the runner goroutine
type Observer interface {
	OnEvent(ev game.Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ev game.Event)

func (f ObserverFunc) OnEvent(ev game.Event) { f(ev) }

// Config holds runner configuration
type Config struct {
	Clock     quartz.Clock
	Interval  time.Duration
	Players   [2]string
	Seed      int64 // base seed; 0 picks a new seed per game from the clock
	Logger    *log.Logger
	Observers []Observer
}

// Runner sequences rounds of successive games
type Runner struct {
	clock    quartz.Clock
	interval time.Duration
	players  [2]string
	baseSeed int64
	logger   *log.Logger

	restart chan struct{}

	mu        sync.RWMutex
	observers []Observer
	game      *game.Game
	result    *game.Result
	games     int
}

// New creates a runner. A nil clock uses the real clock.
func New(cfg Config) (*Runner, error) {
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Interval < 0 {
		return nil, ErrInvalidInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	return &Runner{
		clock:     cfg.Clock,
		interval:  cfg.Interval,
		players:   cfg.Players,
		baseSeed:  cfg.Seed,
		logger:    cfg.Logger.WithPrefix("runner"),
		restart:   make(chan struct{}, 1),
		observers: append([]Observer(nil), cfg.Observers...),
	}, nil
}

// Interval returns the time between rounds
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Subscribe adds an observer. Observers must not block for long; they run
// on the runner goroutine between ticks.
func (r *Runner) Subscribe(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// Restart requests a fresh game. It never blocks; requests made while one
// is already pending are coalesced.
func (r *Runner) Restart() {
	select {
	case r.restart <- struct{}{}:
	default:
	}
}

// Run plays games until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	ticker := r.clock.NewTicker(r.interval, "runner", "tick")
	defer ticker.Stop("runner", "stop")

	r.startGame()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Runner stopped", "reason", ctx.Err())
			return ctx.Err()

		case <-r.restart:
			r.logger.Info("Restarting game")
			ticker.Reset(r.interval, "runner", "reset")
			r.startGame()

		case <-ticker.C:
			if over := r.tick(); over {
				ticker.Stop("runner", "stop")
			}
		}
	}
}

func (r *Runner) nextSeed() int64 {
	if r.baseSeed == 0 {
		return randutil.SeedOrNow(0)
	}
	return r.baseSeed + int64(r.games)
}

func (r *Runner) startGame() {
	r.mu.Lock()
	seed := r.nextSeed()
	g := game.New(game.Options{
		ID:    gameid.Generate(),
		Names: r.players,
		Seed:  seed,
		RNG:   randutil.New(seed),
	})
	r.game = g
	r.result = nil
	r.games++
	ev := game.NewGameStartEvent(g, r.interval, r.clock.Now())
	r.mu.Unlock()

	r.logger.Info("Game started",
		"game", gameid.Short(g.ID()),
		"seed", seed,
		"players", g.Names())

	r.publish(ev)
}

// tick plays one round, or finishes the game if the hands are empty.
// It reports whether the game is now over.
func (r *Runner) tick() bool {
	r.mu.Lock()
	g := r.game
	if g.Phase() == game.Over {
		r.mu.Unlock()
		return true
	}

	var ev game.Event
	if g.Finished() {
		res, err := g.Finish()
		if err != nil {
			r.mu.Unlock()
			r.logger.Error("Failed to finish game", "game", gameid.Short(g.ID()), "error", err)
			return true
		}
		r.result = &res
		ev = game.NewGameOverEvent(g, res, r.clock.Now())
		r.mu.Unlock()

		r.logger.Info("Game over",
			"game", gameid.Short(g.ID()),
			"scores", res.Scores,
			"ties", res.TieRounds,
			"winner", res.Winner)
		r.publish(ev)
		return true
	}

	round, err := g.PlayRound()
	if err != nil {
		r.mu.Unlock()
		r.logger.Error("Failed to play round", "game", gameid.Short(g.ID()), "error", err)
		return false
	}
	ev = game.NewRoundEvent(g, round, r.clock.Now())
	r.mu.Unlock()

	r.logger.Debug("Round",
		"game", gameid.Short(g.ID()),
		"round", round.Number,
		"cards", []string{round.Cards[0].Short(), round.Cards[1].Short()},
		"outcome", round.Outcome,
		"scores", round.Scores)
	r.publish(ev)
	return false
}

func (r *Runner) publish(ev game.Event) {
	r.mu.RLock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.RUnlock()

	for _, o := range observers {
		o.OnEvent(ev)
	}
}
