package runner

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardwar/internal/game"
)

const testInterval = 2 * time.Second

type harness struct {
	t      *testing.T
	ctx    context.Context
	cancel context.CancelFunc
	clock  *quartz.Mock
	runner *Runner
	events chan game.Event
	done   chan error
}

func startHarness(t *testing.T, seed int64) *harness {
	t.Helper()

	h := &harness{
		t:      t,
		clock:  quartz.NewMock(t),
		events: make(chan game.Event, 128),
		done:   make(chan error, 1),
	}
	h.ctx, h.cancel = context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(h.cancel)

	r, err := New(Config{
		Clock:    h.clock,
		Interval: testInterval,
		Seed:     seed,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		Observers: []Observer{ObserverFunc(func(ev game.Event) {
			h.events <- ev
		})},
	})
	require.NoError(t, err)
	h.runner = r

	go func() { h.done <- r.Run(h.ctx) }()
	return h
}

func (h *harness) next() game.Event {
	h.t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-h.ctx.Done():
		h.t.Fatal("timed out waiting for event")
		return nil
	}
}

func (h *harness) tick() game.Event {
	h.t.Helper()
	h.clock.Advance(testInterval).MustWait(h.ctx)
	return h.next()
}

func (h *harness) assertQuiet() {
	h.t.Helper()
	select {
	case ev := <-h.events:
		h.t.Fatalf("unexpected event %s", ev.EventType())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRunPlaysFullGame(t *testing.T) {
	h := startHarness(t, 42)

	start, ok := h.next().(game.GameStartEvent)
	require.True(t, ok, "first event is game start")
	assert.Equal(t, int64(42), start.Seed)
	assert.Equal(t, game.HandSize, start.HandSize)
	assert.Equal(t, testInterval, start.Interval)

	for i := 1; i <= game.HandSize; i++ {
		ev, ok := h.tick().(game.RoundEvent)
		require.True(t, ok, "tick %d plays a round", i)
		assert.Equal(t, i, ev.Round.Number)
		assert.Equal(t, start.ID, ev.GameID())
	}

	over, ok := h.tick().(game.GameOverEvent)
	require.True(t, ok, "tick after the last round ends the game")
	res := over.Result
	assert.Equal(t, game.HandSize, res.Scores[0]+res.Scores[1]+res.TieRounds)

	// The ticker is stopped; further time produces nothing.
	h.clock.Advance(testInterval).MustWait(h.ctx)
	h.assertQuiet()

	snap, ok := h.runner.Snapshot()
	require.True(t, ok)
	assert.Equal(t, game.Over, snap.Phase)
	require.NotNil(t, snap.Result)
	assert.Equal(t, res, *snap.Result)
	assert.Equal(t, [2]int{0, 0}, snap.CardsLeft)

	h.cancel()
	assert.ErrorIs(t, <-h.done, context.Canceled)
}

func TestRestartAfterGameOver(t *testing.T) {
	h := startHarness(t, 100)

	first := h.next().(game.GameStartEvent)
	for i := 0; i <= game.HandSize; i++ {
		h.tick()
	}

	h.runner.Restart()
	second, ok := h.next().(game.GameStartEvent)
	require.True(t, ok)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, int64(101), second.Seed, "each game draws the next seed")

	snap, _ := h.runner.Snapshot()
	assert.Equal(t, [2]int{0, 0}, snap.Scores)
	assert.Equal(t, [2]int{game.HandSize, game.HandSize}, snap.CardsLeft)
	assert.Nil(t, snap.Result)
	assert.Equal(t, 2, snap.Games)

	ev, ok := h.tick().(game.RoundEvent)
	require.True(t, ok, "ticker restarts with the new game")
	assert.Equal(t, 1, ev.Round.Number)
	assert.Equal(t, second.ID, ev.GameID())
}

func TestRestartMidGame(t *testing.T) {
	h := startHarness(t, 7)
	h.next()

	for i := 0; i < 3; i++ {
		h.tick()
	}
	snap, _ := h.runner.Snapshot()
	assert.Equal(t, 3, snap.Rounds)
	require.NotNil(t, snap.LastRound)
	assert.Equal(t, 3, snap.LastRound.Number)

	h.runner.Restart()
	_, ok := h.next().(game.GameStartEvent)
	require.True(t, ok)

	ev := h.tick().(game.RoundEvent)
	assert.Equal(t, 1, ev.Round.Number)
}

func TestRestartCoalesces(t *testing.T) {
	r, err := New(Config{Clock: quartz.NewMock(t)})
	require.NoError(t, err)

	r.Restart()
	r.Restart()
	assert.Len(t, r.restart, 1)
}

func TestSameSeedSameGames(t *testing.T) {
	play := func() []game.Round {
		h := startHarness(t, 55)
		h.next()
		var rounds []game.Round
		for i := 0; i < game.HandSize; i++ {
			rounds = append(rounds, h.tick().(game.RoundEvent).Round)
		}
		h.cancel()
		<-h.done
		return rounds
	}
	assert.Equal(t, play(), play())
}

func TestNewDefaults(t *testing.T) {
	r, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, r.Interval())

	_, ok := r.Snapshot()
	assert.False(t, ok)

	_, err = New(Config{Interval: -time.Second})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestSubscribe(t *testing.T) {
	h := startHarness(t, 3)
	h.next()

	late := make(chan game.Event, 1)
	h.runner.Subscribe(ObserverFunc(func(ev game.Event) { late <- ev }))

	h.tick()
	select {
	case ev := <-late:
		assert.Equal(t, game.EventTypeRound, ev.EventType())
	case <-time.After(time.Second):
		t.Fatal("late subscriber got nothing")
	}
}
