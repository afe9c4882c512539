package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardwar/internal/statistics"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNew(t *testing.T) {
	sim := New(Config{Games: 100, Seed: 12345})
	require.NotNil(t, sim)
	assert.Equal(t, 100, sim.config.Games)
	assert.Positive(t, sim.config.Workers)
}

func TestRun(t *testing.T) {
	stats, err := New(Config{Games: 200, Seed: 1, Logger: quietLogger()}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, stats.Games)
	assert.Equal(t, 200, stats.Wins[0]+stats.Wins[1]+stats.Stalemates)
	assert.Positive(t, stats.Wins[0])
	assert.Positive(t, stats.Wins[1])
	// Four suits per rank: a tie happens roughly 3 times in 51.
	assert.InDelta(t, 3.0/51.0, stats.TieRate(), 0.02)
}

func TestRunIsReproducible(t *testing.T) {
	a, err := New(Config{Games: 50, Seed: 99, Workers: 1}).Run(context.Background())
	require.NoError(t, err)
	b, err := New(Config{Games: 50, Seed: 99, Workers: 8}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Margins, b.Margins)
	assert.Equal(t, a.Wins, b.Wins)
}

func TestRunRejectsZeroGames(t *testing.T) {
	_, err := New(Config{}).Run(context.Background())
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Games: 10, Workers: 1}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayGame(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		r, err := PlayGame(seed, [2]string{})
		require.NoError(t, err)
		assert.NoError(t, statistics.ValidateResult(r))
		assert.Equal(t, seed, r.Seed)
	}
}

func TestRunSimulation(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 3, 7, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Games)
}
