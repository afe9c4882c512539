package runner

import (
	"github.com/lox/cardwar/internal/game"
)

// Snapshot is a point-in-time copy of the runner's current game
type Snapshot struct {
	GameID    string
	Seed      int64
	Phase     game.Phase
	Players   [2]string
	Scores    [2]int
	CardsLeft [2]int
	Rounds    int
	LastRound *game.Round
	Result    *game.Result
	Games     int
}

// Snapshot returns the state of the current game. Before Run has dealt the
// first game it returns the zero Snapshot and false.
func (r *Runner) Snapshot() (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g := r.game
	if g == nil {
		return Snapshot{}, false
	}

	s := Snapshot{
		GameID:    g.ID(),
		Seed:      g.Seed(),
		Phase:     g.Phase(),
		Players:   g.Names(),
		Scores:    [2]int{g.Player(0).Score(), g.Player(1).Score()},
		CardsLeft: [2]int{g.Player(0).HandSize(), g.Player(1).HandSize()},
		Rounds:    g.Rounds(),
		Games:     r.games,
	}
	if last, ok := g.LastRound(); ok {
		s.LastRound = &last
	}
	if r.result != nil {
		res := *r.result
		s.Result = &res
	}
	return s, true
}
