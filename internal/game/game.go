package game

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/cardwar/internal/deck"
	"github.com/lox/cardwar/internal/gameid"
)

const (
	// HandSize is the number of cards dealt to each player
	HandSize = deck.Size / 2

	DefaultPlayer1 = "Diva 1"
	DefaultPlayer2 = "Diva 2"
)

var (
	ErrGameOver    = errors.New("game: game is over")
	ErrHandEmpty   = errors.New("game: a hand is empty")
	ErrNotFinished = errors.New("game: hands are not empty")
)

// Phase is where a game is in its lifecycle
type Phase int

const (
	Dealing Phase = iota
	Playing
	Over
)

func (p Phase) String() string {
	switch p {
	case Dealing:
		return "dealing"
	case Playing:
		return "playing"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Options configures a new game. Zero values get defaults.
type Options struct {
	ID    string
	Names [2]string
	Seed  int64
	RNG   *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.ID == "" {
		o.ID = gameid.Generate()
	}
	if o.Names[0] == "" {
		o.Names[0] = DefaultPlayer1
	}
	if o.Names[1] == "" {
		o.Names[1] = DefaultPlayer2
	}
	return o
}

// Game is one complete game of War
type Game struct {
	id      string
	seed    int64
	deck    *deck.Deck
	players [2]*Player
	phase   Phase
	rounds  int
	ties    int
	history []Round
}

// New shuffles a deck and deals both hands
func New(opts Options) *Game {
	opts = opts.withDefaults()

	g := &Game{
		id:      opts.ID,
		seed:    opts.Seed,
		deck:    deck.NewDeck(opts.RNG),
		players: [2]*Player{NewPlayer(opts.Names[0]), NewPlayer(opts.Names[1])},
		phase:   Dealing,
		history: make([]Round, 0, HandSize),
	}
	g.deal()
	return g
}

// deal alternates player 1, player 2 until the deck is gone
func (g *Game) deal() {
	for i := 0; i < HandSize; i++ {
		for _, p := range g.players {
			c, ok := g.deck.Deal()
			if !ok {
				break
			}
			p.AddCard(c)
		}
	}
	g.phase = Playing
}

// ID returns the game identifier
func (g *Game) ID() string { return g.id }

// Seed returns the seed the deck was shuffled with
func (g *Game) Seed() int64 { return g.seed }

// Phase returns the lifecycle phase
func (g *Game) Phase() Phase { return g.phase }

// Player returns player i (0 or 1)
func (g *Game) Player(i int) *Player { return g.players[i] }

// Names returns both player names
func (g *Game) Names() [2]string {
	return [2]string{g.players[0].Name, g.players[1].Name}
}

// Rounds returns the number of rounds played
func (g *Game) Rounds() int { return g.rounds }

// History returns a copy of every round played so far
func (g *Game) History() []Round {
	out := make([]Round, len(g.history))
	copy(out, g.history)
	return out
}

// LastRound returns the most recent round, if any
func (g *Game) LastRound() (Round, bool) {
	if len(g.history) == 0 {
		return Round{}, false
	}
	return g.history[len(g.history)-1], true
}

// Finished reports whether either hand is exhausted
func (g *Game) Finished() bool {
	return g.players[0].HandSize() == 0 || g.players[1].HandSize() == 0
}

// PlayRound resolves one battle between the front cards of each hand
func (g *Game) PlayRound() (Round, error) {
	if g.phase == Over {
		return Round{}, ErrGameOver
	}
	if g.Finished() {
		return Round{}, ErrHandEmpty
	}

	c1, _ := g.players[0].PlayCard()
	c2, _ := g.players[1].PlayCard()

	outcome := Compare(c1, c2)
	switch outcome {
	case Player1Wins:
		g.players[0].AddPoint()
	case Player2Wins:
		g.players[1].AddPoint()
	default:
		g.ties++
	}
	g.rounds++

	r := Round{
		Number:  g.rounds,
		Cards:   [2]deck.Card{c1, c2},
		Outcome: outcome,
		Scores:  [2]int{g.players[0].Score(), g.players[1].Score()},
	}
	g.history = append(g.history, r)
	return r, nil
}

// Result returns the current standings
func (g *Game) Result() Result {
	r := Result{
		Scores:    [2]int{g.players[0].Score(), g.players[1].Score()},
		TieRounds: g.ties,
		Rounds:    g.rounds,
	}
	switch {
	case r.Scores[0] > r.Scores[1]:
		r.Winner = Player1Wins
	case r.Scores[0] < r.Scores[1]:
		r.Winner = Player2Wins
	default:
		r.Winner = Tie
	}
	return r
}

// Finish moves a finished game to Over and returns the final result.
// It succeeds exactly once.
func (g *Game) Finish() (Result, error) {
	if g.phase == Over {
		return Result{}, ErrGameOver
	}
	if !g.Finished() {
		return Result{}, ErrNotFinished
	}
	g.phase = Over
	return g.Result(), nil
}

// PlayOut plays every remaining round and finishes the game
func (g *Game) PlayOut() (Result, error) {
	for !g.Finished() {
		if _, err := g.PlayRound(); err != nil {
			return Result{}, err
		}
	}
	return g.Finish()
}

// NewWithHands creates a game from fixed hands without shuffling.
// Replays and tests use it to stage specific battles.
func NewWithHands(opts Options, hand1, hand2 []deck.Card) *Game {
	opts = opts.withDefaults()

	g := &Game{
		id:      opts.ID,
		seed:    opts.Seed,
		players: [2]*Player{NewPlayer(opts.Names[0]), NewPlayer(opts.Names[1])},
		phase:   Playing,
		history: make([]Round, 0, len(hand1)),
	}
	for _, c := range hand1 {
		g.players[0].AddCard(c)
	}
	for _, c := range hand2 {
		g.players[1].AddCard(c)
	}
	return g
}
