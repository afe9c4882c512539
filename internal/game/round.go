package game

import "github.com/lox/cardwar/internal/deck"

// Outcome is the result of comparing two cards, or of a whole game
type Outcome int

const (
	Tie Outcome = iota
	Player1Wins
	Player2Wins
)

func (o Outcome) String() string {
	switch o {
	case Tie:
		return "tie"
	case Player1Wins:
		return "player1"
	case Player2Wins:
		return "player2"
	default:
		return "unknown"
	}
}

// Winner returns the zero-based index of the winning player, or -1 for a tie
func (o Outcome) Winner() int {
	switch o {
	case Player1Wins:
		return 0
	case Player2Wins:
		return 1
	default:
		return -1
	}
}

// Compare decides a battle by rank ordinal. Suits never matter.
func Compare(a, b deck.Card) Outcome {
	switch {
	case a.Value() > b.Value():
		return Player1Wins
	case a.Value() < b.Value():
		return Player2Wins
	default:
		return Tie
	}
}

// Round records one resolved battle
type Round struct {
	Number  int
	Cards   [2]deck.Card
	Outcome Outcome
	Scores  [2]int
}

// Result is the standing of a game, final once the game is over
type Result struct {
	Scores    [2]int
	TieRounds int
	Rounds    int
	Winner    Outcome
}

// Stalemate reports whether the scores are level
func (r Result) Stalemate() bool {
	return r.Winner == Tie
}

// Margin returns player 1's score minus player 2's
func (r Result) Margin() int {
	return r.Scores[0] - r.Scores[1]
}
