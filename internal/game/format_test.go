package game

import (
	"testing"
	"time"

	"github.com/lox/cardwar/internal/deck"
	"github.com/stretchr/testify/assert"
)

var names = [2]string{"Diva 1", "Diva 2"}

func TestFormatRound(t *testing.T) {
	r := Round{
		Cards:   [2]deck.Card{deck.MustParseCard("As"), deck.MustParseCard("2h")},
		Outcome: Player1Wins,
	}
	assert.Equal(t,
		"Diva 1 plays: Ace of Spades ♠ | Diva 2 plays: 2 of Hearts ♥ - Diva 1 wins the battle!!",
		FormatRound(names, r))

	r.Outcome = Player2Wins
	assert.Contains(t, FormatRound(names, r), "- Diva 2 wins the battle!!")

	r.Outcome = Tie
	assert.Contains(t, FormatRound(names, r), "- Tie! No one wins!!.")
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "Game Over!! Diva 1 wins the war!!",
		FormatResult(names, Result{Scores: [2]int{14, 10}, Winner: Player1Wins}))
	assert.Equal(t, "Game Over!! Diva 2 wins the war!!",
		FormatResult(names, Result{Scores: [2]int{10, 14}, Winner: Player2Wins}))
	assert.Equal(t, "Game Over!! Stalemate!! lame...",
		FormatResult(names, Result{Scores: [2]int{12, 12}, Winner: Tie}))
}

func TestFormatEvent(t *testing.T) {
	g := NewWithHands(Options{ID: "g1"}, []deck.Card{deck.MustParseCard("Kc")}, []deck.Card{deck.MustParseCard("Qc")})
	now := time.Unix(0, 0)

	start := NewGameStartEvent(g, 2*time.Second, now)
	assert.Equal(t, EventTypeGameStart, start.EventType())
	assert.Equal(t, "g1", start.GameID())
	assert.Equal(t, "Diva 1 vs Diva 2: 1 cards each", FormatEvent(start))

	r, _ := g.PlayRound()
	round := NewRoundEvent(g, r, now)
	assert.Equal(t, EventTypeRound, round.EventType())
	assert.Equal(t, now, round.Timestamp())
	assert.Contains(t, FormatEvent(round), "King of Clubs ♣")

	res, _ := g.Finish()
	over := NewGameOverEvent(g, res, now)
	assert.Equal(t, EventTypeGameOver, over.EventType())
	assert.Equal(t, "Game Over!! Diva 1 wins the war!!", FormatEvent(over))
}
