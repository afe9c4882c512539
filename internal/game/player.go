package game

import (
	"fmt"

	"github.com/lox/cardwar/internal/deck"
)

// Player holds a FIFO hand and a score that only ever increases
type Player struct {
	Name  string
	hand  []deck.Card
	score int
}

// NewPlayer creates a player with an empty hand
func NewPlayer(name string) *Player {
	return &Player{Name: name, hand: make([]deck.Card, 0, HandSize)}
}

// AddCard appends a card to the back of the hand
func (p *Player) AddCard(c deck.Card) {
	p.hand = append(p.hand, c)
}

// PlayCard removes and returns the front card of the hand
func (p *Player) PlayCard() (deck.Card, bool) {
	if len(p.hand) == 0 {
		return deck.Card{}, false
	}
	c := p.hand[0]
	p.hand = p.hand[1:]
	return c, true
}

// AddPoint increments the score
func (p *Player) AddPoint() {
	p.score++
}

// Score returns the current score
func (p *Player) Score() int {
	return p.score
}

// HandSize returns the number of cards left to play
func (p *Player) HandSize() int {
	return len(p.hand)
}

// Hand returns a copy of the remaining hand, front first
func (p *Player) Hand() []deck.Card {
	out := make([]deck.Card, len(p.hand))
	copy(out, p.hand)
	return out
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (Score: %d)", p.Name, p.score)
}
