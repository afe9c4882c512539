package deck

import (
	rand "math/rand/v2"
)

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a standard 52-card deck
type Deck struct {
	cards [Size]Card
	next  int
	rng   *rand.Rand
}

// Ordered returns all 52 cards in construction order (suit-major)
func Ordered() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// NewDeck creates a new shuffled deck using rng
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	copy(d.cards[:], Ordered())
	d.Shuffle()
	return d
}

// Shuffle shuffles the deck using Fisher-Yates and resets the deal position
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals the next card; ok is false once the deck is exhausted
func (d *Deck) Deal() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// Cards returns a copy of the cards not yet dealt
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards)-d.next)
	copy(out, d.cards[d.next:])
	return out
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return d.CardsRemaining() == 0
}
