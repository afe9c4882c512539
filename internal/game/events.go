package game

import (
	"time"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart EventType = "game_start"
	EventTypeRound     EventType = "round"
	EventTypeGameOver  EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything that happens during a game that observers care about
type Event interface {
	EventType() EventType
	Timestamp() time.Time
	GameID() string
}

// GameStartEvent is published after a fresh deck has been dealt
type GameStartEvent struct {
	ID        string
	Seed      int64
	Players   [2]string
	HandSize  int
	Interval  time.Duration
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }
func (e GameStartEvent) GameID() string       { return e.ID }

// NewGameStartEvent creates a game start event for g
func NewGameStartEvent(g *Game, interval time.Duration, at time.Time) GameStartEvent {
	return GameStartEvent{
		ID:        g.ID(),
		Seed:      g.Seed(),
		Players:   g.Names(),
		HandSize:  g.Player(0).HandSize(),
		Interval:  interval,
		timestamp: at,
	}
}

// RoundEvent is published after every battle
type RoundEvent struct {
	ID        string
	Players   [2]string
	Round     Round
	timestamp time.Time
}

func (e RoundEvent) EventType() EventType { return EventTypeRound }
func (e RoundEvent) Timestamp() time.Time { return e.timestamp }
func (e RoundEvent) GameID() string       { return e.ID }

// NewRoundEvent creates a round event
func NewRoundEvent(g *Game, r Round, at time.Time) RoundEvent {
	return RoundEvent{
		ID:        g.ID(),
		Players:   g.Names(),
		Round:     r,
		timestamp: at,
	}
}

// GameOverEvent is published once per game, after the last round
type GameOverEvent struct {
	ID        string
	Players   [2]string
	Result    Result
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }
func (e GameOverEvent) GameID() string       { return e.ID }

// NewGameOverEvent creates a game over event
func NewGameOverEvent(g *Game, res Result, at time.Time) GameOverEvent {
	return GameOverEvent{
		ID:        g.ID(),
		Players:   g.Names(),
		Result:    res,
		timestamp: at,
	}
}
