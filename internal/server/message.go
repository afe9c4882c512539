package server

import (
	"encoding/json"
	"time"

	"github.com/lox/cardwar/internal/deck"
	"github.com/lox/cardwar/internal/game"
	"github.com/lox/cardwar/internal/runner"
)

// MessageType identifies the payload carried by a Message
type MessageType string

const (
	// Server → Client
	MessageTypeGameStart MessageType = "game_start"
	MessageTypeRound     MessageType = "round"
	MessageTypeGameOver  MessageType = "game_over"
	MessageTypeSnapshot  MessageType = "snapshot"
	MessageTypeError     MessageType = "error"

	// Client → Server
	MessageTypeRestart MessageType = "restart"
)

func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with at
func NewMessage(messageType MessageType, data any, at time.Time) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Message{
		Type:      messageType,
		Data:      raw,
		Timestamp: at,
	}, nil
}

// CardData is the wire form of a card
type CardData struct {
	Rank    string `json:"rank"`
	Suit    string `json:"suit"`
	Value   int    `json:"value"`
	Red     bool   `json:"red"`
	Display string `json:"display"`
}

func cardData(c deck.Card) CardData {
	return CardData{
		Rank:    c.Rank.String(),
		Suit:    c.Suit.String(),
		Value:   c.Value(),
		Red:     c.IsRed(),
		Display: c.String(),
	}
}

type GameStartData struct {
	GameID     string    `json:"gameId"`
	Seed       int64     `json:"seed"`
	Players    [2]string `json:"players"`
	HandSize   int       `json:"handSize"`
	IntervalMs int64     `json:"intervalMs"`
}

type RoundData struct {
	GameID  string      `json:"gameId"`
	Round   int         `json:"round"`
	Cards   [2]CardData `json:"cards"`
	Outcome string      `json:"outcome"`
	Winner  int         `json:"winner"`
	Scores  [2]int      `json:"scores"`
	Log     string      `json:"log"`
}

type GameOverData struct {
	GameID    string `json:"gameId"`
	Scores    [2]int `json:"scores"`
	TieRounds int    `json:"tieRounds"`
	Winner    int    `json:"winner"`
	Stalemate bool   `json:"stalemate"`
	Log       string `json:"log"`
}

type SnapshotData struct {
	GameID    string        `json:"gameId"`
	Seed      int64         `json:"seed"`
	Phase     string        `json:"phase"`
	Players   [2]string     `json:"players"`
	Scores    [2]int        `json:"scores"`
	CardsLeft [2]int        `json:"cardsLeft"`
	Rounds    int           `json:"rounds"`
	Games     int           `json:"games"`
	LastRound *RoundData    `json:"lastRound,omitempty"`
	Result    *GameOverData `json:"result,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func roundData(id string, names [2]string, r game.Round) RoundData {
	return RoundData{
		GameID:  id,
		Round:   r.Number,
		Cards:   [2]CardData{cardData(r.Cards[0]), cardData(r.Cards[1])},
		Outcome: r.Outcome.String(),
		Winner:  r.Outcome.Winner(),
		Scores:  r.Scores,
		Log:     game.FormatRound(names, r),
	}
}

func gameOverData(id string, names [2]string, res game.Result) GameOverData {
	return GameOverData{
		GameID:    id,
		Scores:    res.Scores,
		TieRounds: res.TieRounds,
		Winner:    res.Winner.Winner(),
		Stalemate: res.Stalemate(),
		Log:       game.FormatResult(names, res),
	}
}

// EventMessage converts a game event to its wire message
func EventMessage(ev game.Event) (*Message, error) {
	switch e := ev.(type) {
	case game.GameStartEvent:
		return NewMessage(MessageTypeGameStart, GameStartData{
			GameID:     e.ID,
			Seed:       e.Seed,
			Players:    e.Players,
			HandSize:   e.HandSize,
			IntervalMs: e.Interval.Milliseconds(),
		}, e.Timestamp())
	case game.RoundEvent:
		return NewMessage(MessageTypeRound, roundData(e.ID, e.Players, e.Round), e.Timestamp())
	case game.GameOverEvent:
		return NewMessage(MessageTypeGameOver, gameOverData(e.ID, e.Players, e.Result), e.Timestamp())
	default:
		return nil, errUnknownEvent
	}
}

// NewSnapshotData converts a runner snapshot to its wire form
func NewSnapshotData(s runner.Snapshot) SnapshotData {
	data := SnapshotData{
		GameID:    s.GameID,
		Seed:      s.Seed,
		Phase:     s.Phase.String(),
		Players:   s.Players,
		Scores:    s.Scores,
		CardsLeft: s.CardsLeft,
		Rounds:    s.Rounds,
		Games:     s.Games,
	}
	if s.LastRound != nil {
		rd := roundData(s.GameID, s.Players, *s.LastRound)
		data.LastRound = &rd
	}
	if s.Result != nil {
		od := gameOverData(s.GameID, s.Players, *s.Result)
		data.Result = &od
	}
	return data
}
