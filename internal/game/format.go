package game

import "fmt"

// FormatRound renders a round as a battle log line
func FormatRound(names [2]string, r Round) string {
	line := fmt.Sprintf("%s plays: %s | %s plays: %s",
		names[0], r.Cards[0], names[1], r.Cards[1])

	switch r.Outcome {
	case Player1Wins:
		return line + " - " + names[0] + " wins the battle!!"
	case Player2Wins:
		return line + " - " + names[1] + " wins the battle!!"
	default:
		return line + " - Tie! No one wins!!."
	}
}

// FormatResult renders the final verdict
func FormatResult(names [2]string, res Result) string {
	return "Game Over!! " + Verdict(names, res)
}

// Verdict describes who won the war
func Verdict(names [2]string, res Result) string {
	switch res.Winner {
	case Player1Wins:
		return names[0] + " wins the war!!"
	case Player2Wins:
		return names[1] + " wins the war!!"
	default:
		return "Stalemate!! lame..."
	}
}

// FormatEvent renders any event as a single log line
func FormatEvent(ev Event) string {
	switch e := ev.(type) {
	case GameStartEvent:
		return fmt.Sprintf("%s vs %s: %d cards each", e.Players[0], e.Players[1], e.HandSize)
	case RoundEvent:
		return FormatRound(e.Players, e.Round)
	case GameOverEvent:
		return FormatResult(e.Players, e.Result)
	default:
		return string(ev.EventType())
	}
}
