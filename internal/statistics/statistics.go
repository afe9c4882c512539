package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundsPerGame is the number of battles in a complete game
const RoundsPerGame = 26

// GameResult represents the outcome of a single game
type GameResult struct {
	Seed      int64  // RNG seed for this game (for replay)
	Scores    [2]int // Final scores
	TieRounds int    // Battles that scored nothing
	Winner    int    // 0 or 1, -1 for a stalemate
}

// Margin returns player 1's score minus player 2's
func (r GameResult) Margin() int {
	return r.Scores[0] - r.Scores[1]
}

// Statistics tracks results across many games
type Statistics struct {
	Games      int
	Wins       [2]int
	Stalemates int
	TieRounds  int

	SumMargin  float64
	SumMargin2 float64   // Sum of squares for variance calculation
	Margins    []float64 // All margins for median/percentile calculation

	MostTiesInGame int   // Most tie rounds seen in one game
	BiggestMargin  int   // Largest absolute margin seen
	BiggestSeed    int64 // Seed of that game, for replay
}

// Add incorporates a game result into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	switch result.Winner {
	case 0, 1:
		s.Wins[result.Winner]++
	default:
		s.Stalemates++
	}
	s.TieRounds += result.TieRounds

	m := float64(result.Margin())
	s.SumMargin += m
	s.SumMargin2 += m * m
	s.Margins = append(s.Margins, m)

	if result.TieRounds > s.MostTiesInGame {
		s.MostTiesInGame = result.TieRounds
	}
	if abs := int(math.Abs(m)); abs > s.BiggestMargin || s.Games == 1 {
		s.BiggestMargin = abs
		s.BiggestSeed = result.Seed
	}
}

// Merge adds every game recorded in other
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Wins[0] += other.Wins[0]
	s.Wins[1] += other.Wins[1]
	s.Stalemates += other.Stalemates
	s.TieRounds += other.TieRounds
	s.SumMargin += other.SumMargin
	s.SumMargin2 += other.SumMargin2
	s.Margins = append(s.Margins, other.Margins...)
	if other.MostTiesInGame > s.MostTiesInGame {
		s.MostTiesInGame = other.MostTiesInGame
	}
	if other.BiggestMargin > s.BiggestMargin {
		s.BiggestMargin = other.BiggestMargin
		s.BiggestSeed = other.BiggestSeed
	}
}

// WinRate returns the fraction of games won by player i
func (s *Statistics) WinRate(i int) float64 {
	if s.Games == 0 || i < 0 || i > 1 {
		return 0
	}
	return float64(s.Wins[i]) / float64(s.Games)
}

// StalemateRate returns the fraction of games with level scores
func (s *Statistics) StalemateRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Stalemates) / float64(s.Games)
}

// TieRate returns the fraction of all battles that were ties
func (s *Statistics) TieRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TieRounds) / float64(s.Games*RoundsPerGame)
}

// Mean returns the mean margin (player 1 minus player 2) per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// Variance returns the sample variance of the margin
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMargin2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the margin
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median margin
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the margin at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Margins) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Margins))
	copy(sorted, s.Margins)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Games < 0 {
		return fmt.Errorf("negative game count: %d", s.Games)
	}
	if got := s.Wins[0] + s.Wins[1] + s.Stalemates; got != s.Games {
		return fmt.Errorf("outcome mismatch: %d wins + stalemates for %d games", got, s.Games)
	}
	if len(s.Margins) != s.Games {
		return fmt.Errorf("margin count mismatch: %d margins for %d games", len(s.Margins), s.Games)
	}
	if s.TieRounds > s.Games*RoundsPerGame {
		return fmt.Errorf("%d tie rounds exceed %d battles", s.TieRounds, s.Games*RoundsPerGame)
	}
	if math.IsNaN(s.SumMargin) || math.IsInf(s.SumMargin, 0) {
		return fmt.Errorf("invalid margin sum: %f", s.SumMargin)
	}
	return nil
}

// ValidateResult checks a single game accounts for every battle
func ValidateResult(r GameResult) error {
	if r.Scores[0] < 0 || r.Scores[1] < 0 || r.TieRounds < 0 {
		return fmt.Errorf("seed %d: negative counts %v/%d", r.Seed, r.Scores, r.TieRounds)
	}
	if total := r.Scores[0] + r.Scores[1] + r.TieRounds; total != RoundsPerGame {
		return fmt.Errorf("seed %d: %d battles recorded, want %d", r.Seed, total, RoundsPerGame)
	}
	return nil
}

// Summary is the exported form of a run, written by simulate --out
type Summary struct {
	Players       [2]string  `json:"players"`
	Seed          int64      `json:"seed"`
	Games         int        `json:"games"`
	Wins          [2]int     `json:"wins"`
	Stalemates    int        `json:"stalemates"`
	TieRate       float64    `json:"tie_rate"`
	MeanMargin    float64    `json:"mean_margin"`
	MedianMargin  float64    `json:"median_margin"`
	StdDev        float64    `json:"std_dev"`
	CI95          [2]float64 `json:"ci95"`
	BiggestMargin int        `json:"biggest_margin"`
	BiggestSeed   int64      `json:"biggest_seed"`
}

// Summarize reduces s to a Summary for reporting
func (s *Statistics) Summarize(players [2]string, seed int64) Summary {
	lo, hi := s.ConfidenceInterval95()
	return Summary{
		Players:       players,
		Seed:          seed,
		Games:         s.Games,
		Wins:          s.Wins,
		Stalemates:    s.Stalemates,
		TieRate:       s.TieRate(),
		MeanMargin:    s.Mean(),
		MedianMargin:  s.Median(),
		StdDev:        s.StdDev(),
		CI95:          [2]float64{lo, hi},
		BiggestMargin: s.BiggestMargin,
		BiggestSeed:   s.BiggestSeed,
	}
}
