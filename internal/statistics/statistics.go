package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/holdem-sim/internal/evaluator"
)

// HandResult represents the outcome of a single simulated hand
type HandResult struct {
	Seed     int64              // RNG seed for this hand (for replay)
	Pot      uint               // Pot at the end of the hand
	Winner   string             // Sole winner, empty on a tie or abort
	Category evaluator.Category // Winning category, valid when Winner is set
	Tied     bool               // Showdown ended in a tie
	Aborted  bool               // Hand gave up before showdown
	Retries  int                // Betting rounds that had to be retried
}

// Statistics aggregates a batch of hands
type Statistics struct {
	Hands     int
	Completed int
	Aborted   int
	Ties      int
	Retries   int

	// Pot size distribution across every hand
	SumPot  float64
	SumPot2 float64 // Sum of squares for variance calculation
	Values  []float64
	MaxPot  uint

	Categories map[evaluator.Category]int
	Wins       map[string]int
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	if s.Categories == nil {
		s.Categories = make(map[evaluator.Category]int)
		s.Wins = make(map[string]int)
	}

	pot := float64(result.Pot)
	s.Hands++
	s.SumPot += pot
	s.SumPot2 += pot * pot
	s.Values = append(s.Values, pot)
	s.Retries += result.Retries
	if result.Pot > s.MaxPot {
		s.MaxPot = result.Pot
	}

	switch {
	case result.Aborted:
		s.Aborted++
	case result.Tied:
		s.Completed++
		s.Ties++
	default:
		s.Completed++
		s.Wins[result.Winner]++
		s.Categories[result.Category]++
	}
}

// Mean returns the mean pot per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumPot / float64(s.Hands)
}

// Variance returns the sample variance of pot sizes
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPot2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of pot sizes
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median pot
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the pot at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
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

// CategoryShare returns the fraction of decided hands won with c
func (s *Statistics) CategoryShare(c evaluator.Category) float64 {
	decided := s.Completed - s.Ties
	if decided == 0 {
		return 0
	}
	return float64(s.Categories[c]) / float64(decided)
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if s.Completed+s.Aborted != s.Hands {
		return fmt.Errorf("completed (%d) plus aborted (%d) does not match hands (%d)", s.Completed, s.Aborted, s.Hands)
	}

	wins := 0
	for _, n := range s.Wins {
		wins += n
	}
	if wins+s.Ties != s.Completed {
		return fmt.Errorf("wins (%d) plus ties (%d) does not match completed hands (%d)", wins, s.Ties, s.Completed)
	}

	categorised := 0
	for _, n := range s.Categories {
		categorised += n
	}
	if categorised != wins {
		return fmt.Errorf("category histogram (%d) does not match wins (%d)", categorised, wins)
	}
	return nil
}
