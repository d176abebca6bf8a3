package statistics

import (
	"math"
	"testing"

	"github.com/lox/holdem-sim/internal/evaluator"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.CategoryShare(evaluator.OnePair) != 0 {
		t.Errorf("Expected no category share for empty stats")
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected empty stats to fail validation")
	}
}

func TestStatistics_Add(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{Seed: 1, Pot: 40, Winner: "Alice", Category: evaluator.OnePair})
	stats.Add(HandResult{Seed: 2, Pot: 60, Winner: "Bob", Category: evaluator.TwoPairs, Retries: 2})
	stats.Add(HandResult{Seed: 3, Pot: 80, Tied: true})
	stats.Add(HandResult{Seed: 4, Pot: 20, Aborted: true, Retries: 64})

	if stats.Hands != 4 {
		t.Errorf("Expected 4 hands, got %d", stats.Hands)
	}
	if stats.Completed != 3 || stats.Aborted != 1 || stats.Ties != 1 {
		t.Errorf("Unexpected counters: completed=%d aborted=%d ties=%d", stats.Completed, stats.Aborted, stats.Ties)
	}
	if stats.Retries != 66 {
		t.Errorf("Expected 66 retries, got %d", stats.Retries)
	}
	if stats.Mean() != 50 {
		t.Errorf("Expected mean pot of 50, got %f", stats.Mean())
	}
	if stats.Median() != 50 {
		t.Errorf("Expected median pot of 50, got %f", stats.Median())
	}
	if stats.MaxPot != 80 {
		t.Errorf("Expected max pot of 80, got %d", stats.MaxPot)
	}
	if stats.Wins["Alice"] != 1 || stats.Wins["Bob"] != 1 {
		t.Errorf("Unexpected wins: %v", stats.Wins)
	}
	if share := stats.CategoryShare(evaluator.TwoPairs); share != 0.5 {
		t.Errorf("Expected two pairs share of 0.5, got %f", share)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}
	for _, pot := range []uint{10, 20, 30, 40, 50} {
		stats.Add(HandResult{Pot: pot, Tied: true})
	}

	// Sample variance of 10..50 step 10 is 250
	if math.Abs(stats.Variance()-250) > 1e-9 {
		t.Errorf("Expected variance of 250, got %f", stats.Variance())
	}
	low, high := stats.ConfidenceInterval95()
	if low >= stats.Mean() || high <= stats.Mean() {
		t.Errorf("Confidence interval [%f, %f] does not contain the mean %f", low, high, stats.Mean())
	}
	if p := stats.Percentile(0.25); p != 20 {
		t.Errorf("Expected P25 of 20, got %f", p)
	}
	if p := stats.Percentile(1); p != 50 {
		t.Errorf("Expected P100 of 50, got %f", p)
	}
}

func TestStatistics_ValidateDetectsMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{Pot: 10, Winner: "Alice", Category: evaluator.HighCard})
	stats.Completed++

	if err := stats.Validate(); err == nil {
		t.Error("Expected validation to fail after corrupting the counters")
	}
}
