package simulator

import (
	"fmt"
	"io"
	"slices"

	"github.com/lox/holdem-sim/internal/evaluator"
	"github.com/lox/holdem-sim/internal/fileutil"
)

// categories in descending strength for the histogram
var categories = []evaluator.Category{
	evaluator.RoyalFlush,
	evaluator.StraightFlush,
	evaluator.FourOfAKind,
	evaluator.FullHouse,
	evaluator.Flush,
	evaluator.Straight,
	evaluator.ThreeOfAKind,
	evaluator.TwoPairs,
	evaluator.OnePair,
	evaluator.HighCard,
}

// PrintSummary writes a summary of the report to w
func PrintSummary(w io.Writer, r *Report) {
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Hands played: %d (%d completed, %d aborted)\n", stats.Hands, stats.Completed, stats.Aborted)
	fmt.Fprintf(w, "Ties: %d\n", stats.Ties)
	fmt.Fprintf(w, "Retried rounds: %d\n", stats.Retries)
	fmt.Fprintf(w, "Elapsed: %s\n", r.Elapsed)

	fmt.Fprintf(w, "\n=== POT SIZE ===\n")
	fmt.Fprintf(w, "Mean: %.2f chips\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.2f chips\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f chips\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Max: %d chips\n", stats.MaxPot)

	fmt.Fprintf(w, "\n=== WINNING HANDS ===\n")
	for _, c := range categories {
		if n := stats.Categories[c]; n > 0 {
			fmt.Fprintf(w, "%-16s %6d  %5.1f%%\n", c, n, stats.CategoryShare(c)*100)
		}
	}

	fmt.Fprintf(w, "\n=== WINS BY PLAYER ===\n")
	names := make([]string, 0, len(stats.Wins))
	for name := range stats.Wins {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "%-10s %6d\n", name, stats.Wins[name])
	}
}

// Summary is the machine-readable form of a report.
type Summary struct {
	Hands      int            `json:"hands"`
	Completed  int            `json:"completed"`
	Aborted    int            `json:"aborted"`
	Ties       int            `json:"ties"`
	Retries    int            `json:"retries"`
	ElapsedMS  int64          `json:"elapsed_ms"`
	MeanPot    float64        `json:"mean_pot"`
	MedianPot  float64        `json:"median_pot"`
	StdDevPot  float64        `json:"stddev_pot"`
	CI95       [2]float64     `json:"ci95"`
	MaxPot     uint           `json:"max_pot"`
	Categories map[string]int `json:"categories"`
	Wins       map[string]int `json:"wins"`
	Aborts     []int64        `json:"aborted_seeds,omitempty"`
}

// Summarize flattens the report for encoding.
func Summarize(r *Report) Summary {
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()
	s := Summary{
		Hands:      stats.Hands,
		Completed:  stats.Completed,
		Aborted:    stats.Aborted,
		Ties:       stats.Ties,
		Retries:    stats.Retries,
		ElapsedMS:  r.Elapsed.Milliseconds(),
		MeanPot:    stats.Mean(),
		MedianPot:  stats.Median(),
		StdDevPot:  stats.StdDev(),
		CI95:       [2]float64{low, high},
		MaxPot:     stats.MaxPot,
		Categories: make(map[string]int, len(stats.Categories)),
		Wins:       make(map[string]int, len(stats.Wins)),
	}
	for c, n := range stats.Categories {
		s.Categories[c.String()] = n
	}
	for name, n := range stats.Wins {
		s.Wins[name] = n
	}
	for _, h := range r.Hands {
		if h.Aborted {
			s.Aborts = append(s.Aborts, h.Seed)
		}
	}
	return s
}

// WriteSummary stores the report as JSON at path.
func WriteSummary(path string, r *Report) error {
	return fileutil.WriteJSON(path, Summarize(r))
}
