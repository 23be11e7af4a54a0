package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats accumulates the derived series of a run: the running mean grid
// height (one entry before any drops, then one per drop) and a histogram
// of avalanche sizes over NumBins equal-width bins spanning
// [0, MaxCascade].
type Stats struct {
	cutoffs  []float64 // NumBins+1 bin edges, strictly increasing
	counts   []int     // per-bin avalanche counts
	averages []float64 // running mean height, append-only

	// Summary counters for the final report.
	Drops          int // completed drops recorded
	TotalTopplings int // sum of all avalanche sizes
	MaxAvalanche   int // largest avalanche seen
	Discarded      int // avalanches >= MaxCascade, excluded from the histogram
}

// NewStats allocates a Stats with bin edges spanning [0, maxCascade] in
// numBins equal steps. Both values are pre-validated by Config.Validate.
func NewStats(maxCascade float64, numBins int) *Stats {
	return &Stats{
		cutoffs: floats.Span(make([]float64, numBins+1), 0, maxCascade),
		counts:  make([]int, numBins),
	}
}

// RecordAverage appends the grid's current mean height to the running
// average series. Called once before the first drop (baseline) and once
// after each drop.
func (s *Stats) RecordAverage(g *Grid) {
	s.averages = append(s.averages, g.Mean())
}

// RecordAvalanche classifies one completed drop's avalanche size into the
// bin whose half-open interval contains it: the bin below the smallest
// cutoff strictly greater than the size. Sizes at or beyond MaxCascade
// have no such cutoff and are silently discarded rather than clamped into
// the last bin; that keeps the histogram domain bounded and is not an
// error.
func (s *Stats) RecordAvalanche(size int) {
	s.Drops++
	s.TotalTopplings += size
	if size > s.MaxAvalanche {
		s.MaxAvalanche = size
	}
	for i, edge := range s.cutoffs {
		if edge > float64(size) {
			s.counts[i-1]++
			return
		}
	}
	s.Discarded++
}

// Averages returns a copy of the running average series.
func (s *Stats) Averages() []float64 {
	out := make([]float64, len(s.averages))
	copy(out, s.averages)
	return out
}

// BinCounts returns a copy of the histogram counts, one per bin.
func (s *Stats) BinCounts() []int {
	out := make([]int, len(s.counts))
	copy(out, s.counts)
	return out
}

// BinCutoffs returns a copy of the bin edges (len(BinCounts)+1 entries).
func (s *Stats) BinCutoffs() []float64 {
	out := make([]float64, len(s.cutoffs))
	copy(out, s.cutoffs)
	return out
}

// RelativeLogCounts returns log10(count+1) per bin, normalized by the
// maximum so the result lies in [0, 1]. Renderers use it to keep the
// histogram panel bounded; it is presentation-only and never feeds back
// into stored counts. All-zero counts yield all zeros.
func RelativeLogCounts(counts []int) []float64 {
	out := make([]float64, len(counts))
	maxLog := 0.0
	for i, c := range counts {
		out[i] = math.Log10(float64(c) + 1)
		if out[i] > maxLog {
			maxLog = out[i]
		}
	}
	if maxLog == 0 {
		return out
	}
	for i := range out {
		out[i] /= maxLog
	}
	return out
}

// Print displays the aggregated run statistics, mirroring the summary the
// reference simulation emits at the end.
func (s *Stats) Print() {
	fmt.Println("=== Sandpile Statistics ===")
	fmt.Printf("Drops                : %d\n", s.Drops)
	fmt.Printf("Total topplings      : %d\n", s.TotalTopplings)
	fmt.Printf("Largest avalanche    : %d\n", s.MaxAvalanche)
	fmt.Printf("Beyond histogram     : %d\n", s.Discarded)
	if n := len(s.averages); n > 0 {
		fmt.Printf("Starting mean height : %.4f\n", s.averages[0])
		fmt.Printf("Final mean height    : %.4f\n", s.averages[n-1])
	}
}
