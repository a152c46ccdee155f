package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult is the outcome of scoring one hand
type HandResult struct {
	Total     int  // Score total after the limit
	Won       bool // Did the hand win?
	LimitHand bool // Was the total a limit hand?
	Doubles   int  // Doubles before the limit was applied
}

// Statistics summarizes the scores of many hands
type Statistics struct {
	Hands  int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	Wins       int
	WinSum     float64 // Points from winning hands only
	LimitHands int

	MaxTotal   int
	MaxDoubles int
}

// Mean returns the arithmetic mean of all totals
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance of all totals
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all totals
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

// Add incorporates a scored hand into the statistics
func (s *Statistics) Add(result HandResult) {
	total := float64(result.Total)
	s.Hands++
	s.Sum += total
	s.Sum2 += total * total
	s.Values = append(s.Values, total)

	if result.Won {
		s.Wins++
		s.WinSum += total
	}
	if result.LimitHand {
		s.LimitHands++
	}
	if result.Total > s.MaxTotal {
		s.MaxTotal = result.Total
	}
	if result.Doubles > s.MaxDoubles {
		s.MaxDoubles = result.Doubles
	}
}

// WinRate returns the fraction of hands that won
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// WinMean returns the mean total of winning hands
func (s *Statistics) WinMean() float64 {
	if s.Wins == 0 {
		return 0
	}
	return s.WinSum / float64(s.Wins)
}

// Median returns the median total
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the total at the given percentile (0.0 to 1.0)
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

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if s.Wins > s.Hands {
		return fmt.Errorf("wins (%d) exceed total hands (%d)", s.Wins, s.Hands)
	}
	if s.LimitHands > s.Hands {
		return fmt.Errorf("limit hands (%d) exceed total hands (%d)", s.LimitHands, s.Hands)
	}
	return nil
}
