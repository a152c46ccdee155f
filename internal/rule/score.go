package rule

import (
	"fmt"
	"math"
	"strings"
)

// maxDoubles guards the shift in Total against overflow.
const maxDoubles = 40

// Score is the contribution of a rule, or the sum of several.
type Score struct {
	Points  int
	Doubles int
	Limits  float64
}

// Add returns the sum of two scores.
func (s Score) Add(o Score) Score {
	return Score{
		Points:  s.Points + o.Points,
		Doubles: s.Doubles + o.Doubles,
		Limits:  s.Limits + o.Limits,
	}
}

// IsZero reports whether the score contributes nothing.
func (s Score) IsZero() bool {
	return s.Points == 0 && s.Doubles == 0 && s.Limits == 0
}

// Total computes points * 2^doubles, capped at limit when limit > 0. A score
// carrying Limits is a limit hand worth Limits * limit, rounded and also
// capped at limit.
func (s Score) Total(limit int) int {
	if s.Limits > 0 && limit > 0 {
		return min(int(math.Round(s.Limits*float64(limit))), limit)
	}
	doubles := s.Doubles
	if doubles < 0 {
		doubles = 0
	}
	if doubles > maxDoubles {
		if limit > 0 {
			return limit
		}
		doubles = maxDoubles
	}
	total := s.Points << doubles
	if limit > 0 && total > limit {
		return limit
	}
	return total
}

// String renders the non-zero parts, e.g. "20 points, 1 double".
func (s Score) String() string {
	var parts []string
	if s.Points != 0 {
		parts = append(parts, plural(s.Points, "point"))
	}
	if s.Doubles != 0 {
		parts = append(parts, plural(s.Doubles, "double"))
	}
	if s.Limits != 0 {
		if s.Limits == 1 {
			parts = append(parts, "limit hand")
		} else {
			parts = append(parts, fmt.Sprintf("%g limits", s.Limits))
		}
	}
	if len(parts) == 0 {
		return "0 points"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
