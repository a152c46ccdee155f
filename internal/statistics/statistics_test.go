package statistics

import (
	"math"
	"testing"
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
	if stats.WinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{Total: 144, Won: true, Doubles: 2})

	if stats.Hands != 1 {
		t.Errorf("Expected 1 hand, got %d", stats.Hands)
	}
	if stats.Mean() != 144 {
		t.Errorf("Expected mean of 144, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Median() != 144 {
		t.Errorf("Expected median of 144, got %f", stats.Median())
	}
	if stats.Wins != 1 || stats.WinMean() != 144 {
		t.Errorf("Expected one win worth 144, got %d worth %f", stats.Wins, stats.WinMean())
	}
	if stats.MaxDoubles != 2 {
		t.Errorf("Expected max doubles of 2, got %d", stats.MaxDoubles)
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	results := []HandResult{
		{Total: 20, Won: true},
		{Total: 32},
		{Total: 500, Won: true, LimitHand: true},
		{Total: 8},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.Mean() != 140 {
		t.Errorf("Expected mean of 140, got %f", stats.Mean())
	}
	if stats.Median() != 26 {
		t.Errorf("Expected median of 26, got %f", stats.Median())
	}
	if stats.MaxTotal != 500 {
		t.Errorf("Expected max total of 500, got %d", stats.MaxTotal)
	}
	if stats.WinRate() != 0.5 {
		t.Errorf("Expected win rate of 0.5, got %f", stats.WinRate())
	}
	if stats.WinMean() != 260 {
		t.Errorf("Expected win mean of 260, got %f", stats.WinMean())
	}
	if stats.LimitHands != 1 {
		t.Errorf("Expected 1 limit hand, got %d", stats.LimitHands)
	}

	// Sample variance of 20, 32, 500, 8
	expected := (120.0*120 + 108*108 + 360*360 + 132*132) / 3
	if math.Abs(stats.Variance()-expected) > 1e-9 {
		t.Errorf("Expected variance %f, got %f", expected, stats.Variance())
	}
	low, high := stats.ConfidenceInterval95()
	if low >= stats.Mean() || high <= stats.Mean() {
		t.Errorf("Confidence interval [%f, %f] does not contain mean", low, high)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for _, total := range []int{10, 20, 30, 40, 50} {
		stats.Add(HandResult{Total: total})
	}
	if p := stats.Percentile(0); p != 10 {
		t.Errorf("Expected p0 of 10, got %f", p)
	}
	if p := stats.Percentile(1); p != 50 {
		t.Errorf("Expected p100 of 50, got %f", p)
	}
	if p := stats.Percentile(0.25); p != 20 {
		t.Errorf("Expected p25 of 20, got %f", p)
	}
}
