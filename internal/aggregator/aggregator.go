// Package aggregator reduces per-statement sentiment scores for one brand
// into a normalized rating and a volume-based confidence.
package aggregator

import (
	"math"

	"brand-insights-go/internal/types"
)

// Aggregator maps mean sentiment scores from [-1, 1] onto a configurable
// rating scale. The reduction is a pure function of the score multiset:
// permuting the input never changes the outcome.
type Aggregator struct {
	scaleMin float64
	scaleMax float64
}

// Aggregate is the outcome for one brand. Rating and Confidence carry exact
// (unrounded) values; display rounding happens at composition time so that
// cross-brand comparisons stay exact.
type Aggregate struct {
	Rating     float64
	Confidence float64
	Positive   int
	Negative   int
	Neutral    int
	// Sufficient is false when there were no scores to reduce. A brand in
	// that state gets flagged, never a defaulted midpoint rating.
	Sufficient bool
}

func New(scaleMin, scaleMax float64) Aggregator {
	return Aggregator{scaleMin: scaleMin, scaleMax: scaleMax}
}

// Reduce aggregates all sentiment results for a single brand.
func (a Aggregator) Reduce(results []types.SentimentResult) Aggregate {
	if len(results) == 0 {
		return Aggregate{}
	}
	agg := Aggregate{Sufficient: true}
	sum := 0.0
	for _, r := range results {
		sum += r.Score
		switch r.Label {
		case types.SentimentPositive:
			agg.Positive++
		case types.SentimentNegative:
			agg.Negative++
		default:
			agg.Neutral++
		}
	}
	n := float64(len(results))
	avg := sum / n

	// Linear map of [-1, 1] onto [scaleMin, scaleMax]. No intermediate
	// rounding; the exact value feeds cross-brand ranking.
	agg.Rating = a.scaleMin + (avg+1)/2*(a.scaleMax-a.scaleMin)

	// Saturating confidence in [0, 1): one statement is weak evidence, fifty
	// are close to certain.
	agg.Confidence = 1 - 1/(1+n)
	return agg
}

// Round1 rounds to one decimal place for display.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round2 rounds to two decimal places for summary statistics.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
