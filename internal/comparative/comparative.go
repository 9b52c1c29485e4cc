// Package comparative ranks a run's brand profiles against each other and
// computes cross-brand summary statistics.
package comparative

import (
	"fmt"
	"sort"
	"strings"

	"brand-insights-go/internal/types"
)

// bucket boundaries for the rating distribution; the last bucket is closed
// on both ends so a perfect 5.0 lands somewhere.
var bucketRanges = []string{"1.0-2.0", "2.0-3.0", "3.0-4.0", "4.0-5.0"}

// Compare builds the comparative report for one run. meta supplies optional
// catalog pricing used for the value picks; it may be nil. Zero profiles
// yield an empty report, a single profile still gets full summary stats.
func Compare(profiles []types.BrandProfile, meta map[string]types.BrandMetadata) types.ComparativeReport {
	report := types.ComparativeReport{
		BrandCount:         len(profiles),
		RatingDistribution: emptyDistribution(),
	}
	if len(profiles) == 0 {
		return report
	}

	rated := make([]types.BrandProfile, 0, len(profiles))
	for _, p := range profiles {
		if !p.InsufficientData {
			rated = append(rated, p)
		}
	}
	report.RatedBrandCount = len(rated)

	report.RankingByRating = rankByRating(rated)
	report.RankingByVolume = rankByVolume(profiles)

	if len(rated) > 0 {
		sum := 0.0
		for _, p := range rated {
			sum += p.Rating
			slot := bucketIndex(p.Rating)
			report.RatingDistribution[slot].Count++
		}
		report.MeanRating = sum / float64(len(rated))
		report.HighestRated = report.RankingByRating[0]
	}

	report.BestValue = bestValue(rated, meta)
	report.MostAffordable = mostAffordable(profiles, meta)
	report.PremiumChoice = premiumChoice(rated)
	report.ComparisonSummary = summaryLine(report)
	return report
}

// rankByRating orders rated profiles by rating descending. Ties break on
// higher confidence, then brand name ascending, so the order is a
// deterministic total order.
func rankByRating(rated []types.BrandProfile) []string {
	sorted := append([]types.BrandProfile(nil), rated...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.Brand < b.Brand
	})
	out := make([]string, len(sorted))
	for i, p := range sorted {
		out[i] = p.Brand
	}
	return out
}

// rankByVolume orders all profiles (rated or not) by attributed statement
// count descending, then rating descending, then name ascending.
func rankByVolume(profiles []types.BrandProfile) []string {
	sorted := append([]types.BrandProfile(nil), profiles...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if len(a.Statements) != len(b.Statements) {
			return len(a.Statements) > len(b.Statements)
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Brand < b.Brand
	})
	out := make([]string, len(sorted))
	for i, p := range sorted {
		out[i] = p.Brand
	}
	return out
}

// bestValue picks the cheapest brand among those classified standard quality
// or better, using catalog pricing. Empty when no candidate has a price.
func bestValue(rated []types.BrandProfile, meta map[string]types.BrandMetadata) string {
	best, bestPrice := "", 0.0
	for _, p := range rated {
		q := p.Segment.QualityCategory
		if q != types.QualityStandard && q != types.QualityPremium {
			continue
		}
		m, ok := meta[types.NormalizeBrand(p.Brand)]
		if !ok || m.PricePerServing <= 0 {
			continue
		}
		if best == "" || m.PricePerServing < bestPrice ||
			(m.PricePerServing == bestPrice && p.Brand < best) {
			best, bestPrice = p.Brand, m.PricePerServing
		}
	}
	return best
}

func mostAffordable(profiles []types.BrandProfile, meta map[string]types.BrandMetadata) string {
	best, bestPrice := "", 0.0
	for _, p := range profiles {
		m, ok := meta[types.NormalizeBrand(p.Brand)]
		if !ok || m.PricePerServing <= 0 {
			continue
		}
		if best == "" || m.PricePerServing < bestPrice ||
			(m.PricePerServing == bestPrice && p.Brand < best) {
			best, bestPrice = p.Brand, m.PricePerServing
		}
	}
	return best
}

func premiumChoice(rated []types.BrandProfile) string {
	best := ""
	bestRating := 0.0
	for _, p := range rated {
		if p.Segment.QualityCategory != types.QualityPremium {
			continue
		}
		if best == "" || p.Rating > bestRating || (p.Rating == bestRating && p.Brand < best) {
			best, bestRating = p.Brand, p.Rating
		}
	}
	return best
}

func summaryLine(r types.ComparativeReport) string {
	var parts []string
	if r.HighestRated != "" {
		parts = append(parts, fmt.Sprintf("%s leads on rating", r.HighestRated))
	}
	if r.BestValue != "" {
		parts = append(parts, fmt.Sprintf("%s is the best value pick", r.BestValue))
	}
	if r.MostAffordable != "" && r.MostAffordable != r.BestValue {
		parts = append(parts, fmt.Sprintf("%s is the most affordable option", r.MostAffordable))
	}
	if r.PremiumChoice != "" {
		parts = append(parts, fmt.Sprintf("%s is the premium choice", r.PremiumChoice))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + "."
}

func emptyDistribution() []types.RatingBucket {
	out := make([]types.RatingBucket, len(bucketRanges))
	for i, r := range bucketRanges {
		out[i] = types.RatingBucket{Range: r}
	}
	return out
}

func bucketIndex(rating float64) int {
	switch {
	case rating < 2:
		return 0
	case rating < 3:
		return 1
	case rating < 4:
		return 2
	default:
		return 3
	}
}
