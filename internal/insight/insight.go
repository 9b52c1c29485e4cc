// Package insight generates per-brand narrative summaries and assembles the
// final analysis result.
package insight

import (
	"fmt"
	"strings"

	"brand-insights-go/internal/aggregator"
	"brand-insights-go/internal/types"
)

// Generate builds the short structured insight for one brand from its
// aggregated profile and optional catalog metadata. Pure template assembly
// over already-computed signals.
func Generate(profile types.BrandProfile, meta *types.BrandMetadata) types.Insight {
	if profile.InsufficientData {
		return types.Insight{
			Summary: fmt.Sprintf("Not enough statements about %s in this transcript to form a view.", profile.Brand),
		}
	}
	ins := types.Insight{
		Summary:         summary(profile, meta),
		Strengths:       strengths(profile, meta),
		Weaknesses:      weaknesses(profile, meta),
		Recommendations: recommendations(profile),
		TargetAudience:  targetAudience(profile),
	}
	return ins
}

func summary(p types.BrandProfile, meta *types.BrandMetadata) string {
	parts := []string{}
	switch p.Segment.QualityCategory {
	case types.QualityPremium:
		parts = append(parts, fmt.Sprintf("%s comes across as a premium option", p.Brand))
	case types.QualityStandard:
		parts = append(parts, fmt.Sprintf("%s comes across as a solid, reliable option", p.Brand))
	case types.QualityBasic:
		parts = append(parts, fmt.Sprintf("%s comes across as a basic option", p.Brand))
	default:
		parts = append(parts, fmt.Sprintf("%s is discussed in this transcript", p.Brand))
	}

	rating := aggregator.Round1(p.Rating)
	switch {
	case rating >= 4.5:
		parts = append(parts, "with strongly positive sentiment")
	case rating >= 3.5:
		parts = append(parts, "with generally positive sentiment")
	case rating >= 2.5:
		parts = append(parts, "with mixed sentiment")
	default:
		parts = append(parts, "with mostly negative sentiment")
	}
	parts = append(parts, fmt.Sprintf("(%.1f/5 across %d statements)", rating, len(p.Statements)))

	switch p.Segment.PriceCategory {
	case types.PriceBudget:
		parts = append(parts, "at an affordable price point")
	case types.PricePremium:
		parts = append(parts, "at a premium price point")
	case types.PriceMidRange:
		parts = append(parts, "at a mid-range price point")
	}
	if meta != nil && meta.ThirdPartyTested {
		parts = append(parts, "and is third-party tested")
	}
	return strings.Join(parts, " ") + "."
}

func strengths(p types.BrandProfile, meta *types.BrandMetadata) []string {
	var out []string
	if p.Rating >= 4.3 {
		out = append(out, "High viewer satisfaction")
	}
	if p.Segment.QualityCategory == types.QualityPremium {
		out = append(out, "Premium quality perception")
	}
	if p.Segment.PriceCategory == types.PriceBudget {
		out = append(out, "Strong value for money")
	}
	if meta != nil {
		if meta.ThirdPartyTested {
			out = append(out, "Third-party quality testing")
		}
		if !meta.ArtificialSweeteners {
			out = append(out, "Clean ingredient profile")
		}
		if meta.ProteinGrams >= 25 {
			out = append(out, "High protein content per serving")
		}
	}
	return out
}

func weaknesses(p types.BrandProfile, meta *types.BrandMetadata) []string {
	var out []string
	if p.Rating < 3.0 {
		out = append(out, "Low viewer satisfaction")
	}
	if p.NegativeCount > p.PositiveCount {
		out = append(out, "Negative statements outweigh positive ones")
	}
	if p.Segment.QualityCategory == types.QualityBasic {
		out = append(out, "Basic quality perception")
	}
	if p.Segment.PriceCategory == types.PricePremium {
		out = append(out, "Higher price point")
	}
	if meta != nil {
		if !meta.ThirdPartyTested {
			out = append(out, "No third-party testing")
		}
		if meta.ArtificialSweeteners {
			out = append(out, "Contains artificial sweeteners")
		}
	}
	return out
}

func recommendations(p types.BrandProfile) []string {
	var out []string
	rating := aggregator.Round1(p.Rating)
	switch {
	case rating >= 4.5:
		out = append(out, "Highly recommended based on this review")
	case rating >= 3.5:
		out = append(out, "Recommended for most viewers")
	case rating >= 2.5:
		out = append(out, "Worth considering with reservations")
	default:
		out = append(out, "Hard to recommend based on this review")
	}
	if p.Segment.PriceCategory == types.PriceBudget {
		out = append(out, "Good fit for budget-conscious buyers")
	}
	if p.Confidence < 0.6 {
		out = append(out, "Based on few statements; treat as a weak signal")
	}
	return out
}

func targetAudience(p types.BrandProfile) []string {
	var out []string
	switch p.Segment.QualityCategory {
	case types.QualityPremium:
		out = append(out, "Serious athletes", "Quality-focused buyers")
	case types.QualityStandard:
		out = append(out, "Regular gym-goers")
	case types.QualityBasic:
		out = append(out, "Beginners", "Casual users")
	}
	if p.Segment.PriceCategory == types.PriceBudget {
		out = append(out, "Budget-conscious buyers")
	}
	return out
}
