// Package classifier derives qualitative price and quality categories for a
// brand from cue keywords in its statements and catalog metadata. Categories
// are deliberately decoupled from the sentiment rating: a well-liked brand
// can still be budget tier, and no category is ever guessed from the rating
// alone.
package classifier

import (
	"strings"

	"brand-insights-go/internal/types"
)

// Thresholds hold the category boundaries. Price boundaries are dollars per
// serving; quality boundaries are rating values used only once a quality cue
// has been detected.
type Thresholds struct {
	PriceBudgetMax    float64
	PriceMidRangeMax  float64
	QualityBasicMax   float64
	QualityStandardMax float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		PriceBudgetMax:     0.90,
		PriceMidRangeMax:   1.20,
		QualityBasicMax:    3.2,
		QualityStandardMax: 4.2,
	}
}

type Classifier struct {
	t Thresholds
}

func New(t Thresholds) Classifier {
	return Classifier{t: t}
}

var budgetCues = []string{
	"cheap", "affordable", "budget", "inexpensive", "good value",
	"great value", "best value", "low price", "low cost", "bargain",
}

var premiumPriceCues = []string{
	"expensive", "overpriced", "pricey", "premium price", "costly",
	"high price", "not cheap", "luxury",
}

var qualityCues = []string{
	"quality", "smooth", "gritty", "clumpy", "pure", "clean",
	"well made", "premium", "top tier", "top-tier", "basic", "mixes well",
	"mixability", "artificial", "aftertaste",
}

var negativeQualityCues = []string{
	"gritty", "clumpy", "artificial", "aftertaste", "basic", "cheap quality",
	"poor quality", "low quality",
}

// Classify maps a brand's aggregated signals onto segment categories.
// Catalog metadata may be nil; cue detection then carries the whole decision
// and anything without a cue stays unknown.
func (c Classifier) Classify(profile types.BrandProfile, meta *types.BrandMetadata) types.Segment {
	seg := types.Segment{
		PriceCategory:   c.priceCategory(profile, meta),
		QualityCategory: c.qualityCategory(profile),
	}
	if meta != nil {
		seg.Features = meta.Features
	}
	return seg
}

// priceCategory prefers explicit price language in the statements; catalog
// price-per-serving breaks ties and fills in when the transcript says nothing
// about cost.
func (c Classifier) priceCategory(profile types.BrandProfile, meta *types.BrandMetadata) types.PriceCategory {
	budget, premium := 0, 0
	for _, st := range profile.Statements {
		text := strings.ToLower(st.Text)
		for _, cue := range budgetCues {
			if strings.Contains(text, cue) {
				budget++
			}
		}
		for _, cue := range premiumPriceCues {
			if strings.Contains(text, cue) {
				premium++
			}
		}
	}
	switch {
	case budget > premium:
		return types.PriceBudget
	case premium > budget:
		return types.PricePremium
	}
	if meta != nil && meta.PricePerServing > 0 {
		switch {
		case meta.PricePerServing <= c.t.PriceBudgetMax:
			return types.PriceBudget
		case meta.PricePerServing <= c.t.PriceMidRangeMax:
			return types.PriceMidRange
		default:
			return types.PricePremium
		}
	}
	if budget > 0 {
		// equal cue counts with no catalog price: the transcript is talking
		// about cost both ways, call it mid-range rather than unknown
		return types.PriceMidRange
	}
	return types.PriceUnknown
}

// qualityCategory requires at least one quality cue before it will band the
// rating. Negative cues cap the tier at basic regardless of rating.
func (c Classifier) qualityCategory(profile types.BrandProfile) types.QualityCategory {
	cued, negative := false, false
	for _, st := range profile.Statements {
		text := strings.ToLower(st.Text)
		for _, cue := range qualityCues {
			if strings.Contains(text, cue) {
				cued = true
				break
			}
		}
		for _, cue := range negativeQualityCues {
			if strings.Contains(text, cue) {
				negative = true
				break
			}
		}
	}
	if !cued || profile.InsufficientData {
		return types.QualityUnknown
	}
	if negative {
		return types.QualityBasic
	}
	switch {
	case profile.Rating <= c.t.QualityBasicMax:
		return types.QualityBasic
	case profile.Rating <= c.t.QualityStandardMax:
		return types.QualityStandard
	default:
		return types.QualityPremium
	}
}
