package insight

import (
	"fmt"

	"brand-insights-go/internal/aggregator"
	"brand-insights-go/internal/types"
)

// AssemblyError reports an internal consistency violation while assembling a
// result. It indicates a wiring bug upstream, never bad input, and is always
// fatal for the run.
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return "assembly: " + e.Reason
}

// Compose assembles the final AnalysisResult from per-brand profiles, the
// comparative report, and run metadata. It performs no new computation beyond
// display rounding, but verifies that every brand the report references
// exists in the profile set before returning.
func Compose(profiles []types.BrandProfile, report types.ComparativeReport, meta types.RunMetadata) (types.AnalysisResult, error) {
	known := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		known[p.Brand] = struct{}{}
	}
	if err := checkReferences(report, known); err != nil {
		return types.AnalysisResult{}, err
	}

	result := types.AnalysisResult{
		Success:       true,
		Brands:        make([]string, 0, len(profiles)),
		BrandProfiles: make([]types.BrandProfile, 0, len(profiles)),
		Comparative:   report,
		Metadata:      meta,
	}
	result.Comparative.MeanRating = aggregator.Round2(report.MeanRating)

	for _, p := range profiles {
		if !p.InsufficientData {
			p.Rating = aggregator.Round1(p.Rating)
			p.Confidence = aggregator.Round2(p.Confidence)
		}
		result.Brands = append(result.Brands, p.Brand)
		result.BrandProfiles = append(result.BrandProfiles, p)
	}

	result.Summary = types.Summary{
		TotalBrands:   len(profiles),
		AverageRating: result.Comparative.MeanRating,
	}
	if n := len(report.RankingByRating); n > 0 {
		result.Summary.HighestRated = report.RankingByRating[0]
		result.Summary.LowestRated = report.RankingByRating[n-1]
	}
	return result, nil
}

// Failure builds the structured run-level failure result: a reason, the run
// metadata, and no partial data.
func Failure(meta types.RunMetadata, reason string) types.AnalysisResult {
	return types.AnalysisResult{
		Success:       false,
		FailureReason: reason,
		Brands:        []string{},
		BrandProfiles: []types.BrandProfile{},
		Metadata:      meta,
	}
}

func checkReferences(report types.ComparativeReport, known map[string]struct{}) error {
	check := func(field, brand string) error {
		if brand == "" {
			return nil
		}
		if _, ok := known[brand]; !ok {
			return &AssemblyError{Reason: fmt.Sprintf("%s references unknown brand %q", field, brand)}
		}
		return nil
	}
	for _, b := range report.RankingByRating {
		if err := check("ranking_by_rating", b); err != nil {
			return err
		}
	}
	for _, b := range report.RankingByVolume {
		if err := check("ranking_by_volume", b); err != nil {
			return err
		}
	}
	for field, b := range map[string]string{
		"best_value":      report.BestValue,
		"highest_rated":   report.HighestRated,
		"most_affordable": report.MostAffordable,
		"premium_choice":  report.PremiumChoice,
	} {
		if err := check(field, b); err != nil {
			return err
		}
	}
	return nil
}
